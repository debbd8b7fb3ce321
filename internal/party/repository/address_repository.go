package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

type MySQLAddressRepository struct {
	db *sql.DB
}

func NewMySQLAddressRepository(db *sql.DB) *MySQLAddressRepository {
	return &MySQLAddressRepository{db: db}
}

func (r *MySQLAddressRepository) Insert(ctx context.Context, a domain.Address) (*domain.Address, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (city, street, house_number, postal_code, apartment, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.City, a.Street, a.HouseNumber, a.PostalCode, a.Apartment, a.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting address: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	a.ID = uint(id)
	return &a, nil
}

func (r *MySQLAddressRepository) FindByID(ctx context.Context, id uint) (*domain.Address, error) {
	var a domain.Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, city, street, house_number, postal_code, apartment, note
		FROM addresses
		WHERE id = ?`, id).
		Scan(&a.ID, &a.City, &a.Street, &a.HouseNumber, &a.PostalCode, &a.Apartment, &a.Note)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("address with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying address by id: %w", err)
	}

	return &a, nil
}

func (r *MySQLAddressRepository) FindAll(ctx context.Context) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, city, street, house_number, postal_code, apartment, note
		FROM addresses
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.City, &a.Street, &a.HouseNumber, &a.PostalCode, &a.Apartment, &a.Note); err != nil {
			return nil, fmt.Errorf("scanning address row: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating address rows: %w", err)
	}

	return addresses, nil
}

func (r *MySQLAddressRepository) Update(ctx context.Context, a domain.Address) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET city = ?, street = ?, house_number = ?, postal_code = ?, apartment = ?, note = ?
		WHERE id = ?`,
		a.City, a.Street, a.HouseNumber, a.PostalCode, a.Apartment, a.Note, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, findErr := r.FindByID(ctx, a.ID); findErr != nil {
			return findErr
		}
	}

	return nil
}

func (r *MySQLAddressRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?`, id)
	if mysql.IsRowReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("address with id %d is referenced by orders", id))
	}
	if err != nil {
		return fmt.Errorf("deleting address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("address with id %d not found", id))
	}

	return nil
}
