package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

type MySQLRealizationTypeRepository struct {
	db *sql.DB
}

func NewMySQLRealizationTypeRepository(db *sql.DB) *MySQLRealizationTypeRepository {
	return &MySQLRealizationTypeRepository{db: db}
}

func (r *MySQLRealizationTypeRepository) Insert(ctx context.Context, rt domain.RealizationType) (*domain.RealizationType, error) {
	result, err := r.db.ExecContext(ctx, `INSERT INTO realization_types (name) VALUES (?)`, rt.Name)
	if err != nil {
		return nil, fmt.Errorf("inserting realization type: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	rt.ID = uint(id)
	return &rt, nil
}

func (r *MySQLRealizationTypeRepository) FindByID(ctx context.Context, id uint) (*domain.RealizationType, error) {
	var rt domain.RealizationType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM realization_types WHERE id = ?`, id).
		Scan(&rt.ID, &rt.Name)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("realization type with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying realization type by id: %w", err)
	}

	return &rt, nil
}

func (r *MySQLRealizationTypeRepository) FindAll(ctx context.Context) ([]domain.RealizationType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM realization_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying realization types: %w", err)
	}
	defer rows.Close()

	var types []domain.RealizationType
	for rows.Next() {
		var rt domain.RealizationType
		if err := rows.Scan(&rt.ID, &rt.Name); err != nil {
			return nil, fmt.Errorf("scanning realization type row: %w", err)
		}
		types = append(types, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating realization type rows: %w", err)
	}

	return types, nil
}

func (r *MySQLRealizationTypeRepository) Update(ctx context.Context, rt domain.RealizationType) error {
	result, err := r.db.ExecContext(ctx, `UPDATE realization_types SET name = ? WHERE id = ?`, rt.Name, rt.ID)
	if err != nil {
		return fmt.Errorf("updating realization type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, findErr := r.FindByID(ctx, rt.ID); findErr != nil {
			return findErr
		}
	}

	return nil
}

func (r *MySQLRealizationTypeRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM realization_types WHERE id = ?`, id)
	if mysql.IsRowReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("realization type with id %d is referenced by orders", id))
	}
	if err != nil {
		return fmt.Errorf("deleting realization type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("realization type with id %d not found", id))
	}

	return nil
}
