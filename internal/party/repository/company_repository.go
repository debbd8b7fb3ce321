package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

type MySQLCompanyRepository struct {
	db *sql.DB
}

func NewMySQLCompanyRepository(db *sql.DB) *MySQLCompanyRepository {
	return &MySQLCompanyRepository{db: db}
}

func (r *MySQLCompanyRepository) Insert(ctx context.Context, name, taxID string, addressIDs []uint) (*domain.Company, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `INSERT INTO companies (name, tax_id) VALUES (?, ?)`, name, taxID)
	if mysql.IsDuplicateEntry(err) {
		return nil, errors.NewConflictError(fmt.Sprintf("company with tax id %q already exists", taxID))
	}
	if err != nil {
		return nil, fmt.Errorf("inserting company: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := r.replaceAddressLinks(ctx, tx, uint(id), addressIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLCompanyRepository) FindByID(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	err := r.db.QueryRowContext(ctx, `SELECT id, name, tax_id FROM companies WHERE id = ?`, id).
		Scan(&company.ID, &company.Name, &company.TaxID)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("company with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying company by id: %w", err)
	}

	addressesByCompany, err := r.findAddressesByCompanyIDs(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	company.Addresses = addressesByCompany[id]

	return &company, nil
}

func (r *MySQLCompanyRepository) FindAll(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, tax_id FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	var ids []uint
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.TaxID); err != nil {
			return nil, fmt.Errorf("scanning company row: %w", err)
		}
		companies = append(companies, company)
		ids = append(ids, company.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company rows: %w", err)
	}

	addressesByCompany, err := r.findAddressesByCompanyIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		companies[i].Addresses = addressesByCompany[companies[i].ID]
	}

	return companies, nil
}

func (r *MySQLCompanyRepository) Update(ctx context.Context, id uint, name, taxID string, addressIDs []uint) (*domain.Company, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE companies SET name = ?, tax_id = ? WHERE id = ?`, name, taxID, id)
	if mysql.IsDuplicateEntry(err) {
		return nil, errors.NewConflictError(fmt.Sprintf("company with tax id %q already exists", taxID))
	}
	if err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists uint
		err := tx.QueryRowContext(ctx, `SELECT id FROM companies WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("company with id %d not found", id))
		}
		if err != nil {
			return nil, fmt.Errorf("checking company existence: %w", err)
		}
	}

	if err := r.replaceAddressLinks(ctx, tx, id, addressIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLCompanyRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if mysql.IsRowReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("company with id %d is referenced by orders", id))
	}
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("company with id %d not found", id))
	}

	return nil
}

func (r *MySQLCompanyRepository) replaceAddressLinks(ctx context.Context, tx *sql.Tx, companyID uint, addressIDs []uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM company_addresses WHERE company_id = ?`, companyID); err != nil {
		return fmt.Errorf("clearing company addresses: %w", err)
	}

	ids := uniqueIDs(addressIDs)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO company_addresses (company_id, address_id)
		SELECT ?, id FROM addresses WHERE id IN (%s)`,
		placeholders(len(ids)),
	)

	args := append([]interface{}{companyID}, idArgs(ids)...)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting company addresses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected != int64(len(ids)) {
		return errors.NewValidationError("unknown address reference", errors.ValidationDetail{
			Field:   "addresses",
			Message: "one or more address ids do not exist",
		})
	}

	return nil
}

func (r *MySQLCompanyRepository) findAddressesByCompanyIDs(ctx context.Context, companyIDs []uint) (map[uint][]domain.Address, error) {
	addressesByCompany := make(map[uint][]domain.Address, len(companyIDs))
	if len(companyIDs) == 0 {
		return addressesByCompany, nil
	}

	query := fmt.Sprintf(`
		SELECT ca.company_id, a.id, a.city, a.street, a.house_number, a.postal_code, a.apartment, a.note
		FROM company_addresses ca
		JOIN addresses a ON a.id = ca.address_id
		WHERE ca.company_id IN (%s)
		ORDER BY a.id`,
		placeholders(len(companyIDs)),
	)

	rows, err := r.db.QueryContext(ctx, query, idArgs(companyIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying company addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var companyID uint
		var a domain.Address
		if err := rows.Scan(&companyID, &a.ID, &a.City, &a.Street, &a.HouseNumber, &a.PostalCode, &a.Apartment, &a.Note); err != nil {
			return nil, fmt.Errorf("scanning company address row: %w", err)
		}
		addressesByCompany[companyID] = append(addressesByCompany[companyID], a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company address rows: %w", err)
	}

	return addressesByCompany, nil
}
