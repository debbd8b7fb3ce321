package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

type MySQLClientRepository struct {
	db          *sql.DB
	companyRepo *MySQLCompanyRepository
}

func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db, companyRepo: NewMySQLCompanyRepository(db)}
}

func (r *MySQLClientRepository) Insert(ctx context.Context, c domain.Client, companyIDs []uint) (*domain.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO clients (first_name, last_name, phone, email, document_id, document_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Phone, c.Email, c.DocumentID, c.DocumentType,
	)
	if mysql.IsDuplicateEntry(err) {
		return nil, errors.NewConflictError(fmt.Sprintf("client with document %s/%s already exists", c.DocumentType, c.DocumentID))
	}
	if err != nil {
		return nil, fmt.Errorf("inserting client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := r.replaceCompanyLinks(ctx, tx, uint(id), companyIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email, document_id, document_type
		FROM clients
		WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.DocumentID, &c.DocumentType)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("client with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying client by id: %w", err)
	}

	companies, err := r.findCompaniesByClientID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Companies = companies

	return &c, nil
}

func (r *MySQLClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, phone, email, document_id, document_type
		FROM clients
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.DocumentID, &c.DocumentType); err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	for i := range clients {
		companies, err := r.findCompaniesByClientID(ctx, clients[i].ID)
		if err != nil {
			return nil, err
		}
		clients[i].Companies = companies
	}

	return clients, nil
}

func (r *MySQLClientRepository) Update(ctx context.Context, c domain.Client, companyIDs []uint) (*domain.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE clients
		SET first_name = ?, last_name = ?, phone = ?, email = ?, document_id = ?, document_type = ?
		WHERE id = ?`,
		c.FirstName, c.LastName, c.Phone, c.Email, c.DocumentID, c.DocumentType, c.ID,
	)
	if mysql.IsDuplicateEntry(err) {
		return nil, errors.NewConflictError(fmt.Sprintf("client with document %s/%s already exists", c.DocumentType, c.DocumentID))
	}
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists uint
		err := tx.QueryRowContext(ctx, `SELECT id FROM clients WHERE id = ?`, c.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("client with id %d not found", c.ID))
		}
		if err != nil {
			return nil, fmt.Errorf("checking client existence: %w", err)
		}
	}

	if err := r.replaceCompanyLinks(ctx, tx, c.ID, companyIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, c.ID)
}

func (r *MySQLClientRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if mysql.IsRowReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("client with id %d is referenced by orders", id))
	}
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("client with id %d not found", id))
	}

	return nil
}

func (r *MySQLClientRepository) replaceCompanyLinks(ctx context.Context, tx *sql.Tx, clientID uint, companyIDs []uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM client_companies WHERE client_id = ?`, clientID); err != nil {
		return fmt.Errorf("clearing client companies: %w", err)
	}

	ids := uniqueIDs(companyIDs)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO client_companies (client_id, company_id)
		SELECT ?, id FROM companies WHERE id IN (%s)`,
		placeholders(len(ids)),
	)

	args := append([]interface{}{clientID}, idArgs(ids)...)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting client companies: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected != int64(len(ids)) {
		return errors.NewValidationError("unknown company reference", errors.ValidationDetail{
			Field:   "companies",
			Message: "one or more company ids do not exist",
		})
	}

	return nil
}

func (r *MySQLClientRepository) findCompaniesByClientID(ctx context.Context, clientID uint) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.tax_id
		FROM client_companies cc
		JOIN companies c ON c.id = cc.company_id
		WHERE cc.client_id = ?
		ORDER BY c.id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying client companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	var ids []uint
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.TaxID); err != nil {
			return nil, fmt.Errorf("scanning client company row: %w", err)
		}
		companies = append(companies, company)
		ids = append(ids, company.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client company rows: %w", err)
	}

	addressesByCompany, err := r.companyRepo.findAddressesByCompanyIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		companies[i].Addresses = addressesByCompany[companies[i].ID]
	}

	return companies, nil
}
