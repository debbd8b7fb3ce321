package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
	partyrepo "github.com/sind14/Gastronomy-Service/internal/party/repository"
)

type MySQLOrderRepository struct {
	db          *sql.DB
	addressRepo *partyrepo.MySQLAddressRepository
	companyRepo *partyrepo.MySQLCompanyRepository
	clientRepo  *partyrepo.MySQLClientRepository
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{
		db:          db,
		addressRepo: partyrepo.NewMySQLAddressRepository(db),
		companyRepo: partyrepo.NewMySQLCompanyRepository(db),
		clientRepo:  partyrepo.NewMySQLClientRepository(db),
	}
}

// Insert creates the order row plus its item links. CreatedAt on o must be
// supplied by the caller; it is stored as given, not defaulted here.
func (r *MySQLOrderRepository) Insert(ctx context.Context, o domain.Order, dishIDs, inventoryIDs []uint) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (order_date, created_at, people_count, realization_type_id,
		                    address_id, company_id, client_id, status, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderDate, o.CreatedAt, o.PeopleCount, o.RealizationType.ID,
		partyID(o.Address), companyID(o.Company), clientID(o.Client),
		domain.OrderStatusPending, decimal.Zero,
	)
	if mysql.IsReferenceMissing(err) {
		return nil, referenceValidationError(err)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := r.replaceItemLinks(ctx, tx, uint(id), "order_dishes", "dish_id", "dishes", dishIDs, true); err != nil {
		return nil, err
	}
	if err := r.replaceItemLinks(ctx, tx, uint(id), "order_inventories", "inventory_id", "inventories", inventoryIDs, true); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := r.scanOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *MySQLOrderRepository) Update(ctx context.Context, o domain.Order, dishIDs, inventoryIDs []uint) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET order_date = ?, people_count = ?, realization_type_id = ?,
		    address_id = ?, company_id = ?, client_id = ?
		WHERE id = ?`,
		o.OrderDate, o.PeopleCount, o.RealizationType.ID,
		partyID(o.Address), companyID(o.Company), clientID(o.Client), o.ID,
	)
	if mysql.IsReferenceMissing(err) {
		return nil, referenceValidationError(err)
	}
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists uint
		err := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = ?`, o.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", o.ID))
		}
		if err != nil {
			return nil, fmt.Errorf("checking order existence: %w", err)
		}
	}

	if err := r.replaceItemLinks(ctx, tx, o.ID, "order_dishes", "dish_id", "dishes", dishIDs, true); err != nil {
		return nil, err
	}
	if err := r.replaceItemLinks(ctx, tx, o.ID, "order_inventories", "inventory_id", "inventories", inventoryIDs, true); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, o.ID)
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// BeginTx exposes the underlying transaction starter to the lifecycle
// service.
func (r *MySQLOrderRepository) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, opts)
}

// FindByIDForUpdate locks the order row for the duration of tx and loads
// the fields the archive workflow needs. Party references carry only their
// ids.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error) {
	var o domain.Order
	var addressID, companyID, clientID sql.NullInt64
	err := tx.QueryRowContext(ctx, `
		SELECT id, order_date, created_at, people_count, realization_type_id,
		       address_id, company_id, client_id, status, cancel_reason, total_price
		FROM orders
		WHERE id = ?
		FOR UPDATE`, id).
		Scan(&o.ID, &o.OrderDate, &o.CreatedAt, &o.PeopleCount, &o.RealizationType.ID,
			&addressID, &companyID, &clientID, &o.Status, &o.CancelReason, &o.TotalPrice)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order for update: %w", err)
	}

	if addressID.Valid {
		o.Address = &domain.Address{ID: uint(addressID.Int64)}
	}
	if companyID.Valid {
		o.Company = &domain.Company{ID: uint(companyID.Int64)}
	}
	if clientID.Valid {
		o.Client = &domain.Client{ID: uint(clientID.Int64)}
	}

	dishes, inventories, err := r.findItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	o.Dishes = dishes
	o.Inventories = inventories

	return &o, nil
}

// DeleteTx removes the order inside the archive transaction. The m2m link
// rows cascade.
func (r *MySQLOrderRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// ReplaceDishes swaps the order's dish set for exactly the existing dishes
// among dishIDs. Unknown ids are silently dropped and an empty list clears
// the set.
func (r *MySQLOrderRepository) ReplaceDishes(ctx context.Context, tx *sql.Tx, orderID uint, dishIDs []uint) error {
	return r.replaceItemLinks(ctx, tx, orderID, "order_dishes", "dish_id", "dishes", dishIDs, false)
}

func (r *MySQLOrderRepository) replaceItemLinks(ctx context.Context, tx *sql.Tx, orderID uint, linkTable, linkColumn, itemTable string, itemIDs []uint, strict bool) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE order_id = ?`, linkTable)
	if _, err := tx.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("clearing %s: %w", linkTable, err)
	}

	ids := uniqueIDs(itemIDs)
	if len(ids) == 0 {
		return nil
	}

	query = fmt.Sprintf(`
		INSERT INTO %s (order_id, %s)
		SELECT ?, id FROM %s WHERE id IN (%s)`,
		linkTable, linkColumn, itemTable, placeholders(len(ids)),
	)

	args := append([]interface{}{orderID}, idArgs(ids)...)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", linkTable, err)
	}

	if strict {
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("getting rows affected: %w", err)
		}
		if rowsAffected != int64(len(ids)) {
			return errors.NewValidationError("unknown item reference", errors.ValidationDetail{
				Field:   itemTable,
				Message: fmt.Sprintf("one or more %s ids do not exist", itemTable),
			})
		}
	}

	return nil
}

func (r *MySQLOrderRepository) scanOrder(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	var addressID, companyID, clientID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_date, o.created_at, o.people_count,
		       rt.id, rt.name,
		       o.address_id, o.company_id, o.client_id,
		       o.status, o.cancel_reason, o.total_price
		FROM orders o
		JOIN realization_types rt ON rt.id = o.realization_type_id
		WHERE o.id = ?`, id).
		Scan(&o.ID, &o.OrderDate, &o.CreatedAt, &o.PeopleCount,
			&o.RealizationType.ID, &o.RealizationType.Name,
			&addressID, &companyID, &clientID,
			&o.Status, &o.CancelReason, &o.TotalPrice)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	if addressID.Valid {
		o.Address = &domain.Address{ID: uint(addressID.Int64)}
	}
	if companyID.Valid {
		o.Company = &domain.Company{ID: uint(companyID.Int64)}
	}
	if clientID.Valid {
		o.Client = &domain.Client{ID: uint(clientID.Int64)}
	}

	return &o, nil
}

func (r *MySQLOrderRepository) loadRelations(ctx context.Context, o *domain.Order) error {
	if o.Address != nil {
		address, err := r.addressRepo.FindByID(ctx, o.Address.ID)
		if err != nil {
			return err
		}
		o.Address = address
	}
	if o.Company != nil {
		company, err := r.companyRepo.FindByID(ctx, o.Company.ID)
		if err != nil {
			return err
		}
		o.Company = company
	}
	if o.Client != nil {
		client, err := r.clientRepo.FindByID(ctx, o.Client.ID)
		if err != nil {
			return err
		}
		o.Client = client
	}

	dishes, inventories, err := r.findItems(ctx, o.ID)
	if err != nil {
		return err
	}
	o.Dishes = dishes
	o.Inventories = inventories

	return nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID uint) ([]domain.Dish, []domain.Inventory, error) {
	return scanItems(ctx, r.db, orderID)
}

func (r *MySQLOrderRepository) findItemsTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.Dish, []domain.Inventory, error) {
	return scanItems(ctx, tx, orderID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func scanItems(ctx context.Context, q querier, orderID uint) ([]domain.Dish, []domain.Inventory, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT d.id, d.name, d.price
		FROM order_dishes od
		JOIN dishes d ON d.id = od.dish_id
		WHERE od.order_id = ?
		ORDER BY d.id`, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying order dishes: %w", err)
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var dish domain.Dish
		var price decimal.NullDecimal
		if err := rows.Scan(&dish.ID, &dish.Name, &price); err != nil {
			return nil, nil, fmt.Errorf("scanning order dish row: %w", err)
		}
		if price.Valid {
			dish.Price = &price.Decimal
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating order dish rows: %w", err)
	}

	invRows, err := q.QueryContext(ctx, `
		SELECT i.id, i.name, i.price
		FROM order_inventories oi
		JOIN inventories i ON i.id = oi.inventory_id
		WHERE oi.order_id = ?
		ORDER BY i.id`, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying order inventories: %w", err)
	}
	defer invRows.Close()

	var inventories []domain.Inventory
	for invRows.Next() {
		var inv domain.Inventory
		var price decimal.NullDecimal
		if err := invRows.Scan(&inv.ID, &inv.Name, &price); err != nil {
			return nil, nil, fmt.Errorf("scanning order inventory row: %w", err)
		}
		if price.Valid {
			inv.Price = &price.Decimal
		}
		inventories = append(inventories, inv)
	}
	if err := invRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating order inventory rows: %w", err)
	}

	return dishes, inventories, nil
}

func partyID(a *domain.Address) interface{} {
	if a == nil {
		return nil
	}
	return a.ID
}

func companyID(c *domain.Company) interface{} {
	if c == nil {
		return nil
	}
	return c.ID
}

func clientID(c *domain.Client) interface{} {
	if c == nil {
		return nil
	}
	return c.ID
}

// referenceValidationError maps a foreign-key failure on insert/update to a
// field-level validation error based on the violated column.
func referenceValidationError(err error) error {
	columns := []struct {
		column string
		field  string
	}{
		{"realization_type_id", "realization_type"},
		{"address_id", "address"},
		{"company_id", "company"},
		{"client_id", "client"},
	}

	msg := err.Error()
	for _, c := range columns {
		if strings.Contains(msg, c.column) {
			return errors.NewValidationError(fmt.Sprintf("unknown %s reference", c.field), errors.ValidationDetail{
				Field:   c.field,
				Message: fmt.Sprintf("referenced %s does not exist", c.field),
			})
		}
	}

	return errors.NewValidationError("unknown reference", errors.ValidationDetail{
		Field:   "body",
		Message: "a referenced row does not exist",
	})
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []uint) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
