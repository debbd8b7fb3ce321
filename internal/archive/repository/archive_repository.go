package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	partyrepo "github.com/sind14/Gastronomy-Service/internal/party/repository"
)

type MySQLArchiveRepository struct {
	db          *sql.DB
	addressRepo *partyrepo.MySQLAddressRepository
	companyRepo *partyrepo.MySQLCompanyRepository
	clientRepo  *partyrepo.MySQLClientRepository
}

func NewMySQLArchiveRepository(db *sql.DB) *MySQLArchiveRepository {
	return &MySQLArchiveRepository{
		db:          db,
		addressRepo: partyrepo.NewMySQLAddressRepository(db),
		companyRepo: partyrepo.NewMySQLCompanyRepository(db),
		clientRepo:  partyrepo.NewMySQLClientRepository(db),
	}
}

// InsertOrder writes the archived order row inside the archive transaction.
func (r *MySQLArchiveRepository) InsertOrder(ctx context.Context, tx *sql.Tx, o domain.ArchivedOrder) (uint, error) {
	var addressID, companyID, clientID interface{}
	if o.Address != nil {
		addressID = o.Address.ID
	}
	if o.Company != nil {
		companyID = o.Company.ID
	}
	if o.Client != nil {
		clientID = o.Client.ID
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO archived_orders (order_date, created_at, people_count, realization_type_id,
		                             address_id, company_id, client_id, status, cancel_reason, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderDate, o.CreatedAt, o.PeopleCount, o.RealizationType.ID,
		addressID, companyID, clientID, o.Status, o.CancelReason, o.TotalPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting archived order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

// GetOrCreateDish returns the id of the archived dish snapshot with the
// given name and price, creating it if absent. The upsert keyed on
// UNIQUE(name, price) makes the get-or-create atomic under concurrent
// archiving.
func (r *MySQLArchiveRepository) GetOrCreateDish(ctx context.Context, tx *sql.Tx, name string, price decimal.Decimal) (uint, error) {
	return r.getOrCreateItem(ctx, tx, "archived_dishes", name, price)
}

func (r *MySQLArchiveRepository) GetOrCreateInventory(ctx context.Context, tx *sql.Tx, name string, price decimal.Decimal) (uint, error) {
	return r.getOrCreateItem(ctx, tx, "archived_inventories", name, price)
}

func (r *MySQLArchiveRepository) getOrCreateItem(ctx context.Context, tx *sql.Tx, table, name string, price decimal.Decimal) (uint, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, price)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`, table)

	result, err := tx.ExecContext(ctx, query, name, price)
	if err != nil {
		return 0, fmt.Errorf("upserting into %s: %w", table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLArchiveRepository) LinkDish(ctx context.Context, tx *sql.Tx, archivedOrderID, archivedDishID uint) error {
	_, err := tx.ExecContext(ctx, `
		INSERT IGNORE INTO archived_order_dishes (archived_order_id, archived_dish_id)
		VALUES (?, ?)`, archivedOrderID, archivedDishID)
	if err != nil {
		return fmt.Errorf("linking archived dish: %w", err)
	}
	return nil
}

func (r *MySQLArchiveRepository) LinkInventory(ctx context.Context, tx *sql.Tx, archivedOrderID, archivedInventoryID uint) error {
	_, err := tx.ExecContext(ctx, `
		INSERT IGNORE INTO archived_order_inventories (archived_order_id, archived_inventory_id)
		VALUES (?, ?)`, archivedOrderID, archivedInventoryID)
	if err != nil {
		return fmt.Errorf("linking archived inventory: %w", err)
	}
	return nil
}

func (r *MySQLArchiveRepository) FindOrderByID(ctx context.Context, id uint) (*domain.ArchivedOrder, error) {
	var o domain.ArchivedOrder
	var addressID, companyID, clientID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_date, o.created_at, o.people_count,
		       rt.id, rt.name,
		       o.address_id, o.company_id, o.client_id,
		       o.status, o.cancel_reason, o.total_price
		FROM archived_orders o
		JOIN realization_types rt ON rt.id = o.realization_type_id
		WHERE o.id = ?`, id).
		Scan(&o.ID, &o.OrderDate, &o.CreatedAt, &o.PeopleCount,
			&o.RealizationType.ID, &o.RealizationType.Name,
			&addressID, &companyID, &clientID,
			&o.Status, &o.CancelReason, &o.TotalPrice)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("archived order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying archived order by id: %w", err)
	}

	if addressID.Valid {
		address, err := r.addressRepo.FindByID(ctx, uint(addressID.Int64))
		if err != nil {
			return nil, err
		}
		o.Address = address
	}
	if companyID.Valid {
		company, err := r.companyRepo.FindByID(ctx, uint(companyID.Int64))
		if err != nil {
			return nil, err
		}
		o.Company = company
	}
	if clientID.Valid {
		client, err := r.clientRepo.FindByID(ctx, uint(clientID.Int64))
		if err != nil {
			return nil, err
		}
		o.Client = client
	}

	dishes, err := r.findOrderDishes(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Dishes = dishes

	inventories, err := r.findOrderInventories(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Inventories = inventories

	return &o, nil
}

func (r *MySQLArchiveRepository) FindAllOrders(ctx context.Context) ([]domain.ArchivedOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM archived_orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying archived orders: %w", err)
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning archived order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived order rows: %w", err)
	}

	orders := make([]domain.ArchivedOrder, 0, len(ids))
	for _, id := range ids {
		order, err := r.FindOrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *MySQLArchiveRepository) findOrderDishes(ctx context.Context, orderID uint) ([]domain.ArchivedDish, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.price
		FROM archived_order_dishes od
		JOIN archived_dishes d ON d.id = od.archived_dish_id
		WHERE od.archived_order_id = ?
		ORDER BY d.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying archived order dishes: %w", err)
	}
	defer rows.Close()

	var dishes []domain.ArchivedDish
	for rows.Next() {
		var d domain.ArchivedDish
		if err := rows.Scan(&d.ID, &d.Name, &d.Price); err != nil {
			return nil, fmt.Errorf("scanning archived order dish row: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived order dish rows: %w", err)
	}

	return dishes, nil
}

func (r *MySQLArchiveRepository) findOrderInventories(ctx context.Context, orderID uint) ([]domain.ArchivedInventory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.price
		FROM archived_order_inventories oi
		JOIN archived_inventories i ON i.id = oi.archived_inventory_id
		WHERE oi.archived_order_id = ?
		ORDER BY i.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying archived order inventories: %w", err)
	}
	defer rows.Close()

	var inventories []domain.ArchivedInventory
	for rows.Next() {
		var inv domain.ArchivedInventory
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Price); err != nil {
			return nil, fmt.Errorf("scanning archived order inventory row: %w", err)
		}
		inventories = append(inventories, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived order inventory rows: %w", err)
	}

	return inventories, nil
}
