package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

// itemRow is the shared row shape of the dishes and inventories tables.
type itemRow struct {
	ID    uint
	Name  string
	Price *decimal.Decimal
}

// mysqlItemRepository implements CRUD over one of the two catalog item
// tables; dishes and inventory items only differ by table name.
type mysqlItemRepository struct {
	db    *sql.DB
	table string
	label string
}

func (r *mysqlItemRepository) insert(ctx context.Context, row itemRow) (itemRow, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, price) VALUES (?, ?)`, r.table)

	result, err := r.db.ExecContext(ctx, query, row.Name, row.Price)
	if err != nil {
		return itemRow{}, fmt.Errorf("inserting %s: %w", r.label, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return itemRow{}, fmt.Errorf("getting last insert id: %w", err)
	}

	row.ID = uint(id)
	return row, nil
}

func (r *mysqlItemRepository) findByID(ctx context.Context, id uint) (itemRow, error) {
	query := fmt.Sprintf(`SELECT id, name, price FROM %s WHERE id = ?`, r.table)

	var row itemRow
	var price decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, query, id).Scan(&row.ID, &row.Name, &price)

	if err == sql.ErrNoRows {
		return itemRow{}, errors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", r.label, id))
	}
	if err != nil {
		return itemRow{}, fmt.Errorf("querying %s by id: %w", r.label, err)
	}

	if price.Valid {
		row.Price = &price.Decimal
	}
	return row, nil
}

func (r *mysqlItemRepository) findAll(ctx context.Context) ([]itemRow, error) {
	query := fmt.Sprintf(`SELECT id, name, price FROM %s ORDER BY id`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %ss: %w", r.label, err)
	}
	defer rows.Close()

	var items []itemRow
	for rows.Next() {
		var row itemRow
		var price decimal.NullDecimal
		if err := rows.Scan(&row.ID, &row.Name, &price); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.label, err)
		}
		if price.Valid {
			row.Price = &price.Decimal
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.label, err)
	}

	return items, nil
}

func (r *mysqlItemRepository) update(ctx context.Context, row itemRow) error {
	query := fmt.Sprintf(`UPDATE %s SET name = ?, price = ? WHERE id = ?`, r.table)

	result, err := r.db.ExecContext(ctx, query, row.Name, row.Price, row.ID)
	if err != nil {
		return fmt.Errorf("updating %s: %w", r.label, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, findErr := r.findByID(ctx, row.ID); findErr != nil {
			return findErr
		}
	}

	return nil
}

func (r *mysqlItemRepository) delete(ctx context.Context, id uint) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table)

	result, err := r.db.ExecContext(ctx, query, id)
	if mysql.IsRowReferenced(err) {
		return errors.NewConflictError(fmt.Sprintf("%s with id %d is referenced by orders or categories", r.label, id))
	}
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.label, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", r.label, id))
	}

	return nil
}

type MySQLDishRepository struct {
	mysqlItemRepository
}

func NewMySQLDishRepository(db *sql.DB) *MySQLDishRepository {
	return &MySQLDishRepository{mysqlItemRepository{db: db, table: "dishes", label: "dish"}}
}

func (r *MySQLDishRepository) Insert(ctx context.Context, d domain.Dish) (*domain.Dish, error) {
	row, err := r.insert(ctx, itemRow{Name: d.Name, Price: d.Price})
	if err != nil {
		return nil, err
	}
	return &domain.Dish{ID: row.ID, Name: row.Name, Price: row.Price}, nil
}

func (r *MySQLDishRepository) FindByID(ctx context.Context, id uint) (*domain.Dish, error) {
	row, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Dish{ID: row.ID, Name: row.Name, Price: row.Price}, nil
}

func (r *MySQLDishRepository) FindAll(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}
	dishes := make([]domain.Dish, len(rows))
	for i, row := range rows {
		dishes[i] = domain.Dish{ID: row.ID, Name: row.Name, Price: row.Price}
	}
	return dishes, nil
}

func (r *MySQLDishRepository) Update(ctx context.Context, d domain.Dish) error {
	return r.update(ctx, itemRow{ID: d.ID, Name: d.Name, Price: d.Price})
}

func (r *MySQLDishRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

type MySQLInventoryRepository struct {
	mysqlItemRepository
}

func NewMySQLInventoryRepository(db *sql.DB) *MySQLInventoryRepository {
	return &MySQLInventoryRepository{mysqlItemRepository{db: db, table: "inventories", label: "inventory item"}}
}

func (r *MySQLInventoryRepository) Insert(ctx context.Context, inv domain.Inventory) (*domain.Inventory, error) {
	row, err := r.insert(ctx, itemRow{Name: inv.Name, Price: inv.Price})
	if err != nil {
		return nil, err
	}
	return &domain.Inventory{ID: row.ID, Name: row.Name, Price: row.Price}, nil
}

func (r *MySQLInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	row, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Inventory{ID: row.ID, Name: row.Name, Price: row.Price}, nil
}

func (r *MySQLInventoryRepository) FindAll(ctx context.Context) ([]domain.Inventory, error) {
	rows, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}
	inventories := make([]domain.Inventory, len(rows))
	for i, row := range rows {
		inventories[i] = domain.Inventory{ID: row.ID, Name: row.Name, Price: row.Price}
	}
	return inventories, nil
}

func (r *MySQLInventoryRepository) Update(ctx context.Context, inv domain.Inventory) error {
	return r.update(ctx, itemRow{ID: inv.ID, Name: inv.Name, Price: inv.Price})
}

func (r *MySQLInventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
