package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
)

// MySQLArchivedItemRepository serves the read-only views over the
// archived_dishes and archived_inventories snapshot tables.
type MySQLArchivedItemRepository struct {
	db *sql.DB
}

func NewMySQLArchivedItemRepository(db *sql.DB) *MySQLArchivedItemRepository {
	return &MySQLArchivedItemRepository{db: db}
}

func (r *MySQLArchivedItemRepository) FindDishByID(ctx context.Context, id uint) (*domain.ArchivedDish, error) {
	var d domain.ArchivedDish
	err := r.db.QueryRowContext(ctx, `SELECT id, name, price FROM archived_dishes WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Price)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("archived dish with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying archived dish by id: %w", err)
	}

	return &d, nil
}

func (r *MySQLArchivedItemRepository) FindAllDishes(ctx context.Context) ([]domain.ArchivedDish, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM archived_dishes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying archived dishes: %w", err)
	}
	defer rows.Close()

	var dishes []domain.ArchivedDish
	for rows.Next() {
		var d domain.ArchivedDish
		if err := rows.Scan(&d.ID, &d.Name, &d.Price); err != nil {
			return nil, fmt.Errorf("scanning archived dish row: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived dish rows: %w", err)
	}

	return dishes, nil
}

func (r *MySQLArchivedItemRepository) FindInventoryByID(ctx context.Context, id uint) (*domain.ArchivedInventory, error) {
	var inv domain.ArchivedInventory
	err := r.db.QueryRowContext(ctx, `SELECT id, name, price FROM archived_inventories WHERE id = ?`, id).
		Scan(&inv.ID, &inv.Name, &inv.Price)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("archived inventory item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying archived inventory item by id: %w", err)
	}

	return &inv, nil
}

func (r *MySQLArchivedItemRepository) FindAllInventories(ctx context.Context) ([]domain.ArchivedInventory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM archived_inventories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying archived inventory items: %w", err)
	}
	defer rows.Close()

	var inventories []domain.ArchivedInventory
	for rows.Next() {
		var inv domain.ArchivedInventory
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Price); err != nil {
			return nil, fmt.Errorf("scanning archived inventory row: %w", err)
		}
		inventories = append(inventories, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived inventory rows: %w", err)
	}

	return inventories, nil
}
