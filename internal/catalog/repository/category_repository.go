package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
)

type MySQLCategoryRepository struct {
	db *sql.DB
}

func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

func (r *MySQLCategoryRepository) Insert(ctx context.Context, name string, dishIDs []uint) (*domain.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := r.replaceDishLinks(ctx, tx, uint(id), dishIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).
		Scan(&category.ID, &category.Name)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	dishesByCategory, err := r.findDishesByCategoryIDs(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	category.Dishes = dishesByCategory[id]

	return &category, nil
}

func (r *MySQLCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	var ids []uint
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, category)
		ids = append(ids, category.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	dishesByCategory, err := r.findDishesByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Dishes = dishesByCategory[categories[i].ID]
	}

	return categories, nil
}

func (r *MySQLCategoryRepository) Update(ctx context.Context, id uint, name string, dishIDs []uint) (*domain.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists uint
		err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
		}
		if err != nil {
			return nil, fmt.Errorf("checking category existence: %w", err)
		}
	}

	if err := r.replaceDishLinks(ctx, tx, id, dishIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLCategoryRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}

	return nil
}

// replaceDishLinks swaps the category's dish set. Every id must reference
// an existing dish; anything else is a validation error.
func (r *MySQLCategoryRepository) replaceDishLinks(ctx context.Context, tx *sql.Tx, categoryID uint, dishIDs []uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM category_dishes WHERE category_id = ?`, categoryID); err != nil {
		return fmt.Errorf("clearing category dishes: %w", err)
	}

	ids := uniqueIDs(dishIDs)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO category_dishes (category_id, dish_id)
		SELECT ?, id FROM dishes WHERE id IN (%s)`,
		placeholders(len(ids)),
	)

	args := append([]interface{}{categoryID}, idArgs(ids)...)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting category dishes: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected != int64(len(ids)) {
		return errors.NewValidationError("unknown dish reference", errors.ValidationDetail{
			Field:   "dishes",
			Message: "one or more dish ids do not exist",
		})
	}

	return nil
}

func (r *MySQLCategoryRepository) findDishesByCategoryIDs(ctx context.Context, categoryIDs []uint) (map[uint][]domain.Dish, error) {
	dishesByCategory := make(map[uint][]domain.Dish, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return dishesByCategory, nil
	}

	query := fmt.Sprintf(`
		SELECT cd.category_id, d.id, d.name, d.price
		FROM category_dishes cd
		JOIN dishes d ON d.id = cd.dish_id
		WHERE cd.category_id IN (%s)
		ORDER BY d.id`,
		placeholders(len(categoryIDs)),
	)

	rows, err := r.db.QueryContext(ctx, query, idArgs(categoryIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying category dishes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID uint
		var dish domain.Dish
		var price decimal.NullDecimal
		if err := rows.Scan(&categoryID, &dish.ID, &dish.Name, &price); err != nil {
			return nil, fmt.Errorf("scanning category dish row: %w", err)
		}
		if price.Valid {
			dish.Price = &price.Decimal
		}
		dishesByCategory[categoryID] = append(dishesByCategory[categoryID], dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category dish rows: %w", err)
	}

	return dishesByCategory, nil
}
