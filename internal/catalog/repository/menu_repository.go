package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
)

type MySQLMenuRepository struct {
	db           *sql.DB
	categoryRepo *MySQLCategoryRepository
}

func NewMySQLMenuRepository(db *sql.DB) *MySQLMenuRepository {
	return &MySQLMenuRepository{db: db, categoryRepo: NewMySQLCategoryRepository(db)}
}

func (r *MySQLMenuRepository) Insert(ctx context.Context, name string, price *decimal.Decimal, categoryIDs []uint) (*domain.Menu, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `INSERT INTO menus (name, price) VALUES (?, ?)`, name, price)
	if err != nil {
		return nil, fmt.Errorf("inserting menu: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := r.replaceCategoryLinks(ctx, tx, uint(id), categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLMenuRepository) FindByID(ctx context.Context, id uint) (*domain.Menu, error) {
	var menu domain.Menu
	var price decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `SELECT id, name, price FROM menus WHERE id = ?`, id).
		Scan(&menu.ID, &menu.Name, &price)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu by id: %w", err)
	}
	if price.Valid {
		menu.Price = &price.Decimal
	}

	categories, err := r.findCategoriesByMenuID(ctx, id)
	if err != nil {
		return nil, err
	}
	menu.Categories = categories

	return &menu, nil
}

func (r *MySQLMenuRepository) FindAll(ctx context.Context) ([]domain.Menu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM menus ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying menus: %w", err)
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		var menu domain.Menu
		var price decimal.NullDecimal
		if err := rows.Scan(&menu.ID, &menu.Name, &price); err != nil {
			return nil, fmt.Errorf("scanning menu row: %w", err)
		}
		if price.Valid {
			menu.Price = &price.Decimal
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu rows: %w", err)
	}

	for i := range menus {
		categories, err := r.findCategoriesByMenuID(ctx, menus[i].ID)
		if err != nil {
			return nil, err
		}
		menus[i].Categories = categories
	}

	return menus, nil
}

func (r *MySQLMenuRepository) Update(ctx context.Context, id uint, name string, price *decimal.Decimal, categoryIDs []uint) (*domain.Menu, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE menus SET name = ?, price = ? WHERE id = ?`, name, price, id)
	if err != nil {
		return nil, fmt.Errorf("updating menu: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists uint
		err := tx.QueryRowContext(ctx, `SELECT id FROM menus WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("menu with id %d not found", id))
		}
		if err != nil {
			return nil, fmt.Errorf("checking menu existence: %w", err)
		}
	}

	if err := r.replaceCategoryLinks(ctx, tx, id, categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLMenuRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting menu: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu with id %d not found", id))
	}

	return nil
}

func (r *MySQLMenuRepository) replaceCategoryLinks(ctx context.Context, tx *sql.Tx, menuID uint, categoryIDs []uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_categories WHERE menu_id = ?`, menuID); err != nil {
		return fmt.Errorf("clearing menu categories: %w", err)
	}

	ids := uniqueIDs(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO menu_categories (menu_id, category_id)
		SELECT ?, id FROM categories WHERE id IN (%s)`,
		placeholders(len(ids)),
	)

	args := append([]interface{}{menuID}, idArgs(ids)...)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting menu categories: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected != int64(len(ids)) {
		return errors.NewValidationError("unknown category reference", errors.ValidationDetail{
			Field:   "categories",
			Message: "one or more category ids do not exist",
		})
	}

	return nil
}

func (r *MySQLMenuRepository) findCategoriesByMenuID(ctx context.Context, menuID uint) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name
		FROM menu_categories mc
		JOIN categories c ON c.id = mc.category_id
		WHERE mc.menu_id = ?
		ORDER BY c.id`, menuID)
	if err != nil {
		return nil, fmt.Errorf("querying menu categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	var ids []uint
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scanning menu category row: %w", err)
		}
		categories = append(categories, category)
		ids = append(ids, category.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu category rows: %w", err)
	}

	dishesByCategory, err := r.categoryRepo.findDishesByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Dishes = dishesByCategory[categories[i].ID]
	}

	return categories, nil
}
