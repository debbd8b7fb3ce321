package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/testutil"
)

func testPrice(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedDishes(t *testing.T, repo *MySQLDishRepository) (uint, uint) {
	ctx := context.Background()
	soup, err := repo.Insert(ctx, domain.Dish{Name: "Soup", Price: testPrice("5.00")})
	require.NoError(t, err)
	bread, err := repo.Insert(ctx, domain.Dish{Name: "Bread", Price: testPrice("2.00")})
	require.NoError(t, err)
	return soup.ID, bread.ID
}

func TestCategoryRepository_InsertWithDishes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	soupID, breadID := seedDishes(t, NewMySQLDishRepository(db))
	repo := NewMySQLCategoryRepository(db)

	category, err := repo.Insert(ctx, "Starters", []uint{soupID, breadID})
	require.NoError(t, err)
	assert.Equal(t, "Starters", category.Name)
	require.Len(t, category.Dishes, 2)

	found, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, found.Dishes, 2)
}

func TestCategoryRepository_InsertUnknownDishFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLCategoryRepository(db)

	_, err := repo.Insert(ctx, "Starters", []uint{99999})
	require.Error(t, err)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "dishes", ve.Details[0].Field)

	// nothing half-created
	categories, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryRepository_UpdateReplacesDishes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	soupID, breadID := seedDishes(t, NewMySQLDishRepository(db))
	repo := NewMySQLCategoryRepository(db)

	category, err := repo.Insert(ctx, "Starters", []uint{soupID})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, category.ID, "Sides", []uint{breadID})
	require.NoError(t, err)
	assert.Equal(t, "Sides", updated.Name)
	require.Len(t, updated.Dishes, 1)
	assert.Equal(t, breadID, updated.Dishes[0].ID)
}

func TestCategoryRepository_DeleteAndNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLCategoryRepository(db)

	category, err := repo.Insert(ctx, "Starters", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, category.ID))

	_, err = repo.FindByID(ctx, category.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, category.ID)
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMenuRepository_NestedCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	soupID, _ := seedDishes(t, NewMySQLDishRepository(db))
	categoryRepo := NewMySQLCategoryRepository(db)
	category, err := categoryRepo.Insert(ctx, "Starters", []uint{soupID})
	require.NoError(t, err)

	menuRepo := NewMySQLMenuRepository(db)
	menu, err := menuRepo.Insert(ctx, "Lunch", testPrice("12.50"), []uint{category.ID})
	require.NoError(t, err)

	found, err := menuRepo.FindByID(ctx, menu.ID)
	require.NoError(t, err)
	require.Len(t, found.Categories, 1)
	require.Len(t, found.Categories[0].Dishes, 1)
	assert.Equal(t, "Soup", found.Categories[0].Dishes[0].Name)
}

func TestDishRepository_NullPriceRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLDishRepository(db)

	dish, err := repo.Insert(ctx, domain.Dish{Name: "Special", Price: nil})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Price)

	require.NoError(t, repo.Update(ctx, domain.Dish{ID: dish.ID, Name: "Special", Price: testPrice("9.99")}))

	found, err = repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Price)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("9.99")))
}
