package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrepo "github.com/sind14/Gastronomy-Service/internal/catalog/repository"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/testutil"
)

func TestGetOrCreateDish_SameNamePriceSharesRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()
	repo := NewMySQLArchiveRepository(db)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	price := decimal.RequireFromString("5.00")
	first, err := repo.GetOrCreateDish(ctx, tx, "Soup", price)
	require.NoError(t, err)
	second, err := repo.GetOrCreateDish(ctx, tx, "Soup", price)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := repo.GetOrCreateDish(ctx, tx, "Soup", decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "a different price is a different snapshot")

	require.NoError(t, tx.Commit())
}

func TestArchiveRepository_InsertAndReadBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	rt, err := catalogrepo.NewMySQLRealizationTypeRepository(db).Insert(ctx, domain.RealizationType{Name: "takeaway"})
	require.NoError(t, err)

	repo := NewMySQLArchiveRepository(db)
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	reason := "kitchen closed"
	createdAt := time.Now().UTC().Truncate(time.Second)
	archivedID, err := repo.InsertOrder(ctx, tx, domain.ArchivedOrder{
		CreatedAt:       createdAt,
		PeopleCount:     3,
		RealizationType: domain.RealizationType{ID: rt.ID},
		Status:          domain.OrderStatusCancelled,
		CancelReason:    &reason,
		TotalPrice:      decimal.RequireFromString("7.00"),
	})
	require.NoError(t, err)

	dishID, err := repo.GetOrCreateDish(ctx, tx, "Soup", decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	require.NoError(t, repo.LinkDish(ctx, tx, archivedID, dishID))
	require.NoError(t, repo.LinkDish(ctx, tx, archivedID, dishID))

	require.NoError(t, tx.Commit())

	stored, err := repo.FindOrderByID(ctx, archivedID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelReason)
	assert.Equal(t, "kitchen closed", *stored.CancelReason)
	assert.Equal(t, "takeaway", stored.RealizationType.Name)
	assert.Len(t, stored.Dishes, 1, "relinking the same snapshot must stay idempotent")
	assert.WithinDuration(t, createdAt, stored.CreatedAt, time.Second)
}

func TestArchivedItemRepository_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLArchivedItemRepository(db)

	_, err := repo.FindDishByID(ctx, 99999)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	_, err = repo.FindInventoryByID(ctx, 99999)
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
