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
	partyrepo "github.com/sind14/Gastronomy-Service/internal/party/repository"
	"github.com/sind14/Gastronomy-Service/internal/testutil"
)

type orderFixture struct {
	repo              *MySQLOrderRepository
	dishRepo          *catalogrepo.MySQLDishRepository
	typeRepo          *catalogrepo.MySQLRealizationTypeRepository
	realizationTypeID uint
	soupID            uint
	clientID          uint
}

func setupOrderFixture(t *testing.T) *orderFixture {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	typeRepo := catalogrepo.NewMySQLRealizationTypeRepository(db)
	rt, err := typeRepo.Insert(ctx, domain.RealizationType{Name: "delivery"})
	require.NoError(t, err)

	dishRepo := catalogrepo.NewMySQLDishRepository(db)
	price := decimal.RequireFromString("5.00")
	soup, err := dishRepo.Insert(ctx, domain.Dish{Name: "Soup", Price: &price})
	require.NoError(t, err)

	client, err := partyrepo.NewMySQLClientRepository(db).Insert(ctx, domain.Client{
		FirstName:    "Anna",
		LastName:     "Nowak",
		DocumentID:   "XYZ789",
		DocumentType: domain.DocumentTypePassport,
	}, nil)
	require.NoError(t, err)

	return &orderFixture{
		repo:              NewMySQLOrderRepository(db),
		dishRepo:          dishRepo,
		typeRepo:          typeRepo,
		realizationTypeID: rt.ID,
		soupID:            soup.ID,
		clientID:          client.ID,
	}
}

func pendingOrder(f *orderFixture) domain.Order {
	return domain.Order{
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
		PeopleCount:     2,
		RealizationType: domain.RealizationType{ID: f.realizationTypeID},
		Client:          &domain.Client{ID: f.clientID},
	}
}

func TestOrderRepository_InsertLoadsNestedReferences(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	order, err := f.repo.Insert(ctx, pendingOrder(f), []uint{f.soupID}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "delivery", order.RealizationType.Name)
	require.NotNil(t, order.Client)
	assert.Equal(t, "Anna", order.Client.FirstName)
	require.Len(t, order.Dishes, 1)
	assert.Equal(t, "Soup", order.Dishes[0].Name)
	assert.True(t, order.TotalPrice.IsZero())
}

func TestOrderRepository_InsertUnknownRealizationTypeFails(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	order := pendingOrder(f)
	order.RealizationType = domain.RealizationType{ID: 99999}

	_, err := f.repo.Insert(ctx, order, nil, nil)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "realization_type", ve.Details[0].Field)
}

func TestOrderRepository_InsertUnknownDishFails(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	_, err := f.repo.Insert(ctx, pendingOrder(f), []uint{99999}, nil)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "dishes", ve.Details[0].Field)

	orders, err := f.repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "failed insert must not leave an order behind")
}

func TestOrderRepository_UpdateReplacesItemLinks(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	created, err := f.repo.Insert(ctx, pendingOrder(f), []uint{f.soupID}, nil)
	require.NoError(t, err)

	updated := *created
	updated.PeopleCount = 5
	result, err := f.repo.Update(ctx, updated, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, result.PeopleCount)
	assert.Empty(t, result.Dishes)
}

func TestOrderRepository_DeleteCascadesLinks(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	created, err := f.repo.Insert(ctx, pendingOrder(f), []uint{f.soupID}, nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.Delete(ctx, created.ID))

	_, err = f.repo.FindByID(ctx, created.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	// the dish outlives the order
	_, err = f.dishRepo.FindByID(ctx, f.soupID)
	assert.NoError(t, err)
}

func TestOrderRepository_ReferencedDishDeleteConflicts(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	_, err := f.repo.Insert(ctx, pendingOrder(f), []uint{f.soupID}, nil)
	require.NoError(t, err)

	err = f.dishRepo.Delete(ctx, f.soupID)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok, "dish linked to a live order must not be deletable")
}

func TestOrderRepository_ReferencedRealizationTypeDeleteConflicts(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	_, err := f.repo.Insert(ctx, pendingOrder(f), nil, nil)
	require.NoError(t, err)

	err = f.typeRepo.Delete(ctx, f.realizationTypeID)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestOrderRepository_DuplicateItemIDsCollapse(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	order, err := f.repo.Insert(ctx, pendingOrder(f), []uint{f.soupID, f.soupID}, nil)
	require.NoError(t, err)

	assert.Len(t, order.Dishes, 1)
}
