package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/testutil"
)

func seedAddress(t *testing.T, repo *MySQLAddressRepository) uint {
	address, err := repo.Insert(context.Background(), domain.Address{
		City:        "Warsaw",
		Street:      "Main",
		HouseNumber: "12",
	})
	require.NoError(t, err)
	return address.ID
}

func TestCompanyRepository_InsertWithAddresses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	addressID := seedAddress(t, NewMySQLAddressRepository(db))
	repo := NewMySQLCompanyRepository(db)

	company, err := repo.Insert(ctx, "Catering Ltd", "PL1234567890", []uint{addressID})
	require.NoError(t, err)
	require.Len(t, company.Addresses, 1)
	assert.Equal(t, "Warsaw", company.Addresses[0].City)
}

func TestCompanyRepository_DuplicateTaxIDConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLCompanyRepository(db)

	_, err := repo.Insert(ctx, "Catering Ltd", "PL1234567890", nil)
	require.NoError(t, err)

	_, err = repo.Insert(ctx, "Other Ltd", "PL1234567890", nil)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestCompanyRepository_UpdateToTakenTaxIDConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLCompanyRepository(db)

	_, err := repo.Insert(ctx, "Catering Ltd", "PL1111111111", nil)
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "Other Ltd", "PL2222222222", nil)
	require.NoError(t, err)

	_, err = repo.Update(ctx, second.ID, "Other Ltd", "PL1111111111", nil)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestCompanyRepository_UnknownAddressFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLCompanyRepository(db)

	_, err := repo.Insert(ctx, "Catering Ltd", "PL1234567890", []uint{99999})
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "addresses", ve.Details[0].Field)
}

func TestClientRepository_DuplicateDocumentConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLClientRepository(db)

	client := domain.Client{
		FirstName:    "Anna",
		LastName:     "Nowak",
		DocumentID:   "ABC123",
		DocumentType: domain.DocumentTypePassport,
	}
	_, err := repo.Insert(ctx, client, nil)
	require.NoError(t, err)

	_, err = repo.Insert(ctx, client, nil)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestClientRepository_SameDocumentIDDifferentTypeAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	repo := NewMySQLClientRepository(db)

	first := domain.Client{
		FirstName:    "Anna",
		LastName:     "Nowak",
		DocumentID:   "ABC123",
		DocumentType: domain.DocumentTypePassport,
	}
	_, err := repo.Insert(ctx, first, nil)
	require.NoError(t, err)

	second := first
	second.DocumentType = domain.DocumentTypeNationalID
	_, err = repo.Insert(ctx, second, nil)
	assert.NoError(t, err)
}

func TestClientRepository_NestedCompaniesWithAddresses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()

	addressID := seedAddress(t, NewMySQLAddressRepository(db))
	companyRepo := NewMySQLCompanyRepository(db)
	company, err := companyRepo.Insert(ctx, "Catering Ltd", "PL1234567890", []uint{addressID})
	require.NoError(t, err)

	clientRepo := NewMySQLClientRepository(db)
	client, err := clientRepo.Insert(ctx, domain.Client{
		FirstName:    "Anna",
		LastName:     "Nowak",
		DocumentID:   "ABC123",
		DocumentType: domain.DocumentTypeOther,
	}, []uint{company.ID})
	require.NoError(t, err)

	found, err := clientRepo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, found.Companies, 1)
	require.Len(t, found.Companies[0].Addresses, 1)
	assert.Equal(t, "Main", found.Companies[0].Addresses[0].Street)
}
