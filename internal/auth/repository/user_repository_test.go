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

func TestUserRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()
	repo := NewMySQLUserRepository(db)

	user, err := repo.Insert(ctx, domain.User{
		Username:     "chef",
		Email:        "chef@example.com",
		PasswordHash: "hashed",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	byName, err := repo.FindByUsername(ctx, "chef")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.False(t, byName.IsStaff)
}

func TestUserRepository_DuplicateUsernameConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()
	repo := NewMySQLUserRepository(db)

	_, err := repo.Insert(ctx, domain.User{Username: "chef", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, domain.User{Username: "chef", Email: "b@example.com", PasswordHash: "x"})
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	_, err = repo.Insert(ctx, domain.User{Username: "sous", Email: "a@example.com", PasswordHash: "x"})
	_, ok = apperrors.IsConflictError(err)
	assert.True(t, ok, "email is unique too")
}

func TestUserRepository_DeleteNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	ctx := context.Background()
	repo := NewMySQLUserRepository(db)

	err := repo.Delete(ctx, 99999)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
