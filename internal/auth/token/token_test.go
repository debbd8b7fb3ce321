package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

func testUser() domain.User {
	return domain.User{ID: 42, Username: "chef", Email: "chef@example.com"}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)

	raw, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Validate(raw, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "chef", claims.Username)
	assert.Equal(t, TypeAccess, claims.Type)
}

func TestValidate_RejectsWrongType(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)

	refresh, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(refresh, TypeAccess)
	require.Error(t, err)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, time.Hour)

	raw, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(raw, TypeAccess)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", 15*time.Minute, time.Hour)
	verifier := NewService("secret-b", 15*time.Minute, time.Hour)

	raw, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(raw, TypeAccess)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)

	_, err := svc.Validate("not-a-token", TypeAccess)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}
