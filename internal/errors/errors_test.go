package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "name", Message: "name must not be empty"},
	)

	assert.Equal(t, "validation failed", err.Error())
	require.Len(t, err.Details, 1)
	assert.Equal(t, "name", err.Details[0].Field)

	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Same(t, err, ve)

	_, ok = IsValidationError(errors.New("plain"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order with id 5 not found")

	assert.Equal(t, "order with id 5 not found", err.Error())

	_, ok := IsNotFoundError(err)
	assert.True(t, ok)

	_, ok = IsNotFoundError(NewConflictError("x"))
	assert.False(t, ok)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("dish is referenced by orders")

	_, ok := IsConflictError(err)
	assert.True(t, ok)

	_, ok = IsConflictError(NewNotFoundError("x"))
	assert.False(t, ok)
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("invalid credentials")

	ue, ok := IsUnauthorizedError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", ue.Message)
}

func TestInternalError_WrapsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewInternalError("querying orders", cause)

	assert.Equal(t, "querying orders: driver: bad connection", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_WithoutCause(t *testing.T) {
	err := NewInternalError("something broke", nil)

	assert.Equal(t, "something broke", err.Error())
}
