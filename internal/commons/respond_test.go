package commons

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(zap.NewNop(), rec, http.StatusCreated, map[string]string{"name": "Soup"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Soup"}`, rec.Body.String())
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperrors.NewNotFoundError("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.NewConflictError("taken"), http.StatusConflict, "CONFLICT"},
		{"unauthorized", apperrors.NewUnauthorizedError("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(zap.NewNop(), rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error)
		})
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(zap.NewNop(), rec, errors.New("dsn user:password@tcp"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body.Message, "password")
}

func TestWriteError_ValidationIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(zap.NewNop(), rec, apperrors.NewValidationError("validation failed",
		apperrors.ValidationDetail{Field: "people_count", Message: "must be positive"},
	))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "people_count", body.Details[0].Field)
}
