package commons

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps the application error taxonomy onto HTTP statuses.
// Internal errors get a trace id in the log and a generic body.
func WriteError(logger *zap.Logger, w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteJSON(logger, w, http.StatusBadRequest, ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(logger, w, http.StatusNotFound, ErrorResponse{
			Error:   "NOT_FOUND",
			Message: nfe.Message,
		})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(logger, w, http.StatusConflict, ErrorResponse{
			Error:   "CONFLICT",
			Message: ce.Message,
		})
		return
	}

	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		WriteJSON(logger, w, http.StatusUnauthorized, ErrorResponse{
			Error:   "UNAUTHORIZED",
			Message: ue.Message,
		})
		return
	}

	traceID := uuid.New().String()
	logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	WriteJSON(logger, w, http.StatusInternalServerError, ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}

func WriteValidationError(logger *zap.Logger, w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	WriteError(logger, w, apperrors.NewValidationError(message, details...))
}
