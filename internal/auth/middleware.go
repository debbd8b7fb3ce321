package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/auth/token"
	"github.com/sind14/Gastronomy-Service/internal/commons"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Middleware guards routes behind a valid Bearer access token.
type Middleware struct {
	tokens *token.Service
	logger *zap.Logger
}

func NewMiddleware(tokens *token.Service, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r)
		if raw == "" {
			commons.WriteError(m.logger, w, apperrors.NewUnauthorizedError("authorization token required"))
			return
		}

		claims, err := m.tokens.Validate(raw, token.TypeAccess)
		if err != nil {
			commons.WriteError(m.logger, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// ClaimsFromContext returns the token claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
