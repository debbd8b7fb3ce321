package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	archivectrl "github.com/sind14/Gastronomy-Service/internal/archive/controller"
	"github.com/sind14/Gastronomy-Service/internal/auth"
	authctrl "github.com/sind14/Gastronomy-Service/internal/auth/controller"
	"github.com/sind14/Gastronomy-Service/internal/auth/token"
	catalogctrl "github.com/sind14/Gastronomy-Service/internal/catalog/controller"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	orderctrl "github.com/sind14/Gastronomy-Service/internal/order/controller"
	partyctrl "github.com/sind14/Gastronomy-Service/internal/party/controller"
)

// newTestRouter wires the route tree with nil repositories and services.
// The tests below only exercise routing, auth middleware and request
// decoding, none of which reach the nil dependencies.
func newTestRouter() (http.Handler, *token.Service) {
	logger := zap.NewNop()
	tokens := token.NewService("test-secret", time.Minute, time.Hour)

	catalogCtrl := catalogctrl.NewCatalogController(nil, nil, nil, nil, nil, logger)
	partyCtrl := partyctrl.NewPartyController(nil, nil, nil, logger)
	orderCtrl := orderctrl.NewOrderController(nil, logger)
	archiveCtrl := archivectrl.NewArchiveController(nil, nil, logger)
	authModule := &auth.Module{
		Controller: authctrl.NewAuthController(nil, logger),
		Middleware: auth.NewMiddleware(tokens, logger),
	}

	return NewRouter(catalogCtrl, partyCtrl, orderCtrl, archiveCtrl, authModule, logger), tokens
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter()

	paths := []string{
		"/api/v1/dishes",
		"/api/v1/orders",
		"/api/v1/clients",
		"/api/v1/archived-orders",
		"/api/v1/users",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_AuthEndpointsAreOpen(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("not json"))
	router.ServeHTTP(rec, req)

	// A decode failure, not a missing-token rejection.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ValidTokenReachesHandler(t *testing.T) {
	router, tokens := newTestRouter()

	access, err := tokens.GenerateAccessToken(domain.User{ID: 1, Username: "chef"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("not json"))
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownRouteIsNotFound(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
