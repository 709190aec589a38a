package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pedalads/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// Only routes that never reach a service are exercised here.
func testRouter(t *testing.T) *mux.Router {
	r := mux.NewRouter()
	InitRoutes(r, Handlers{
		Post:       handlers.NewPostHandler(nil),
		Lead:       handlers.NewLeadHandler(nil),
		Consent:    handlers.NewConsentHandler(nil),
		Calculator: handlers.NewCalculatorHandler(),
		Auth:       handlers.NewAuthHandler(nil),
		Logs:       handlers.NewAdminLogsHandler(t.TempDir(), 7),
		Health:     handlers.NewHealthHandler(map[string]handlers.Check{"noop": func(context.Context) error { return nil }}),
	}, Options{JWTSecret: "routes-test-secret-0123456789abcd"})
	return r
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := testRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/admin/posts"},
		{http.MethodPatch, "/api/admin/posts/abc"},
		{http.MethodDelete, "/api/admin/posts/abc"},
		{http.MethodPost, "/api/admin/posts/preview"},
		{http.MethodGet, "/api/admin/leads"},
		{http.MethodGet, "/api/admin/logs/days"},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/calculators/pricing",
		strings.NewReader(`{"plan":"starter","bikes":1,"weeks":1}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
