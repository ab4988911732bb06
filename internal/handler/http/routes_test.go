package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// ─────────────────────────────────────────────
// Full-router tests
// ─────────────────────────────────────────────

// newTestRouter wires a router with happy-path stubs for every service so
// that authenticated routes can be exercised end to end through the full
// middleware chain.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	svcs := &service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{OperatorID: 1}, nil
			},
		},
		RunService: &mockRunService{
			getAllRunsFn: func(_ context.Context) ([]models.RunMetadata, error) {
				return nil, nil
			},
		},
		ItemService: &mockItemService{
			getAllItemsFn: func(_ context.Context) ([]models.ItemView, error) {
				return nil, nil
			},
		},
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}

	h := NewHandler(svcs, config.App{}, logger.Nop())
	return h.Init()
}

func validAuthHeader() string { return "Bearer stub-token" }

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/gateway/callback"},
		{http.MethodGet, "/api/version"},
		{http.MethodGet, "/ping"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"public route should not require auth: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/runs"},
		{http.MethodGet, "/api/runs"},
		{http.MethodGet, "/api/runs/3"},
		{http.MethodPost, "/api/runs/3/batches"},
		{http.MethodPost, "/api/runs/3/seal"},
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/items"},
		{http.MethodPost, "/api/items/0/adjustment"},
		{http.MethodPost, "/api/claims/above-threshold"},
		{http.MethodPost, "/api/claims/within-range"},
		{http.MethodPost, "/api/decryptions"},
		{http.MethodGet, "/api/decryptions/req-1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" without token", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code,
				"missing token should result in 401")
		})
	}
}

// ---- Protected routes: pass with valid token ----

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/runs"},
		{http.MethodGet, "/api/items"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" with token", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", validAuthHeader())
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code,
				"valid token should reach the handler")
		})
	}
}

// ---- Unknown routes return 404 ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method  string
		path    string
		addAuth bool // paths behind auth need a token to reach routing at all
	}{
		{http.MethodGet, "/api/nonexistent", false},
		{http.MethodPost, "/api/runs/3/unknown", true},
		{http.MethodGet, "/totally/wrong", false},
		{http.MethodPatch, "/api/auth/register", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.addAuth {
				req.Header.Set("Authorization", validAuthHeader())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// ---- Wrong method on existing route returns 404 (CheckHTTPMethod) ----

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		path    string
		addAuth bool // routes behind h.auth need a token to reach MethodNotAllowed
	}{
		{
			name:   "GET on /api/auth/register (POST only)",
			method: http.MethodGet,
			path:   "/api/auth/register",
		},
		{
			name:   "GET on /api/auth/login (POST only)",
			method: http.MethodGet,
			path:   "/api/auth/login",
		},
		{
			name:   "POST on /api/version (GET only)",
			method: http.MethodPost,
			path:   "/api/version",
		},
		{
			name:    "DELETE on /api/items (GET and POST only)",
			method:  http.MethodDelete,
			path:    "/api/items",
			addAuth: true,
		},
		{
			name:    "PUT on /api/runs (GET and POST only)",
			method:  http.MethodPut,
			path:    "/api/runs",
			addAuth: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.addAuth {
				req.Header.Set("Authorization", validAuthHeader())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code,
				"CheckHTTPMethod should replace 405 with 404")
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

// ---- X-Trace-ID is always present in the response ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}

// ---- Incoming X-Trace-ID is echoed back ----

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	router := newTestRouter(t)
	const customTraceID = "my-custom-trace-id-12345"

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	req.Header.Set("X-Trace-ID", customTraceID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, customTraceID, rr.Header().Get("X-Trace-ID"))
}
