package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/gateway"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// ─────────────────────────────────────────────
// Mock DecryptionService
// ─────────────────────────────────────────────

// mockDecryptionService implements service.DecryptionService for unit tests.
type mockDecryptionService struct {
	requestDecryptionFn func(ctx context.Context, operatorID int64, request models.DecryptRequest) (models.DecryptResponse, error)
	getRequestFn        func(ctx context.Context, requestID string) (models.DecryptionRequest, error)
	getResultFn         func(ctx context.Context, requestID string) (models.DecryptionResult, error)
	fulfillFn           func(ctx context.Context, callback models.GatewayCallback) (models.DecryptionResult, error)
	expireOverdueFn     func(ctx context.Context) (int, error)
}

func (m *mockDecryptionService) RequestDecryption(ctx context.Context, operatorID int64, request models.DecryptRequest) (models.DecryptResponse, error) {
	return m.requestDecryptionFn(ctx, operatorID, request)
}

func (m *mockDecryptionService) GetRequest(ctx context.Context, requestID string) (models.DecryptionRequest, error) {
	return m.getRequestFn(ctx, requestID)
}

func (m *mockDecryptionService) GetResult(ctx context.Context, requestID string) (models.DecryptionResult, error) {
	return m.getResultFn(ctx, requestID)
}

func (m *mockDecryptionService) Fulfill(ctx context.Context, callback models.GatewayCallback) (models.DecryptionResult, error) {
	return m.fulfillFn(ctx, callback)
}

func (m *mockDecryptionService) ExpireOverdue(ctx context.Context) (int, error) {
	if m.expireOverdueFn == nil {
		return 0, nil
	}
	return m.expireOverdueFn(ctx)
}

func newHandlerWithDecryptions(t *testing.T, decryptions service.DecryptionService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{DecryptionService: decryptions}, config.App{}, logger.Nop())
}

func pendingRequestFixture(requester models.Principal) models.DecryptionRequest {
	return models.DecryptionRequest{
		RequestID: "req-1",
		Requester: requester,
		Handles:   []models.HandleID{"h-net-1"},
		Deadline:  time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		State:     models.DecryptionPending,
		CreatedAt: time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC),
	}
}

// ─────────────────────────────────────────────
// requestDecryption
// ─────────────────────────────────────────────

func TestRequestDecryption_Success(t *testing.T) {
	decryptions := &mockDecryptionService{
		requestDecryptionFn: func(_ context.Context, operatorID int64, request models.DecryptRequest) (models.DecryptResponse, error) {
			require.Equal(t, int64(42), operatorID)
			require.Equal(t, []models.HandleID{"h-net-1", "h-net-2"}, request.Handles)
			require.Equal(t, int64(120), request.DeadlineSeconds)
			return models.DecryptResponse{RequestID: "req-1", Deadline: "2026-08-25T12:00:00Z"}, nil
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	body := jsonBody(t, models.DecryptRequest{Handles: []models.HandleID{"h-net-1", "h-net-2"}, DeadlineSeconds: 120})
	req := httptest.NewRequest(http.MethodPost, "/api/decryptions", strings.NewReader(body))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.requestDecryption(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response models.DecryptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "req-1", response.RequestID)
	assert.Equal(t, "2026-08-25T12:00:00Z", response.Deadline)
}

func TestRequestDecryption_NoOperatorID(t *testing.T) {
	h := newHandlerWithDecryptions(t, &mockDecryptionService{
		requestDecryptionFn: func(_ context.Context, _ int64, _ models.DecryptRequest) (models.DecryptResponse, error) {
			t.Fatal("RequestDecryption should not be called without an operator ID")
			return models.DecryptResponse{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/decryptions", strings.NewReader(`{"handles":["h-net-1"]}`))
	rec := httptest.NewRecorder()

	h.requestDecryption(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgNoOperatorIDProvided)
}

func TestRequestDecryption_InvalidJSON(t *testing.T) {
	h := newHandlerWithDecryptions(t, &mockDecryptionService{})
	req := httptest.NewRequest(http.MethodPost, "/api/decryptions", strings.NewReader("{"))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.requestDecryption(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInvalidDataProvided)
}

func TestRequestDecryption_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "handle not granted to requester",
			serviceErr:  engine.ErrUngrantedAccess,
			wantCode:    http.StatusForbidden,
			wantMessage: app.MsgUngrantedHandle,
		},
		{
			name:        "empty handle list",
			serviceErr:  gateway.ErrNoHandles,
			wantCode:    http.StatusBadRequest,
			wantMessage: app.MsgInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decryptions := &mockDecryptionService{
				requestDecryptionFn: func(_ context.Context, _ int64, _ models.DecryptRequest) (models.DecryptResponse, error) {
					return models.DecryptResponse{}, tt.serviceErr
				},
			}

			h := newHandlerWithDecryptions(t, decryptions)
			req := httptest.NewRequest(http.MethodPost, "/api/decryptions", strings.NewReader(`{"handles":["h-net-1"]}`))
			req = withOperatorID(req, 42)
			rec := httptest.NewRecorder()

			h.requestDecryption(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
		})
	}
}

// ─────────────────────────────────────────────
// getDecryption
// ─────────────────────────────────────────────

func TestGetDecryption_PendingOwned(t *testing.T) {
	decryptions := &mockDecryptionService{
		getRequestFn: func(_ context.Context, requestID string) (models.DecryptionRequest, error) {
			require.Equal(t, "req-1", requestID)
			return pendingRequestFixture(models.OperatorPrincipal(42)), nil
		},
		getResultFn: func(_ context.Context, _ string) (models.DecryptionResult, error) {
			t.Fatal("GetResult should not be called while the request is pending")
			return models.DecryptionResult{}, nil
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	req := httptest.NewRequest(http.MethodGet, "/api/decryptions/req-1", nil)
	req = withOperatorID(req, 42)
	req = withURLParam(req, "requestID", "req-1")
	rec := httptest.NewRecorder()

	h.getDecryption(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.DecryptionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.DecryptionPending, response.Request.State)
	assert.Nil(t, response.Result)
}

func TestGetDecryption_FulfilledAttachesResult(t *testing.T) {
	fulfilled := pendingRequestFixture(models.OperatorPrincipal(42))
	fulfilled.State = models.DecryptionFulfilled

	decryptions := &mockDecryptionService{
		getRequestFn: func(_ context.Context, _ string) (models.DecryptionRequest, error) {
			return fulfilled, nil
		},
		getResultFn: func(_ context.Context, requestID string) (models.DecryptionResult, error) {
			require.Equal(t, "req-1", requestID)
			return models.DecryptionResult{
				RequestID: "req-1",
				Values:    map[models.HandleID]models.Micro{"h-net-1": 1_234_000_000},
			}, nil
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	req := httptest.NewRequest(http.MethodGet, "/api/decryptions/req-1", nil)
	req = withOperatorID(req, 42)
	req = withURLParam(req, "requestID", "req-1")
	rec := httptest.NewRecorder()

	h.getDecryption(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.DecryptionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Result)
	assert.Equal(t, models.Micro(1_234_000_000), response.Result.Values["h-net-1"])
}

// Request IDs must not leak across operators: a request owned by another
// principal is indistinguishable from one that does not exist.
func TestGetDecryption_ForeignRequester(t *testing.T) {
	decryptions := &mockDecryptionService{
		getRequestFn: func(_ context.Context, _ string) (models.DecryptionRequest, error) {
			return pendingRequestFixture(models.OperatorPrincipal(99)), nil
		},
		getResultFn: func(_ context.Context, _ string) (models.DecryptionResult, error) {
			t.Fatal("GetResult should not be called for a foreign request")
			return models.DecryptionResult{}, nil
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	req := httptest.NewRequest(http.MethodGet, "/api/decryptions/req-1", nil)
	req = withOperatorID(req, 42)
	req = withURLParam(req, "requestID", "req-1")
	rec := httptest.NewRecorder()

	h.getDecryption(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgDecryptionNotFound)
}

func TestGetDecryption_NotFound(t *testing.T) {
	decryptions := &mockDecryptionService{
		getRequestFn: func(_ context.Context, _ string) (models.DecryptionRequest, error) {
			return models.DecryptionRequest{}, gateway.ErrRequestNotFound
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	req := httptest.NewRequest(http.MethodGet, "/api/decryptions/missing", nil)
	req = withOperatorID(req, 42)
	req = withURLParam(req, "requestID", "missing")
	rec := httptest.NewRecorder()

	h.getDecryption(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgDecryptionNotFound)
}

func TestGetDecryption_NoOperatorID(t *testing.T) {
	h := newHandlerWithDecryptions(t, &mockDecryptionService{})
	req := httptest.NewRequest(http.MethodGet, "/api/decryptions/req-1", nil)
	req = withURLParam(req, "requestID", "req-1")
	rec := httptest.NewRecorder()

	h.getDecryption(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgNoOperatorIDProvided)
}

// ─────────────────────────────────────────────
// gatewayCallback
// ─────────────────────────────────────────────

func TestGatewayCallback_Success(t *testing.T) {
	decryptions := &mockDecryptionService{
		fulfillFn: func(_ context.Context, callback models.GatewayCallback) (models.DecryptionResult, error) {
			require.Equal(t, "req-1", callback.RequestID)
			require.Equal(t, uint64(1_234_000_000), callback.Values["h-net-1"])
			require.Equal(t, "deadbeef", callback.Signature)
			return models.DecryptionResult{
				RequestID: "req-1",
				Values:    map[models.HandleID]models.Micro{"h-net-1": 1_234_000_000},
			}, nil
		},
	}

	h := newHandlerWithDecryptions(t, decryptions)
	body := jsonBody(t, models.GatewayCallback{
		RequestID: "req-1",
		Values:    map[string]uint64{"h-net-1": 1_234_000_000},
		Signature: "deadbeef",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/callback", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.gatewayCallback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.DecryptionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "req-1", result.RequestID)
}

func TestGatewayCallback_InvalidJSON(t *testing.T) {
	h := newHandlerWithDecryptions(t, &mockDecryptionService{})
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/callback", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.gatewayCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInvalidDataProvided)
}

func TestGatewayCallback_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "signature does not verify",
			serviceErr:  gateway.ErrBadSignature,
			wantCode:    http.StatusUnauthorized,
			wantMessage: app.MsgBadCallbackSignature,
		},
		{
			name:        "request already fulfilled",
			serviceErr:  gateway.ErrAlreadyFulfilled,
			wantCode:    http.StatusConflict,
			wantMessage: app.MsgCallbackAlreadyFulfilled,
		},
		{
			name:        "deadline already passed",
			serviceErr:  gateway.ErrRequestExpired,
			wantCode:    http.StatusConflict,
			wantMessage: app.MsgDecryptionExpired,
		},
		{
			name:        "values do not match requested handles",
			serviceErr:  gateway.ErrMalformedCallback,
			wantCode:    http.StatusBadRequest,
			wantMessage: app.MsgCallbackMismatch,
		},
		{
			name:        "unknown request ID",
			serviceErr:  gateway.ErrRequestNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: app.MsgDecryptionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decryptions := &mockDecryptionService{
				fulfillFn: func(_ context.Context, _ models.GatewayCallback) (models.DecryptionResult, error) {
					return models.DecryptionResult{}, tt.serviceErr
				},
			}

			h := newHandlerWithDecryptions(t, decryptions)
			req := httptest.NewRequest(http.MethodPost, "/api/gateway/callback", strings.NewReader(`{"request_id":"req-1","values":{},"signature":"00"}`))
			rec := httptest.NewRecorder()

			h.gatewayCallback(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
		})
	}
}
