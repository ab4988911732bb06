package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// ─────────────────────────────────────────────
// Mock ClaimService
// ─────────────────────────────────────────────

// mockClaimService implements service.ClaimService for unit tests.
type mockClaimService struct {
	aboveThresholdFn func(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error)
	withinRangeFn    func(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error)
}

func (m *mockClaimService) AboveThreshold(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error) {
	return m.aboveThresholdFn(ctx, operatorID, request)
}

func (m *mockClaimService) WithinRange(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error) {
	return m.withinRangeFn(ctx, operatorID, request)
}

func newHandlerWithClaims(t *testing.T, claims service.ClaimService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{ClaimService: claims}, config.App{}, logger.Nop())
}

// ─────────────────────────────────────────────
// claimAboveThreshold
// ─────────────────────────────────────────────

func TestClaimAboveThreshold_Success(t *testing.T) {
	claims := &mockClaimService{
		aboveThresholdFn: func(_ context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error) {
			require.Equal(t, int64(42), operatorID)
			require.Equal(t, int64(3), request.ItemIndex)
			require.Equal(t, models.Micro(500_000_000), request.Threshold)
			return models.ClaimResponse{Result: models.EncryptedBool{Handle: "h-claim-1"}}, nil
		},
	}

	h := newHandlerWithClaims(t, claims)
	body := jsonBody(t, models.ClaimRequest{ItemIndex: 3, Threshold: 500_000_000})
	req := httptest.NewRequest(http.MethodPost, "/api/claims/above-threshold", strings.NewReader(body))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.claimAboveThreshold(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.HandleID("h-claim-1"), response.Result.Handle)
}

// ─────────────────────────────────────────────
// claimWithinRange
// ─────────────────────────────────────────────

func TestClaimWithinRange_Success(t *testing.T) {
	claims := &mockClaimService{
		withinRangeFn: func(_ context.Context, _ int64, request models.ClaimRequest) (models.ClaimResponse, error) {
			require.Equal(t, models.Micro(500_000_000), request.Threshold)
			require.Equal(t, models.Micro(900_000_000), request.UpperBound)
			return models.ClaimResponse{Result: models.EncryptedBool{Handle: "h-claim-2"}}, nil
		},
	}

	h := newHandlerWithClaims(t, claims)
	body := jsonBody(t, models.ClaimRequest{ItemIndex: 3, Threshold: 500_000_000, UpperBound: 900_000_000})
	req := httptest.NewRequest(http.MethodPost, "/api/claims/within-range", strings.NewReader(body))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.claimWithinRange(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────
// Shared claim plumbing
// ─────────────────────────────────────────────

func TestClaim_NoOperatorID(t *testing.T) {
	h := newHandlerWithClaims(t, &mockClaimService{
		aboveThresholdFn: func(_ context.Context, _ int64, _ models.ClaimRequest) (models.ClaimResponse, error) {
			t.Fatal("AboveThreshold should not be called without an operator ID")
			return models.ClaimResponse{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/claims/above-threshold", strings.NewReader(`{"item_index":3}`))
	rec := httptest.NewRecorder()

	h.claimAboveThreshold(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgNoOperatorIDProvided)
}

func TestClaim_InvalidJSON(t *testing.T) {
	h := newHandlerWithClaims(t, &mockClaimService{})
	req := httptest.NewRequest(http.MethodPost, "/api/claims/within-range", strings.NewReader("not json"))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.claimWithinRange(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInvalidDataProvided)
}

func TestClaim_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "no derived value yet",
			serviceErr:  service.ErrNoDerivedValue,
			wantCode:    http.StatusConflict,
			wantMessage: app.MsgNoDerivedValue,
		},
		{
			name:        "handle not granted to requester",
			serviceErr:  engine.ErrUngrantedAccess,
			wantCode:    http.StatusForbidden,
			wantMessage: app.MsgUngrantedHandle,
		},
		{
			name:        "item does not exist",
			serviceErr:  payroll.ErrItemNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: app.MsgItemNotFound,
		},
		{
			name:        "bounds out of order",
			serviceErr:  payroll.ErrInvalidRange,
			wantCode:    http.StatusBadRequest,
			wantMessage: app.MsgInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &mockClaimService{
				aboveThresholdFn: func(_ context.Context, _ int64, _ models.ClaimRequest) (models.ClaimResponse, error) {
					return models.ClaimResponse{}, tt.serviceErr
				},
			}

			h := newHandlerWithClaims(t, claims)
			req := httptest.NewRequest(http.MethodPost, "/api/claims/above-threshold", strings.NewReader(`{"item_index":3,"threshold":100}`))
			req = withOperatorID(req, 42)
			rec := httptest.NewRecorder()

			h.claimAboveThreshold(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
		})
	}
}

// A claim response is a handle to an encrypted boolean. The compared amount
// and the verdict itself must never appear in the body.
func TestClaimResponse_CarriesOnlyHandle(t *testing.T) {
	claims := &mockClaimService{
		aboveThresholdFn: func(_ context.Context, _ int64, _ models.ClaimRequest) (models.ClaimResponse, error) {
			return models.ClaimResponse{Result: models.EncryptedBool{Handle: "h-claim-9"}}, nil
		},
	}

	h := newHandlerWithClaims(t, claims)
	body := jsonBody(t, models.ClaimRequest{ItemIndex: 3, Threshold: 750_000_000})
	req := httptest.NewRequest(http.MethodPost, "/api/claims/above-threshold", strings.NewReader(body))
	req = withOperatorID(req, 42)
	rec := httptest.NewRecorder()

	h.claimAboveThreshold(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "750000000")
	assert.NotContains(t, rec.Body.String(), "true")
	assert.NotContains(t, rec.Body.String(), "false")
}
