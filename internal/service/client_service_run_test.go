package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/mock"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/models"
)

const testOperatorID int64 = 7

func newTestRunSvc(t *testing.T, ctrl *gomock.Controller) (ClientRunService, *mock.MockServerAdapter, *mock.MockLocalRunCacheRepository) {
	t.Helper()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockCache := mock.NewMockLocalRunCacheRepository(ctrl)

	return NewClientRunService(mockAdapter, mockCache), mockAdapter, mockCache
}

// ── InitRun ──────────────────────────────────────────────────────────────────

func TestClientRunService_InitRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	want := models.RunMetadata{RunID: 3, State: models.RunStateInitialized, ItemCount: 12, ActiveAtInit: 10}

	gomock.InOrder(
		mockAdapter.EXPECT().InitRun(ctx).Return(want, nil),
		mockCache.EXPECT().SaveRuns(ctx, testOperatorID, want).Return(nil),
	)

	run, err := svc.InitRun(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, want, run)
}

func TestClientRunService_InitRun_CacheWriteFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	want := models.RunMetadata{RunID: 3, State: models.RunStateInitialized}

	mockAdapter.EXPECT().InitRun(ctx).Return(want, nil)
	mockCache.EXPECT().SaveRuns(ctx, testOperatorID, want).Return(errors.New("disk full"))

	run, err := svc.InitRun(ctx, testOperatorID)
	require.NoError(t, err, "the server is authoritative; a cache write failure must not fail the call")
	assert.Equal(t, want, run)
}

func TestClientRunService_InitRun_NotDueYet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().InitRun(ctx).
		Return(models.RunMetadata{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgRunNotDue))

	_, err := svc.InitRun(ctx, testOperatorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrNotDueYet)
}

// ── ProcessBatch ─────────────────────────────────────────────────────────────

func TestClientRunService_ProcessBatch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	request := models.BatchRequest{Start: 0, End: 8}
	want := models.BatchResponse{
		Run:       models.RunMetadata{RunID: 3, State: models.RunStateAccumulating, ProcessedCount: 8},
		Processed: 7,
		Skipped:   1,
	}

	gomock.InOrder(
		mockAdapter.EXPECT().ProcessBatch(ctx, int64(3), request).Return(want, nil),
		mockCache.EXPECT().SaveRuns(ctx, testOperatorID, want.Run).Return(nil),
	)

	response, err := svc.ProcessBatch(ctx, testOperatorID, 3, request)
	require.NoError(t, err)
	assert.Equal(t, want, response)
}

func TestClientRunService_ProcessBatch_DoubleProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().ProcessBatch(ctx, int64(3), gomock.Any()).
		Return(models.BatchResponse{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgDoubleProcessing))

	_, err := svc.ProcessBatch(ctx, testOperatorID, 3, models.BatchRequest{Start: 0, End: 8})
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrDoubleProcessing)
}

// ── SealRun ──────────────────────────────────────────────────────────────────

func TestClientRunService_SealRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	want := models.RunMetadata{RunID: 3, State: models.RunStateSealed, Sealed: true, Fingerprint: "deadbeef"}

	gomock.InOrder(
		mockAdapter.EXPECT().SealRun(ctx, int64(3), true).Return(want, nil),
		mockCache.EXPECT().SaveRuns(ctx, testOperatorID, want).Return(nil),
	)

	run, err := svc.SealRun(ctx, testOperatorID, 3, true)
	require.NoError(t, err)
	assert.Equal(t, want, run)
}

func TestClientRunService_SealRun_Incomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SealRun(ctx, int64(3), false).
		Return(models.RunMetadata{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgRunIncomplete))

	_, err := svc.SealRun(ctx, testOperatorID, 3, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrRunIncomplete)
}

// ── GetRuns / GetRun: offline fallback ───────────────────────────────────────

func TestClientRunService_GetRuns_ServerWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	want := []models.RunMetadata{
		{RunID: 1, State: models.RunStateSealed, Sealed: true},
		{RunID: 2, State: models.RunStateAccumulating},
	}

	gomock.InOrder(
		mockAdapter.EXPECT().GetRuns(ctx).Return(want, nil),
		mockCache.EXPECT().SaveRuns(ctx, testOperatorID, want[0], want[1]).Return(nil),
	)

	runs, err := svc.GetRuns(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, want, runs)
}

func TestClientRunService_GetRuns_OfflineServesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	cached := []models.RunMetadata{{RunID: 1, State: models.RunStateSealed, Sealed: true}}

	gomock.InOrder(
		mockAdapter.EXPECT().GetRuns(ctx).Return(nil, errors.New("dial tcp: connection refused")),
		mockCache.EXPECT().GetAllRuns(ctx, testOperatorID).Return(cached, nil),
	)

	runs, err := svc.GetRuns(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, cached, runs)
}

func TestClientRunService_GetRuns_OfflineEmptyCacheFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	transportErr := errors.New("dial tcp: connection refused")

	gomock.InOrder(
		mockAdapter.EXPECT().GetRuns(ctx).Return(nil, transportErr),
		mockCache.EXPECT().GetAllRuns(ctx, testOperatorID).Return(nil, nil),
	)

	_, err := svc.GetRuns(ctx, testOperatorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
}

func TestClientRunService_GetRuns_UnauthorizedNeverFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	// 4xx answers are authoritative: the cache must not mask an expired
	// token, so no GetAllRuns expectation is registered here.
	mockAdapter.EXPECT().GetRuns(ctx).
		Return(nil, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpired))

	_, err := svc.GetRuns(ctx, testOperatorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestClientRunService_GetRun_OfflineServesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockCache := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	cached := models.RunMetadata{RunID: 5, State: models.RunStateSealed, Sealed: true, Fingerprint: "cafe"}

	gomock.InOrder(
		mockAdapter.EXPECT().GetRun(ctx, int64(5)).Return(models.RunMetadata{}, errors.New("timeout awaiting response")),
		mockCache.EXPECT().GetRun(ctx, int64(5), testOperatorID).Return(cached, nil),
	)

	run, err := svc.GetRun(ctx, testOperatorID, 5)
	require.NoError(t, err)
	assert.Equal(t, cached, run)
}

func TestClientRunService_GetRun_NotFoundNeverFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestRunSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().GetRun(ctx, int64(99)).
		Return(models.RunMetadata{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgRunNotFound))

	_, err := svc.GetRun(ctx, testOperatorID, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}
