// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/models"
)

// spyDecryptionService counts Refresh calls and captures the operator ID.
type spyDecryptionService struct {
	refreshCalls   atomic.Int64
	lastOperatorID atomic.Int64
	err            error
}

func (s *spyDecryptionService) SetCacheKey([]byte) {}

func (s *spyDecryptionService) RequestDecryption(context.Context, int64, []models.HandleID, int64) (models.DecryptResponse, error) {
	return models.DecryptResponse{}, nil
}

func (s *spyDecryptionService) Refresh(_ context.Context, operatorID int64) (int, error) {
	s.refreshCalls.Add(1)
	s.lastOperatorID.Store(operatorID)
	return 0, s.err
}

func (s *spyDecryptionService) GetRequests(context.Context, int64) ([]models.CachedDecryption, error) {
	return nil, nil
}

func (s *spyDecryptionService) GetResult(context.Context, int64, string) (models.DecryptionResult, error) {
	return models.DecryptionResult{}, nil
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientRefreshJob_Start_CallsRefresh(t *testing.T) {
	spy := &spyDecryptionService{}
	job := NewClientRefreshJob(spy)
	ctx := context.Background()

	// 10ms interval: 55ms should produce around 5 ticks.
	job.Start(ctx, 42, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.refreshCalls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Refresh should have ticked several times, got %d", got)
	assert.Equal(t, int64(42), spy.lastOperatorID.Load(), "operator ID must reach Refresh")
}

func TestClientRefreshJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyDecryptionService{}
	job := NewClientRefreshJob(spy)
	ctx := context.Background()

	job.Start(ctx, 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.refreshCalls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.refreshCalls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "no ticks may fire after Stop")
}

func TestClientRefreshJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewClientRefreshJob(&spyDecryptionService{})

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientRefreshJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewClientRefreshJob(&spyDecryptionService{})
	ctx := context.Background()

	job.Start(ctx, 1, 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientRefreshJob_Start_DefaultInterval(t *testing.T) {
	spy := &spyDecryptionService{}
	job := NewClientRefreshJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 falls back to 5 minutes, so 20ms sees no ticks.
	job.Start(ctx, 1, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.refreshCalls.Load())
}

func TestClientRefreshJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyDecryptionService{}
	job := NewClientRefreshJob(spy)
	ctx := context.Background()

	job.Start(ctx, 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.refreshCalls.Load()
	require.Greater(t, callsBefore, int64(0))

	// Start again on the same job; the first goroutine must stop and ticks
	// must keep coming from the second.
	job.Start(ctx, 2, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.refreshCalls.Load(), callsBefore)
	assert.Equal(t, int64(2), spy.lastOperatorID.Load())
}

func TestClientRefreshJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spyDecryptionService{}
	job := NewClientRefreshJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop hung after the parent context was cancelled")
	}
}

func TestClientRefreshJob_RefreshError_DoesNotStopJob(t *testing.T) {
	spy := &spyDecryptionService{err: assert.AnError}
	job := NewClientRefreshJob(spy)
	ctx := context.Background()

	job.Start(ctx, 1, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.refreshCalls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Refresh keeps ticking despite errors, got %d", got)
}
