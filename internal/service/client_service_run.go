package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/models"
)

type clientRunService struct {
	adapter  adapter.ServerAdapter
	runCache store.LocalRunCacheRepository
}

func NewClientRunService(serverAdapter adapter.ServerAdapter, runCache store.LocalRunCacheRepository) ClientRunService {
	return &clientRunService{adapter: serverAdapter, runCache: runCache}
}

func (r *clientRunService) InitRun(ctx context.Context, operatorID int64) (models.RunMetadata, error) {
	run, err := r.adapter.InitRun(ctx)
	if err != nil {
		return models.RunMetadata{}, fmt.Errorf("init run on server: %w", mapAdapterError(err))
	}

	r.cacheRuns(ctx, operatorID, run)

	return run, nil
}

func (r *clientRunService) ProcessBatch(ctx context.Context, operatorID, runID int64, request models.BatchRequest) (models.BatchResponse, error) {
	response, err := r.adapter.ProcessBatch(ctx, runID, request)
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("process batch on server: %w", mapAdapterError(err))
	}

	r.cacheRuns(ctx, operatorID, response.Run)

	return response, nil
}

func (r *clientRunService) SealRun(ctx context.Context, operatorID, runID int64, force bool) (models.RunMetadata, error) {
	run, err := r.adapter.SealRun(ctx, runID, force)
	if err != nil {
		return models.RunMetadata{}, fmt.Errorf("seal run on server: %w", mapAdapterError(err))
	}

	r.cacheRuns(ctx, operatorID, run)

	return run, nil
}

func (r *clientRunService) GetRuns(ctx context.Context, operatorID int64) ([]models.RunMetadata, error) {
	runs, err := r.adapter.GetRuns(ctx)
	if err != nil {
		// Serve the last known listing when the server is out of reach.
		if isOffline(err) {
			if cached, cacheErr := r.runCache.GetAllRuns(ctx, operatorID); cacheErr == nil && len(cached) > 0 {
				logger.FromContext(ctx).Warn().Err(err).Msg("server unreachable, serving runs from local cache")
				return cached, nil
			}
		}

		return nil, fmt.Errorf("get runs on server: %w", mapAdapterError(err))
	}

	r.cacheRuns(ctx, operatorID, runs...)

	return runs, nil
}

func (r *clientRunService) GetRun(ctx context.Context, operatorID, runID int64) (models.RunMetadata, error) {
	run, err := r.adapter.GetRun(ctx, runID)
	if err != nil {
		if isOffline(err) {
			if cached, cacheErr := r.runCache.GetRun(ctx, runID, operatorID); cacheErr == nil {
				logger.FromContext(ctx).Warn().Err(err).Int64("run_id", runID).Msg("server unreachable, serving run from local cache")
				return cached, nil
			}
		}

		return models.RunMetadata{}, fmt.Errorf("get run on server: %w", mapAdapterError(err))
	}

	r.cacheRuns(ctx, operatorID, run)

	return run, nil
}

// cacheRuns writes metadata through to the local cache. The server remains
// authoritative, so a cache write failure is logged and swallowed.
func (r *clientRunService) cacheRuns(ctx context.Context, operatorID int64, runs ...models.RunMetadata) {
	if len(runs) == 0 {
		return
	}

	if err := r.runCache.SaveRuns(ctx, operatorID, runs...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("caching run metadata failed")
	}
}
