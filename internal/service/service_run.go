package service

import (
	"context"
	"fmt"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/validators"
	"github.com/obscuralabs/blind-payroll/models"
)

// runService is the concrete implementation of RunService. It fronts the
// payroll coordinator and writes every committed transition through to the
// run, result, and item repositories. The coordinator's registry is
// authoritative for sequencing; a persistence failure surfaces as an error
// without rolling back the committed transition.
type runService struct {
	coordinator *payroll.Coordinator

	runStorage       store.PayrollStorage
	itemRepository   store.ItemRepository
	resultRepository store.ResultRepository

	validator validators.Validator

	logger *logger.Logger
}

// NewRunService constructs a RunService over the given coordinator and
// persistence surfaces.
func NewRunService(coordinator *payroll.Coordinator, runStorage store.PayrollStorage, itemRepository store.ItemRepository, resultRepository store.ResultRepository, logger *logger.Logger) RunService {
	return &runService{
		coordinator:      coordinator,
		runStorage:       runStorage,
		itemRepository:   itemRepository,
		resultRepository: resultRepository,
		validator:        validators.NewPayrollValidator(),
		logger:           logger,
	}
}

// InitRun opens the next payroll run and persists the fresh aggregate.
//
// Returns the public metadata of the new run or:
//   - payroll.ErrNotDueYet if the configured run frequency has not elapsed.
//   - A wrapped storage error if persisting the aggregate fails.
func (s *runService) InitRun(ctx context.Context) (models.RunMetadata, error) {
	log := logger.FromContext(ctx)

	agg, err := s.coordinator.InitRun(ctx)
	if err != nil {
		return models.RunMetadata{}, err
	}

	if err := s.runStorage.SaveRun(ctx, agg); err != nil {
		log.Err(err).Int64("run_id", agg.RunID).Msg("persisting initialized run failed")
		return models.RunMetadata{}, fmt.Errorf("persisting run %d: %w", agg.RunID, err)
	}

	return s.coordinator.Run(agg.RunID)
}

// ProcessBatch validates the requested range, computes it through the
// coordinator, and persists the folded aggregate, the per-item results and
// the mutated items.
//
// Returns the batch outcome or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed range.
//   - payroll.ErrDoubleProcessing, payroll.ErrAlreadySealed,
//     payroll.ErrInvalidRange, payroll.ErrRunNotInitialized passed through
//     from the coordinator.
//   - A wrapped storage error if any write-through fails.
func (s *runService) ProcessBatch(ctx context.Context, runID int64, request models.BatchRequest) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	outcome, err := s.coordinator.ProcessBatch(ctx, runID, request.Start, request.End)
	if err != nil {
		return models.BatchResponse{}, err
	}

	if err := s.runStorage.UpdateRun(ctx, outcome.Run); err != nil {
		log.Err(err).Int64("run_id", runID).Msg("persisting folded aggregate failed")
		return models.BatchResponse{}, fmt.Errorf("persisting run %d: %w", runID, err)
	}
	for _, result := range outcome.Results {
		if err := s.resultRepository.SaveResult(ctx, result); err != nil {
			log.Err(err).
				Int64("run_id", runID).
				Int64("index", result.ItemIndex).
				Msg("persisting item result failed")
			return models.BatchResponse{}, fmt.Errorf("persisting result for item %d: %w", result.ItemIndex, err)
		}

		item, err := s.coordinator.Item(result.ItemIndex)
		if err != nil {
			return models.BatchResponse{}, err
		}
		if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
			log.Err(err).
				Int64("run_id", runID).
				Int64("index", item.Index).
				Msg("persisting processed item failed")
			return models.BatchResponse{}, fmt.Errorf("persisting item %d: %w", item.Index, err)
		}
	}

	meta, err := s.coordinator.Run(runID)
	if err != nil {
		return models.BatchResponse{}, err
	}

	return models.BatchResponse{
		Run:       meta,
		Processed: outcome.Processed,
		Skipped:   outcome.Skipped,
	}, nil
}

// SealRun finalizes the run through the coordinator and persists the sealed
// aggregate, which also exports the public audit record when an audit
// directory is configured.
//
// Returns the sealed run's metadata or:
//   - payroll.ErrAlreadySealed, payroll.ErrRunIncomplete,
//     payroll.ErrRunNotFound passed through from the coordinator.
//   - A wrapped storage error if persisting the sealed aggregate fails.
func (s *runService) SealRun(ctx context.Context, runID int64, force bool) (models.RunMetadata, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.coordinator.FinalizeRun(ctx, runID, force)
	if err != nil {
		return models.RunMetadata{}, err
	}

	if err := s.runStorage.SealRun(ctx, sealed); err != nil {
		log.Err(err).Int64("run_id", runID).Msg("persisting sealed run failed")
		return models.RunMetadata{}, fmt.Errorf("persisting sealed run %d: %w", runID, err)
	}

	return s.coordinator.Run(runID)
}

// GetRun returns the public metadata of one run.
func (s *runService) GetRun(ctx context.Context, runID int64) (models.RunMetadata, error) {
	return s.coordinator.Run(runID)
}

// GetAllRuns lists every known run, oldest first.
func (s *runService) GetAllRuns(ctx context.Context) ([]models.RunMetadata, error) {
	return s.coordinator.Runs(), nil
}

// NextDueAt reports when the next run becomes initializable.
func (s *runService) NextDueAt(ctx context.Context) (time.Time, bool) {
	return s.coordinator.NextDueAt()
}
