package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// resultRepository is the PostgreSQL-backed implementation of
// [ResultRepository]. It persists per-run item outcomes against the
// "run_results" table. The (run_id, item_index) pair is the primary key:
// one result per item per run, which doubles as the durable record of which
// indexes a run has processed.
type resultRepository struct {
	*DB
	logger *logger.Logger
}

// NewResultRepository constructs a [ResultRepository] backed by the provided
// database connection and logger.
func NewResultRepository(db *DB, logger *logger.Logger) ResultRepository {
	return &resultRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveResult inserts one derived outcome. The coordinator refuses double
// processing before this call; a unique violation here means a replayed
// write and surfaces as [ErrResultAlreadyExists].
func (r *resultRepository) SaveResult(ctx context.Context, result models.ItemResult) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveResult,
		result.RunID,
		result.ItemIndex,
		result.Gross.Handle,
		result.Deductions.Handle,
		result.Net.Handle,
		result.ComputedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "resultRepository.SaveResult").
			Int64("run_id", result.RunID).
			Int64("item_index", result.ItemIndex).
			Msg("failed to insert item result")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: run_id=%d index=%d", ErrResultAlreadyExists, result.RunID, result.ItemIndex)
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetResults retrieves every outcome recorded for a run, in ascending item
// index order. An unknown run yields an empty slice, not an error.
func (r *resultRepository) GetResults(ctx context.Context, runID int64) ([]models.ItemResult, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getResultsByRun, runID)
	if err != nil {
		log.Err(err).
			Str("func", "resultRepository.GetResults").
			Int64("run_id", runID).
			Msg("failed to execute query for getting run results")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.ItemResult, 0, 64)

	for rows.Next() {
		var result models.ItemResult

		scanErr := rows.Scan(
			&result.RunID,
			&result.ItemIndex,
			&result.Gross.Handle,
			&result.Deductions.Handle,
			&result.Net.Handle,
			&result.ComputedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "resultRepository.GetResults").
				Int64("run_id", runID).
				Msg("failed to scan item result row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, result)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "resultRepository.GetResults").
			Int64("run_id", runID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GetProcessedIndexes retrieves the sorted ledger indexes a run has already
// processed. The registry rebuilds its processed-index set from this listing
// when state is restored at startup.
func (r *resultRepository) GetProcessedIndexes(ctx context.Context, runID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getProcessedIndexes, runID)
	if err != nil {
		log.Err(err).
			Str("func", "resultRepository.GetProcessedIndexes").
			Int64("run_id", runID).
			Msg("failed to execute query for getting processed indexes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	indexes := make([]int64, 0, 64)

	for rows.Next() {
		var index int64

		if scanErr := rows.Scan(&index); scanErr != nil {
			log.Err(scanErr).
				Str("func", "resultRepository.GetProcessedIndexes").
				Int64("run_id", runID).
				Msg("failed to scan processed index row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		indexes = append(indexes, index)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "resultRepository.GetProcessedIndexes").
			Int64("run_id", runID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return indexes, nil
}
