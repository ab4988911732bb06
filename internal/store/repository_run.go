package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// runRepository is the PostgreSQL-backed implementation of [RunRepository].
// It persists run aggregates against the "payroll_runs" table. Encrypted
// totals are written as opaque handle strings; the repository never touches
// a plaintext amount.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (run_id, state, etc.).
type runRepository struct {
	*DB
	logger *logger.Logger
}

// NewRunRepository constructs a [RunRepository] backed by the provided
// database connection and logger.
func NewRunRepository(db *DB, logger *logger.Logger) RunRepository {
	return &runRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRun inserts a freshly initialized run aggregate.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrRunAlreadyExists].
//   - Any other execution failure → wrapped with [ErrExecutingQuery].
func (r *runRepository) SaveRun(ctx context.Context, run models.RunAggregate) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveRun,
		run.RunID,
		run.State,
		run.ItemCount,
		run.ActiveAtInit,
		run.TotalGross.Handle,
		run.TotalDeductions.Handle,
		run.TotalNet.Handle,
		run.Fingerprint,
		run.Entropy,
		run.CreatedAt,
		run.SealedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.SaveRun").
			Int64("run_id", run.RunID).
			Msg("failed to insert run aggregate")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: run_id=%d", ErrRunAlreadyExists, run.RunID)
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateRun rewrites the mutable columns of an existing run aggregate.
// Aggregates are replaced whole: every fold swaps the total handles, so a
// partial update buys nothing.
//
// Returns [ErrRunNotFound] when no row matches the run identifier.
func (r *runRepository) UpdateRun(ctx context.Context, run models.RunAggregate) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateRun,
		run.RunID,
		run.State,
		run.ItemCount,
		run.ActiveAtInit,
		run.TotalGross.Handle,
		run.TotalDeductions.Handle,
		run.TotalNet.Handle,
		run.Fingerprint,
		run.Entropy,
		run.SealedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.UpdateRun").
			Int64("run_id", run.RunID).
			Msg("failed to update run aggregate")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.UpdateRun").
			Int64("run_id", run.RunID).
			Msg("failed to get rows affected after update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "runRepository.UpdateRun").
			Int64("run_id", run.RunID).
			Msg("no rows affected during update: run not found")
		return fmt.Errorf("%w: run_id=%d", ErrRunNotFound, run.RunID)
	}

	return nil
}

// GetRun retrieves a single run aggregate by its identifier.
//
// Returns [ErrRunNotFound] when the identifier matches no row.
func (r *runRepository) GetRun(ctx context.Context, runID int64) (models.RunAggregate, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getRun, runID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "runRepository.GetRun").
			Int64("run_id", runID).
			Msg("failed to execute query for getting run aggregate")
		return models.RunAggregate{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RunAggregate{}, fmt.Errorf("%w: run_id=%d", ErrRunNotFound, runID)
		}
		log.Err(err).
			Str("func", "runRepository.GetRun").
			Int64("run_id", runID).
			Msg("failed to scan run aggregate row")
		return models.RunAggregate{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return run, nil
}

// GetAllRuns retrieves every persisted run aggregate in ascending run-id
// order. The coordinator seeds its registry from this listing at startup.
func (r *runRepository) GetAllRuns(ctx context.Context) ([]models.RunAggregate, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllRuns)
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.GetAllRuns").
			Msg("failed to execute query for getting all run aggregates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRuns(ctx, rows, "runRepository.GetAllRuns")
}

// GetRunsByState retrieves run aggregates restricted to the given lifecycle
// state, in ascending run-id order. The SELECT is built dynamically so the
// state filter stays parameterised.
func (r *runRepository) GetRunsByState(ctx context.Context, state models.RunState) ([]models.RunAggregate, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRunsByStateQuery(ctx, state)
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.GetRunsByState").
			Str("state", string(state)).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.GetRunsByState").
			Str("state", string(state)).
			Msg("failed to execute query for getting runs by state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRuns(ctx, rows, "runRepository.GetRunsByState")
}

// rowScanner is the shared subset of [*sql.Row] and [*sql.Rows] used by the
// scan helpers below.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one payroll_runs row in [getRun] column order.
func scanRun(row rowScanner) (models.RunAggregate, error) {
	var run models.RunAggregate

	err := row.Scan(
		&run.RunID,
		&run.State,
		&run.ItemCount,
		&run.ActiveAtInit,
		&run.TotalGross.Handle,
		&run.TotalDeductions.Handle,
		&run.TotalNet.Handle,
		&run.Fingerprint,
		&run.Entropy,
		&run.CreatedAt,
		&run.SealedAt,
	)
	if err != nil {
		return models.RunAggregate{}, err
	}

	return run, nil
}

// collectRuns drains a result set of payroll_runs rows, logging and wrapping
// scan and iteration failures the same way for every caller.
func collectRuns(ctx context.Context, rows *sql.Rows, funcName string) ([]models.RunAggregate, error) {
	log := logger.FromContext(ctx)

	runs := make([]models.RunAggregate, 0, 16)

	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan run aggregate row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return runs, nil
}
