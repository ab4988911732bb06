package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

type localRunCacheRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalRunCacheRepository(db *DB, logger *logger.Logger) LocalRunCacheRepository {
	return &localRunCacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localRunCacheRepository) SaveRuns(ctx context.Context, operatorID int64, runs ...models.RunMetadata) error {
	log := logger.FromContext(ctx)

	cachedAt := time.Now().UTC()

	for _, run := range runs {
		_, err := l.DB.ExecContext(ctx, upsertCachedRun,
			operatorID,
			run.RunID,
			run.State,
			run.ItemCount,
			run.ProcessedCount,
			run.ActiveAtInit,
			run.Sealed,
			run.Fingerprint,
			run.CreatedAt,
			run.SealedAt,
			cachedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "localRunCacheRepository.SaveRuns").
				Int64("operator_id", operatorID).
				Int64("run_id", run.RunID).
				Msg("failed to execute upsert for cached run")
			return fmt.Errorf("failed to cache run (run_id=%d): %w", run.RunID, err)
		}
	}

	return nil
}

func (l *localRunCacheRepository) GetRun(ctx context.Context, runID, operatorID int64) (models.RunMetadata, error) {
	log := logger.FromContext(ctx)

	var run models.RunMetadata
	row := l.DB.QueryRowContext(ctx, getCachedRun, operatorID, runID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "localRunCacheRepository.GetRun").
			Int64("operator_id", operatorID).
			Int64("run_id", runID).
			Msg("failed to execute query for getting cached run")
		return models.RunMetadata{}, fmt.Errorf("failed to query cached run: %w", err)
	}

	scanErr := row.Scan(
		&run.RunID,
		&run.State,
		&run.ItemCount,
		&run.ProcessedCount,
		&run.ActiveAtInit,
		&run.Sealed,
		&run.Fingerprint,
		&run.CreatedAt,
		&run.SealedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.RunMetadata{}, fmt.Errorf("%w: run_id=%d", ErrRunNotFound, runID)
		}
		log.Err(scanErr).
			Str("func", "localRunCacheRepository.GetRun").
			Int64("operator_id", operatorID).
			Msg("failed to scan cached run row")
		return models.RunMetadata{}, fmt.Errorf("failed to scan cached run row: %w", scanErr)
	}

	return run, nil
}

func (l *localRunCacheRepository) GetAllRuns(ctx context.Context, operatorID int64) ([]models.RunMetadata, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getAllCachedRuns, operatorID)
	if err != nil {
		log.Err(err).
			Str("func", "localRunCacheRepository.GetAllRuns").
			Int64("operator_id", operatorID).
			Msg("failed to execute query for getting all cached runs")
		return nil, fmt.Errorf("failed to query all cached runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunMetadata

	for rows.Next() {
		var run models.RunMetadata

		scanErr := rows.Scan(
			&run.RunID,
			&run.State,
			&run.ItemCount,
			&run.ProcessedCount,
			&run.ActiveAtInit,
			&run.Sealed,
			&run.Fingerprint,
			&run.CreatedAt,
			&run.SealedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localRunCacheRepository.GetAllRuns").
				Int64("operator_id", operatorID).
				Msg("failed to scan cached run row")
			return nil, fmt.Errorf("failed to scan cached run row: %w", scanErr)
		}

		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localRunCacheRepository.GetAllRuns").
			Int64("operator_id", operatorID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating cached run rows: %w", rowsErr)
	}

	return runs, nil
}

func (l *localRunCacheRepository) PurgeRuns(ctx context.Context, operatorID int64) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, purgeCachedRuns, operatorID)
	if err != nil {
		log.Err(err).
			Str("func", "localRunCacheRepository.PurgeRuns").
			Int64("operator_id", operatorID).
			Msg("failed to execute purge for cached runs")
		return fmt.Errorf("failed to purge cached runs: %w", err)
	}

	return nil
}
