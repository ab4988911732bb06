package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

var ErrCachedDecryptionNotFound = errors.New("cached decryption request not found")

type localDecryptionCacheRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalDecryptionCacheRepository(db *DB, logger *logger.Logger) LocalDecryptionCacheRepository {
	return &localDecryptionCacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localDecryptionCacheRepository) SaveRequest(ctx context.Context, operatorID int64, cached models.CachedDecryption) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, insertCachedDecryption,
		operatorID,
		cached.RequestID,
		cached.State,
		cached.Payload,
		cached.CreatedAt,
		cached.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.SaveRequest").
			Int64("operator_id", operatorID).
			Str("request_id", cached.RequestID).
			Msg("failed to insert cached decryption request")
		return fmt.Errorf("failed to cache decryption request (request_id=%s): %w", cached.RequestID, err)
	}

	return nil
}

func (l *localDecryptionCacheRepository) MarkFulfilled(ctx context.Context, operatorID int64, requestID, payload string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markDecryptionFulfilled, operatorID, requestID, payload)
	if err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.MarkFulfilled").
			Int64("operator_id", operatorID).
			Str("request_id", requestID).
			Msg("failed to mark cached decryption request fulfilled")
		return fmt.Errorf("failed to mark cached decryption fulfilled: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: request_id=%s", ErrCachedDecryptionNotFound, requestID)
	}

	return nil
}

func (l *localDecryptionCacheRepository) MarkExpired(ctx context.Context, operatorID int64, requestID string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markDecryptionExpired, operatorID, requestID)
	if err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.MarkExpired").
			Int64("operator_id", operatorID).
			Str("request_id", requestID).
			Msg("failed to mark cached decryption request expired")
		return fmt.Errorf("failed to mark cached decryption expired: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: request_id=%s", ErrCachedDecryptionNotFound, requestID)
	}

	return nil
}

func (l *localDecryptionCacheRepository) GetRequest(ctx context.Context, requestID string, operatorID int64) (models.CachedDecryption, error) {
	log := logger.FromContext(ctx)

	var cached models.CachedDecryption
	row := l.DB.QueryRowContext(ctx, getCachedDecryption, operatorID, requestID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.GetRequest").
			Int64("operator_id", operatorID).
			Str("request_id", requestID).
			Msg("failed to execute query for getting cached decryption request")
		return models.CachedDecryption{}, fmt.Errorf("failed to query cached decryption request: %w", err)
	}

	scanErr := row.Scan(
		&cached.RequestID,
		&cached.State,
		&cached.Payload,
		&cached.CreatedAt,
		&cached.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.CachedDecryption{}, fmt.Errorf("%w: request_id=%s", ErrCachedDecryptionNotFound, requestID)
		}
		log.Err(scanErr).
			Str("func", "localDecryptionCacheRepository.GetRequest").
			Int64("operator_id", operatorID).
			Msg("failed to scan cached decryption row")
		return models.CachedDecryption{}, fmt.Errorf("failed to scan cached decryption row: %w", scanErr)
	}

	return cached, nil
}

func (l *localDecryptionCacheRepository) GetPendingRequestIDs(ctx context.Context, operatorID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getPendingCachedDecryptions, operatorID)
	if err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.GetPendingRequestIDs").
			Int64("operator_id", operatorID).
			Msg("failed to execute query for getting pending cached decryptions")
		return nil, fmt.Errorf("failed to query pending cached decryptions: %w", err)
	}
	defer rows.Close()

	var requestIDs []string

	for rows.Next() {
		var requestID string
		if scanErr := rows.Scan(&requestID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localDecryptionCacheRepository.GetPendingRequestIDs").
				Int64("operator_id", operatorID).
				Msg("failed to scan pending request id")
			return nil, fmt.Errorf("failed to scan pending request id: %w", scanErr)
		}
		requestIDs = append(requestIDs, requestID)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localDecryptionCacheRepository.GetPendingRequestIDs").
			Int64("operator_id", operatorID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating pending request rows: %w", rowsErr)
	}

	return requestIDs, nil
}

func (l *localDecryptionCacheRepository) GetAllRequests(ctx context.Context, operatorID int64) ([]models.CachedDecryption, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getAllCachedDecryptions, operatorID)
	if err != nil {
		log.Err(err).
			Str("func", "localDecryptionCacheRepository.GetAllRequests").
			Int64("operator_id", operatorID).
			Msg("failed to execute query for getting all cached decryptions")
		return nil, fmt.Errorf("failed to query all cached decryptions: %w", err)
	}
	defer rows.Close()

	var requests []models.CachedDecryption

	for rows.Next() {
		var cached models.CachedDecryption

		scanErr := rows.Scan(
			&cached.RequestID,
			&cached.State,
			&cached.Payload,
			&cached.CreatedAt,
			&cached.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localDecryptionCacheRepository.GetAllRequests").
				Int64("operator_id", operatorID).
				Msg("failed to scan cached decryption row")
			return nil, fmt.Errorf("failed to scan cached decryption row: %w", scanErr)
		}

		requests = append(requests, cached)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localDecryptionCacheRepository.GetAllRequests").
			Int64("operator_id", operatorID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating cached decryption rows: %w", rowsErr)
	}

	return requests, nil
}
