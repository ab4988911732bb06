package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// decryptionRepository is the PostgreSQL-backed implementation of
// [DecryptionRepository]. It persists asynchronous decryption requests
// against the "decryption_requests" table. The handle list is stored as a
// JSONB column: handle identifiers are opaque strings and the list is only
// ever read back whole.
type decryptionRepository struct {
	*DB
	logger *logger.Logger
}

// NewDecryptionRepository constructs a [DecryptionRepository] backed by the
// provided database connection and logger.
func NewDecryptionRepository(db *DB, logger *logger.Logger) DecryptionRepository {
	return &decryptionRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveDecryptionRequest inserts a freshly accepted request.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDecryptionAlreadyExists].
//   - Handle list serialisation failure → wrapped with [ErrEncodingColumn].
//   - Any other execution failure → wrapped with [ErrExecutingQuery].
func (r *decryptionRepository) SaveDecryptionRequest(ctx context.Context, request models.DecryptionRequest) error {
	log := logger.FromContext(ctx)

	handles, err := json.Marshal(request.Handles)
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.SaveDecryptionRequest").
			Str("request_id", request.RequestID).
			Msg("failed to encode handle list")
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	_, err = r.DB.ExecContext(ctx, saveDecryptionRequest,
		request.RequestID,
		request.Requester,
		handles,
		request.Deadline,
		request.State,
		request.CreatedAt,
		request.FulfilledAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.SaveDecryptionRequest").
			Str("request_id", request.RequestID).
			Msg("failed to insert decryption request")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: request_id=%s", ErrDecryptionAlreadyExists, request.RequestID)
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateDecryptionState records a lifecycle transition: fulfilled (with the
// fulfillment timestamp) or expired (fulfilledAt nil).
//
// Returns [ErrDecryptionNotFound] when no row matches the request ID.
func (r *decryptionRepository) UpdateDecryptionState(ctx context.Context, requestID string, state models.DecryptionState, fulfilledAt *time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateDecryptionState, requestID, state, fulfilledAt)
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.UpdateDecryptionState").
			Str("request_id", requestID).
			Str("state", string(state)).
			Msg("failed to update decryption request state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.UpdateDecryptionState").
			Str("request_id", requestID).
			Msg("failed to get rows affected after update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "decryptionRepository.UpdateDecryptionState").
			Str("request_id", requestID).
			Msg("no rows affected during update: request not found")
		return fmt.Errorf("%w: request_id=%s", ErrDecryptionNotFound, requestID)
	}

	return nil
}

// GetDecryptionRequest retrieves a single request by its identifier.
//
// Returns [ErrDecryptionNotFound] when the identifier matches no row.
func (r *decryptionRepository) GetDecryptionRequest(ctx context.Context, requestID string) (models.DecryptionRequest, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getDecryptionRequest, requestID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.GetDecryptionRequest").
			Str("request_id", requestID).
			Msg("failed to execute query for getting decryption request")
		return models.DecryptionRequest{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	request, err := scanDecryptionRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DecryptionRequest{}, fmt.Errorf("%w: request_id=%s", ErrDecryptionNotFound, requestID)
		}
		log.Err(err).
			Str("func", "decryptionRepository.GetDecryptionRequest").
			Str("request_id", requestID).
			Msg("failed to scan decryption request row")
		return models.DecryptionRequest{}, err
	}

	return request, nil
}

// GetPendingPastDeadline retrieves pending requests whose deadline lies
// strictly before the given instant, oldest deadline first. The sweeper
// expires exactly these rows.
func (r *decryptionRepository) GetPendingPastDeadline(ctx context.Context, deadline time.Time) ([]models.DecryptionRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPendingDecryptionsQuery(ctx, deadline)
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.GetPendingPastDeadline").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "decryptionRepository.GetPendingPastDeadline").
			Msg("failed to execute query for getting overdue requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	requests := make([]models.DecryptionRequest, 0, 16)

	for rows.Next() {
		request, scanErr := scanDecryptionRequest(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "decryptionRepository.GetPendingPastDeadline").
				Msg("failed to scan decryption request row")
			return nil, scanErr
		}

		requests = append(requests, request)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "decryptionRepository.GetPendingPastDeadline").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return requests, nil
}

// scanDecryptionRequest reads one decryption_requests row in
// [getDecryptionRequest] column order, decoding the JSONB handle list.
func scanDecryptionRequest(row rowScanner) (models.DecryptionRequest, error) {
	var request models.DecryptionRequest
	var handles []byte

	err := row.Scan(
		&request.RequestID,
		&request.Requester,
		&handles,
		&request.Deadline,
		&request.State,
		&request.CreatedAt,
		&request.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DecryptionRequest{}, err
		}
		return models.DecryptionRequest{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal(handles, &request.Handles); err != nil {
		return models.DecryptionRequest{}, fmt.Errorf("%w: %w", ErrDecodingColumn, err)
	}

	return request, nil
}
