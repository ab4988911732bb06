package store

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// grantRepository is the PostgreSQL-backed implementation of
// [GrantRepository]. It persists access grants against the "access_grants"
// table. Grants are append-only; the INSERT uses ON CONFLICT DO NOTHING so
// re-granting an already granted (handle, principal) pair stays idempotent,
// matching the engine's in-memory ACL semantics.
type grantRepository struct {
	*DB
	logger *logger.Logger
}

// NewGrantRepository constructs a [GrantRepository] backed by the provided
// database connection and logger.
func NewGrantRepository(db *DB, logger *logger.Logger) GrantRepository {
	return &grantRepository{
		DB:     db,
		logger: logger,
	}
}

// RecordGrant writes one access grant through to the database. It satisfies
// the grant recorder contract of the ACL producer: the producer calls this
// in the same breath as the engine grant, so a handle that crossed a
// boundary without a durable grant record cannot exist.
func (r *grantRepository) RecordGrant(ctx context.Context, grant models.AccessGrant) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveGrant,
		grant.Handle,
		grant.Principal,
		grant.GrantedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "grantRepository.RecordGrant").
			Str("handle", string(grant.Handle)).
			Str("principal", string(grant.Principal)).
			Msg("failed to insert access grant")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetGrantsByHandle retrieves every grant recorded for one ciphertext
// handle, oldest first. An ungranted handle yields an empty slice.
func (r *grantRepository) GetGrantsByHandle(ctx context.Context, handle models.HandleID) ([]models.AccessGrant, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getGrantsByHandle, handle)
	if err != nil {
		log.Err(err).
			Str("func", "grantRepository.GetGrantsByHandle").
			Str("handle", string(handle)).
			Msg("failed to execute query for getting grants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	grants := make([]models.AccessGrant, 0, 8)

	for rows.Next() {
		var grant models.AccessGrant

		scanErr := rows.Scan(
			&grant.Handle,
			&grant.Principal,
			&grant.GrantedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "grantRepository.GetGrantsByHandle").
				Str("handle", string(handle)).
				Msg("failed to scan access grant row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		grants = append(grants, grant)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "grantRepository.GetGrantsByHandle").
			Str("handle", string(handle)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return grants, nil
}
