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

// operatorRepository is the PostgreSQL-backed implementation of
// [OperatorRepository]. It handles operator account creation and lookup
// against the "operators" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type operatorRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOperatorRepository constructs an [OperatorRepository] backed by the
// provided database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewOperatorRepository(db *DB, logger *logger.Logger) OperatorRepository {
	logger.Debug().Msg("creating operator repository")
	return &operatorRepository{
		db:     db,
		logger: logger,
	}
}

// CreateOperator persists a new operator record and returns the fully
// populated [models.Operator] with server-assigned fields (OperatorID,
// CreatedAt).
//
// The INSERT uses the [createOperator] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *operatorRepository) CreateOperator(ctx context.Context, operator models.Operator) (models.Operator, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createOperator, operator.Login, operator.Name, operator.AuthHash)

	// create operator in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*operatorRepository.CreateOperator").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Operator{}, ErrLoginAlreadyExists
		default:
			return models.Operator{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved operator from db
	if err := row.Scan(&operator.OperatorID, &operator.Login, &operator.Name, &operator.AuthHash, &operator.CreatedAt); err != nil {
		log.Err(err).Str("func", "*operatorRepository.CreateOperator").Msg("error: scanning error")
		return models.Operator{}, err
	}

	return operator, nil
}

// FindOperatorByLogin retrieves the operator record whose login matches the
// provided value.
//
// Error handling:
//   - PostgreSQL no_data_found (P0002) or [sql.ErrNoRows] → [ErrOperatorNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Other scan failures → returned directly.
func (r *operatorRepository) FindOperatorByLogin(ctx context.Context, login string) (models.Operator, error) {
	log := logger.FromContext(ctx)

	var found models.Operator
	row := r.db.QueryRowContext(ctx, findOperatorByLogin, login)

	// find operator by login
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*operatorRepository.FindOperatorByLogin").Msg("error: row is nil")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.Operator{}, ErrOperatorNotFound
		default:
			return models.Operator{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan found operator from db
	if err := row.Scan(&found.OperatorID, &found.Login, &found.Name, &found.AuthHash, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Operator{}, ErrOperatorNotFound
		}
		log.Err(err).Str("func", "*operatorRepository.FindOperatorByLogin").Msg("error: scanning error")
		return models.Operator{}, err
	}

	return found, nil
}
