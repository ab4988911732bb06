package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/obscuralabs/blind-payroll/models"
)

const (
	createOperator = `INSERT INTO operators (login, name, auth_hash)
    VALUES ($1, $2, $3)
    RETURNING operator_id, login, name, auth_hash, created_at;`

	findOperatorByLogin = `SELECT operator_id, login, name, auth_hash, created_at
    FROM operators
    WHERE login = $1;`

	saveRun = `INSERT INTO payroll_runs (
			run_id,
			state,
			item_count,
			active_at_init,
			total_gross,
			total_deductions,
			total_net,
			fingerprint,
			entropy,
			created_at,
			sealed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	updateRun = `UPDATE payroll_runs SET
			state            = $2,
			item_count       = $3,
			active_at_init   = $4,
			total_gross      = $5,
			total_deductions = $6,
			total_net        = $7,
			fingerprint      = $8,
			entropy          = $9,
			sealed_at        = $10
		WHERE run_id = $1;`

	getRun = `SELECT
			run_id,
			state,
			item_count,
			active_at_init,
			total_gross,
			total_deductions,
			total_net,
			fingerprint,
			entropy,
			created_at,
			sealed_at
		FROM payroll_runs
		WHERE run_id = $1;`

	getAllRuns = `SELECT
			run_id,
			state,
			item_count,
			active_at_init,
			total_gross,
			total_deductions,
			total_net,
			fingerprint,
			entropy,
			created_at,
			sealed_at
		FROM payroll_runs
		ORDER BY run_id;`

	saveItem = `INSERT INTO payroll_items (
			item_index,
			subject_id,
			category,
			tier,
			active,
			base_value,
			adjustment,
			latest_net,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	updateItem = `UPDATE payroll_items SET
			subject_id = $2,
			category   = $3,
			tier       = $4,
			active     = $5,
			base_value = $6,
			adjustment = $7,
			latest_net = $8,
			updated_at = $9
		WHERE item_index = $1;`

	getItem = `SELECT
			item_index,
			subject_id,
			category,
			tier,
			active,
			base_value,
			adjustment,
			latest_net,
			created_at,
			updated_at
		FROM payroll_items
		WHERE item_index = $1;`

	getAllItems = `SELECT
			item_index,
			subject_id,
			category,
			tier,
			active,
			base_value,
			adjustment,
			latest_net,
			created_at,
			updated_at
		FROM payroll_items
		ORDER BY item_index;`

	saveResult = `INSERT INTO run_results (
			run_id,
			item_index,
			gross,
			deductions,
			net,
			computed_at
		) VALUES ($1, $2, $3, $4, $5, $6);`

	getResultsByRun = `SELECT
			run_id,
			item_index,
			gross,
			deductions,
			net,
			computed_at
		FROM run_results
		WHERE run_id = $1
		ORDER BY item_index;`

	getProcessedIndexes = `SELECT item_index
		FROM run_results
		WHERE run_id = $1
		ORDER BY item_index;`

	saveGrant = `INSERT INTO access_grants (handle, principal, granted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (handle, principal) DO NOTHING;`

	getGrantsByHandle = `SELECT handle, principal, granted_at
		FROM access_grants
		WHERE handle = $1
		ORDER BY granted_at;`

	saveDecryptionRequest = `INSERT INTO decryption_requests (
			request_id,
			requester,
			handles,
			deadline,
			state,
			created_at,
			fulfilled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	updateDecryptionState = `UPDATE decryption_requests SET
			state        = $2,
			fulfilled_at = $3
		WHERE request_id = $1;`

	getDecryptionRequest = `SELECT
			request_id,
			requester,
			handles,
			deadline,
			state,
			created_at,
			fulfilled_at
		FROM decryption_requests
		WHERE request_id = $1;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// positional placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildRunsByStateQuery builds a filtered SELECT over payroll_runs restricted
// to aggregates in the given lifecycle state, ordered by run identifier.
func buildRunsByStateQuery(_ context.Context, state models.RunState) (string, []any, error) {
	query, args, err := psql.
		Select(
			"run_id",
			"state",
			"item_count",
			"active_at_init",
			"total_gross",
			"total_deductions",
			"total_net",
			"fingerprint",
			"entropy",
			"created_at",
			"sealed_at",
		).
		From("payroll_runs").
		Where(sq.Eq{"state": string(state)}).
		OrderBy("run_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildItemsQuery builds a filtered SELECT over payroll_items. Nil filter
// fields add no WHERE clause; with an empty filter the query lists every
// enrolled item in ledger order.
func buildItemsQuery(_ context.Context, filter models.ItemFilter) (string, []any, error) {
	builder := psql.
		Select(
			"item_index",
			"subject_id",
			"category",
			"tier",
			"active",
			"base_value",
			"adjustment",
			"latest_net",
			"created_at",
			"updated_at",
		).
		From("payroll_items")

	if filter.Active != nil {
		builder = builder.Where(sq.Eq{"active": *filter.Active})
	}
	if filter.Tier != nil {
		builder = builder.Where(sq.Eq{"tier": *filter.Tier})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}

	query, args, err := builder.OrderBy("item_index").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildPendingDecryptionsQuery builds a SELECT over decryption_requests
// matching pending entries whose deadline has already passed. The sweeper
// expires exactly the rows this query returns.
func buildPendingDecryptionsQuery(_ context.Context, deadline time.Time) (string, []any, error) {
	query, args, err := psql.
		Select(
			"request_id",
			"requester",
			"handles",
			"deadline",
			"state",
			"created_at",
			"fulfilled_at",
		).
		From("decryption_requests").
		Where(sq.Eq{"state": string(models.DecryptionPending)}).
		Where(sq.Lt{"deadline": deadline}).
		OrderBy("deadline").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
