package store

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// OperatorRepository persists payroll operator accounts.
type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator models.Operator) (models.Operator, error)
	FindOperatorByLogin(ctx context.Context, login string) (models.Operator, error)
}

// RunRepository persists payroll run aggregates. Encrypted totals are stored
// as opaque handle identifiers; the plaintexts behind them never reach the
// database.
type RunRepository interface {
	SaveRun(ctx context.Context, run models.RunAggregate) error
	UpdateRun(ctx context.Context, run models.RunAggregate) error
	GetRun(ctx context.Context, runID int64) (models.RunAggregate, error)
	GetAllRuns(ctx context.Context) ([]models.RunAggregate, error)
	GetRunsByState(ctx context.Context, state models.RunState) ([]models.RunAggregate, error)
}

// ItemRepository persists enrolled payroll items.
type ItemRepository interface {
	SaveItem(ctx context.Context, item models.Item) error
	UpdateItem(ctx context.Context, item models.Item) error
	GetItem(ctx context.Context, index int64) (models.Item, error)
	GetAllItems(ctx context.Context) ([]models.Item, error)
	GetItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
}

// ResultRepository persists per-run, per-item derived outcomes. A result row
// exists exactly when the item was processed in the run, so the processed
// index set of a run is recovered from this table at startup.
type ResultRepository interface {
	SaveResult(ctx context.Context, result models.ItemResult) error
	GetResults(ctx context.Context, runID int64) ([]models.ItemResult, error)
	GetProcessedIndexes(ctx context.Context, runID int64) ([]int64, error)
}

// GrantRepository persists access grants. RecordGrant satisfies the grant
// recorder contract of the ACL producer, so every grant issued through the
// engine is written through to the database in the same call.
type GrantRepository interface {
	RecordGrant(ctx context.Context, grant models.AccessGrant) error
	GetGrantsByHandle(ctx context.Context, handle models.HandleID) ([]models.AccessGrant, error)
}

// DecryptionRepository persists asynchronous decryption requests and their
// lifecycle transitions.
type DecryptionRepository interface {
	SaveDecryptionRequest(ctx context.Context, request models.DecryptionRequest) error
	UpdateDecryptionState(ctx context.Context, requestID string, state models.DecryptionState, fulfilledAt *time.Time) error
	GetDecryptionRequest(ctx context.Context, requestID string) (models.DecryptionRequest, error)
	GetPendingPastDeadline(ctx context.Context, deadline time.Time) ([]models.DecryptionRequest, error)
}

// PayrollStorage is the high-level run persistence surface used by the
// service layer. It wraps a [RunRepository] and, when audit export is
// configured, additionally writes a public audit record for every sealed run.
type PayrollStorage interface {
	SaveRun(ctx context.Context, run models.RunAggregate) error
	UpdateRun(ctx context.Context, run models.RunAggregate) error
	SealRun(ctx context.Context, run models.RunAggregate) error
	GetRun(ctx context.Context, runID int64) (models.RunAggregate, error)
	GetAllRuns(ctx context.Context) ([]models.RunAggregate, error)
	GetRunsByState(ctx context.Context, state models.RunState) ([]models.RunAggregate, error)
}

// RunAuditExporter writes the public projection of a sealed run to durable
// audit storage. Exported records carry metadata and digests only; ciphertext
// handles never appear in an audit artifact.
type RunAuditExporter interface {
	ExportSealedRun(ctx context.Context, run models.RunAggregate) error
	LoadAuditRecord(ctx context.Context, runID int64) (RunAuditRecord, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
