package store

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
)

// Storages groups every server-side storage surface into a single value that
// can be passed around the service layer: raw repositories for items,
// results, grants and decryption requests, plus the composed payroll storage
// that couples run persistence with audit export.
type Storages struct {
	// OperatorRepository persists operator accounts.
	OperatorRepository OperatorRepository

	// PayrollStorage persists run aggregates and exports sealed-run audit
	// records when configured.
	PayrollStorage PayrollStorage

	// ItemRepository persists the ordered item ledger.
	ItemRepository ItemRepository

	// ResultRepository persists per-run item outcomes.
	ResultRepository ResultRepository

	// GrantRepository persists access grants; it doubles as the grant
	// recorder behind the ACL producer.
	GrantRepository GrantRepository

	// DecryptionRepository persists asynchronous decryption requests.
	DecryptionRepository DecryptionRepository
}

// NewStorages initialises the server storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens a PostgreSQL connection using cfg.DB.DSN.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs the repositories and wraps run persistence in a
//     [PayrollStorage], with audit export enabled when cfg.Files.AuditDir
//     is non-empty.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	repositories := NewRepositories(db, logger)

	return &Storages{
		OperatorRepository:   repositories.OperatorRepository,
		PayrollStorage:       NewPayrollStorage(db, cfg, logger),
		ItemRepository:       repositories.ItemRepository,
		ResultRepository:     repositories.ResultRepository,
		GrantRepository:      repositories.GrantRepository,
		DecryptionRepository: repositories.DecryptionRepository,
	}, nil
}
