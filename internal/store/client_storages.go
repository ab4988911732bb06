package store

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// RunCache is the SQLite-backed repository for run metadata cached
	// locally on the operator workstation.
	RunCache LocalRunCacheRepository

	// DecryptionCache is the SQLite-backed repository for decryption
	// requests and their encrypted-at-rest fulfilled payloads.
	DecryptionCache LocalDecryptionCacheRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Bootstraps the local cache schema via [ensureLocalSchema].
//  3. Constructs and returns a [ClientStorages] value wired to fresh cache
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// schema bootstrap fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	ctx := context.Background()

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := ensureLocalSchema(ctx, db, logger); err != nil {
		return nil, fmt.Errorf("local schema bootstrap failed: %w", err)
	}

	return &ClientStorages{
		RunCache:        NewLocalRunCacheRepository(db, logger),
		DecryptionCache: NewLocalDecryptionCacheRepository(db, logger),
	}, nil
}
