package store

import (
	"database/sql"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/migrations"
)

// DB wraps a live [*sql.DB] connection together with the error classifier
// used to distinguish retryable from permanent failures.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
