package store

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/obscuralabs/blind-payroll/internal/logger"
)

// newTestDB creates an sqlmock-backed [*DB] for repository tests. The caller
// owns the returned [*sql.DB] and must close it.
func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	l := logger.NewLogger("test")
	return &DB{DB: db, logger: l}, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
