package store

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/logger"
)

// ensureLocalSchema creates the client cache tables if they do not exist
// yet. The local SQLite file carries only public run metadata and encrypted
// decryption payloads, so the schema is bootstrapped in place rather than
// through the server's migration pipeline.
func ensureLocalSchema(ctx context.Context, db *DB, log *logger.Logger) error {
	for _, ddl := range []string{createRunCacheSchema, createDecryptionCacheSchema} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			log.Err(err).Str("func", "ensureLocalSchema").Msg("error creating local cache table")
			return fmt.Errorf("error creating local cache table: %w", err)
		}
	}

	return nil
}
