// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package store

const (
	createRunCacheSchema = `
		CREATE TABLE IF NOT EXISTS runs_cache (
			operator_id     INTEGER NOT NULL,
			run_id          INTEGER NOT NULL,
			state           TEXT    NOT NULL,
			item_count      INTEGER NOT NULL,
			processed_count INTEGER NOT NULL,
			active_at_init  INTEGER NOT NULL,
			sealed          BOOLEAN NOT NULL,
			fingerprint     TEXT    NOT NULL DEFAULT '',
			created_at      TIMESTAMP NOT NULL,
			sealed_at       TIMESTAMP,
			cached_at       TIMESTAMP NOT NULL,
			PRIMARY KEY (operator_id, run_id)
		);`

	createDecryptionCacheSchema = `
		CREATE TABLE IF NOT EXISTS decryption_cache (
			operator_id INTEGER NOT NULL,
			request_id  TEXT    NOT NULL,
			state       TEXT    NOT NULL,
			payload     TEXT    NOT NULL DEFAULT '',
			created_at  TIMESTAMP NOT NULL,
			updated_at  TIMESTAMP,
			PRIMARY KEY (operator_id, request_id)
		);`

	upsertCachedRun = `
		INSERT INTO runs_cache (
			operator_id,
			run_id,
			state,
			item_count,
			processed_count,
			active_at_init,
			sealed,
			fingerprint,
			created_at,
			sealed_at,
			cached_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (operator_id, run_id) DO UPDATE SET
			state           = excluded.state,
			item_count      = excluded.item_count,
			processed_count = excluded.processed_count,
			active_at_init  = excluded.active_at_init,
			sealed          = excluded.sealed,
			fingerprint     = excluded.fingerprint,
			sealed_at       = excluded.sealed_at,
			cached_at       = excluded.cached_at;`

	getCachedRun = `
		SELECT
			run_id,
			state,
			item_count,
			processed_count,
			active_at_init,
			sealed,
			fingerprint,
			created_at,
			sealed_at
		FROM runs_cache
		WHERE operator_id = $1 AND run_id = $2;`

	getAllCachedRuns = `
		SELECT
			run_id,
			state,
			item_count,
			processed_count,
			active_at_init,
			sealed,
			fingerprint,
			created_at,
			sealed_at
		FROM runs_cache
		WHERE operator_id = $1
		ORDER BY run_id;`

	purgeCachedRuns = `
		DELETE FROM runs_cache
		WHERE operator_id = $1;`

	insertCachedDecryption = `
		INSERT INTO decryption_cache (
			operator_id,
			request_id,
			state,
			payload,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6);`

	markDecryptionFulfilled = `
		UPDATE decryption_cache SET
			state      = 'fulfilled',
			payload    = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE operator_id = $1 AND request_id = $2;`

	markDecryptionExpired = `
		UPDATE decryption_cache SET
			state      = 'expired',
			updated_at = CURRENT_TIMESTAMP
		WHERE operator_id = $1 AND request_id = $2;`

	getCachedDecryption = `
		SELECT
			request_id,
			state,
			payload,
			created_at,
			updated_at
		FROM decryption_cache
		WHERE operator_id = $1 AND request_id = $2;`

	getPendingCachedDecryptions = `
		SELECT request_id
		FROM decryption_cache
		WHERE operator_id = $1 AND state = 'pending'
		ORDER BY created_at;`

	getAllCachedDecryptions = `
		SELECT
			request_id,
			state,
			payload,
			created_at,
			updated_at
		FROM decryption_cache
		WHERE operator_id = $1
		ORDER BY created_at;`
)
