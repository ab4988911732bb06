package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/obscuralabs/blind-payroll/models"
)

// RunAuditRecord is the durable public projection of one sealed run. It
// carries only metadata and hex-encoded digests; ciphertext handles never
// appear here, so an audit directory leaks nothing an API listing would not.
type RunAuditRecord struct {
	RunID        int64           `json:"run_id"`
	State        models.RunState `json:"state"`
	ItemCount    int64           `json:"item_count"`
	ActiveAtInit int64           `json:"active_at_init"`

	// Fingerprint is the hex seal digest computed from public metadata.
	Fingerprint string `json:"fingerprint"`

	// Entropy is the hex public randomness bound into the fingerprint,
	// recorded so auditors can recompute the digest.
	Entropy string `json:"entropy"`

	CreatedAt  time.Time  `json:"created_at"`
	SealedAt   *time.Time `json:"sealed_at,omitempty"`
	ExportedAt time.Time  `json:"exported_at"`
}

// runAuditExporter is the filesystem implementation of [RunAuditExporter].
// Each sealed run becomes one JSON file under the configured directory,
// named run-<id>.json. Files are written whole; a partially written artifact
// is overwritten by the next export of the same run.
type runAuditExporter struct {
	dir string
}

// NewRunAuditExporter constructs a [RunAuditExporter] writing into dir.
// The directory is created lazily on the first export.
func NewRunAuditExporter(dir string) RunAuditExporter {
	return &runAuditExporter{dir: dir}
}

// ExportSealedRun writes the public audit record of a sealed run.
func (e *runAuditExporter) ExportSealedRun(ctx context.Context, run models.RunAggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	record := RunAuditRecord{
		RunID:        run.RunID,
		State:        run.State,
		ItemCount:    run.ItemCount,
		ActiveAtInit: run.ActiveAtInit,
		Fingerprint:  hex.EncodeToString(run.Fingerprint),
		Entropy:      hex.EncodeToString(run.Entropy),
		CreatedAt:    run.CreatedAt,
		SealedAt:     run.SealedAt,
		ExportedAt:   time.Now().UTC(),
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	if err := os.WriteFile(e.path(run.RunID), payload, 0o600); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}

	return nil
}

// LoadAuditRecord reads back a previously exported record. Used by
// verification tooling and tests to confirm export round-trips.
func (e *runAuditExporter) LoadAuditRecord(ctx context.Context, runID int64) (RunAuditRecord, error) {
	if err := ctx.Err(); err != nil {
		return RunAuditRecord{}, err
	}

	payload, err := os.ReadFile(e.path(runID))
	if err != nil {
		return RunAuditRecord{}, fmt.Errorf("read audit record: %w", err)
	}

	var record RunAuditRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return RunAuditRecord{}, fmt.Errorf("decode audit record: %w", err)
	}

	return record, nil
}

func (e *runAuditExporter) path(runID int64) string {
	return filepath.Join(e.dir, fmt.Sprintf("run-%d.json", runID))
}
