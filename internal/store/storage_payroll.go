// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package store

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// payrollStorage is the default implementation of [PayrollStorage].
//
// It acts as a high-level orchestration layer that delegates relational
// operations to a [RunRepository] and may optionally write audit artifacts
// through a [RunAuditExporter].
//
// All run persistence is routed to the repository. Audit export is
// conditionally initialized: when no audit directory is configured, sealing
// degrades to a plain update and nothing is written outside the database.
type payrollStorage struct {
	// repository provides all relational database operations
	// against the "payroll_runs" table.
	repository RunRepository

	// auditExporter optionally writes the public projection of every
	// sealed run to durable audit storage. If configuration does not
	// enable audit export, this field remains nil.
	auditExporter RunAuditExporter

	// logger is used for structured diagnostic logging at the storage layer.
	logger *logger.Logger
}

// NewPayrollStorage constructs a fully configured implementation of
// [PayrollStorage].
//
// The function initializes:
//   - a relational run repository backed by the provided [DB],
//   - an optional audit exporter if enabled by configuration.
//
// Behavior:
//   - Always initializes a [RunRepository].
//   - Initializes a [RunAuditExporter] only if cfg.Files.AuditDir is
//     non-empty.
func NewPayrollStorage(db *DB, cfg config.Storage, logger *logger.Logger) PayrollStorage {
	logger.Debug().Msg("creating payroll storage")

	storage := new(payrollStorage)

	repository := NewRunRepository(db, logger)
	storage.repository = repository
	storage.logger = logger

	if cfg.Files.AuditDir != "" {
		auditExporter := NewRunAuditExporter(cfg.Files.AuditDir)
		storage.auditExporter = auditExporter
	}

	return storage
}

// SaveRun persists a freshly initialized run aggregate.
//
// Delegates to [RunRepository.SaveRun].
func (p *payrollStorage) SaveRun(ctx context.Context, run models.RunAggregate) error {
	return p.repository.SaveRun(ctx, run)
}

// UpdateRun rewrites the mutable columns of an existing aggregate after a
// batch fold or item-count change.
//
// Delegates to [RunRepository.UpdateRun].
func (p *payrollStorage) UpdateRun(ctx context.Context, run models.RunAggregate) error {
	return p.repository.UpdateRun(ctx, run)
}

// SealRun persists a sealed aggregate and, when audit export is configured,
// writes the run's public audit record alongside.
//
// The database update happens first: a run whose audit export failed is
// still sealed, and the export failure is surfaced to the caller so the
// artifact can be regenerated. The exported record carries public metadata
// and digests only.
func (p *payrollStorage) SealRun(ctx context.Context, run models.RunAggregate) error {
	if err := p.repository.UpdateRun(ctx, run); err != nil {
		return err
	}

	if p.auditExporter == nil {
		return nil
	}

	if err := p.auditExporter.ExportSealedRun(ctx, run); err != nil {
		return fmt.Errorf("run %d sealed but audit export failed: %w", run.RunID, err)
	}

	return nil
}

// GetRun retrieves a single run aggregate by its identifier.
//
// Delegates to [RunRepository.GetRun].
func (p *payrollStorage) GetRun(ctx context.Context, runID int64) (models.RunAggregate, error) {
	return p.repository.GetRun(ctx, runID)
}

// GetAllRuns retrieves every persisted run aggregate in ascending run-id
// order.
//
// Delegates to [RunRepository.GetAllRuns].
func (p *payrollStorage) GetAllRuns(ctx context.Context) ([]models.RunAggregate, error) {
	return p.repository.GetAllRuns(ctx)
}

// GetRunsByState retrieves run aggregates restricted to one lifecycle state.
//
// Delegates to [RunRepository.GetRunsByState].
func (p *payrollStorage) GetRunsByState(ctx context.Context, state models.RunState) ([]models.RunAggregate, error) {
	return p.repository.GetRunsByState(ctx, state)
}
