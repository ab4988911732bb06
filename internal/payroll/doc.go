// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package payroll runs the confidential payroll lifecycle: run
// initialization, chunked batch processing over the enrolled item list, and
// sealing. It owns the in-memory run registry and drives the encrypted
// bracket evaluator and cap selector per item, folding the per-item outputs
// into per-run encrypted totals.
//
// The coordinator is transactional: a batch either commits all of its
// mutations or none of them, and every processed item index is remembered so
// an overlapping range is rejected instead of double-counted.
package payroll
