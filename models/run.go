// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package models

import "time"

// RunState is the lifecycle position of a payroll run. Runs move strictly
// forward: Initialized -> Accumulating -> Sealed. The Uninitialized state
// exists only implicitly, before a RunAggregate has been created.
type RunState string

const (
	RunStateInitialized  RunState = "initialized"
	RunStateAccumulating RunState = "accumulating"
	RunStateSealed       RunState = "sealed"
)

// RunAggregate is the mutable accrual cell of one payroll run: three
// encrypted totals folded batch by batch, plus the public metadata that
// feeds the audit fingerprint.
//
// The encrypted totals are handles, not values; every fold replaces them
// with freshly produced handles which must be re-granted to the coordinator
// before the aggregate is considered persisted.
type RunAggregate struct {
	// RunID is assigned monotonically at init and never reused.
	RunID int64 `json:"run_id"`

	// State tracks the run's lifecycle position.
	State RunState `json:"state"`

	// ItemCount is the number of item contributions folded in so far.
	// It only ever increases.
	ItemCount int64 `json:"item_count"`

	// ActiveAtInit is the number of active items at run initialization.
	// Sealing without having processed this many items is refused unless
	// explicitly forced.
	ActiveAtInit int64 `json:"active_at_init"`

	// TotalGross, TotalDeductions and TotalNet are the encrypted run
	// totals. Monotone: nothing ever subtracts from them; corrections
	// happen in a later run.
	TotalGross      EncryptedAmount `json:"total_gross"`
	TotalDeductions EncryptedAmount `json:"total_deductions"`
	TotalNet        EncryptedAmount `json:"total_net"`

	// Fingerprint is the audit digest computed at seal time from public
	// metadata only. Nil until the run is sealed.
	Fingerprint []byte `json:"fingerprint,omitempty"`

	// Entropy is the public randomness bound into the fingerprint at seal
	// time, recorded so auditors can recompute the digest.
	Entropy []byte `json:"entropy,omitempty"`

	// CreatedAt is the init timestamp; it also gates when the next run
	// becomes due.
	CreatedAt time.Time `json:"created_at"`

	// SealedAt is set once, at the moment of sealing.
	SealedAt *time.Time `json:"sealed_at,omitempty"`
}

// Sealed reports whether the run has been frozen. Sealed runs reject every
// further mutation.
func (r *RunAggregate) Sealed() bool {
	return r.State == RunStateSealed
}

// TableName returns the name of the database table
// associated with the RunAggregate model.
func (r RunAggregate) TableName() string {
	return "payroll_runs"
}

// RunMetadata is the externally visible projection of a run. It carries no
// encrypted field in any form; handles stay inside the service boundary.
type RunMetadata struct {
	RunID          int64      `json:"run_id"`
	State          RunState   `json:"state"`
	ItemCount      int64      `json:"item_count"`
	ProcessedCount int64      `json:"processed_count"`
	ActiveAtInit   int64      `json:"active_at_init"`
	Sealed         bool       `json:"sealed"`
	Fingerprint    string     `json:"fingerprint,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	SealedAt       *time.Time `json:"sealed_at,omitempty"`
}
