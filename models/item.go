// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package models

import "time"

// Item is one enrolled payroll subject: encrypted compensation fields plus
// the plaintext, non-sensitive metadata used for scheduling and tier logic.
// Items are referenced by their position in the ordered ledger list when
// batches are processed.
type Item struct {
	// Index is the item's position in the ordered ledger list. Assigned
	// at enrollment and never reused.
	Index int64 `json:"index"`

	// SubjectID identifies the data subject (employee). Derived per-item
	// results are granted to SubjectPrincipal(SubjectID).
	SubjectID int64 `json:"subject_id"`

	// Category is free-form, non-sensitive grouping metadata.
	Category string `json:"category"`

	// Tier selects the bonus cap applied by the conditional-cap selector.
	Tier uint64 `json:"tier"`

	// Active gates participation: only active items are processed in a
	// run. Inactive items are skipped without touching their ciphertexts.
	Active bool `json:"active"`

	// BaseValue is the recurring encrypted gross amount per run.
	BaseValue EncryptedAmount `json:"base_value"`

	// Adjustment is a one-time encrypted addition (bonus, correction).
	// It is folded into exactly one run and then reset to encrypted zero
	// so the next run cannot double-count it.
	Adjustment EncryptedAmount `json:"adjustment"`

	// LatestNet is the most recently derived encrypted net value,
	// granted to the item's subject for individual decryption.
	LatestNet EncryptedAmount `json:"latest_net"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "payroll_items"
}

// ItemFilter narrows item listings. Nil pointer fields mean "no filter on
// this column"; a Category of "" matches everything.
type ItemFilter struct {
	// Active filters by participation flag when non-nil.
	Active *bool `json:"active,omitempty"`

	// Tier filters by bonus-cap tier when non-nil.
	Tier *uint64 `json:"tier,omitempty"`

	// Category filters by exact category match when non-empty.
	Category string `json:"category,omitempty"`
}

// ItemResult is the per-run, per-item derived outcome. Each encrypted field
// is granted to the coordinator and to the item's subject before the result
// is persisted.
type ItemResult struct {
	RunID      int64           `json:"run_id"`
	ItemIndex  int64           `json:"item_index"`
	Gross      EncryptedAmount `json:"gross"`
	Deductions EncryptedAmount `json:"deductions"`
	Net        EncryptedAmount `json:"net"`
	ComputedAt time.Time       `json:"computed_at"`
}

// TableName returns the name of the database table
// associated with the ItemResult model.
func (r ItemResult) TableName() string {
	return "run_results"
}
