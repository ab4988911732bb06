// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package tiers implements the conditional-cap selector: a reusable
// branchless pattern that picks one of N encrypted values by layering
// select operations over encrypted equality tests, then clamps a candidate
// against the pick via min. Tiered bonus ceilings and range-proof claims
// are both instances of it.
package tiers

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

var tablePrimitives = []engine.Primitive{engine.PrimEncrypt, engine.PrimEq, engine.PrimSelect, engine.PrimMin}

// Table is a fixed tier-to-cap mapping with its constants pre-encrypted.
//
// SelectCap never reveals which tier matched: every equality test and every
// select executes regardless of the submitted tier, in the same order.
type Table struct {
	engine engine.Engine
	tiers  []models.TierCap

	// ids and caps hold the encrypted constants, index-aligned with tiers.
	ids  []models.EncryptedAmount
	caps []models.EncryptedAmount
}

// NewTable validates the cap table, checks engine capabilities, and
// pre-encrypts the tier identifiers and caps.
func NewTable(ctx context.Context, eng engine.Engine, tiers []models.TierCap, log *logger.Logger) (*Table, error) {
	if missing := eng.Capabilities().Missing(tablePrimitives...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", engine.ErrUnsupportedPrimitive, missing)
	}
	if len(tiers) == 0 {
		return nil, ErrEmptyTable
	}

	ids := make([]models.EncryptedAmount, len(tiers))
	caps := make([]models.EncryptedAmount, len(tiers))
	var previous uint64
	for i, tier := range tiers {
		if i > 0 && tier.TierID <= previous {
			return nil, fmt.Errorf("%w: tier %d after %d", ErrTierOrder, tier.TierID, previous)
		}
		previous = tier.TierID

		id, err := eng.EncryptConstant(ctx, models.Micro(tier.TierID))
		if err != nil {
			return nil, fmt.Errorf("encrypting tier id %d: %w", tier.TierID, err)
		}
		ceiling, err := eng.EncryptConstant(ctx, tier.Cap)
		if err != nil {
			return nil, fmt.Errorf("encrypting cap for tier %d: %w", tier.TierID, err)
		}
		ids[i], caps[i] = id, ceiling
	}

	log.Info().Int("tiers", len(tiers)).Msg("tier cap table ready")

	return &Table{engine: eng, tiers: tiers, ids: ids, caps: caps}, nil
}

// Tiers returns the plaintext table the selector was built from.
func (t *Table) Tiers() []models.TierCap {
	out := make([]models.TierCap, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// SelectCap resolves the cap for an encrypted tier value.
//
// It starts from the highest-tier (most permissive) cap and layers
// select(tierValue == id[k], cap[k], effective) for every lower tier in
// descending order. A tier value matching no identifier therefore resolves
// to the TOP cap - an explicit policy choice, not an oversight: unknown
// tiers must not be distinguishable from top-tier submissions by timing or
// operation count.
//
// The returned handle is fresh and ungranted.
func (t *Table) SelectCap(ctx context.Context, tierValue models.EncryptedAmount) (models.EncryptedAmount, error) {
	effective := t.caps[len(t.caps)-1]

	for k := len(t.tiers) - 2; k >= 0; k-- {
		isTier, err := t.engine.Eq(ctx, tierValue, t.ids[k])
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("tier %d eq: %w", t.tiers[k].TierID, err)
		}
		effective, err = t.engine.Select(ctx, isTier, t.caps[k], effective)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("tier %d select: %w", t.tiers[k].TierID, err)
		}
	}

	return effective, nil
}

// Clamp bounds candidate by ceiling: min(candidate, ceiling). Idempotent.
func (t *Table) Clamp(ctx context.Context, candidate, ceiling models.EncryptedAmount) (models.EncryptedAmount, error) {
	return t.engine.Min(ctx, candidate, ceiling)
}

// Approve resolves the cap for tierValue and clamps candidate against it in
// one call: min(candidate, selectCap(tierValue)).
func (t *Table) Approve(ctx context.Context, tierValue, candidate models.EncryptedAmount) (models.EncryptedAmount, error) {
	ceiling, err := t.SelectCap(ctx, tierValue)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	return t.Clamp(ctx, candidate, ceiling)
}
