// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package tax

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/models"
)

// applyRate computes one bracket's contribution. The path was fixed at
// construction from engine capabilities; within a deployment every
// evaluation runs the identical operation sequence.
func (ev *Evaluator) applyRate(ctx context.Context, amount models.EncryptedAmount, rate models.RatePlan) (models.EncryptedAmount, error) {
	if ev.exact {
		product, err := ev.engine.MulPlain(ctx, amount, uint64(rate.PartsPerMillion))
		if err != nil {
			return models.EncryptedAmount{}, err
		}
		return ev.engine.DivPlain(ctx, product, 1_000_000)
	}

	contribution, err := ev.engine.ShiftRight(ctx, amount, rate.LeadShift)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	for _, s := range rate.SubShifts {
		term, err := ev.engine.ShiftRight(ctx, amount, s)
		if err != nil {
			return models.EncryptedAmount{}, err
		}
		// Safe: validateRatePlan guarantees the lead fraction dominates
		// the subtracted fractions, and floor(x*a) >= sum of floor(x*b_i)
		// whenever a >= sum(b_i). The running value never wraps.
		contribution, err = ev.engine.Sub(ctx, contribution, term)
		if err != nil {
			return models.EncryptedAmount{}, err
		}
	}

	return contribution, nil
}

// validateSchedule rejects empty schedules, non-increasing thresholds, and,
// on the shift path, malformed rate plans.
func validateSchedule(brackets []models.Bracket, exact bool) error {
	if len(brackets) == 0 {
		return ErrEmptySchedule
	}

	var previous models.Micro
	for i, b := range brackets {
		if i > 0 && b.UpperThreshold <= previous {
			return fmt.Errorf("%w: bracket %d threshold %d <= %d", ErrThresholdOrder, i, b.UpperThreshold, previous)
		}
		previous = b.UpperThreshold

		if exact {
			if b.Rate.PartsPerMillion == 0 {
				return fmt.Errorf("%w: bracket %d has zero nominal rate", ErrInvalidRatePlan, i)
			}
			continue
		}
		if err := validateRatePlan(b.Rate); err != nil {
			return fmt.Errorf("bracket %d: %w", i, err)
		}
	}

	return nil
}

// validateRatePlan checks shift ranges and that the realized fraction
// 2^-lead - sum(2^-s) stays strictly positive, which also guarantees the
// truncated subtraction sequence never goes negative.
func validateRatePlan(rate models.RatePlan) error {
	if rate.LeadShift < 1 || rate.LeadShift > 63 {
		return fmt.Errorf("%w: lead shift %d out of [1,63]", ErrInvalidRatePlan, rate.LeadShift)
	}

	// remaining tracks the fraction as a numerator over 2^63.
	remaining := int64(1) << (63 - rate.LeadShift)
	for _, s := range rate.SubShifts {
		if s < 1 || s > 63 {
			return fmt.Errorf("%w: sub shift %d out of [1,63]", ErrInvalidRatePlan, s)
		}
		remaining -= int64(1) << (63 - s)
		if remaining <= 0 {
			return fmt.Errorf("%w: subtracted fractions cancel the lead term", ErrInvalidRatePlan)
		}
	}

	return nil
}
