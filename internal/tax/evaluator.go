// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package tax implements the branchless bracket evaluator: progressive
// deductions over encrypted amounts computed as one fixed, data-independent
// sequence of ciphertext primitives.
//
// The defining property is that NOTHING about the execution depends on the
// encrypted input. The evaluator always walks the full bracket list, always
// issues the same operation types in the same order, and masks inapplicable
// brackets through select instead of skipping them. Early exit on an
// encrypted comparison is exactly the leak this design forbids: it would
// reveal which bracket an amount falls into.
package tax

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// Primitive sets the evaluator requires, checked once at construction.
// Engines missing the exact-arithmetic pair fall back to the shift path;
// engines missing the shift path too cannot host an evaluator at all.
var (
	basePrimitives  = []engine.Primitive{engine.PrimEncrypt, engine.PrimAdd, engine.PrimSub, engine.PrimMin, engine.PrimGt, engine.PrimSelect}
	shiftPrimitives = []engine.Primitive{engine.PrimShiftRight}
	exactPrimitives = []engine.Primitive{engine.PrimMul, engine.PrimDiv}
)

// Evaluator computes progressive bracket deductions over encrypted amounts.
//
// Thresholds and the zero constant are encrypted once at construction and
// reused across evaluations; they are internal constants that never reach
// the decryption path, so they carry no grants. The OUTPUT of every
// evaluation is a fresh ungranted handle - the caller decides who may
// decrypt it and must grant accordingly before the value escapes.
type Evaluator struct {
	engine   engine.Engine
	brackets []models.Bracket

	// thresholds holds the encrypted counterpart of each bracket's upper
	// threshold, index-aligned with brackets.
	thresholds []models.EncryptedAmount

	// zero masks non-applicable brackets in select operations.
	zero models.EncryptedAmount

	// exact selects plaintext-scalar multiply/divide over the shift
	// combination. Decided once from engine capabilities; never from
	// data.
	exact bool

	log *logger.Logger
}

// NewEvaluator validates the schedule against the engine's declared
// capabilities and pre-encrypts the constants the fixed operation sequence
// needs.
//
// Fails fast with engine.ErrUnsupportedPrimitive when the engine cannot
// host the evaluator; with ErrEmptySchedule, ErrThresholdOrder or
// ErrInvalidRatePlan when the schedule itself is malformed. A constructed
// evaluator never fails mid-computation for capability reasons.
func NewEvaluator(ctx context.Context, eng engine.Engine, brackets []models.Bracket, log *logger.Logger) (*Evaluator, error) {
	caps := eng.Capabilities()
	if missing := caps.Missing(basePrimitives...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", engine.ErrUnsupportedPrimitive, missing)
	}

	exact := caps.Supports(exactPrimitives...)
	if !exact {
		if missing := caps.Missing(shiftPrimitives...); len(missing) > 0 {
			return nil, fmt.Errorf("%w: no exact arithmetic and no %v", engine.ErrUnsupportedPrimitive, missing)
		}
	}

	if err := validateSchedule(brackets, exact); err != nil {
		return nil, err
	}

	zero, err := eng.EncryptConstant(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("encrypting zero constant: %w", err)
	}

	thresholds := make([]models.EncryptedAmount, len(brackets))
	for i, b := range brackets {
		t, err := eng.EncryptConstant(ctx, b.UpperThreshold)
		if err != nil {
			return nil, fmt.Errorf("encrypting threshold %d: %w", i, err)
		}
		thresholds[i] = t
	}

	log.Info().
		Int("brackets", len(brackets)).
		Bool("exact_rates", exact).
		Msg("bracket evaluator ready")

	return &Evaluator{
		engine:     eng,
		brackets:   brackets,
		thresholds: thresholds,
		zero:       zero,
		exact:      exact,
		log:        log,
	}, nil
}

// Schedule returns the validated bracket list the evaluator computes with.
func (ev *Evaluator) Schedule() []models.Bracket {
	out := make([]models.Bracket, len(ev.brackets))
	copy(out, ev.brackets)
	return out
}

// MaxError returns the worst-case deviation of one evaluation from the
// exact rational product of portions and realized rates, in micro-units.
// Zero on the exact-arithmetic path (up to the final division's
// truncation); on the shift path each shift term truncates independently.
func (ev *Evaluator) MaxError() models.Micro {
	if ev.exact {
		return models.Micro(len(ev.brackets))
	}
	var total models.Micro
	for _, b := range ev.brackets {
		total += b.Rate.MaxTruncationError()
	}
	return total
}

// EvaluateBrackets computes the progressive deduction for amount.
//
// The sequence per bracket i, executed unconditionally for EVERY bracket:
//
//	cappedAtThreshold := min(amount, threshold[i])
//	inBracket         := cappedAtThreshold > previousThreshold
//	difference        := cappedAtThreshold - previousThreshold
//	bracketAmount     := select(inBracket, difference, 0)
//	total             += applyRate(bracketAmount, rate[i])
//	previousThreshold  = threshold[i]
//
// The subtraction may wrap below previousThreshold; the select masks that
// case to zero before it can contribute, so no underflow is observable.
// Whenever inBracket holds, cappedAtThreshold >= previousThreshold and the
// difference is exact.
//
// The returned handle is fresh and ungranted.
func (ev *Evaluator) EvaluateBrackets(ctx context.Context, amount models.EncryptedAmount) (models.EncryptedAmount, error) {
	total := ev.zero
	previous := ev.zero

	for i := range ev.brackets {
		capped, err := ev.engine.Min(ctx, amount, ev.thresholds[i])
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d min: %w", i, err)
		}

		inBracket, err := ev.engine.Gt(ctx, capped, previous)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d gt: %w", i, err)
		}

		difference, err := ev.engine.Sub(ctx, capped, previous)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d sub: %w", i, err)
		}

		bracketAmount, err := ev.engine.Select(ctx, inBracket, difference, ev.zero)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d select: %w", i, err)
		}

		contribution, err := ev.applyRate(ctx, bracketAmount, ev.brackets[i].Rate)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d rate: %w", i, err)
		}

		total, err = ev.engine.Add(ctx, total, contribution)
		if err != nil {
			return models.EncryptedAmount{}, fmt.Errorf("bracket %d accumulate: %w", i, err)
		}

		previous = ev.thresholds[i]
	}

	return total, nil
}
