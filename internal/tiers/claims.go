package tiers

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/models"
)

var claimPrimitives = []engine.Primitive{engine.PrimEncrypt, engine.PrimGe, engine.PrimLe, engine.PrimAnd}

// Claims produces range-proof style encrypted booleans: the claim result is
// the ONLY value ever exposed to decryption, never the compared amount.
// Reference bounds are public, so encrypting them per claim leaks nothing.
type Claims struct {
	engine engine.Engine
}

// NewClaims checks the comparison primitives are available and returns a
// claim builder.
func NewClaims(eng engine.Engine) (*Claims, error) {
	if missing := eng.Capabilities().Missing(claimPrimitives...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", engine.ErrUnsupportedPrimitive, missing)
	}
	return &Claims{engine: eng}, nil
}

// AboveThreshold claims value >= threshold. The returned boolean handle is
// fresh and ungranted; the caller grants it to whoever may learn the answer.
func (c *Claims) AboveThreshold(ctx context.Context, value models.EncryptedAmount, threshold models.Micro) (models.EncryptedBool, error) {
	ref, err := c.engine.EncryptConstant(ctx, threshold)
	if err != nil {
		return models.EncryptedBool{}, fmt.Errorf("encrypting threshold: %w", err)
	}
	return c.engine.Ge(ctx, value, ref)
}

// WithinRange claims lower <= value <= upper, combining both comparisons
// with an encrypted AND so neither partial answer exists on its own.
func (c *Claims) WithinRange(ctx context.Context, value models.EncryptedAmount, lower, upper models.Micro) (models.EncryptedBool, error) {
	lo, err := c.engine.EncryptConstant(ctx, lower)
	if err != nil {
		return models.EncryptedBool{}, fmt.Errorf("encrypting lower bound: %w", err)
	}
	hi, err := c.engine.EncryptConstant(ctx, upper)
	if err != nil {
		return models.EncryptedBool{}, fmt.Errorf("encrypting upper bound: %w", err)
	}

	atLeast, err := c.engine.Ge(ctx, value, lo)
	if err != nil {
		return models.EncryptedBool{}, err
	}
	atMost, err := c.engine.Le(ctx, value, hi)
	if err != nil {
		return models.EncryptedBool{}, err
	}

	return c.engine.And(ctx, atLeast, atMost)
}
