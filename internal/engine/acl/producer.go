// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package acl enforces the grant-after-produce discipline: every ciphertext
// that outlives the function that created it must carry at least one access
// grant, and an aggregate's replacement handle must be re-granted on every
// mutation. The Producer pairs the engine operation with its grants in one
// call so call sites cannot forget the second half.
package acl

import (
	"context"
	"fmt"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

// GrantRecorder receives a copy of every grant the Producer issues, for the
// persistent audit trail. The engine's own ACL remains authoritative; a
// recorder failure is logged and does not revoke the in-engine grant.
type GrantRecorder interface {
	RecordGrant(ctx context.Context, grant models.AccessGrant) error
}

// Producer creates derived ciphertexts that are granted before they escape.
//
// Operations mirror the engine's but attach the owner grant (and any extras)
// to the result before returning it. Raw engine results that were produced
// elsewhere are adopted through Own / OwnBool.
type Producer struct {
	engine engine.Engine

	// owner is granted on every produced handle. For the payroll core this
	// is the coordinator's computation principal.
	owner models.Principal

	// recorder persists grants for audit; may be nil (tests, client side).
	recorder GrantRecorder

	log *logger.Logger
}

// NewProducer wires a Producer around eng, granting every produced handle to
// owner. recorder may be nil when no audit persistence is wanted.
func NewProducer(eng engine.Engine, owner models.Principal, recorder GrantRecorder, log *logger.Logger) *Producer {
	return &Producer{
		engine:   eng,
		owner:    owner,
		recorder: recorder,
		log:      log,
	}
}

// Owner returns the principal every produced handle is granted to.
func (p *Producer) Owner() models.Principal {
	return p.owner
}

// EncryptConstant admits a public constant and grants it to the owner plus
// any extra principals.
func (p *Producer) EncryptConstant(ctx context.Context, value models.Micro, extra ...models.Principal) (models.EncryptedAmount, error) {
	out, err := p.engine.EncryptConstant(ctx, value)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	if err := p.grant(ctx, out.Handle, extra); err != nil {
		return models.EncryptedAmount{}, err
	}
	return out, nil
}

// VerifyInput validates and admits an external ciphertext, granting the
// resulting handle to the owner plus any extra principals.
func (p *Producer) VerifyInput(ctx context.Context, input models.EncryptedInput, sender models.Principal, extra ...models.Principal) (models.EncryptedAmount, error) {
	out, err := p.engine.VerifyInput(ctx, input, sender)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	if err := p.grant(ctx, out.Handle, extra); err != nil {
		return models.EncryptedAmount{}, err
	}
	return out, nil
}

// Add produces a granted sum. Used by the accumulator's folds, where the
// replacement total handle must be re-granted on every mutation.
func (p *Producer) Add(ctx context.Context, a, b models.EncryptedAmount, extra ...models.Principal) (models.EncryptedAmount, error) {
	out, err := p.engine.Add(ctx, a, b)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	if err := p.grant(ctx, out.Handle, extra); err != nil {
		return models.EncryptedAmount{}, err
	}
	return out, nil
}

// Own adopts an amount produced through the raw engine (for example, the
// output of the bracket evaluator) and grants it before it escapes.
func (p *Producer) Own(ctx context.Context, amount models.EncryptedAmount, extra ...models.Principal) error {
	return p.grant(ctx, amount.Handle, extra)
}

// OwnBool adopts an encrypted boolean, such as a range-claim result.
func (p *Producer) OwnBool(ctx context.Context, b models.EncryptedBool, extra ...models.Principal) error {
	return p.grant(ctx, b.Handle, extra)
}

// grant attaches the owner grant plus extras to handle and feeds the audit
// recorder. The in-engine grant is the correctness-bearing one; audit
// persistence failures are logged and swallowed.
func (p *Producer) grant(ctx context.Context, handle models.HandleID, extra []models.Principal) error {
	principals := append([]models.Principal{p.owner}, extra...)

	for _, principal := range principals {
		if err := p.engine.GrantAccess(ctx, handle, principal); err != nil {
			return fmt.Errorf("granting %s on %s: %w", principal, handle, err)
		}

		if p.recorder == nil {
			continue
		}
		grant := models.AccessGrant{Handle: handle, Principal: principal, GrantedAt: time.Now()}
		if err := p.recorder.RecordGrant(ctx, grant); err != nil {
			p.log.Err(err).
				Str("handle", string(handle)).
				Str("principal", principal.String()).
				Msg("grant audit record failed")
		}
	}

	return nil
}
