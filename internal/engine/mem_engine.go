// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package engine

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/models"
)

type handleKind int

const (
	kindAmount handleKind = iota
	kindBool
)

// MemEngine is the in-process reference implementation of Engine.
//
// Handles are UUIDs; the plaintext behind each handle lives only in the
// engine's private backing store, which doubles as the test oracle. Access
// grants are enforced exactly as a remote threshold network would enforce
// them: Decrypt without a grant fails, full stop.
//
// The capability set deliberately excludes multiply and divide - the same
// constraint that forces the production bracket evaluator onto its
// shift-combination rate path - so code exercised against MemEngine takes
// the same primitive sequence it would take in production.
type MemEngine struct {
	mu     sync.Mutex
	values map[models.HandleID]uint64
	kinds  map[models.HandleID]handleKind
	acl    map[models.HandleID]map[models.Principal]struct{}
	caps   PrimitiveSet

	// inputKey verifies proofs binding submitted ciphertexts to senders.
	inputKey []byte

	// trace, when attached, records every primitive op type executed.
	trace *Trace

	log *logger.Logger
}

// NewMemEngine constructs a MemEngine. inputKey is the shared secret input
// proofs are verified against; log may be logger.Nop() in tests.
func NewMemEngine(inputKey []byte, log *logger.Logger) *MemEngine {
	return &MemEngine{
		values:   make(map[models.HandleID]uint64),
		kinds:    make(map[models.HandleID]handleKind),
		acl:      make(map[models.HandleID]map[models.Principal]struct{}),
		inputKey: inputKey,
		log:      log,
		caps: NewPrimitiveSet(
			PrimEncrypt, PrimVerify,
			PrimAdd, PrimSub, PrimMin, PrimMax,
			PrimGt, PrimGe, PrimLe, PrimEq,
			PrimAnd, PrimOr,
			PrimSelect, PrimShiftRight,
		),
	}
}

// SetTrace attaches (or detaches, with nil) an operation-type trace.
// Instrumentation for property tests; not used on production paths.
func (e *MemEngine) SetTrace(t *Trace) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trace = t
}

// Capabilities implements Engine.
func (e *MemEngine) Capabilities() PrimitiveSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(PrimitiveSet, len(e.caps))
	for p := range e.caps {
		out[p] = struct{}{}
	}
	return out
}

// EncryptConstant implements Engine.
func (e *MemEngine) EncryptConstant(ctx context.Context, value models.Micro) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(PrimEncrypt)

	return e.newAmount(uint64(value)), nil
}

// VerifyInput implements Engine. The reference wire format is an 8-byte
// big-endian value with an HMAC-SHA256 proof over ciphertext||sender; a
// production engine substitutes real ciphertext and a ZK binding proof
// behind the same method.
func (e *MemEngine) VerifyInput(ctx context.Context, input models.EncryptedInput, sender models.Principal) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(PrimVerify)

	if len(input.Ciphertext) != 8 {
		return models.EncryptedAmount{}, fmt.Errorf("%w: ciphertext must be 8 bytes, got %d", ErrInvalidProof, len(input.Ciphertext))
	}

	mac := hmac.New(sha256.New, e.inputKey)
	mac.Write(input.Ciphertext)
	mac.Write([]byte(sender))
	if !hmac.Equal(mac.Sum(nil), input.Proof) {
		return models.EncryptedAmount{}, fmt.Errorf("%w: sender %s", ErrInvalidProof, sender)
	}

	return e.newAmount(binary.BigEndian.Uint64(input.Ciphertext)), nil
}

// SealInput produces the wire form VerifyInput accepts. It exists for the
// client SDK and tests; a production deployment replaces it with real
// client-side encryption tooling.
func SealInput(inputKey []byte, value models.Micro, sender models.Principal) models.EncryptedInput {
	ciphertext := make([]byte, 8)
	binary.BigEndian.PutUint64(ciphertext, uint64(value))

	mac := hmac.New(sha256.New, inputKey)
	mac.Write(ciphertext)
	mac.Write([]byte(sender))

	return models.EncryptedInput{Ciphertext: ciphertext, Proof: mac.Sum(nil)}
}

// Add implements Engine.
func (e *MemEngine) Add(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error) {
	return e.arith(PrimAdd, a, b, func(x, y uint64) uint64 { return x + y })
}

// Sub implements Engine. Underflow wraps modulo 2^64, matching the
// underlying scheme; callers mask invalid differences through Select.
func (e *MemEngine) Sub(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error) {
	return e.arith(PrimSub, a, b, func(x, y uint64) uint64 { return x - y })
}

// Min implements Engine.
func (e *MemEngine) Min(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error) {
	return e.arith(PrimMin, a, b, func(x, y uint64) uint64 {
		if x < y {
			return x
		}
		return y
	})
}

// Max implements Engine.
func (e *MemEngine) Max(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error) {
	return e.arith(PrimMax, a, b, func(x, y uint64) uint64 {
		if x > y {
			return x
		}
		return y
	})
}

// Gt implements Engine.
func (e *MemEngine) Gt(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error) {
	return e.compare(PrimGt, a, b, func(x, y uint64) bool { return x > y })
}

// Ge implements Engine.
func (e *MemEngine) Ge(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error) {
	return e.compare(PrimGe, a, b, func(x, y uint64) bool { return x >= y })
}

// Le implements Engine.
func (e *MemEngine) Le(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error) {
	return e.compare(PrimLe, a, b, func(x, y uint64) bool { return x <= y })
}

// Eq implements Engine.
func (e *MemEngine) Eq(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error) {
	return e.compare(PrimEq, a, b, func(x, y uint64) bool { return x == y })
}

// And implements Engine.
func (e *MemEngine) And(ctx context.Context, a, b models.EncryptedBool) (models.EncryptedBool, error) {
	return e.boolean(PrimAnd, a, b, func(x, y bool) bool { return x && y })
}

// Or implements Engine.
func (e *MemEngine) Or(ctx context.Context, a, b models.EncryptedBool) (models.EncryptedBool, error) {
	return e.boolean(PrimOr, a, b, func(x, y bool) bool { return x || y })
}

// Select implements Engine.
func (e *MemEngine) Select(ctx context.Context, cond models.EncryptedBool, a, b models.EncryptedAmount) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(PrimSelect)

	c, err := e.lookup(cond.Handle, kindBool)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	y, err := e.lookup(b.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	// Arithmetic form, not a branch: c is 0 or 1.
	out := c*x + (1-c)*y
	return e.newAmount(out), nil
}

// ShiftRight implements Engine.
func (e *MemEngine) ShiftRight(ctx context.Context, a models.EncryptedAmount, shift uint) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(PrimShiftRight)

	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	return e.newAmount(x >> shift), nil
}

// MulPlain implements Engine. Gated by the capability set: the default
// MemEngine configuration mirrors engine versions without scalar multiply,
// which is what forces consumers onto the shift-combination rate path.
func (e *MemEngine) MulPlain(ctx context.Context, a models.EncryptedAmount, k uint64) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.caps.Supports(PrimMul) {
		return models.EncryptedAmount{}, fmt.Errorf("%w: mul", ErrUnsupportedPrimitive)
	}
	e.observe(PrimMul)

	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	return e.newAmount(x * k), nil
}

// DivPlain implements Engine. Gated like MulPlain; truncates toward zero.
func (e *MemEngine) DivPlain(ctx context.Context, a models.EncryptedAmount, k uint64) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.caps.Supports(PrimDiv) {
		return models.EncryptedAmount{}, fmt.Errorf("%w: div", ErrUnsupportedPrimitive)
	}
	if k == 0 {
		return models.EncryptedAmount{}, fmt.Errorf("%w: div by zero", ErrUnsupportedPrimitive)
	}
	e.observe(PrimDiv)

	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	return e.newAmount(x / k), nil
}

// EnableExactArithmetic widens the capability set with scalar multiply and
// divide, mimicking an engine version that supports them natively. Consumers
// constructed afterwards pick the exact rate path instead of shifts.
func (e *MemEngine) EnableExactArithmetic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caps[PrimMul] = struct{}{}
	e.caps[PrimDiv] = struct{}{}
}

// GrantAccess implements Engine.
func (e *MemEngine) GrantAccess(ctx context.Context, handle models.HandleID, principal models.Principal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.kinds[handle]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	grants, ok := e.acl[handle]
	if !ok {
		grants = make(map[models.Principal]struct{})
		e.acl[handle] = grants
	}
	grants[principal] = struct{}{}

	return nil
}

// HasAccess implements Engine.
func (e *MemEngine) HasAccess(ctx context.Context, handle models.HandleID, principal models.Principal) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.kinds[handle]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	_, granted := e.acl[handle][principal]
	return granted, nil
}

// Decrypt implements Engine.
func (e *MemEngine) Decrypt(ctx context.Context, handle models.HandleID, requester models.Principal) (models.Micro, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.kinds[handle]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	if _, granted := e.acl[handle][requester]; !granted {
		e.log.Warn().
			Str("handle", string(handle)).
			Str("requester", requester.String()).
			Msg("decryption refused: no grant")
		return 0, fmt.Errorf("%w: handle %s, requester %s", ErrUngrantedAccess, handle, requester)
	}

	return models.Micro(e.values[handle]), nil
}

// ─────────────────────────── internal helpers ───────────────────────────

func (e *MemEngine) arith(p Primitive, a, b models.EncryptedAmount, f func(x, y uint64) uint64) (models.EncryptedAmount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(p)

	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	y, err := e.lookup(b.Handle, kindAmount)
	if err != nil {
		return models.EncryptedAmount{}, err
	}

	return e.newAmount(f(x, y)), nil
}

func (e *MemEngine) compare(p Primitive, a, b models.EncryptedAmount, f func(x, y uint64) bool) (models.EncryptedBool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(p)

	x, err := e.lookup(a.Handle, kindAmount)
	if err != nil {
		return models.EncryptedBool{}, err
	}
	y, err := e.lookup(b.Handle, kindAmount)
	if err != nil {
		return models.EncryptedBool{}, err
	}

	return e.newBool(f(x, y)), nil
}

func (e *MemEngine) boolean(p Primitive, a, b models.EncryptedBool, f func(x, y bool) bool) (models.EncryptedBool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe(p)

	x, err := e.lookup(a.Handle, kindBool)
	if err != nil {
		return models.EncryptedBool{}, err
	}
	y, err := e.lookup(b.Handle, kindBool)
	if err != nil {
		return models.EncryptedBool{}, err
	}

	return e.newBool(f(x != 0, y != 0)), nil
}

// lookup resolves a handle's backing value, checking existence and kind.
// Callers must hold e.mu.
func (e *MemEngine) lookup(h models.HandleID, want handleKind) (uint64, error) {
	kind, ok := e.kinds[h]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	if kind != want {
		return 0, fmt.Errorf("%w: %s", ErrWrongHandleKind, h)
	}
	return e.values[h], nil
}

// newAmount mints a fresh amount handle with an EMPTY access list.
// Callers must hold e.mu.
func (e *MemEngine) newAmount(value uint64) models.EncryptedAmount {
	h := models.HandleID(uuid.NewString())
	e.values[h] = value
	e.kinds[h] = kindAmount
	return models.EncryptedAmount{Handle: h}
}

// newBool mints a fresh boolean handle with an EMPTY access list.
// Callers must hold e.mu.
func (e *MemEngine) newBool(value bool) models.EncryptedBool {
	h := models.HandleID(uuid.NewString())
	var v uint64
	if value {
		v = 1
	}
	e.values[h] = v
	e.kinds[h] = kindBool
	return models.EncryptedBool{Handle: h}
}

// observe records the op type when a trace is attached.
// Callers must hold e.mu.
func (e *MemEngine) observe(p Primitive) {
	if e.trace != nil {
		e.trace.Record(p)
	}
}
