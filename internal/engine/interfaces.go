package engine

import (
	"context"

	"github.com/obscuralabs/blind-payroll/models"
)

// Engine is the ciphertext-engine boundary the payroll core computes
// against. Implementations guarantee that every operation returns a NEW
// handle with an empty access list, that no operation's duration or error
// behavior depends on the encrypted values, and that Decrypt is the only
// path from a handle to plaintext.
type Engine interface {
	// EncryptConstant admits a public constant into the encrypted domain.
	EncryptConstant(ctx context.Context, value models.Micro) (models.EncryptedAmount, error)

	// VerifyInput validates the proof binding an externally submitted
	// ciphertext to its sender and admits the value. Fails with
	// ErrInvalidProof when the binding does not hold.
	VerifyInput(ctx context.Context, input models.EncryptedInput, sender models.Principal) (models.EncryptedAmount, error)

	// Arithmetic over encrypted amounts, modulo 2^64.
	Add(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error)
	Sub(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error)
	Min(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error)
	Max(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedAmount, error)

	// Comparisons produce encrypted booleans.
	Gt(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error)
	Ge(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error)
	Le(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error)
	Eq(ctx context.Context, a, b models.EncryptedAmount) (models.EncryptedBool, error)

	// Boolean algebra over encrypted booleans.
	And(ctx context.Context, a, b models.EncryptedBool) (models.EncryptedBool, error)
	Or(ctx context.Context, a, b models.EncryptedBool) (models.EncryptedBool, error)

	// Select returns a when cond holds, b otherwise, in data-independent
	// time. It is the only sanctioned conditional: encrypted booleans
	// never steer control flow.
	Select(ctx context.Context, cond models.EncryptedBool, a, b models.EncryptedAmount) (models.EncryptedAmount, error)

	// ShiftRight divides by 2^shift, truncating toward zero.
	ShiftRight(ctx context.Context, a models.EncryptedAmount, shift uint) (models.EncryptedAmount, error)

	// MulPlain and DivPlain are scalar arithmetic against public
	// constants. Optional primitives: engines without them fail with
	// ErrUnsupportedPrimitive and omit PrimMul/PrimDiv from their
	// capability set, which steers consumers onto shift-based paths.
	MulPlain(ctx context.Context, a models.EncryptedAmount, k uint64) (models.EncryptedAmount, error)
	DivPlain(ctx context.Context, a models.EncryptedAmount, k uint64) (models.EncryptedAmount, error)

	// GrantAccess authorizes principal to request decryption of handle.
	// Grants are idempotent and append-only.
	GrantAccess(ctx context.Context, handle models.HandleID, principal models.Principal) error

	// HasAccess reports whether principal holds a grant on handle.
	HasAccess(ctx context.Context, handle models.HandleID, principal models.Principal) (bool, error)

	// Decrypt is the governed decryption path. Only the gateway calls it,
	// and only on behalf of a principal holding a grant; everything else
	// fails with ErrUngrantedAccess.
	Decrypt(ctx context.Context, handle models.HandleID, requester models.Principal) (models.Micro, error)

	// Capabilities declares the primitive set this engine provides.
	Capabilities() PrimitiveSet
}
