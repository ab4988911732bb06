package engine

import "errors"

// Sentinel errors surfaced by engine implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUngrantedAccess is returned when a principal requests decryption
	// of a handle it holds no access grant for. The engine rejects the
	// request outright; the error propagates to the caller unchanged.
	ErrUngrantedAccess = errors.New("principal holds no grant for ciphertext")

	// ErrUnsupportedPrimitive is returned when a consumer requires a
	// primitive the engine does not provide. Consumers must check
	// capabilities at construction time so this never fires
	// mid-computation.
	ErrUnsupportedPrimitive = errors.New("ciphertext engine does not support required primitive")

	// ErrUnknownHandle is returned when an operation references a handle
	// absent from the engine's backing store.
	ErrUnknownHandle = errors.New("unknown ciphertext handle")

	// ErrWrongHandleKind is returned when an amount handle is used where a
	// boolean handle is required, or vice versa.
	ErrWrongHandleKind = errors.New("ciphertext handle has wrong kind for operation")

	// ErrInvalidProof is returned when an input ciphertext's binding proof
	// does not verify against the submitting principal.
	ErrInvalidProof = errors.New("input proof does not bind ciphertext to sender")
)
