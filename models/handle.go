// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package models

// HandleID identifies one ciphertext inside the engine's backing store.
//
// A handle is pure identity: it carries no information about the value it
// references. The plaintext behind a handle lives only inside the ciphertext
// engine and can be obtained exclusively through the asynchronous decryption
// gateway, and only by principals holding an access grant for the handle.
type HandleID string

// Empty reports whether the identifier references no ciphertext.
func (h HandleID) Empty() bool {
	return h == ""
}

// EncryptedAmount is an opaque reference to an encrypted unsigned 64-bit
// integer in micro-units (six decimal places).
//
// Every arithmetic operation on encrypted amounts yields a NEW handle with an
// empty access list; the producing component must grant access explicitly
// before the value crosses any boundary. The struct intentionally holds no
// plaintext: there is nothing to accidentally log, serialize, or compare.
type EncryptedAmount struct {
	// Handle is the engine-side identity of the ciphertext.
	Handle HandleID `json:"handle"`
}

// Empty reports whether the reference points at no ciphertext.
// Note: an encrypted zero is a real ciphertext and is NOT empty.
func (a EncryptedAmount) Empty() bool {
	return a.Handle.Empty()
}

// EncryptedBool is an opaque reference to an encrypted boolean produced by
// comparison operations (gt, ge, le, eq) or their combinations (and, or).
//
// Encrypted booleans are values to be combined algebraically and fed into
// select operations; they must never steer classical control flow.
type EncryptedBool struct {
	// Handle is the engine-side identity of the ciphertext.
	Handle HandleID `json:"handle"`
}

// Empty reports whether the reference points at no ciphertext.
func (b EncryptedBool) Empty() bool {
	return b.Handle.Empty()
}

// EncryptedInput is a ciphertext submitted by an external party together
// with a proof binding it to the submitting identity. The engine validates
// the binding before the value is admitted into any computation.
type EncryptedInput struct {
	// Ciphertext is the serialized encrypted value as produced by the
	// submitting party's encryption tooling.
	Ciphertext []byte `json:"ciphertext"`

	// Proof binds Ciphertext to the submitting principal. Its format is
	// engine-specific; the core treats verification as a black box.
	Proof []byte `json:"proof"`
}
