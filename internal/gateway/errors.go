// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package gateway

import "errors"

var (
	// ErrNoHandles is returned when a decryption request lists nothing to
	// decrypt.
	ErrNoHandles = errors.New("decryption request lists no handles")

	// ErrRequestNotFound is returned when the request id is unknown, which
	// includes requests already swept after expiry.
	ErrRequestNotFound = errors.New("decryption request not found")

	// ErrRequestPending is returned when results are read before the
	// callback has delivered them.
	ErrRequestPending = errors.New("decryption request still pending")

	// ErrRequestExpired is returned when the deadline passed before the
	// callback arrived, or when a request is created with a deadline
	// already in the past.
	ErrRequestExpired = errors.New("decryption request expired")

	// ErrAlreadyFulfilled is returned for a second callback on the same
	// request.
	ErrAlreadyFulfilled = errors.New("decryption request already fulfilled")

	// ErrBadSignature is returned when the callback HMAC does not match
	// the canonical payload.
	ErrBadSignature = errors.New("callback signature mismatch")

	// ErrMalformedCallback is returned when an authenticated callback does
	// not answer exactly the requested handles.
	ErrMalformedCallback = errors.New("callback does not match requested handles")
)
