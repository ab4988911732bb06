// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package app contains shared application-layer constants used across the
// blind-payroll server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API, and
// lets the operator client map response bodies back to business errors.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing operator record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoOperatorIDProvided is returned when a handler requires an operator
	// ID (extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoOperatorIDProvided = "no operator ID provided"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgRunNotFound is returned when a read or mutation targets a run ID
	// that was never assigned.
	MsgRunNotFound = "run not found"

	// MsgRunNotDue is returned when run initialization is attempted before
	// the configured interval since the previous run has elapsed.
	MsgRunNotDue = "previous run is still inside the frequency window"

	// MsgRunAlreadySealed is returned for any mutation of a sealed run.
	MsgRunAlreadySealed = "run is already sealed"

	// MsgRunIncomplete is returned when sealing is refused because items
	// that were active at init remain unprocessed and force was not set.
	MsgRunIncomplete = "active items remain unprocessed"

	// MsgDoubleProcessing is returned when a batch range overlaps an index
	// the run has already covered.
	MsgDoubleProcessing = "range overlaps an already processed batch"

	// MsgInvalidRange is returned when a batch range is not a half-open,
	// non-empty slice of the current item list.
	MsgInvalidRange = "batch range is invalid"

	// MsgItemNotFound is returned when a read or mutation targets an item
	// index outside the enrolled list.
	MsgItemNotFound = "item not found"

	// MsgNoDerivedValue is returned when a claim targets an item that no
	// sealed or accumulating run has processed yet.
	MsgNoDerivedValue = "item has no derived value yet"

	// MsgProofRejected is returned when an encrypted input's binding proof
	// does not verify against the submitting operator.
	MsgProofRejected = "input proof rejected"

	// MsgUngrantedHandle is returned when a decryption request lists a
	// handle the requesting operator holds no grant for.
	MsgUngrantedHandle = "handle carries no grant for requester"

	// MsgDecryptionNotFound is returned when a poll targets a request ID
	// that is unknown or already swept after expiry.
	MsgDecryptionNotFound = "decryption request not found"

	// MsgDecryptionExpired is returned when the deadline passed before the
	// gateway callback arrived.
	MsgDecryptionExpired = "decryption request expired"

	// MsgBadCallbackSignature is returned when the gateway callback HMAC
	// does not match the canonical payload.
	MsgBadCallbackSignature = "callback signature rejected"

	// MsgCallbackAlreadyFulfilled is returned for a second callback on a
	// request that already has results.
	MsgCallbackAlreadyFulfilled = "decryption request already fulfilled"

	// MsgCallbackMismatch is returned when an authenticated callback does
	// not answer exactly the requested handles.
	MsgCallbackMismatch = "callback does not match requested handles"

	// MsgIntegrityCheckFailed is returned when the transport integrity hash
	// of a request body does not match the body received.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgVersionIsNotSpecified is returned when the version endpoint is
	// queried but the build carries no version string.
	MsgVersionIsNotSpecified = "application version is not specified"
)
