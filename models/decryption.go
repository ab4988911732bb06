// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package models

import "time"

// DecryptionState is the lifecycle position of an asynchronous decryption
// request held in the gateway's pending table.
type DecryptionState string

const (
	// DecryptionPending means the request was accepted and awaits the
	// gateway callback.
	DecryptionPending DecryptionState = "pending"

	// DecryptionFulfilled means the callback delivered plaintexts before
	// the deadline.
	DecryptionFulfilled DecryptionState = "fulfilled"

	// DecryptionExpired means the deadline passed with no callback. The
	// request is abandoned; no error reaches the original requester.
	DecryptionExpired DecryptionState = "expired"
)

// DecryptionRequest tracks one asynchronous decryption round-trip. Requests
// return immediately with a RequestID; plaintexts arrive later through the
// authenticated gateway callback or never, if the deadline lapses first.
type DecryptionRequest struct {
	// RequestID is a UUID assigned when the request is accepted.
	RequestID string `json:"request_id"`

	// Requester is the principal asking for plaintext. Each listed handle
	// must carry a grant for this principal or the request is rejected
	// outright.
	Requester Principal `json:"requester"`

	// Handles are the ciphertexts to decrypt.
	Handles []HandleID `json:"handles"`

	// Deadline bounds how long the request may stay pending. Entries past
	// the deadline are expired by the sweeper and become unanswerable.
	Deadline time.Time `json:"deadline"`

	State     DecryptionState `json:"state"`
	CreatedAt time.Time       `json:"created_at"`

	// FulfilledAt is set when the callback delivers results.
	FulfilledAt *time.Time `json:"fulfilled_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the DecryptionRequest model.
func (d DecryptionRequest) TableName() string {
	return "decryption_requests"
}

// DecryptionResult carries the plaintexts delivered by the gateway callback
// for one request. Values are keyed by the handle they decrypt.
type DecryptionResult struct {
	RequestID   string             `json:"request_id"`
	Values      map[HandleID]Micro `json:"values"`
	FulfilledAt time.Time          `json:"fulfilled_at"`
}
