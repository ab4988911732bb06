// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

// Package adapter provides transport-layer abstractions for communicating with
// the blind-payroll server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package currently ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]); a gRPC implementation is
// reserved for future use in grpc.go.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/obscuralabs/blind-payroll/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// blind-payroll server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
//
// Everything crossing this boundary is either public run/item metadata or a
// ciphertext handle; the adapter never sees a plaintext amount outside the
// values delivered by a fulfilled decryption request.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an operator account on the server. On success it
	// stores the returned bearer token via SetToken and returns the operator
	// record with OperatorID recovered from the token subject. Returns an
	// error if the request fails or the server responds with a non-2xx
	// status.
	Register(ctx context.Context, request models.RegisterRequest) (models.Operator, error)

	// Login authenticates the operator with the server. On success it stores
	// the returned bearer token via SetToken and returns the operator record
	// with OperatorID recovered from the token subject. Returns
	// [ErrUnauthorized] (wrapped) on bad credentials.
	Login(ctx context.Context, request models.LoginRequest) (models.Operator, error)

	// InitRun opens the next payroll run and returns its public metadata.
	// Returns [ErrConflict] (wrapped) when the run frequency gate refuses a
	// new run. Requires a valid bearer token.
	InitRun(ctx context.Context) (models.RunMetadata, error)

	// ProcessBatch submits the half-open item index range carried by request
	// for processing within the given run. Returns the updated run metadata
	// together with processed/skipped counters. Requires a valid bearer
	// token.
	ProcessBatch(ctx context.Context, runID int64, request models.BatchRequest) (models.BatchResponse, error)

	// SealRun finalizes the run and returns its sealed metadata, including
	// the audit fingerprint. When force is false, sealing with unprocessed
	// active items is refused with [ErrConflict] (wrapped). Requires a valid
	// bearer token.
	SealRun(ctx context.Context, runID int64, force bool) (models.RunMetadata, error)

	// GetRuns fetches the public metadata of every known run, newest last.
	// Requires a valid bearer token.
	GetRuns(ctx context.Context) ([]models.RunMetadata, error)

	// GetRun fetches the public metadata of one run. Returns [ErrNotFound]
	// (wrapped) for an unknown run ID. Requires a valid bearer token.
	GetRun(ctx context.Context, runID int64) (models.RunMetadata, error)

	// GetItems fetches the operator-facing projections of all enrolled
	// items. Requires a valid bearer token.
	GetItems(ctx context.Context) ([]models.ItemView, error)

	// EnrollItem registers a new payroll item whose base value arrives
	// encrypted with a sender-bound proof. Returns the enrolled item view.
	// Requires a valid bearer token.
	EnrollItem(ctx context.Context, request models.EnrollItemRequest) (models.ItemView, error)

	// AttachAdjustment attaches a one-time encrypted adjustment to the item
	// at index. Returns the updated item view, or [ErrNotFound] (wrapped) for
	// an unknown index. Requires a valid bearer token.
	AttachAdjustment(ctx context.Context, index int64, request models.AdjustmentRequest) (models.ItemView, error)

	// ClaimAboveThreshold asks whether the item's latest derived value meets
	// the public threshold. The response carries a handle to an encrypted
	// boolean granted to the calling operator. Requires a valid bearer token.
	ClaimAboveThreshold(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error)

	// ClaimWithinRange asks whether the item's latest derived value lies in
	// the inclusive public range. The response carries a handle to an
	// encrypted boolean granted to the calling operator. Requires a valid
	// bearer token.
	ClaimWithinRange(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error)

	// RequestDecryption submits handles for governed asynchronous decryption
	// and returns immediately with the accepted request ID and resolved
	// deadline. Requires a valid bearer token.
	RequestDecryption(ctx context.Context, request models.DecryptRequest) (models.DecryptResponse, error)

	// GetDecryption polls one decryption request. The returned status carries
	// the lifecycle record and, once the gateway callback has fulfilled the
	// request, the delivered plaintext values. Returns [ErrNotFound]
	// (wrapped) for an unknown request ID. Requires a valid bearer token.
	GetDecryption(ctx context.Context, requestID string) (models.DecryptionStatusResponse, error)

	// GetVersion fetches the server build version.
	GetVersion(ctx context.Context) (string, error)
}
