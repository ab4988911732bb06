package service

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/models"
)

// RunService drives the payroll run lifecycle and persists every transition
// alongside the in-memory coordinator.
type RunService interface {
	InitRun(ctx context.Context) (models.RunMetadata, error)
	ProcessBatch(ctx context.Context, runID int64, request models.BatchRequest) (models.BatchResponse, error)
	SealRun(ctx context.Context, runID int64, force bool) (models.RunMetadata, error)

	GetRun(ctx context.Context, runID int64) (models.RunMetadata, error)
	GetAllRuns(ctx context.Context) ([]models.RunMetadata, error)

	// NextDueAt reports when the next run becomes initializable. ok is
	// false when no run was ever initialized.
	NextDueAt(ctx context.Context) (dueAt time.Time, ok bool)
}

// ItemService manages the enrolled item ledger. Submitted amounts arrive as
// proofs-bound ciphertexts; the service admits them through the engine and
// never sees a plaintext.
type ItemService interface {
	EnrollItem(ctx context.Context, operatorID int64, request models.EnrollItemRequest) (models.ItemView, error)
	AttachAdjustment(ctx context.Context, operatorID, index int64, request models.AdjustmentRequest) (models.ItemView, error)
	GetAllItems(ctx context.Context) ([]models.ItemView, error)
}

// ClaimService produces range-proof style encrypted booleans over an item's
// latest derived value. The boolean handle is the only value exposed; the
// compared amount never leaves the engine.
type ClaimService interface {
	AboveThreshold(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error)
	WithinRange(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error)
}

// DecryptionService fronts the asynchronous decryption gateway and keeps the
// persistent request ledger in step with the gateway's pending table.
type DecryptionService interface {
	RequestDecryption(ctx context.Context, operatorID int64, request models.DecryptRequest) (models.DecryptResponse, error)
	GetRequest(ctx context.Context, requestID string) (models.DecryptionRequest, error)
	GetResult(ctx context.Context, requestID string) (models.DecryptionResult, error)

	// Fulfill applies one authenticated gateway callback.
	Fulfill(ctx context.Context, callback models.GatewayCallback) (models.DecryptionResult, error)

	// ExpireOverdue expires every pending request whose deadline has
	// passed and persists the transitions. Returns how many were expired.
	ExpireOverdue(ctx context.Context) (int, error)
}

// AuthService handles operator registration, credential verification, and
// the JWT token lifecycle.
type AuthService interface {
	RegisterOperator(ctx context.Context, request models.RegisterRequest) (models.Operator, error)
	Login(ctx context.Context, request models.LoginRequest) (models.Operator, error)
	CreateToken(ctx context.Context, operator models.Operator) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build/application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
