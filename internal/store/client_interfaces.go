package store

import (
	"context"

	"github.com/obscuralabs/blind-payroll/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRunCacheRepository is the low-level local cache of run metadata. The
// operator client refreshes it from the server listing and reads it back for
// offline display; entries are public projections and carry no handles.
type LocalRunCacheRepository interface {
	SaveRuns(ctx context.Context, operatorID int64, runs ...models.RunMetadata) error
	GetRun(ctx context.Context, runID, operatorID int64) (models.RunMetadata, error)
	GetAllRuns(ctx context.Context, operatorID int64) ([]models.RunMetadata, error)
	PurgeRuns(ctx context.Context, operatorID int64) error
}

// LocalDecryptionCacheRepository is the low-level local record of decryption
// requests the operator has issued. Fulfilled payloads are stored encrypted;
// the repository never sees a plaintext amount.
type LocalDecryptionCacheRepository interface {
	SaveRequest(ctx context.Context, operatorID int64, cached models.CachedDecryption) error
	MarkFulfilled(ctx context.Context, operatorID int64, requestID string, payload string) error
	MarkExpired(ctx context.Context, operatorID int64, requestID string) error
	GetRequest(ctx context.Context, requestID string, operatorID int64) (models.CachedDecryption, error)
	GetPendingRequestIDs(ctx context.Context, operatorID int64) ([]string, error)
	GetAllRequests(ctx context.Context, operatorID int64) ([]models.CachedDecryption, error)
}
