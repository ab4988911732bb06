package service

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/models"
)

// EnrollItemForm is the plaintext enrollment input collected by the operator
// client. The value is sealed with the input-admission key before it leaves
// the process; it never crosses the wire in the clear.
type EnrollItemForm struct {
	SubjectID int64
	Category  string
	Tier      uint64
	Active    bool
	Value     models.Micro
}

// ClientAuthService defines the client-side contract for operator
// registration and authentication. Implementations are responsible for
// deriving the local cache key and for communicating with the remote server
// adapter.
type ClientAuthService interface {
	// Register creates a new operator account on the server. The password
	// travels to the server once, where the argon2id verifier is derived;
	// the client never stores it. Returns an error if validation or the
	// server call fails.
	Register(ctx context.Context, request models.RegisterRequest) error

	// Login authenticates the operator against the server. On success it
	// derives the local cache key from the password, hands it to the
	// decryption service, and returns the operator record. The cache key
	// exists only in client memory.
	Login(ctx context.Context, request models.LoginRequest) (models.Operator, error)
}

// ClientRunService defines the client-side contract for driving payroll runs.
// Mutations go straight to the server; every run projection that comes back
// is written through to the local cache so listings stay readable when the
// server is unreachable.
type ClientRunService interface {
	// InitRun opens the next payroll run on the server and caches its
	// metadata. Returns the business error mapped from the server response
	// (e.g. the frequency-gate refusal) if initialization is rejected.
	InitRun(ctx context.Context, operatorID int64) (models.RunMetadata, error)

	// ProcessBatch submits one item index range for processing within the
	// run and caches the updated run metadata.
	ProcessBatch(ctx context.Context, operatorID, runID int64, request models.BatchRequest) (models.BatchResponse, error)

	// SealRun finalizes the run on the server and caches the sealed
	// metadata, including the audit fingerprint.
	SealRun(ctx context.Context, operatorID, runID int64, force bool) (models.RunMetadata, error)

	// GetRuns fetches the run listing from the server and refreshes the
	// local cache. When the server is unreachable it serves the cached
	// listing instead; the error is returned only if the cache has nothing
	// to offer either.
	GetRuns(ctx context.Context, operatorID int64) ([]models.RunMetadata, error)

	// GetRun fetches one run's metadata, falling back to the local cache
	// the same way GetRuns does.
	GetRun(ctx context.Context, operatorID, runID int64) (models.RunMetadata, error)
}

// ClientItemService defines the client-side contract for enrolling items and
// issuing range claims. Submitted amounts are sealed locally with the
// input-admission key; everything returned by the server is either public
// metadata or a ciphertext handle.
type ClientItemService interface {
	// EnrollItem seals form.Value against the submitting operator and
	// registers the item on the server. Returns an error if no input key is
	// configured, validation fails, or the server rejects the enrollment.
	EnrollItem(ctx context.Context, operatorID int64, form EnrollItemForm) (models.ItemView, error)

	// AttachAdjustment seals value against the submitting operator and
	// attaches it as the item's one-time adjustment for the next run.
	AttachAdjustment(ctx context.Context, operatorID, index int64, value models.Micro) (models.ItemView, error)

	// GetItems fetches the operator-facing projections of all enrolled
	// items from the server.
	GetItems(ctx context.Context) ([]models.ItemView, error)

	// ClaimAboveThreshold asks the server whether the item's latest derived
	// value meets the public threshold. The response carries a handle to an
	// encrypted boolean granted to the calling operator.
	ClaimAboveThreshold(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error)

	// ClaimWithinRange asks the server whether the item's latest derived
	// value lies in the inclusive public range.
	ClaimWithinRange(ctx context.Context, request models.ClaimRequest) (models.ClaimResponse, error)
}

// ClientDecryptionService defines the client-side contract for governed
// decryption requests and their local record. Fulfilled plaintexts are held
// in the local cache encrypted under the operator's cache key; the repository
// layer never sees an amount in the clear.
type ClientDecryptionService interface {
	// SetCacheKey stores the key used to encrypt fulfilled payloads at
	// rest. It is called once after a successful login.
	SetCacheKey(key []byte)

	// RequestDecryption submits handles for asynchronous decryption and
	// records the accepted request as pending in the local cache.
	RequestDecryption(ctx context.Context, operatorID int64, handles []models.HandleID, deadlineSeconds int64) (models.DecryptResponse, error)

	// Refresh polls the server for every locally pending request and
	// settles the cache: fulfilled results are encrypted and stored,
	// expired requests are marked. Returns the number of requests that
	// changed state. Unreachable-server errors are logged, not returned;
	// the next tick retries.
	Refresh(ctx context.Context, operatorID int64) (int, error)

	// GetRequests returns the local record of every decryption request the
	// operator has issued, newest first. Payloads stay encrypted.
	GetRequests(ctx context.Context, operatorID int64) ([]models.CachedDecryption, error)

	// GetResult decrypts and returns the fulfilled result of one request
	// from the local cache. Returns [ErrResultNotReady] while the request
	// is pending and [ErrResultUnavailable] once it has expired.
	GetResult(ctx context.Context, operatorID int64, requestID string) (models.DecryptionResult, error)
}

// ClientRefreshJob defines the contract for a background worker that
// periodically settles pending decryption requests against the server.
type ClientRefreshJob interface {
	// Start launches the background refresh goroutine. It polls every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, operatorID int64, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
