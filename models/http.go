package models

// RegisterRequest carries the credentials for creating an operator account.
type RegisterRequest struct {
	Login    string `json:"login"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// LoginRequest carries the credentials for authenticating an operator.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// BatchRequest asks the coordinator to process the half-open item index
// range [Start, End) within a run.
type BatchRequest struct {
	// Start is the first item index to process.
	Start int64 `json:"start"`

	// End is one past the last item index to process.
	// Must satisfy Start < End <= item list length.
	End int64 `json:"end"`
}

// SealRequest finalizes a run.
type SealRequest struct {
	// Force seals even when not every active item has been processed.
	// The omission is recorded in the server log; the fingerprint does
	// not distinguish forced seals.
	Force bool `json:"force,omitempty"`
}

// EnrollItemRequest registers a new payroll item. The base value arrives
// encrypted with a proof binding the ciphertext to the submitting party;
// plaintext amounts never appear in enrollment.
type EnrollItemRequest struct {
	SubjectID int64          `json:"subject_id"`
	Category  string         `json:"category,omitempty"`
	Tier      uint64         `json:"tier"`
	Active    bool           `json:"active"`
	BaseValue EncryptedInput `json:"base_value"`
}

// AdjustmentRequest attaches a one-time encrypted adjustment to an item.
// The adjustment participates in exactly the next processed run.
type AdjustmentRequest struct {
	Adjustment EncryptedInput `json:"adjustment"`
}

// ClaimRequest asks for a branchless range claim over an item's latest
// derived value. Thresholds are public reference values in micro-units; the
// response is a handle to an encrypted boolean - the compared amount itself
// is never exposed.
type ClaimRequest struct {
	// ItemIndex selects the item whose latest net value is tested.
	ItemIndex int64 `json:"item_index"`

	// Threshold is the lower reference bound in micro-units.
	Threshold Micro `json:"threshold"`

	// UpperBound is the upper reference bound in micro-units.
	// Used only by within-range claims.
	UpperBound Micro `json:"upper_bound,omitempty"`
}

// DecryptRequest asks the gateway to decrypt the listed handles for the
// authenticated principal. It returns immediately with a request ID;
// plaintexts arrive through the callback or never.
type DecryptRequest struct {
	Handles []HandleID `json:"handles"`

	// DeadlineSeconds bounds how long the request may stay pending.
	// Zero selects the server's configured default.
	DeadlineSeconds int64 `json:"deadline_seconds,omitempty"`
}

// GatewayCallback is the payload the decryption gateway posts back once a
// threshold decryption completes. Signature is the hex HMAC-SHA256 of the
// canonical payload; unauthenticated callbacks are rejected.
type GatewayCallback struct {
	RequestID string            `json:"request_id"`
	Values    map[string]uint64 `json:"values"`
	Signature string            `json:"signature"`
}
