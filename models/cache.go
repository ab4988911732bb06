package models

import "time"

// CachedDecryption is the operator client's local record of one decryption
// request it has issued. The fulfilled plaintexts are never stored in the
// clear: Payload holds the AES-GCM ciphertext of the result JSON, keyed by a
// cache key derived from the operator's password.
type CachedDecryption struct {
	// RequestID is the gateway-assigned identifier of the request.
	RequestID string `json:"request_id"`

	// State mirrors the server-side lifecycle: pending, fulfilled, expired.
	State DecryptionState `json:"state"`

	// Payload is the base64 AES-GCM ciphertext of the fulfilled result.
	// Empty while the request is pending or after it expired.
	Payload string `json:"payload,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the name of the local cache table
// associated with the CachedDecryption model.
func (c CachedDecryption) TableName() string {
	return "decryption_cache"
}
