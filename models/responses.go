package models

// InitRunResponse acknowledges run initialization with the public metadata
// of the freshly created aggregate.
type InitRunResponse struct {
	Run RunMetadata `json:"run"`
}

// BatchResponse reports the outcome of one processed batch. Skipped counts
// inactive items inside the range; they are public metadata.
type BatchResponse struct {
	Run       RunMetadata `json:"run"`
	Processed int64       `json:"processed"`
	Skipped   int64       `json:"skipped"`
}

// ClaimResponse returns the handle of the encrypted boolean produced by a
// range claim. The requester holds a grant on it and may request its
// decryption; no other derived value is exposed.
type ClaimResponse struct {
	Result EncryptedBool `json:"result"`
}

// DecryptResponse acknowledges an accepted decryption request.
type DecryptResponse struct {
	RequestID string `json:"request_id"`

	// Deadline echoes the resolved absolute deadline in RFC 3339 form.
	Deadline string `json:"deadline"`
}

// DecryptionStatusResponse is the poll view of one decryption request.
// Result is populated only once the gateway callback has fulfilled the
// request; while pending or after expiry it stays nil.
type DecryptionStatusResponse struct {
	Request DecryptionRequest `json:"request"`
	Result  *DecryptionResult `json:"result,omitempty"`
}

// ItemView is the operator-facing projection of an item: plaintext metadata
// plus ciphertext handles. Amounts never appear.
type ItemView struct {
	Index     int64           `json:"index"`
	SubjectID int64           `json:"subject_id"`
	Category  string          `json:"category,omitempty"`
	Tier      uint64          `json:"tier"`
	Active    bool            `json:"active"`
	LatestNet EncryptedAmount `json:"latest_net"`
}
