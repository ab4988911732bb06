package models

import "time"

// Operator represents a payroll operator account used for authentication
// and authorization. Operators drive runs, enroll items, and request
// decryption of values granted to them; they never see plaintext amounts
// outside the governed gateway path.
type Operator struct {
	// OperatorID is the internal unique identifier of the operator.
	// It is not exposed via JSON and is used only at the persistence layer.
	OperatorID int64 `json:"-"`

	// Login is the unique operator login identifier.
	Login string `json:"login"`

	// Name is the display name of the operator.
	// It is non-sensitive and may be shown in the TUI.
	Name string `json:"name"`

	// AuthHash stores the argon2id-encoded verifier of the operator's
	// password. This value MUST be a KDF output, never plaintext, and it
	// never leaves the persistence layer.
	AuthHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// Principal returns the grant principal this operator acts as.
func (o Operator) Principal() Principal {
	return OperatorPrincipal(o.OperatorID)
}

// TableName returns the name of the database table
// associated with the Operator model.
func (o Operator) TableName() string {
	return "operators"
}
