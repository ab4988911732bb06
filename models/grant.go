package models

import "time"

// AccessGrant records that a principal may request decryption of one
// ciphertext handle. Grants are append-only; revocation is out of scope.
//
// Every handle that crosses a function or invocation boundary must carry at
// least one grant. An ungranted persisted handle is a latent bug: the next
// decryption request against it fails.
type AccessGrant struct {
	// Handle is the ciphertext the grant applies to.
	Handle HandleID `json:"handle"`

	// Principal is the party allowed to request decryption.
	Principal Principal `json:"principal"`

	GrantedAt time.Time `json:"granted_at"`
}

// TableName returns the name of the database table
// associated with the AccessGrant model.
func (g AccessGrant) TableName() string {
	return "access_grants"
}
