package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keyring_service_mock.go -package=mock

// KeyringService owns every key-derivation and at-rest-encryption concern of
// the application. It knows nothing about the network, the database, or the
// payroll domain; its only job is deriving and protecting key material.
//
// Three independent concerns share the same Argon2id core:
//
//	AuthHash    = HashPassword(password)                  (operator verifier)
//	CallbackKey = DeriveCallbackKey(sharedSecret, salt)   (gateway HMAC key)
//	CacheKey    = DeriveCacheKey(password, salt)          (client cache at rest)
type KeyringService interface {
	// GenerateSalt generates a random 16-byte / 128-bit salt. A salt is
	// not a secret; it exists so identical inputs derive different keys.
	GenerateSalt() ([]byte, error)

	// HashPassword derives an Argon2id verifier from an operator password
	// with a fresh random salt and returns it in the standard
	// $argon2id$... encoded form, safe to persist.
	HashPassword(password string) (string, error)

	// VerifyPassword re-derives the verifier from password and the
	// parameters embedded in encoded, and compares in constant time.
	VerifyPassword(password, encoded string) (bool, error)

	// DeriveCallbackKey derives the 256-bit HMAC key that authenticates
	// decryption-gateway callbacks from the deployment's shared secret.
	// Both sides of the gateway boundary derive the same key; the secret
	// itself never appears in any signature computation.
	DeriveCallbackKey(sharedSecret string, salt []byte) []byte

	// DeriveCacheKey derives the 256-bit key the operator client uses to
	// encrypt its local cache. The key exists only in client memory and
	// is never transmitted.
	DeriveCacheKey(password string, salt []byte) []byte

	// EncryptData serializes the given value to JSON and encrypts it with
	// the key. Returns a base64-encoded blob (nonce || ciphertext) safe to
	// store at rest.
	EncryptData(data any, key []byte) (string, error)

	// DecryptData decrypts a base64-encoded blob with the key and
	// unmarshals the result into the target pointer (same as
	// json.Unmarshal).
	DecryptData(encryptedB64 string, key []byte, target any) error
}
