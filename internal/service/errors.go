package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// ErrNoDerivedValue is returned when a claim targets an item that no
	// run has processed yet, so there is no net value to test.
	ErrNoDerivedValue = errors.New("item has no derived value yet")
)

// Client-side sentinels.
var (
	// ErrRegisterOnServer wraps a failed registration call so the TUI can
	// distinguish it from local failures.
	ErrRegisterOnServer = errors.New("registration on server failed")

	// ErrLoginOnServer wraps a failed login call.
	ErrLoginOnServer = errors.New("login on server failed")

	// ErrInputKeyNotSet is returned when an enrollment or adjustment is
	// attempted without a configured input-admission key.
	ErrInputKeyNotSet = errors.New("input-admission key is not configured")

	// ErrCacheKeyNotSet is returned when a fulfilled payload must be
	// encrypted or decrypted before any login has derived the cache key.
	ErrCacheKeyNotSet = errors.New("cache key is not set")

	// ErrResultNotReady is returned when a decryption result is read while
	// the request is still pending on the server.
	ErrResultNotReady = errors.New("decryption result is not ready")

	// ErrResultUnavailable is returned when a decryption result is read
	// after the request expired unanswered.
	ErrResultUnavailable = errors.New("decryption result is unavailable")
)
