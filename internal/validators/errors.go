package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidBatchStart = errors.New("batch start must not be negative")
	ErrInvalidBatchRange = errors.New("batch end must be greater than start")
	ErrInvalidSubjectID  = errors.New("invalid subject ID")
	ErrInvalidTier       = errors.New("invalid tier")
	ErrEmptyCiphertext   = errors.New("ciphertext is required")
	ErrEmptyProof        = errors.New("ciphertext proof is required")
	ErrInvalidItemIndex  = errors.New("invalid item index")
	ErrInvalidBounds     = errors.New("upper bound must not be below threshold")
	ErrEmptyHandles      = errors.New("handles list cannot be empty")
	ErrEmptyHandle       = errors.New("handle cannot be empty")
	ErrInvalidDeadline   = errors.New("deadline seconds must not be negative")
	ErrEmptyRequestID    = errors.New("request ID is required")
	ErrEmptySignature    = errors.New("signature is required")
	ErrEmptyValues       = errors.New("values map cannot be empty")
)
