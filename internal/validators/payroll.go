package validators

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/models"
)

// Field name constants used to restrict validation to a subset of fields
// (field-level scoping). Passing no fields validates everything the request
// type carries.
const (
	// FieldBatchStart targets the first item index of a batch range.
	FieldBatchStart = "start"

	// FieldBatchEnd targets the one-past-the-end index of a batch range.
	FieldBatchEnd = "end"

	// FieldSubjectID targets the data-subject identifier of an enrollment.
	FieldSubjectID = "subject_id"

	// FieldTier targets the bonus-cap tier of an enrollment.
	FieldTier = "tier"

	// FieldBaseValue targets the encrypted base value of an enrollment.
	FieldBaseValue = "base_value"

	// FieldAdjustment targets the encrypted one-time adjustment payload.
	FieldAdjustment = "adjustment"

	// FieldItemIndex targets the ledger index a claim is made against.
	FieldItemIndex = "item_index"

	// FieldClaimBounds targets the threshold/upper-bound pair of a
	// within-range claim.
	FieldClaimBounds = "claim_bounds"

	// FieldHandles targets the ciphertext handle list of a decryption request.
	FieldHandles = "handles"

	// FieldDeadline targets the pending-deadline override of a decryption
	// request.
	FieldDeadline = "deadline_seconds"

	// FieldRequestID targets the request identifier of a gateway callback.
	FieldRequestID = "request_id"

	// FieldValues targets the decrypted values map of a gateway callback.
	FieldValues = "values"

	// FieldSignature targets the HMAC signature of a gateway callback.
	FieldSignature = "signature"
)

// PayrollValidator implements the Validator interface for the payroll API
// request models: BatchRequest, EnrollItemRequest, AdjustmentRequest,
// ClaimRequest, DecryptRequest, and GatewayCallback.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type PayrollValidator struct {
}

// NewPayrollValidator constructs a new PayrollValidator and returns it as
// the Validator interface.
func NewPayrollValidator() Validator {
	return &PayrollValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Unknown types fail ErrUnsupportedType.
func (v *PayrollValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BatchRequest:
		return v.validateBatchRequest(ctx, value, fields...)
	case *models.BatchRequest:
		return v.validateBatchRequest(ctx, *value, fields...)

	case models.EnrollItemRequest:
		return v.validateEnrollItemRequest(ctx, value, fields...)
	case *models.EnrollItemRequest:
		return v.validateEnrollItemRequest(ctx, *value, fields...)

	case models.AdjustmentRequest:
		return v.validateAdjustmentRequest(ctx, value, fields...)
	case *models.AdjustmentRequest:
		return v.validateAdjustmentRequest(ctx, *value, fields...)

	case models.ClaimRequest:
		return v.validateClaimRequest(ctx, value, fields...)
	case *models.ClaimRequest:
		return v.validateClaimRequest(ctx, *value, fields...)

	case models.DecryptRequest:
		return v.validateDecryptRequest(ctx, value, fields...)
	case *models.DecryptRequest:
		return v.validateDecryptRequest(ctx, *value, fields...)

	case models.GatewayCallback:
		return v.validateGatewayCallback(ctx, value, fields...)
	case *models.GatewayCallback:
		return v.validateGatewayCallback(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PayrollValidator) validateBatchRequest(ctx context.Context, request models.BatchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBatchStart, FieldBatchEnd}
	}

	for _, f := range fields {
		switch f {
		case FieldBatchStart:
			if request.Start < 0 {
				return ErrInvalidBatchStart
			}
		case FieldBatchEnd:
			if request.End <= request.Start {
				return ErrInvalidBatchRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayrollValidator) validateEnrollItemRequest(ctx context.Context, request models.EnrollItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSubjectID, FieldTier, FieldBaseValue}
	}

	for _, f := range fields {
		switch f {
		case FieldSubjectID:
			if request.SubjectID <= 0 {
				return ErrInvalidSubjectID
			}
		case FieldTier:
			if request.Tier == 0 {
				return ErrInvalidTier
			}
		case FieldBaseValue:
			if err := validateEncryptedInput(request.BaseValue); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayrollValidator) validateAdjustmentRequest(ctx context.Context, request models.AdjustmentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAdjustment}
	}

	for _, f := range fields {
		switch f {
		case FieldAdjustment:
			if err := validateEncryptedInput(request.Adjustment); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayrollValidator) validateClaimRequest(ctx context.Context, request models.ClaimRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItemIndex, FieldClaimBounds}
	}

	for _, f := range fields {
		switch f {
		case FieldItemIndex:
			if request.ItemIndex < 0 {
				return ErrInvalidItemIndex
			}
		case FieldClaimBounds:
			// Above-threshold claims leave UpperBound zero; a within-range
			// claim must keep its bounds ordered.
			if request.UpperBound != 0 && request.UpperBound < request.Threshold {
				return ErrInvalidBounds
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayrollValidator) validateDecryptRequest(ctx context.Context, request models.DecryptRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldHandles, FieldDeadline}
	}

	for _, f := range fields {
		switch f {
		case FieldHandles:
			if len(request.Handles) == 0 {
				return ErrEmptyHandles
			}
			for i, handle := range request.Handles {
				if handle.Empty() {
					return fmt.Errorf("validation error at index %d: %w", i, ErrEmptyHandle)
				}
			}
		case FieldDeadline:
			if request.DeadlineSeconds < 0 {
				return ErrInvalidDeadline
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayrollValidator) validateGatewayCallback(ctx context.Context, callback models.GatewayCallback, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRequestID, FieldValues, FieldSignature}
	}

	for _, f := range fields {
		switch f {
		case FieldRequestID:
			if callback.RequestID == "" {
				return ErrEmptyRequestID
			}
		case FieldValues:
			if len(callback.Values) == 0 {
				return ErrEmptyValues
			}
		case FieldSignature:
			if callback.Signature == "" {
				return ErrEmptySignature
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateEncryptedInput(input models.EncryptedInput) error {
	if len(input.Ciphertext) == 0 {
		return ErrEmptyCiphertext
	}
	if len(input.Proof) == 0 {
		return ErrEmptyProof
	}
	return nil
}
