package service

import (
	"context"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/tiers"
	"github.com/obscuralabs/blind-payroll/internal/validators"
	"github.com/obscuralabs/blind-payroll/models"
)

// claimService is the concrete implementation of ClaimService. A claim tests
// an item's latest derived net value against public reference bounds and
// yields an encrypted boolean granted to the requesting operator. The tested
// amount itself is never granted and never leaves the engine.
type claimService struct {
	coordinator *payroll.Coordinator
	claims      *tiers.Claims
	producer    *acl.Producer

	validator validators.Validator

	logger *logger.Logger
}

// NewClaimService constructs a ClaimService over the given coordinator,
// claim helpers, and producer.
func NewClaimService(coordinator *payroll.Coordinator, claims *tiers.Claims, producer *acl.Producer, logger *logger.Logger) ClaimService {
	return &claimService{
		coordinator: coordinator,
		claims:      claims,
		producer:    producer,
		validator:   validators.NewPayrollValidator(),
		logger:      logger,
	}
}

// AboveThreshold produces an encrypted boolean answering whether the item's
// latest net value is at or above the threshold.
//
// Returns the boolean handle or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed request.
//   - payroll.ErrItemNotFound if the index is outside the ledger.
//   - ErrNoDerivedValue if no run has produced a net value for the item yet.
func (s *claimService) AboveThreshold(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error) {
	value, err := s.claimTarget(ctx, request)
	if err != nil {
		return models.ClaimResponse{}, err
	}

	result, err := s.claims.AboveThreshold(ctx, value, request.Threshold)
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("above-threshold claim for item %d: %w", request.ItemIndex, err)
	}

	if err := s.producer.OwnBool(ctx, result, models.OperatorPrincipal(operatorID)); err != nil {
		return models.ClaimResponse{}, fmt.Errorf("granting claim result: %w", err)
	}

	return models.ClaimResponse{Result: result}, nil
}

// WithinRange produces an encrypted boolean answering whether the item's
// latest net value lies in the inclusive range [Threshold, UpperBound].
//
// Error behaviour matches AboveThreshold.
func (s *claimService) WithinRange(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error) {
	value, err := s.claimTarget(ctx, request)
	if err != nil {
		return models.ClaimResponse{}, err
	}

	result, err := s.claims.WithinRange(ctx, value, request.Threshold, request.UpperBound)
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("within-range claim for item %d: %w", request.ItemIndex, err)
	}

	if err := s.producer.OwnBool(ctx, result, models.OperatorPrincipal(operatorID)); err != nil {
		return models.ClaimResponse{}, fmt.Errorf("granting claim result: %w", err)
	}

	return models.ClaimResponse{Result: result}, nil
}

// claimTarget validates the request and resolves the item's latest derived
// net value.
func (s *claimService) claimTarget(ctx context.Context, request models.ClaimRequest) (models.EncryptedAmount, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.EncryptedAmount{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	item, err := s.coordinator.Item(request.ItemIndex)
	if err != nil {
		return models.EncryptedAmount{}, err
	}
	if item.LatestNet.Empty() {
		log.Error().Int64("index", request.ItemIndex).Msg("claim against unprocessed item")
		return models.EncryptedAmount{}, fmt.Errorf("%w: item %d", ErrNoDerivedValue, request.ItemIndex)
	}

	return item.LatestNet, nil
}
