package service

import (
	"context"
	"fmt"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/gateway"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/validators"
	"github.com/obscuralabs/blind-payroll/models"
)

// decryptionService is the concrete implementation of DecryptionService. The
// gateway's pending table is authoritative for request state; every accepted
// request and every lifecycle transition is written through to the
// DecryptionRepository so the ledger survives restarts.
type decryptionService struct {
	gateway *gateway.Gateway

	decryptionRepository store.DecryptionRepository

	// defaultDeadline bounds requests that do not name their own deadline.
	defaultDeadline time.Duration

	validator validators.Validator

	logger *logger.Logger
}

// NewDecryptionService constructs a DecryptionService over the given gateway
// and repository. defaultDeadline applies when a request leaves
// DeadlineSeconds at zero.
func NewDecryptionService(gw *gateway.Gateway, decryptionRepository store.DecryptionRepository, defaultDeadline time.Duration, logger *logger.Logger) DecryptionService {
	return &decryptionService{
		gateway:              gw,
		decryptionRepository: decryptionRepository,
		defaultDeadline:      defaultDeadline,
		validator:            validators.NewPayrollValidator(),
		logger:               logger,
	}
}

// RequestDecryption accepts an asynchronous decryption request on behalf of
// the authenticated operator. Grants are checked per handle before the
// request is admitted; the response carries only the request ID and the
// resolved deadline.
//
// Returns the acknowledgement or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed request.
//   - engine.ErrUngrantedAccess if any handle lacks a grant for the operator.
//   - A wrapped storage error if persisting the request fails.
func (s *decryptionService) RequestDecryption(ctx context.Context, operatorID int64, request models.DecryptRequest) (models.DecryptResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.DecryptResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	deadline := time.Now().Add(s.defaultDeadline)
	if request.DeadlineSeconds > 0 {
		deadline = time.Now().Add(time.Duration(request.DeadlineSeconds) * time.Second)
	}

	accepted, err := s.gateway.RequestDecryption(ctx, models.OperatorPrincipal(operatorID), request.Handles, deadline)
	if err != nil {
		return models.DecryptResponse{}, err
	}

	if err := s.decryptionRepository.SaveDecryptionRequest(ctx, accepted); err != nil {
		log.Err(err).Str("request_id", accepted.RequestID).Msg("persisting decryption request failed")
		return models.DecryptResponse{}, fmt.Errorf("persisting decryption request: %w", err)
	}

	return models.DecryptResponse{
		RequestID: accepted.RequestID,
		Deadline:  accepted.Deadline.Format(time.RFC3339),
	}, nil
}

// GetRequest returns the lifecycle record of one decryption request.
func (s *decryptionService) GetRequest(ctx context.Context, requestID string) (models.DecryptionRequest, error) {
	return s.gateway.Request(requestID)
}

// GetResult returns the delivered plaintexts of a fulfilled request.
//
// Returns gateway.ErrRequestPending while the callback is outstanding and
// gateway.ErrRequestNotFound for unknown or expired-and-swept requests.
func (s *decryptionService) GetResult(ctx context.Context, requestID string) (models.DecryptionResult, error) {
	return s.gateway.Result(requestID)
}

// Fulfill applies one authenticated gateway callback and persists the
// fulfilled transition.
//
// Returns the delivered result or:
//   - ErrInvalidDataProvided (wrapping the field error) for a malformed callback.
//   - gateway.ErrBadSignature, gateway.ErrRequestExpired,
//     gateway.ErrAlreadyFulfilled, gateway.ErrMalformedCallback passed
//     through from the gateway.
//   - A wrapped storage error if persisting the transition fails.
func (s *decryptionService) Fulfill(ctx context.Context, callback models.GatewayCallback) (models.DecryptionResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, callback); err != nil {
		return models.DecryptionResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	result, err := s.gateway.Fulfill(ctx, callback)
	if err != nil {
		return models.DecryptionResult{}, err
	}

	fulfilledAt := result.FulfilledAt
	if err := s.decryptionRepository.UpdateDecryptionState(ctx, result.RequestID, models.DecryptionFulfilled, &fulfilledAt); err != nil {
		log.Err(err).Str("request_id", result.RequestID).Msg("persisting fulfilled state failed")
		return models.DecryptionResult{}, fmt.Errorf("persisting fulfilled request %s: %w", result.RequestID, err)
	}

	return result, nil
}

// ExpireOverdue expires every pending request whose deadline has passed and
// persists each transition. Repository failures are logged per request and
// do not stop the sweep; the gateway's table has already moved on.
func (s *decryptionService) ExpireOverdue(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	expired := s.gateway.ExpireOverdue(time.Now())
	for _, request := range expired {
		if err := s.decryptionRepository.UpdateDecryptionState(ctx, request.RequestID, models.DecryptionExpired, nil); err != nil {
			log.Err(err).Str("request_id", request.RequestID).Msg("persisting expired state failed")
		}
	}

	return len(expired), nil
}
