package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
)

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		body     string
		want     error
	}{
		{"invalid data", adapter.ErrBadRequest, app.MsgInvalidDataProvided, ErrInvalidDataProvided},
		{"invalid range", adapter.ErrBadRequest, app.MsgInvalidRange, payroll.ErrInvalidRange},
		{"proof rejected", adapter.ErrBadRequest, app.MsgProofRejected, engine.ErrInvalidProof},
		{"wrong password", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword, ErrWrongPassword},
		{"token expired", adapter.ErrUnauthorized, app.MsgTokenIsExpired, ErrTokenIsExpired},
		{"token invalid", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid, ErrTokenIsExpiredOrInvalid},
		{"ungranted handle", adapter.ErrForbidden, app.MsgUngrantedHandle, engine.ErrUngrantedAccess},
		{"run not found", adapter.ErrNotFound, app.MsgRunNotFound, payroll.ErrRunNotFound},
		{"item not found", adapter.ErrNotFound, app.MsgItemNotFound, payroll.ErrItemNotFound},
		{"decryption not found", adapter.ErrNotFound, app.MsgDecryptionNotFound, store.ErrDecryptionNotFound},
		{"login taken", adapter.ErrConflict, app.MsgLoginAlreadyExists, store.ErrLoginAlreadyExists},
		{"not due yet", adapter.ErrConflict, app.MsgRunNotDue, payroll.ErrNotDueYet},
		{"already sealed", adapter.ErrConflict, app.MsgRunAlreadySealed, payroll.ErrAlreadySealed},
		{"run incomplete", adapter.ErrConflict, app.MsgRunIncomplete, payroll.ErrRunIncomplete},
		{"double processing", adapter.ErrConflict, app.MsgDoubleProcessing, payroll.ErrDoubleProcessing},
		{"no derived value", adapter.ErrConflict, app.MsgNoDerivedValue, ErrNoDerivedValue},
		{"registration failed", adapter.ErrBadGateway, app.MsgRegistrationFailed, ErrRegisterOnServer},
		{"login failed", adapter.ErrBadGateway, app.MsgLoginFailed, ErrLoginOnServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("%w: %s", tt.sentinel, tt.body)
			assert.ErrorIs(t, mapAdapterError(err), tt.want)
		})
	}
}

func TestMapAdapterError_PassThrough(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapAdapterError(nil))
	})

	t.Run("unknown body keeps transport sentinel", func(t *testing.T) {
		err := fmt.Errorf("%w: %s", adapter.ErrConflict, "some future message")
		got := mapAdapterError(err)
		assert.ErrorIs(t, got, adapter.ErrConflict)
	})

	t.Run("transport error unchanged", func(t *testing.T) {
		err := errors.New("dial tcp: connection refused")
		assert.Equal(t, err, mapAdapterError(err))
	})
}

func TestIsOffline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", errors.New("dial tcp: connection refused"), true},
		{"server error", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, "boom"), true},
		{"bad gateway", fmt.Errorf("%w: %s", adapter.ErrBadGateway, "upstream down"), true},
		{"unauthorized", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpired), false},
		{"not found", fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgRunNotFound), false},
		{"conflict", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgRunNotDue), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isOffline(tt.err))
		})
	}
}
