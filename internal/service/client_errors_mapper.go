// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package service

import (
	"errors"
	"strings"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/store"
)

// mapAdapterError translates the adapter's transport error into the business
// error the rest of the client works with. The server writes the app.Msg*
// constants into response bodies, so the pairing below recovers the original
// sentinel on the other side of the wire.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		case app.MsgInvalidRange:
			return payroll.ErrInvalidRange
		case app.MsgProofRejected:
			return engine.ErrInvalidProof
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgUngrantedHandle {
			return engine.ErrUngrantedAccess
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgRunNotFound:
			return payroll.ErrRunNotFound
		case app.MsgItemNotFound:
			return payroll.ErrItemNotFound
		case app.MsgDecryptionNotFound:
			return store.ErrDecryptionNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgRunNotDue:
			return payroll.ErrNotDueYet
		case app.MsgRunAlreadySealed:
			return payroll.ErrAlreadySealed
		case app.MsgRunIncomplete:
			return payroll.ErrRunIncomplete
		case app.MsgDoubleProcessing:
			return payroll.ErrDoubleProcessing
		case app.MsgNoDerivedValue:
			return ErrNoDerivedValue
		}

	case errors.Is(err, adapter.ErrBadGateway):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}

// isOffline reports whether err represents a failure to get an authoritative
// answer: a transport error or a server-side 5xx. Client-error responses are
// authoritative and must never fall through to the local cache.
func isOffline(err error) bool {
	switch {
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrConflict):
		return false
	}

	return true
}

// extractBody extracts the body from a message of the form "conflict: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
