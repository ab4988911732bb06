package http

import (
	"errors"
	"net/http"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/gateway"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	engine.ErrInvalidProof:         http.StatusBadRequest,
	payroll.ErrInvalidRange:        http.StatusBadRequest,
	gateway.ErrNoHandles:           http.StatusBadRequest,
	gateway.ErrMalformedCallback:   http.StatusBadRequest,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	store.ErrOperatorNotFound:          http.StatusUnauthorized,
	gateway.ErrBadSignature:            http.StatusUnauthorized,

	engine.ErrUngrantedAccess: http.StatusForbidden,

	payroll.ErrRunNotFound:      http.StatusNotFound,
	payroll.ErrItemNotFound:     http.StatusNotFound,
	gateway.ErrRequestNotFound:  http.StatusNotFound,
	store.ErrDecryptionNotFound: http.StatusNotFound,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	payroll.ErrNotDueYet:        http.StatusConflict,
	payroll.ErrAlreadySealed:    http.StatusConflict,
	payroll.ErrRunIncomplete:    http.StatusConflict,
	payroll.ErrDoubleProcessing: http.StatusConflict,
	service.ErrNoDerivedValue:   http.StatusConflict,
	gateway.ErrAlreadyFulfilled: http.StatusConflict,
	gateway.ErrRequestExpired:   http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorMessageMap pins the exact response body for every business error. The
// operator client matches these strings to recover the sentinel on its side
// of the wire, so the bodies come from the shared app constants.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided: app.MsgInvalidDataProvided,
	engine.ErrInvalidProof:         app.MsgProofRejected,
	payroll.ErrInvalidRange:        app.MsgInvalidRange,
	gateway.ErrNoHandles:           app.MsgInvalidDataProvided,
	gateway.ErrMalformedCallback:   app.MsgCallbackMismatch,

	service.ErrWrongPassword:           app.MsgInvalidLoginPassword,
	service.ErrTokenIsExpired:          app.MsgTokenIsExpired,
	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
	store.ErrOperatorNotFound:          app.MsgInvalidLoginPassword,
	gateway.ErrBadSignature:            app.MsgBadCallbackSignature,

	engine.ErrUngrantedAccess: app.MsgUngrantedHandle,

	payroll.ErrRunNotFound:      app.MsgRunNotFound,
	payroll.ErrItemNotFound:     app.MsgItemNotFound,
	gateway.ErrRequestNotFound:  app.MsgDecryptionNotFound,
	store.ErrDecryptionNotFound: app.MsgDecryptionNotFound,

	store.ErrLoginAlreadyExists: app.MsgLoginAlreadyExists,
	payroll.ErrNotDueYet:        app.MsgRunNotDue,
	payroll.ErrAlreadySealed:    app.MsgRunAlreadySealed,
	payroll.ErrRunIncomplete:    app.MsgRunIncomplete,
	payroll.ErrDoubleProcessing: app.MsgDoubleProcessing,
	service.ErrNoDerivedValue:   app.MsgNoDerivedValue,
	gateway.ErrAlreadyFulfilled: app.MsgCallbackAlreadyFulfilled,
	gateway.ErrRequestExpired:   app.MsgDecryptionExpired,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError resolves the response body for err. Errors outside the map
// are reported generically so internals never leak into responses.
func messageFromError(err error) string {
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	return app.MsgInternalServerError
}
