package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/utils"
)

// auth gates every payroll route behind a bearer token. The token names the
// operator, and the operator id is what run ownership checks and decryption
// request visibility key on, so it is resolved once here and stored in the
// request context under [utils.OperatorIDCtxKey] for downstream handlers.
//
// Requests are refused with 401 when the Authorization header is missing or
// malformed, and when the token is expired or fails validation. Response
// bodies carry only the public message, never token contents.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, log, ErrEmptyAuthorizationHeader, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			unauthorized(w, log, err, err.Error())
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpired) {
				unauthorized(w, log, err, messageFromError(err))
			} else {
				unauthorized(w, log, err, messageFromError(service.ErrTokenIsExpiredOrInvalid))
			}
			return
		}

		ctx := context.WithValue(r.Context(), utils.OperatorIDCtxKey, token.OperatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// unauthorized logs the refusal and answers 401 with the public message.
func unauthorized(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	log.Err(err).Msg("authentication refused")
	http.Error(w, msg, http.StatusUnauthorized)
}

// getTokenFromAuthHeader pulls the token out of an "Authorization: <scheme>
// <token>" header value. The scheme is not verified; the token is whatever
// sits between the first space and the next one.
//
// It returns [ErrInvalidAuthorizationHeader] when the header has no space at
// all, and [ErrEmptyToken] when a space is present but nothing follows it.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	_, rest, ok := strings.Cut(authHeader, " ")
	if !ok {
		return "", ErrInvalidAuthorizationHeader
	}

	token, _, _ := strings.Cut(rest, " ")
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
