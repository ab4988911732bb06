package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

// requestDecryption accepts an asynchronous decryption request for a set of
// granted handles. The response carries only the request ID and deadline;
// plaintexts arrive later through the gateway callback, never inline.
func (h *Handler) requestDecryption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	operatorID, ok := utils.GetOperatorIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.requestDecryption").Msg("no operator ID in context")
		http.Error(w, app.MsgNoOperatorIDProvided, http.StatusBadRequest)
		return
	}

	var request models.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.requestDecryption").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	response, err := h.services.DecryptionService.RequestDecryption(ctx, operatorID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.requestDecryption").
			Int("handles", len(request.Handles)).
			Msg("decryption request rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().Str("request_id", response.RequestID).Int("handles", len(request.Handles)).
		Msg("decryption request accepted")
	utils.WriteJSON(w, response, http.StatusAccepted)
}

// getDecryption reports the state of one decryption request owned by the
// authenticated operator. Requests issued by other principals are reported
// as not found so that request IDs do not leak across operators. The result
// is attached only once the request is fulfilled.
func (h *Handler) getDecryption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	operatorID, ok := utils.GetOperatorIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getDecryption").Msg("no operator ID in context")
		http.Error(w, app.MsgNoOperatorIDProvided, http.StatusBadRequest)
		return
	}

	requestID := chi.URLParam(r, "requestID")

	request, err := h.services.DecryptionService.GetRequest(ctx, requestID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDecryption").
			Str("request_id", requestID).
			Msg("decryption request lookup failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	if request.Requester != models.OperatorPrincipal(operatorID) {
		log.Error().Str("func", "*Handler.getDecryption").
			Str("request_id", requestID).
			Int64("operator_id", operatorID).
			Msg("request belongs to another principal")
		http.Error(w, app.MsgDecryptionNotFound, http.StatusNotFound)
		return
	}

	response := models.DecryptionStatusResponse{Request: request}
	if request.State == models.DecryptionFulfilled {
		result, err := h.services.DecryptionService.GetResult(ctx, requestID)
		if err != nil {
			log.Err(err).Str("func", "*Handler.getDecryption").
				Str("request_id", requestID).
				Msg("fulfilled request has no readable result")
			http.Error(w, messageFromError(err), statusFromError(err))
			return
		}
		response.Result = &result
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// gatewayCallback applies one decryption callback posted by the gateway's
// key-share holders. The route is unauthenticated; the callback's HMAC
// signature is the authentication.
func (h *Handler) gatewayCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var callback models.GatewayCallback
	if err := json.NewDecoder(r.Body).Decode(&callback); err != nil {
		log.Err(err).Str("func", "*Handler.gatewayCallback").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	result, err := h.services.DecryptionService.Fulfill(ctx, callback)
	if err != nil {
		log.Err(err).Str("func", "*Handler.gatewayCallback").
			Str("request_id", callback.RequestID).
			Msg("callback rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().Str("request_id", result.RequestID).Int("values", len(result.Values)).
		Msg("decryption request fulfilled")
	utils.WriteJSON(w, result, http.StatusOK)
}
