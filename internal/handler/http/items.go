package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

func (h *Handler) getItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	items, err := h.services.ItemService.GetAllItems(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getItems").Msg("listing items failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// enrollItem registers a payroll item. The base value arrives sealed with a
// proof binding it to the submitting operator; the engine verifies the proof
// before admitting the ciphertext.
func (h *Handler) enrollItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	operatorID, ok := utils.GetOperatorIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.enrollItem").Msg("no operator ID in context")
		http.Error(w, app.MsgNoOperatorIDProvided, http.StatusBadRequest)
		return
	}

	var request models.EnrollItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.enrollItem").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	item, err := h.services.ItemService.EnrollItem(ctx, operatorID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.enrollItem").
			Int64("subject_id", request.SubjectID).
			Msg("enrollment rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().Int64("index", item.Index).Int64("subject_id", item.SubjectID).Msg("item enrolled")
	utils.WriteJSON(w, item, http.StatusCreated)
}

// attachAdjustment attaches a sealed one-time adjustment to an item. The
// adjustment participates in exactly the next processed run.
func (h *Handler) attachAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	operatorID, ok := utils.GetOperatorIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.attachAdjustment").Msg("no operator ID in context")
		http.Error(w, app.MsgNoOperatorIDProvided, http.StatusBadRequest)
		return
	}

	index, err := strconv.ParseInt(chi.URLParam(r, "index"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.attachAdjustment").Msg("invalid item index")
		http.Error(w, app.MsgItemNotFound, http.StatusNotFound)
		return
	}

	var request models.AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.attachAdjustment").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	item, err := h.services.ItemService.AttachAdjustment(ctx, operatorID, index, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.attachAdjustment").
			Int64("index", index).
			Msg("adjustment rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}
