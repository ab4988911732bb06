package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

// claimAboveThreshold answers "is the item's latest net value above the
// threshold" with a handle to an encrypted boolean. The compared amount
// never appears in the response.
func (h *Handler) claimAboveThreshold(w http.ResponseWriter, r *http.Request) {
	h.claim(w, r, "*Handler.claimAboveThreshold", h.services.ClaimService.AboveThreshold)
}

// claimWithinRange answers "is the item's latest net value within
// [threshold, upper bound)" with a handle to an encrypted boolean.
func (h *Handler) claimWithinRange(w http.ResponseWriter, r *http.Request) {
	h.claim(w, r, "*Handler.claimWithinRange", h.services.ClaimService.WithinRange)
}

type claimFunc func(ctx context.Context, operatorID int64, request models.ClaimRequest) (models.ClaimResponse, error)

func (h *Handler) claim(w http.ResponseWriter, r *http.Request, funcName string, produce claimFunc) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	operatorID, ok := utils.GetOperatorIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", funcName).Msg("no operator ID in context")
		http.Error(w, app.MsgNoOperatorIDProvided, http.StatusBadRequest)
		return
	}

	var request models.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	response, err := produce(ctx, operatorID, request)
	if err != nil {
		log.Err(err).Str("func", funcName).
			Int64("item_index", request.ItemIndex).
			Msg("claim rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
