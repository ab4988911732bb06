package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obscuralabs/blind-payroll/internal/app"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/models"
)

// initRun starts a new payroll run. The frequency gate decides whether the
// run is due; a refused initialization surfaces as HTTP 409 with the next
// eligible time left to the client to poll.
func (h *Handler) initRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	run, err := h.services.RunService.InitRun(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.initRun").Msg("run initialization refused")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().Int64("run_id", run.RunID).Msg("run initialized")
	utils.WriteJSON(w, models.InitRunResponse{Run: run}, http.StatusCreated)
}

// processBatch evaluates one half-open item index range within a run.
func (h *Handler) processBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	runID, err := runIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.processBatch").Msg("invalid run ID")
		http.Error(w, app.MsgRunNotFound, http.StatusNotFound)
		return
	}

	var request models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.processBatch").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	batch, err := h.services.RunService.ProcessBatch(r.Context(), runID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.processBatch").
			Int64("run_id", runID).
			Int64("start", request.Start).
			Int64("end", request.End).
			Msg("batch rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, batch, http.StatusOK)
}

// sealRun finalizes a run and returns its metadata with the audit
// fingerprint set. An absent body is treated as a plain (non-forced) seal.
func (h *Handler) sealRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	runID, err := runIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sealRun").Msg("invalid run ID")
		http.Error(w, app.MsgRunNotFound, http.StatusNotFound)
		return
	}

	var request models.SealRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.sealRun").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	run, err := h.services.RunService.SealRun(r.Context(), runID, request.Force)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sealRun").
			Int64("run_id", runID).
			Bool("force", request.Force).
			Msg("seal rejected")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, run, http.StatusOK)
}

func (h *Handler) getRuns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	runs, err := h.services.RunService.GetAllRuns(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRuns").Msg("listing runs failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, runs, http.StatusOK)
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	runID, err := runIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRun").Msg("invalid run ID")
		http.Error(w, app.MsgRunNotFound, http.StatusNotFound)
		return
	}

	run, err := h.services.RunService.GetRun(r.Context(), runID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRun").Int64("run_id", runID).Msg("run lookup failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, run, http.StatusOK)
}

// runIDFromURL parses the {runID} chi route parameter.
func runIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "runID"), 10, 64)
}
