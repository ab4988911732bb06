package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/gateway/callback", h.gatewayCallback)
		r.Get("/api/version", h.version)
		r.Get("/ping", h.ping)
	})

	// operator routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/runs", h.initRun)
		r.Get("/api/runs", h.getRuns)
		r.Get("/api/runs/{runID}", h.getRun)
		r.Post("/api/runs/{runID}/batches", h.processBatch)
		r.Post("/api/runs/{runID}/seal", h.sealRun)

		r.Get("/api/items", h.getItems)
		r.With(h.withBodyIntegrity).Post("/api/items", h.enrollItem)
		r.With(h.withBodyIntegrity).Post("/api/items/{index}/adjustment", h.attachAdjustment)

		r.Post("/api/claims/above-threshold", h.claimAboveThreshold)
		r.Post("/api/claims/within-range", h.claimWithinRange)

		r.Post("/api/decryptions", h.requestDecryption)
		r.Get("/api/decryptions/{requestID}", h.getDecryption)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
