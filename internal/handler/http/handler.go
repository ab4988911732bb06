package http

import (
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
)

type Handler struct {
	services *service.Services

	// hashKey enables the body-integrity middleware on encrypted-input
	// routes when non-empty. It must match the key submitters sign with.
	hashKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, appCfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hashKey:  appCfg.HashKey,
		logger:   logger,
	}
}
