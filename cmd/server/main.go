package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/handler"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/server"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/utils"
	"github.com/obscuralabs/blind-payroll/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("payroll-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	utils.InitHasherPool(cfg.App.HashKey)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(ctx, storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(services, cfg.Workers, log)
	background.Run(ctx)

	// blocks until a stop signal arrives and the transports drain
	srv.RunServer()

	background.Wait()
	log.Info().Msg("payroll server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
