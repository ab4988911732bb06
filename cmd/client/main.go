package main

import (
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/adapter"
	"github.com/obscuralabs/blind-payroll/internal/client"
	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/crypto"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/store"
	"github.com/obscuralabs/blind-payroll/internal/tui"
	"github.com/obscuralabs/blind-payroll/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("payroll-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	keyring := crypto.NewKeyringService()
	services := service.NewClientServices(localStorage, serverAdapter, keyring, cfg)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
