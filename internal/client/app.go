package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/internal/tui"
)

var _ Client = (*App)(nil)

// App is the operator client runtime. It drives the interactive flows and
// owns the lifecycle of the background refresh job: the job runs only while
// an operator is signed in.
type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	workers  config.ClientWorkers
	logger   *logger.Logger
}

// NewApp assembles the client application from its pre-built parts.
func NewApp(services *service.ClientServices, ui *tui.TUI, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client services are not initialized")
	}
	if ui == nil {
		return nil, errors.New("tui is not initialized")
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run executes the client lifecycle: authenticate, run the operator
// workspace, and on logout return to authentication for the next account.
// It returns nil when the operator quits either flow.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		operator, err := a.ui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrOperatorQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		a.logger.Info().Int64("operator_id", operator.OperatorID).Msg("operator signed in")

		// The refresh job settles pending decryption requests in the
		// background while the workspace is open.
		a.services.RefreshJob.Start(ctx, operator.OperatorID, a.workers.RefreshInterval)

		logout, err := a.ui.MainLoop(ctx, operator)

		a.services.RefreshJob.Stop()

		if err != nil {
			return fmt.Errorf("operator workspace: %w", err)
		}
		if !logout {
			return nil
		}

		a.logger.Info().Int64("operator_id", operator.OperatorID).Msg("operator logged out")
	}
}
