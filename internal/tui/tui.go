package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// ErrOperatorQuit is returned by the interactive flows when the operator
// leaves the client with Ctrl+C instead of completing the flow.
var ErrOperatorQuit = errors.New("operator quit the client")

// TUI owns both interactive flows of the operator client: the authentication
// flow (menu, sign-in, registration) and the main workspace loop (runs,
// items, claims, decryptions). Each flow runs its own Bubble Tea program.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New creates the TUI over the client service bundle. Build info is shown in
// the version overlay of the authentication menu.
func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("client services are not initialized")
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// LoginFlow walks the operator through the menu, registration, and sign-in
// pages until a login succeeds. It returns the authenticated operator, or
// [ErrOperatorQuit] if the flow was abandoned.
func (t *TUI) LoginFlow(ctx context.Context) (models.Operator, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.Operator{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Operator{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Operator{}, ErrOperatorQuit
	}

	t.logger.Debug().Int64("operator_id", result.operator.OperatorID).Msg("login flow completed")
	return result.operator, nil
}

// MainLoop runs the operator workspace for an authenticated operator. It
// returns logout=true when the operator asked to switch accounts, and
// logout=false when the client should exit.
func (t *TUI) MainLoop(ctx context.Context, operator models.Operator) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, operator)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}

	t.logger.Debug().Bool("logout", result.logout).Msg("operator workspace closed")
	return result.logout, nil
}
