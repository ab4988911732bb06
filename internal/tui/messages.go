package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obscuralabs/blind-payroll/models"
)

// NavigateTo switches the authentication flow between pages. An optional
// payload is re-dispatched to the destination page after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finalizes the login page: on success RootModel stores the
// operator and quits the authentication program.
type LoginResult struct {
	Operator models.Operator
	Err      error
}

// RegisterResult reports the outcome of an account creation attempt.
type RegisterResult struct {
	Login string
	Err   error
}

// RegisterSuccessNotice is delivered to the menu page after a successful
// registration so the operator sees a confirmation before signing in.
type RegisterSuccessNotice struct {
	Login string
}

// Messages of the operator workspace. Each async command resolves into
// exactly one of these.

type runsLoadedMsg struct {
	runs []models.RunMetadata
	err  error
}

type runInitedMsg struct {
	run models.RunMetadata
	err error
}

type runFetchedMsg struct {
	run models.RunMetadata
	err error
}

type batchDoneMsg struct {
	resp models.BatchResponse
	err  error
}

type runSealedMsg struct {
	run models.RunMetadata
	err error
}

type itemsLoadedMsg struct {
	items []models.ItemView
	err   error
}

type itemSavedMsg struct {
	item models.ItemView
	err  error
}

type claimDoneMsg struct {
	resp models.ClaimResponse
	err  error
}

type decryptRequestedMsg struct {
	resp models.DecryptResponse
	err  error
}

type requestsLoadedMsg struct {
	requests []models.CachedDecryption
	err      error
}

type resultLoadedMsg struct {
	result models.DecryptionResult
	err    error
}

type refreshDoneMsg struct {
	settled int
	err     error
}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}
