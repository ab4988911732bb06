package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// screen identifies the page of the operator workspace currently shown.
type screen int

const (
	screenRuns screen = iota
	screenRunDetail
	screenBatchForm
	screenItems
	screenEnrollForm
	screenAdjustForm
	screenClaimForm
	screenClaimResult
	screenDecryptions
	screenDecryptForm
	screenDecryptResult
)

const statusVisibleFor = 4 * time.Second

// mainLoopModel is the Bubble Tea model of the operator workspace. One model
// carries every page; screen selects which update and view path runs. Async
// service calls are dispatched as commands and resolve into the messages
// declared in messages.go.
type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices

	operator   models.Operator
	operatorID int64

	screen screen

	runs   []models.RunMetadata
	runIdx int
	run    models.RunMetadata

	items   []models.ItemView
	itemIdx int

	requests []models.CachedDecryption
	reqIdx   int
	result   models.DecryptionResult

	claim      models.ClaimResponse
	claimKind  string
	targetItem int64

	inputs  []textinput.Model
	labels  []string
	focus   int
	formErr string

	confirmSeal bool

	loading bool
	busy    bool
	status  string
	errMsg  string

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, operator models.Operator) mainLoopModel {
	effectiveID := operator.OperatorID
	if effectiveID == 0 {
		effectiveID = getSessionOperatorID()
	}
	if effectiveID > 0 {
		setSessionOperatorID(effectiveID)
	}

	return mainLoopModel{
		ctx:        ctx,
		services:   services,
		operator:   operator,
		operatorID: effectiveID,
		loading:    true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadRuns()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.runs = msg.runs
		m.clampRunIdx()
		return m, nil

	case runInitedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("run %d initialized", msg.run.RunID)
		m.loading = true
		return m, m.cmdLoadRuns()

	case runFetchedMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.run = msg.run
		m.replaceRun(msg.run)
		return m, nil

	case batchDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.run = msg.resp.Run
		m.replaceRun(msg.resp.Run)
		m.status = fmt.Sprintf("batch done: %d processed, %d skipped", msg.resp.Processed, msg.resp.Skipped)
		return m.closeForm(), nil

	case runSealedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.run = msg.run
		m.replaceRun(msg.run)
		m.status = fmt.Sprintf("run %d sealed, fingerprint %s", msg.run.RunID, formatFingerprint(msg.run.Fingerprint))
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.items
		m.clampItemIdx()
		return m, nil

	case itemSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		if m.screen == screenAdjustForm {
			m.status = fmt.Sprintf("adjustment attached to item %d", msg.item.Index)
		} else {
			m.status = fmt.Sprintf("item %d enrolled", msg.item.Index)
		}
		m.loading = true
		return m.closeForm(), m.cmdLoadItems()

	case claimDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.claim = msg.resp
		m.inputs = nil
		m.labels = nil
		m.formErr = ""
		m.screen = screenClaimResult
		return m, nil

	case decryptRequestedMsg:
		m.busy = false
		if msg.err != nil {
			if m.screen == screenDecryptForm {
				m.formErr = humanizeServerUnavailableError(msg.err)
			} else {
				m.errMsg = humanizeServerUnavailableError(msg.err)
			}
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("decryption requested, deadline %s", msg.resp.Deadline)
		if m.screen == screenDecryptForm {
			m = m.closeForm()
		} else {
			m.screen = screenDecryptions
		}
		m.loading = true
		return m, m.cmdLoadRequests()

	case requestsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.requests = msg.requests
		m.clampReqIdx()
		return m, nil

	case resultLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.result = msg.result
		m.screen = screenDecryptResult
		return m, nil

	case refreshDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("%d requests settled", msg.settled)
		m.loading = true
		return m, m.cmdLoadRequests()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "clipboard: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.what + " copied to clipboard"
		return m, cmdClearStatusAfter(statusVisibleFor)

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor-blink and similar widget messages go to the active input.
		if m.inForm() && len(m.inputs) > 0 {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmSeal {
		return m.updateSealConfirm(keyMsg)
	}

	switch m.screen {
	case screenRuns:
		return m.updateRuns(keyMsg)
	case screenRunDetail:
		return m.updateRunDetail(keyMsg)
	case screenItems:
		return m.updateItems(keyMsg)
	case screenClaimResult:
		return m.updateClaimResult(keyMsg)
	case screenDecryptions:
		return m.updateDecryptions(keyMsg)
	case screenDecryptResult:
		return m.updateDecryptResult(keyMsg)
	case screenBatchForm, screenEnrollForm, screenAdjustForm, screenClaimForm, screenDecryptForm:
		return m.updateForm(keyMsg)
	}

	return m, nil
}

func (m mainLoopModel) View() string {
	if m.confirmSeal {
		return m.viewSealConfirm()
	}

	switch m.screen {
	case screenRuns:
		return m.viewRuns()
	case screenRunDetail:
		return m.viewRunDetail()
	case screenBatchForm:
		return m.viewForm(fmt.Sprintf("PROCESS BATCH — RUN %d", m.run.RunID), "Process")
	case screenItems:
		return m.viewItems()
	case screenEnrollForm:
		return m.viewForm("ENROLL ITEM", "Enroll")
	case screenAdjustForm:
		return m.viewForm(fmt.Sprintf("ATTACH ADJUSTMENT — ITEM %d", m.targetItem), "Attach")
	case screenClaimForm:
		return m.viewForm(fmt.Sprintf("RANGE CLAIM — ITEM %d", m.targetItem), "Claim")
	case screenClaimResult:
		return m.viewClaimResult()
	case screenDecryptions:
		return m.viewDecryptions()
	case screenDecryptForm:
		return m.viewForm("REQUEST DECRYPTION", "Request")
	case screenDecryptResult:
		return m.viewDecryptResult()
	}

	return renderPage("BLIND PAYROLL", "", "")
}

// ───────────────────────── runs list ─────────────────────────

func (m mainLoopModel) updateRuns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.runIdx > 0 {
			m.runIdx--
		}
	case key.Matches(msg, keys.down):
		if m.runIdx < len(m.runs)-1 {
			m.runIdx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.runs) == 0 {
			return m, nil
		}
		m.run = m.runs[m.runIdx]
		m.screen = screenRunDetail
		m.errMsg = ""
		return m, m.cmdFetchRun(m.run.RunID)
	case key.Matches(msg, keys.create):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.cmdInitRun()
	case key.Matches(msg, keys.items):
		m.screen = screenItems
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadItems()
	case key.Matches(msg, keys.decrypts):
		m.screen = screenDecryptions
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadRequests()
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoadRuns()
	case key.Matches(msg, keys.logout):
		clearSessionOperatorID()
		m.logout = true
		return m, tea.Quit
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) viewRuns() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading runs...\n\n")
	}

	if len(m.runs) == 0 && !m.loading {
		b.WriteString("No payroll runs yet. Press n to initialize the first one.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-4s │ %-12s │ %5s │ %9s │ %-16s │ %-16s\n",
			"Run", "State", "Items", "Processed", "Created", "Sealed"))
		b.WriteString("──────┼──────────────┼───────┼───────────┼──────────────────┼─────────────────\n")
		for i, run := range m.runs {
			cursor := " "
			if i == m.runIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-4d │ %-12s │ %5d │ %9d │ %-16s │ %-16s\n",
				cursor, run.RunID, run.State, run.ItemCount, run.ProcessedCount,
				formatTime(run.CreatedAt), formatTimePtr(run.SealedAt)))
		}
	}

	b.WriteString(m.viewStatusLine())

	return renderPage(
		fmt.Sprintf("PAYROLL RUNS — %s", m.operatorLabel()),
		strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new run │ i: items │ d: decryptions │ r: refresh │ l: logout │ q: quit",
	)
}

// ───────────────────────── run detail ─────────────────────────

func (m mainLoopModel) updateRunDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenRuns
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.batch):
		if m.run.Sealed {
			m.errMsg = "run is sealed, no further batches"
			return m, nil
		}
		m.openBatchForm()
		return m, textinput.Blink
	case key.Matches(msg, keys.seal):
		if m.run.Sealed {
			m.errMsg = "run is already sealed"
			return m, nil
		}
		m.confirmSeal = true
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.copy):
		if m.run.Fingerprint == "" {
			m.errMsg = "no fingerprint until the run is sealed"
			return m, nil
		}
		return m, cmdCopy("fingerprint", m.run.Fingerprint)
	case key.Matches(msg, keys.refresh):
		m.errMsg = ""
		return m, m.cmdFetchRun(m.run.RunID)
	}

	return m, nil
}

func (m mainLoopModel) viewRunDetail() string {
	var b strings.Builder

	b.WriteString("Field          │ Value\n")
	b.WriteString("───────────────┼────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("State          │ %s\n", m.run.State))
	b.WriteString(fmt.Sprintf("Items          │ %d\n", m.run.ItemCount))
	b.WriteString(fmt.Sprintf("Processed      │ %d\n", m.run.ProcessedCount))
	b.WriteString(fmt.Sprintf("Active at init │ %d\n", m.run.ActiveAtInit))
	b.WriteString(fmt.Sprintf("Sealed         │ %s\n", yesNo(m.run.Sealed)))
	b.WriteString(fmt.Sprintf("Fingerprint    │ %s\n", formatFingerprint(m.run.Fingerprint)))
	b.WriteString(fmt.Sprintf("Created        │ %s\n", formatTime(m.run.CreatedAt)))
	b.WriteString(fmt.Sprintf("Sealed at      │ %s\n", formatTimePtr(m.run.SealedAt)))

	b.WriteString(m.viewStatusLine())

	return renderPage(
		fmt.Sprintf("RUN %d", m.run.RunID),
		strings.TrimRight(b.String(), "\n"),
		"b: process batch │ s: seal │ c: copy fingerprint │ r: refresh │ esc: back",
	)
}

// ───────────────────────── seal confirmation ─────────────────────────

func (m mainLoopModel) updateSealConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirmSeal = false
		m.busy = true
		return m, m.cmdSealRun(m.run.RunID, false)
	case msg.String() == "f":
		m.confirmSeal = false
		m.busy = true
		return m, m.cmdSealRun(m.run.RunID, true)
	case key.Matches(msg, keys.no):
		m.confirmSeal = false
		return m, nil
	}

	return m, nil
}

func (m mainLoopModel) viewSealConfirm() string {
	content := fmt.Sprintf("Seal run %d?\n\n", m.run.RunID)
	content += "Sealing freezes the run forever; no batch or adjustment\n"
	content += "can be applied afterwards. Force-sealing skips the check\n"
	content += "that every active item has been processed.\n\n"
	content += "y: seal    f: force seal    n: cancel"
	return overlayBoxStyle.Render(content)
}

// ───────────────────────── batch form ─────────────────────────

func (m *mainLoopModel) openBatchForm() {
	start := newFormInput("0")
	start.Focus()
	end := newFormInput(strconv.FormatInt(m.run.ItemCount, 10))

	m.inputs = []textinput.Model{start, end}
	m.labels = []string{"Start index", "End index"}
	m.focus = 0
	m.formErr = ""
	m.screen = screenBatchForm
}

func (m mainLoopModel) submitBatch() (tea.Model, tea.Cmd) {
	start, err := strconv.ParseInt(strings.TrimSpace(m.inputs[0].Value()), 10, 64)
	if err != nil {
		m.formErr = "start index must be a number"
		return m, nil
	}
	end, err := strconv.ParseInt(strings.TrimSpace(m.inputs[1].Value()), 10, 64)
	if err != nil {
		m.formErr = "end index must be a number"
		return m, nil
	}
	if start < 0 || start >= end {
		m.formErr = "expected 0 <= start < end"
		return m, nil
	}

	m.formErr = ""
	m.busy = true
	return m, m.cmdProcessBatch(m.run.RunID, start, end)
}

// ───────────────────────── shared form plumbing ─────────────────────────

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 34
	return in
}

func (m mainLoopModel) inForm() bool {
	switch m.screen {
	case screenBatchForm, screenEnrollForm, screenAdjustForm, screenClaimForm, screenDecryptForm:
		return true
	}
	return false
}

func (m mainLoopModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		return m.closeForm(), nil
	case key.Matches(msg, keys.tab):
		m.focusFormNext()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.focusFormPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.busy {
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenBatchForm:
		return m.submitBatch()
	case screenEnrollForm:
		return m.submitEnroll()
	case screenAdjustForm:
		return m.submitAdjust()
	case screenClaimForm:
		return m.submitClaim()
	case screenDecryptForm:
		return m.submitDecrypt()
	}
	return m, nil
}

func (m mainLoopModel) closeForm() mainLoopModel {
	m.inputs = nil
	m.labels = nil
	m.focus = 0
	m.formErr = ""
	m.busy = false

	switch m.screen {
	case screenBatchForm:
		m.screen = screenRunDetail
	case screenEnrollForm, screenAdjustForm, screenClaimForm:
		m.screen = screenItems
	case screenDecryptForm:
		m.screen = screenDecryptions
	}
	return m
}

func (m *mainLoopModel) focusFormNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *mainLoopModel) focusFormPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m mainLoopModel) viewForm(title, action string) string {
	labelW := lipgloss.Width("Field")
	for _, l := range m.labels {
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s │ Value\n", labelW, "Field"))
	b.WriteString(strings.Repeat("─", labelW+1))
	b.WriteString("┼────────────────────────────────────\n")
	for i := range m.inputs {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", labelW, m.labels[i], m.inputs[i].View()))
	}

	if m.busy {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}

	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.formErr))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: submit")
}

// ───────────────────────── run commands ─────────────────────────

func (m mainLoopModel) cmdLoadRuns() tea.Cmd {
	ctx, runs, operatorID := m.ctx, m.services.RunService, m.operatorID
	return func() tea.Msg {
		list, err := runs.GetRuns(ctx, operatorID)
		return runsLoadedMsg{runs: list, err: err}
	}
}

func (m mainLoopModel) cmdInitRun() tea.Cmd {
	ctx, runs, operatorID := m.ctx, m.services.RunService, m.operatorID
	return func() tea.Msg {
		run, err := runs.InitRun(ctx, operatorID)
		return runInitedMsg{run: run, err: err}
	}
}

func (m mainLoopModel) cmdFetchRun(runID int64) tea.Cmd {
	ctx, runs, operatorID := m.ctx, m.services.RunService, m.operatorID
	return func() tea.Msg {
		run, err := runs.GetRun(ctx, operatorID, runID)
		return runFetchedMsg{run: run, err: err}
	}
}

func (m mainLoopModel) cmdProcessBatch(runID, start, end int64) tea.Cmd {
	ctx, runs, operatorID := m.ctx, m.services.RunService, m.operatorID
	return func() tea.Msg {
		resp, err := runs.ProcessBatch(ctx, operatorID, runID, models.BatchRequest{Start: start, End: end})
		return batchDoneMsg{resp: resp, err: err}
	}
}

func (m mainLoopModel) cmdSealRun(runID int64, force bool) tea.Cmd {
	ctx, runs, operatorID := m.ctx, m.services.RunService, m.operatorID
	return func() tea.Msg {
		run, err := runs.SealRun(ctx, operatorID, runID, force)
		return runSealedMsg{run: run, err: err}
	}
}

// ───────────────────────── small helpers ─────────────────────────

func cmdCopy(what, value string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(value)
		return copiedMsg{what: what, err: err}
	}
}

func cmdClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m mainLoopModel) operatorLabel() string {
	if m.operator.Name != "" {
		return m.operator.Name
	}
	if m.operator.Login != "" {
		return m.operator.Login
	}
	return fmt.Sprintf("operator %d", m.operatorID)
}

func (m mainLoopModel) viewStatusLine() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("OK: " + m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *mainLoopModel) replaceRun(run models.RunMetadata) {
	for i := range m.runs {
		if m.runs[i].RunID == run.RunID {
			m.runs[i] = run
			return
		}
	}
}

func (m *mainLoopModel) clampRunIdx() {
	if m.runIdx >= len(m.runs) {
		m.runIdx = len(m.runs) - 1
	}
	if m.runIdx < 0 {
		m.runIdx = 0
	}
}

func (m *mainLoopModel) clampItemIdx() {
	if m.itemIdx >= len(m.items) {
		m.itemIdx = len(m.items) - 1
	}
	if m.itemIdx < 0 {
		m.itemIdx = 0
	}
}

func (m *mainLoopModel) clampReqIdx() {
	if m.reqIdx >= len(m.requests) {
		m.reqIdx = len(m.requests) - 1
	}
	if m.reqIdx < 0 {
		m.reqIdx = 0
	}
}
