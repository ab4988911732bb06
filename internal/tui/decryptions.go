package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obscuralabs/blind-payroll/models"
)

// ───────────────────────── request list ─────────────────────────

func (m mainLoopModel) updateDecryptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.reqIdx > 0 {
			m.reqIdx--
		}
	case key.Matches(msg, keys.down):
		if m.reqIdx < len(m.requests)-1 {
			m.reqIdx++
		}
	case key.Matches(msg, keys.esc):
		m.screen = screenRuns
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.enter):
		req, ok := m.currentRequest()
		if !ok {
			return m, nil
		}
		m.errMsg = ""
		return m, m.cmdLoadResult(req.RequestID)
	case key.Matches(msg, keys.create):
		m.openDecryptForm()
		return m, textinput.Blink
	case key.Matches(msg, keys.refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.cmdRefreshRequests()
	}

	return m, nil
}

func (m mainLoopModel) viewDecryptions() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading decryption requests...\n\n")
	}
	if m.busy {
		b.WriteString("Polling the server...\n\n")
	}

	if len(m.requests) == 0 && !m.loading {
		b.WriteString("No decryption requests yet. Press n to submit one,\n")
		b.WriteString("or issue a range claim and request its handle.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-24s │ %-9s │ %-16s │ %-16s\n",
			"Request", "State", "Created", "Updated"))
		b.WriteString("───────────────────────────┼───────────┼──────────────────┼─────────────────\n")
		for i, req := range m.requests {
			cursor := " "
			if i == m.reqIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-24s │ %-9s │ %-16s │ %-16s\n",
				cursor, fitText(req.RequestID, 24), req.State,
				formatTime(req.CreatedAt), formatTimePtr(req.UpdatedAt)))
		}
	}

	b.WriteString(m.viewStatusLine())

	return renderPage(
		"DECRYPTION REQUESTS",
		strings.TrimRight(b.String(), "\n"),
		"enter: result │ n: new request │ r: poll server │ esc: back",
	)
}

func (m mainLoopModel) currentRequest() (models.CachedDecryption, bool) {
	if len(m.requests) == 0 || m.reqIdx < 0 || m.reqIdx >= len(m.requests) {
		return models.CachedDecryption{}, false
	}
	return m.requests[m.reqIdx], true
}

// ───────────────────────── new request form ─────────────────────────

func (m *mainLoopModel) openDecryptForm() {
	handles := newFormInput("handle-1, handle-2")
	handles.CharLimit = 512
	handles.Focus()
	deadline := newFormInput("blank = server default")

	m.inputs = []textinput.Model{handles, deadline}
	m.labels = []string{"Handles (comma separated)", "Deadline seconds"}
	m.focus = 0
	m.formErr = ""
	m.screen = screenDecryptForm
}

func (m mainLoopModel) submitDecrypt() (tea.Model, tea.Cmd) {
	var handles []models.HandleID
	for _, part := range strings.Split(m.inputs[0].Value(), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		handles = append(handles, models.HandleID(part))
	}
	if len(handles) == 0 {
		m.formErr = "at least one handle is required"
		return m, nil
	}

	var deadlineSeconds int64
	if raw := strings.TrimSpace(m.inputs[1].Value()); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			m.formErr = "deadline must be a non-negative number of seconds"
			return m, nil
		}
		deadlineSeconds = parsed
	}

	m.formErr = ""
	m.busy = true
	return m, m.cmdRequestDecryption(handles, deadlineSeconds)
}

// ───────────────────────── result view ─────────────────────────

func (m mainLoopModel) updateDecryptResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) {
		m.screen = screenDecryptions
		m.errMsg = ""
		return m, nil
	}
	return m, nil
}

func (m mainLoopModel) viewDecryptResult() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Request   │ %s\n", m.result.RequestID))
	b.WriteString(fmt.Sprintf("Fulfilled │ %s\n", formatTime(m.result.FulfilledAt)))
	b.WriteString("\n")

	handles := make([]models.HandleID, 0, len(m.result.Values))
	for h := range m.result.Values {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	b.WriteString(fmt.Sprintf("%-24s │ %s\n", "Handle", "Amount"))
	b.WriteString("─────────────────────────┼────────────────────\n")
	for _, h := range handles {
		b.WriteString(fmt.Sprintf("%-24s │ %s\n", fitText(string(h), 24), m.result.Values[h]))
	}

	return renderPage(
		"DECRYPTION RESULT",
		strings.TrimRight(b.String(), "\n"),
		"esc: back",
	)
}

// ───────────────────────── decryption commands ─────────────────────────

func (m mainLoopModel) cmdRequestDecryption(handles []models.HandleID, deadlineSeconds int64) tea.Cmd {
	ctx, decryptions, operatorID := m.ctx, m.services.DecryptionService, m.operatorID
	return func() tea.Msg {
		resp, err := decryptions.RequestDecryption(ctx, operatorID, handles, deadlineSeconds)
		return decryptRequestedMsg{resp: resp, err: err}
	}
}

func (m mainLoopModel) cmdLoadRequests() tea.Cmd {
	ctx, decryptions, operatorID := m.ctx, m.services.DecryptionService, m.operatorID
	return func() tea.Msg {
		list, err := decryptions.GetRequests(ctx, operatorID)
		return requestsLoadedMsg{requests: list, err: err}
	}
}

func (m mainLoopModel) cmdRefreshRequests() tea.Cmd {
	ctx, decryptions, operatorID := m.ctx, m.services.DecryptionService, m.operatorID
	return func() tea.Msg {
		settled, err := decryptions.Refresh(ctx, operatorID)
		return refreshDoneMsg{settled: settled, err: err}
	}
}

func (m mainLoopModel) cmdLoadResult(requestID string) tea.Cmd {
	ctx, decryptions, operatorID := m.ctx, m.services.DecryptionService, m.operatorID
	return func() tea.Msg {
		result, err := decryptions.GetResult(ctx, operatorID, requestID)
		return resultLoadedMsg{result: result, err: err}
	}
}
