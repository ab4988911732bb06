package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obscuralabs/blind-payroll/internal/service"
	"github.com/obscuralabs/blind-payroll/models"
)

// ───────────────────────── items list ─────────────────────────

func (m mainLoopModel) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.itemIdx > 0 {
			m.itemIdx--
		}
	case key.Matches(msg, keys.down):
		if m.itemIdx < len(m.items)-1 {
			m.itemIdx++
		}
	case key.Matches(msg, keys.esc):
		m.screen = screenRuns
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.create):
		m.openEnrollForm()
		return m, textinput.Blink
	case key.Matches(msg, keys.adjust):
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		m.openAdjustForm(item)
		return m, textinput.Blink
	case key.Matches(msg, keys.claim):
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		m.openClaimForm(item)
		return m, textinput.Blink
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoadItems()
	}

	return m, nil
}

func (m mainLoopModel) viewItems() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading items...\n\n")
	}

	if len(m.items) == 0 && !m.loading {
		b.WriteString("No items enrolled. Press n to enroll the first one.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-4s │ %7s │ %-14s │ %4s │ %-6s │ %-22s\n",
			"Idx", "Subject", "Category", "Tier", "Active", "Latest net"))
		b.WriteString("──────┼─────────┼────────────────┼──────┼────────┼────────────────────────\n")
		for i, item := range m.items {
			cursor := " "
			if i == m.itemIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-4d │ %7d │ %-14s │ %4d │ %-6s │ %-22s\n",
				cursor, item.Index, item.SubjectID, fitText(item.Category, 14), item.Tier,
				yesNo(item.Active), shortHandle(item.LatestNet.Handle)))
		}
	}

	b.WriteString(m.viewStatusLine())

	return renderPage(
		"PAYROLL ITEMS",
		strings.TrimRight(b.String(), "\n"),
		"n: enroll │ a: adjustment │ c: claim │ r: refresh │ esc: back",
	)
}

func (m mainLoopModel) currentItem() (models.ItemView, bool) {
	if len(m.items) == 0 || m.itemIdx < 0 || m.itemIdx >= len(m.items) {
		return models.ItemView{}, false
	}
	return m.items[m.itemIdx], true
}

// ───────────────────────── enroll form ─────────────────────────

func (m *mainLoopModel) openEnrollForm() {
	subject := newFormInput("1001")
	subject.Focus()
	category := newFormInput("engineering")
	tier := newFormInput("0")
	active := newFormInput("y")
	amount := newFormInput("52000.00")

	m.inputs = []textinput.Model{subject, category, tier, active, amount}
	m.labels = []string{"Subject ID", "Category", "Tier", "Active (y/n)", "Base amount"}
	m.focus = 0
	m.formErr = ""
	m.screen = screenEnrollForm
}

func (m mainLoopModel) submitEnroll() (tea.Model, tea.Cmd) {
	subjectID, err := strconv.ParseInt(strings.TrimSpace(m.inputs[0].Value()), 10, 64)
	if err != nil {
		m.formErr = "subject ID must be a number"
		return m, nil
	}

	category := strings.TrimSpace(m.inputs[1].Value())

	tier, err := strconv.ParseUint(strings.TrimSpace(m.inputs[2].Value()), 10, 64)
	if err != nil {
		m.formErr = "tier must be a non-negative number"
		return m, nil
	}

	active, err := parseYesNo(m.inputs[3].Value())
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}

	amount, err := models.ParseMicro(m.inputs[4].Value())
	if err != nil {
		m.formErr = "base amount must be a decimal, e.g. 52000.00"
		return m, nil
	}

	m.formErr = ""
	m.busy = true
	return m, m.cmdEnrollItem(service.EnrollItemForm{
		SubjectID: subjectID,
		Category:  category,
		Tier:      tier,
		Active:    active,
		Value:     amount,
	})
}

// ───────────────────────── adjustment form ─────────────────────────

func (m *mainLoopModel) openAdjustForm(item models.ItemView) {
	amount := newFormInput("250.00")
	amount.Focus()

	m.targetItem = item.Index
	m.inputs = []textinput.Model{amount}
	m.labels = []string{"Adjustment amount"}
	m.focus = 0
	m.formErr = ""
	m.screen = screenAdjustForm
}

func (m mainLoopModel) submitAdjust() (tea.Model, tea.Cmd) {
	amount, err := models.ParseMicro(m.inputs[0].Value())
	if err != nil {
		m.formErr = "amount must be a decimal, e.g. 250.00"
		return m, nil
	}

	m.formErr = ""
	m.busy = true
	return m, m.cmdAttachAdjustment(m.targetItem, amount)
}

// ───────────────────────── claim form ─────────────────────────

func (m *mainLoopModel) openClaimForm(item models.ItemView) {
	lower := newFormInput("40000.00")
	lower.Focus()
	upper := newFormInput("")

	m.targetItem = item.Index
	m.inputs = []textinput.Model{lower, upper}
	m.labels = []string{"Lower bound", "Upper bound (blank = above)"}
	m.focus = 0
	m.formErr = ""
	m.screen = screenClaimForm
}

func (m mainLoopModel) submitClaim() (tea.Model, tea.Cmd) {
	lower, err := models.ParseMicro(m.inputs[0].Value())
	if err != nil {
		m.formErr = "lower bound must be a decimal, e.g. 40000.00"
		return m, nil
	}

	upperRaw := strings.TrimSpace(m.inputs[1].Value())
	if upperRaw == "" {
		m.formErr = ""
		m.busy = true
		m.claimKind = "above threshold"
		return m, m.cmdClaimAbove(models.ClaimRequest{
			ItemIndex: m.targetItem,
			Threshold: lower,
		})
	}

	upper, err := models.ParseMicro(upperRaw)
	if err != nil {
		m.formErr = "upper bound must be a decimal, e.g. 90000.00"
		return m, nil
	}
	if upper < lower {
		m.formErr = "upper bound must not be below the lower bound"
		return m, nil
	}

	m.formErr = ""
	m.busy = true
	m.claimKind = "within range"
	return m, m.cmdClaimWithin(models.ClaimRequest{
		ItemIndex:  m.targetItem,
		Threshold:  lower,
		UpperBound: upper,
	})
}

// ───────────────────────── claim result ─────────────────────────

func (m mainLoopModel) updateClaimResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenItems
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.copy):
		return m, cmdCopy("claim handle", string(m.claim.Result.Handle))
	case key.Matches(msg, keys.decrypts):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.cmdRequestDecryption([]models.HandleID{m.claim.Result.Handle}, 0)
	}

	return m, nil
}

func (m mainLoopModel) viewClaimResult() string {
	var b strings.Builder

	b.WriteString("Field      │ Value\n")
	b.WriteString("───────────┼────────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("Item index │ %d\n", m.targetItem))
	b.WriteString(fmt.Sprintf("Claim kind │ %s\n", m.claimKind))
	b.WriteString(fmt.Sprintf("Handle     │ %s\n", m.claim.Result.Handle))
	b.WriteString("\n")
	b.WriteString("The handle references an encrypted boolean granted to you.\n")
	b.WriteString("Request its decryption to learn the answer.\n")

	b.WriteString(m.viewStatusLine())

	return renderPage(
		"CLAIM ISSUED",
		strings.TrimRight(b.String(), "\n"),
		"c: copy handle │ d: request decryption │ esc: back",
	)
}

// ───────────────────────── item commands ─────────────────────────

func (m mainLoopModel) cmdLoadItems() tea.Cmd {
	ctx, items := m.ctx, m.services.ItemService
	return func() tea.Msg {
		list, err := items.GetItems(ctx)
		return itemsLoadedMsg{items: list, err: err}
	}
}

func (m mainLoopModel) cmdEnrollItem(form service.EnrollItemForm) tea.Cmd {
	ctx, items, operatorID := m.ctx, m.services.ItemService, m.operatorID
	return func() tea.Msg {
		item, err := items.EnrollItem(ctx, operatorID, form)
		return itemSavedMsg{item: item, err: err}
	}
}

func (m mainLoopModel) cmdAttachAdjustment(index int64, value models.Micro) tea.Cmd {
	ctx, items, operatorID := m.ctx, m.services.ItemService, m.operatorID
	return func() tea.Msg {
		item, err := items.AttachAdjustment(ctx, operatorID, index, value)
		return itemSavedMsg{item: item, err: err}
	}
}

func (m mainLoopModel) cmdClaimAbove(request models.ClaimRequest) tea.Cmd {
	ctx, items := m.ctx, m.services.ItemService
	return func() tea.Msg {
		resp, err := items.ClaimAboveThreshold(ctx, request)
		return claimDoneMsg{resp: resp, err: err}
	}
}

func (m mainLoopModel) cmdClaimWithin(request models.ClaimRequest) tea.Cmd {
	ctx, items := m.ctx, m.services.ItemService
	return func() tea.Msg {
		resp, err := items.ClaimWithinRange(ctx, request)
		return claimDoneMsg{resp: resp, err: err}
	}
}

func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("expected y or n, got %q", v)
	}
}
