package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

type envelopesState int

const (
	envelopesStatePrompt envelopesState = iota
	envelopesStateBrowse
	envelopesStateVoid
)

// EnvelopesModel lists the signing envelopes of a deal and lets the operator
// void or refresh them.
type EnvelopesModel struct {
	CommonModel
	lifecycle *esign.Lifecycle

	state     envelopesState
	prompt    dealPrompt
	dealID    uuid.UUID
	table     table.Model
	envelopes []*esign.Envelope
	form      *huh.Form

	loading bool
	err     error
	status  string

	formReason string
}

func NewEnvelopesModel(common CommonModel, lc *esign.Lifecycle) EnvelopesModel {
	return EnvelopesModel{
		CommonModel: common,
		lifecycle:   lc,
		prompt:      newDealPrompt(),
		table: newTable([]table.Column{
			{Title: "Envelope", Width: 10},
			{Title: "Provider", Width: 10},
			{Title: "Status", Width: 18},
			{Title: "Request", Width: 20},
			{Title: "Sent", Width: 17},
			{Title: "Completed", Width: 17},
		}),
	}
}

func (m EnvelopesModel) Title() string { return "Signing Envelopes" }
func (m EnvelopesModel) ShortHelp() string {
	if m.state == envelopesStateVoid {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | v: void | f: refresh from provider | r: reload"
}

func (m EnvelopesModel) Init() tea.Cmd {
	return nil
}

func (m EnvelopesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadEnvelopesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.envelopes = msg.envelopes
		m.refreshTable()
		return m, nil

	case envelopeActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Envelope %s is %s", ShortID(msg.env.ID), msg.env.Status)
		}
		m.state = envelopesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case envelopesStatePrompt:
		return m.updatePrompt(msg)
	case envelopesStateBrowse:
		return m.updateBrowse(msg)
	case envelopesStateVoid:
		return m.updateVoid(msg)
	}

	return m, nil
}

func (m EnvelopesModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var (
		id    uuid.UUID
		ready bool
		cmd   tea.Cmd
	)

	m.prompt, id, ready, cmd = m.prompt.update(msg)
	if !ready {
		return m, cmd
	}

	m.dealID = id
	m.state = envelopesStateBrowse
	m.loading = true

	return m, m.loadCmd()
}

func (m EnvelopesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			if env := m.selected(); env != nil {
				m.status = "Refreshing..."
				return m, m.refreshCmd(env.ID)
			}
		case "v":
			return m.enterVoidMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m EnvelopesModel) enterVoidMode() (tea.Model, tea.Cmd) {
	env := m.selected()
	if env == nil {
		return m, nil
	}

	if env.Status.Terminal() {
		m.status = fmt.Sprintf("Envelope is already %s", env.Status)
		return m, nil
	}

	m.formReason = ""
	m.form = reasonForm(&m.formReason, "Void reason")
	m.state = envelopesStateVoid
	m.table.Blur()

	return m, m.form.Init()
}

func (m EnvelopesModel) updateVoid(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = envelopesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	env := m.selected()
	if env == nil {
		return m, nil
	}

	m.status = "Voiding..."

	return m, m.voidCmd(env.ID, m.formReason)
}

func (m EnvelopesModel) selected() *esign.Envelope {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.envelopes) {
		return nil
	}

	return m.envelopes[idx]
}

func (m EnvelopesModel) View() string {
	if m.state == envelopesStatePrompt {
		return lipgloss.NewStyle().Padding(2).Render(m.prompt.view(m.Title()))
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading envelopes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	header := fmt.Sprintf("Deal %s | %d envelopes | %s", activeStyle(m.dealID.String()), len(m.envelopes), m.ShortHelp())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == envelopesStateVoid && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Void Envelope", m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *EnvelopesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.envelopes))
	for _, e := range m.envelopes {
		rows = append(rows, table.Row{
			ShortID(e.ID),
			e.Provider,
			string(e.Status),
			e.RequestID,
			FormatTime(e.SentAt),
			FormatTime(e.CompletedAt),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadEnvelopesMsg struct {
	envelopes []*esign.Envelope
	err       error
}

func (m EnvelopesModel) loadCmd() tea.Cmd {
	orgID, dealID := m.Principal.OrgID, m.dealID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		envs, err := m.lifecycle.ListForDeal(ctx, orgID, dealID)
		return loadEnvelopesMsg{envelopes: envs, err: err}
	}
}

type envelopeActionMsg struct {
	env *esign.Envelope
	err error
}

func (m EnvelopesModel) voidCmd(id uuid.UUID, reason string) tea.Cmd {
	p := m.Principal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.lifecycle.Void(ctx, p, id, reason)
		return envelopeActionMsg{env: env, err: err}
	}
}

func (m EnvelopesModel) refreshCmd(id uuid.UUID) tea.Cmd {
	p := m.Principal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.lifecycle.Refresh(ctx, p, id)
		return envelopeActionMsg{env: env, err: err}
	}
}
