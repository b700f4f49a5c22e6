package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

type documentsState int

const (
	documentsStatePrompt documentsState = iota
	documentsStateBrowse
	documentsStateReason
)

// DocumentsModel shows the documents of one deal and drives generation.
type DocumentsModel struct {
	CommonModel
	generator *document.Generator
	docs      *document.Service

	state  documentsState
	prompt dealPrompt
	dealID uuid.UUID
	table  table.Model
	items  []*document.Document
	form   *huh.Form

	loading bool
	err     error
	status  string

	formReason string
}

func NewDocumentsModel(common CommonModel, gen *document.Generator, docs *document.Service) DocumentsModel {
	return DocumentsModel{
		CommonModel: common,
		generator:   gen,
		docs:        docs,
		prompt:      newDealPrompt(),
		table: newTable([]table.Column{
			{Title: "Doc Type", Width: 28},
			{Title: "Status", Width: 20},
			{Title: "Mode", Width: 6},
			{Title: "Envelope", Width: 10},
			{Title: "Updated", Width: 12},
			{Title: "Reason", Width: 30},
		}),
	}
}

func (m DocumentsModel) Title() string { return "Deal Documents" }
func (m DocumentsModel) ShortHelp() string {
	if m.state == documentsStateReason {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | g: generate required | R: regenerate selected | r: reload"
}

func (m DocumentsModel) Init() tea.Cmd {
	return nil
}

func (m DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDocumentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.docs
		m.refreshTable()
		return m, nil

	case generateMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error generating: %v", msg.err)
		} else {
			m.status = summarize(msg.res)
		}
		m.state = documentsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case documentsStatePrompt:
		return m.updatePrompt(msg)
	case documentsStateBrowse:
		return m.updateBrowse(msg)
	case documentsStateReason:
		return m.updateReason(msg)
	}

	return m, nil
}

func (m DocumentsModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	m.state = documentsStateBrowse
	m.loading = true

	return m, m.loadCmd()
}

func (m DocumentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "g":
			m.status = "Generating..."
			return m, m.generateCmd(nil, false, "")
		case "R":
			return m.enterReasonMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DocumentsModel) enterReasonMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formReason = ""
	m.form = reasonForm(&m.formReason, "Regeneration reason")
	m.state = documentsStateReason
	m.table.Blur()

	return m, m.form.Init()
}

func (m DocumentsModel) updateReason(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = documentsStateBrowse
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

	doc := m.selected()
	if doc == nil {
		return m, nil
	}

	m.status = fmt.Sprintf("Regenerating %s...", doc.DocType)

	return m, m.generateCmd([]string{doc.DocType}, true, m.formReason)
}

func (m DocumentsModel) selected() *document.Document {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m DocumentsModel) View() string {
	if m.state == documentsStatePrompt {
		return lipgloss.NewStyle().Padding(2).Render(m.prompt.view(m.Title()))
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading documents...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	header := fmt.Sprintf("Deal %s | %d documents | %s", activeStyle(m.dealID.String()), len(m.items), m.ShortHelp())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == documentsStateReason && m.form != nil {
		docType := ""
		if doc := m.selected(); doc != nil {
			docType = doc.DocType
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Regenerate "+docType, m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DocumentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, d := range m.items {
		envelope := ""
		if d.EnvelopeID != nil {
			envelope = ShortID(*d.EnvelopeID)
		}
		rows = append(rows, table.Row{
			d.DocType,
			string(d.Status),
			string(d.RenderMode()),
			envelope,
			FormatDate(d.UpdatedAt),
			d.RegenerateReason,
		})
	}
	m.table.SetRows(rows)
}

func reasonForm(value *string, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reason").
				Title(title).
				Value(value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func summarize(res *document.GenerateResult) string {
	counts := make(map[document.Outcome]int)
	for _, it := range res.Items {
		counts[it.Outcome]++
	}

	parts := make([]string, 0, len(counts))
	for _, o := range []document.Outcome{
		document.OutcomeGenerated,
		document.OutcomeSkippedExisting,
		document.OutcomeMissingFields,
		document.OutcomeMissingTemplate,
		document.OutcomeUnsupportedTemplate,
		document.OutcomeRegenerateReasonRequired,
	} {
		if n := counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", o, n))
		}
	}

	if len(parts) == 0 {
		return "Nothing to generate"
	}

	return strings.Join(parts, " | ")
}

// Messages

type loadDocumentsMsg struct {
	docs []*document.Document
	err  error
}

func (m DocumentsModel) loadCmd() tea.Cmd {
	orgID, dealID := m.Principal.OrgID, m.dealID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		docs, err := m.docs.ListForDeal(ctx, orgID, dealID)
		return loadDocumentsMsg{docs: docs, err: err}
	}
}

type generateMsg struct {
	res *document.GenerateResult
	err error
}

func (m DocumentsModel) generateCmd(docTypes []string, regenerate bool, reason string) tea.Cmd {
	p, dealID := m.Principal, m.dealID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.generator.Generate(ctx, p, document.Request{
			DealID:     dealID,
			DocTypes:   docTypes,
			Regenerate: regenerate,
			Reason:     reason,
		})

		return generateMsg{res: res, err: err}
	}
}
