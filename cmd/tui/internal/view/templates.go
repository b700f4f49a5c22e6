package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

type templatesState int

const (
	templatesStateBrowse templatesState = iota
	templatesStateDelete
)

// TemplatesModel lists the templates visible to the organization.
type TemplatesModel struct {
	CommonModel
	svc *template.Service

	state     templatesState
	table     table.Model
	templates []*template.Template
	form      *huh.Form

	showGlobal bool

	loading bool
	err     error
	status  string

	formConfirm bool
}

func NewTemplatesModel(common CommonModel, svc *template.Service) TemplatesModel {
	return TemplatesModel{
		CommonModel: common,
		svc:         svc,
		showGlobal:  true,
		table: newTable([]table.Column{
			{Title: "Doc Type", Width: 28},
			{Title: "Juris.", Width: 6},
			{Title: "Deal Type", Width: 10},
			{Title: "Ver", Width: 4},
			{Title: "Engine", Width: 6},
			{Title: "Scope", Width: 6},
			{Title: "Default", Width: 8},
			{Title: "Effective", Width: 12},
		}),
	}
}

func (m TemplatesModel) Title() string { return "Templates" }
func (m TemplatesModel) ShortHelp() string {
	if m.state == templatesStateDelete {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | d: make org default | x: delete | g: toggle global | r: reload"
}

func (m TemplatesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TemplatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTemplatesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.templates = msg.templates
		m.refreshTable()
		return m, nil

	case templateActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.done
		}
		m.state = templatesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case templatesStateBrowse:
		return m.updateBrowse(msg)
	case templatesStateDelete:
		return m.updateDelete(msg)
	}

	return m, nil
}

func (m TemplatesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "g":
			m.showGlobal = !m.showGlobal
			return m, m.loadCmd()
		case "d":
			if tpl := m.selected(); tpl != nil {
				return m, m.setDefaultCmd(tpl.ID)
			}
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TemplatesModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	tpl := m.selected()
	if tpl == nil {
		return m, nil
	}

	if tpl.OrgID == nil {
		m.status = "Global templates are read-only"
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s v%d?", tpl.DocType, tpl.Version)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = templatesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TemplatesModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = templatesStateBrowse
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

	tpl := m.selected()
	if !m.formConfirm || tpl == nil {
		m.state = templatesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.deleteCmd(tpl.ID)
}

func (m TemplatesModel) selected() *template.Template {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.templates) {
		return nil
	}

	return m.templates[idx]
}

func (m TemplatesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading templates...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	scope := "Org only"
	if m.showGlobal {
		scope = "Org + Global"
	}

	header := fmt.Sprintf("Filter: [g] %s | %s", activeStyle(scope), m.ShortHelp())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == templatesStateDelete && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Delete Template", m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TemplatesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.templates))
	for _, t := range m.templates {
		scope := "org"
		if t.OrgID == nil {
			scope = "global"
		}

		def := ""
		switch {
		case t.DefaultForOrg:
			def = "org"
		case t.IsDefault:
			def = "yes"
		}

		rows = append(rows, table.Row{
			t.DocType,
			t.Jurisdiction,
			string(t.DealType),
			fmt.Sprintf("%d", t.Version),
			string(t.Engine),
			scope,
			def,
			FormatDate(t.EffectiveFrom),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTemplatesMsg struct {
	templates []*template.Template
	err       error
}

func (m TemplatesModel) loadCmd() tea.Cmd {
	orgID, global := m.Principal.OrgID, m.showGlobal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tpls, err := m.svc.List(ctx, orgID, template.ListFilter{IncludeGlobal: global})
		return loadTemplatesMsg{templates: tpls, err: err}
	}
}

type templateActionMsg struct {
	done string
	err  error
}

func (m TemplatesModel) setDefaultCmd(id uuid.UUID) tea.Cmd {
	p := m.Principal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tpl, err := m.svc.SetDefault(ctx, p, id)
		if err != nil {
			return templateActionMsg{err: err}
		}

		return templateActionMsg{done: fmt.Sprintf("%s v%d is now the org default", tpl.DocType, tpl.Version)}
	}
}

func (m TemplatesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	p := m.Principal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, p, id); err != nil {
			return templateActionMsg{err: err}
		}

		return templateActionMsg{done: "Template deleted"}
	}
}
