package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dealdesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/config"
	"github.com/MrJamesThe3rd/dealdesk/internal/database"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	dealStore "github.com/MrJamesThe3rd/dealdesk/internal/deal/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	docStore "github.com/MrJamesThe3rd/dealdesk/internal/document/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign/remote"
	esignStore "github.com/MrJamesThe3rd/dealdesk/internal/esign/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign/stub"
	eventStore "github.com/MrJamesThe3rd/dealdesk/internal/event/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	rulesStore "github.com/MrJamesThe3rd/dealdesk/internal/rules/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
	templateStore "github.com/MrJamesThe3rd/dealdesk/internal/template/store"
)

type model struct {
	common    view.CommonModel
	generator *document.Generator
	documents *document.Service
	lifecycle *esign.Lifecycle
	templates *template.Service

	currentView View

	documentsView view.DocumentsModel
	envelopesView view.EnvelopesModel
	templatesView view.TemplatesModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDocuments View = 1
	ViewEnvelopes View = 2
	ViewTemplates View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	orgID, err := uuid.Parse(cfg.Console.OrgID)
	if err != nil {
		slog.Error("CONSOLE_ORG_ID must be a uuid", "error", err)
		os.Exit(1)
	}

	actorID := uuid.Nil
	if cfg.Console.ActorID != "" {
		if actorID, err = uuid.Parse(cfg.Console.ActorID); err != nil {
			slog.Error("CONSOLE_ACTOR_ID must be a uuid", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		objects  = storage.NewDisk(cfg.Storage.Root, cfg.Storage.PublicBaseURL, cfg.Storage.URLSecret, cfg.Storage.URLTTL)
		outbox   = eventStore.NewEmitter(db, cfg.Events.Outbox)
		renderer render.Renderer = render.HTMLRenderer{}
	)

	if cfg.Render.ConverterURL != "" {
		renderer = render.NewConverterRenderer(cfg.Render.ConverterURL, cfg.Render.Timeout)
	}

	var provider esign.Provider = stub.New(cfg.ESign.AutoComplete)
	if cfg.ESign.Provider == remote.Name {
		provider = remote.New(remote.Config{
			BaseURL:       cfg.ESign.BaseURL,
			APIKey:        cfg.ESign.APIKey,
			WebhookSecret: cfg.ESign.WebhookSecret,
			Timeout:       cfg.ESign.Timeout,
			MaxRetries:    cfg.ESign.MaxRetries,
		})
	}

	templateSvc := template.NewService(templateStore.New(db))

	gen := document.NewGenerator(
		docStore.New(db),
		deal.NewService(dealStore.New(db)),
		rules.NewService(rulesStore.New(db)),
		templateSvc,
		renderer,
		objects,
		outbox,
		document.Config{OutputFormat: cfg.Documents.OutputFormat},
	)

	common := view.CommonModel{Principal: auth.Principal{OrgID: orgID, ActorID: actorID}}
	docSvc := document.NewService(docStore.New(db), objects)
	lc := esign.NewLifecycle(esignStore.New(db), objects, outbox, provider)

	return model{
		common:        common,
		generator:     gen,
		documents:     docSvc,
		lifecycle:     lc,
		templates:     templateSvc,
		currentView:   ViewMenu,
		documentsView: view.NewDocumentsModel(common, gen, docSvc),
		envelopesView: view.NewEnvelopesModel(common, lc),
		templatesView: view.NewTemplatesModel(common, templateSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDocuments
				m.documentsView = view.NewDocumentsModel(m.common, m.generator, m.documents)

				return m, m.documentsView.Init()
			case "2":
				m.currentView = ViewEnvelopes
				m.envelopesView = view.NewEnvelopesModel(m.common, m.lifecycle)

				return m, m.envelopesView.Init()
			case "3":
				m.currentView = ViewTemplates
				m.templatesView = view.NewTemplatesModel(m.common, m.templates)

				return m, m.templatesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDocuments:
		var newModel tea.Model
		newModel, cmd = m.documentsView.Update(msg)
		m.documentsView = newModel.(view.DocumentsModel)
	case ViewEnvelopes:
		var newModel tea.Model
		newModel, cmd = m.envelopesView.Update(msg)
		m.envelopesView = newModel.(view.EnvelopesModel)
	case ViewTemplates:
		var newModel tea.Model
		newModel, cmd = m.templatesView.Update(msg)
		m.templatesView = newModel.(view.TemplatesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"DealDesk Console\n\n" +
				"1. Deal Documents\n" +
				"2. Signing Envelopes\n" +
				"3. Templates\n\n" +
				"q. Quit",
		)
	case ViewDocuments:
		return m.documentsView.View()
	case ViewEnvelopes:
		return m.envelopesView.View()
	case ViewTemplates:
		return m.templatesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
