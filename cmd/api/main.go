package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	auditStore "github.com/MrJamesThe3rd/dealdesk/internal/audit/store"
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
	dealdeskHttp "github.com/MrJamesThe3rd/dealdesk/internal/http"
	auditHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/audit"
	documentHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/document"
	envelopeHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/envelope"
	filesHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/files"
	packHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/pack"
	ruleSetHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/ruleset"
	templateHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/template"
	webhookHandler "github.com/MrJamesThe3rd/dealdesk/internal/http/webhook"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
	packStore "github.com/MrJamesThe3rd/dealdesk/internal/pack/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	rulesStore "github.com/MrJamesThe3rd/dealdesk/internal/rules/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
	templateStore "github.com/MrJamesThe3rd/dealdesk/internal/template/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		objects  = storage.NewDisk(cfg.Storage.Root, cfg.Storage.PublicBaseURL, cfg.Storage.URLSecret, cfg.Storage.URLTTL)
		outbox   = eventStore.NewEmitter(db, cfg.Events.Outbox)
		renderer = newRenderer(cfg)
		verifier = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	)

	var (
		dealService     = deal.NewService(dealStore.New(db))
		rulesService    = rules.NewService(rulesStore.New(db))
		templateService = template.NewService(templateStore.New(db))
		auditService    = audit.NewService(auditStore.New(db))
		packService     = pack.NewService(packStore.New(db))
		documentService = document.NewService(docStore.New(db), objects)
	)

	generator := document.NewGenerator(
		docStore.New(db),
		dealService,
		rulesService,
		templateService,
		renderer,
		objects,
		outbox,
		document.Config{OutputFormat: cfg.Documents.OutputFormat},
	)

	var (
		orchestrator = pack.NewOrchestrator(packStore.New(db), generator, cfg.Documents.MaxPerRun)
		lifecycle    = esign.NewLifecycle(esignStore.New(db), objects, outbox, newProvider(cfg))
	)

	if cfg.App.SeedDir != "" {
		if err := seed(ctx, cfg, rulesService, templateService, packService); err != nil {
			slog.Error("failed to seed definitions", "dir", cfg.App.SeedDir, "error", err)
			os.Exit(1)
		}
	}

	router := dealdeskHttp.New(verifier, cfg.CORS.AllowedOrigins, dealdeskHttp.Handlers{
		Documents: documentHandler.NewHandler(generator, documentService),
		Packs:     packHandler.NewHandler(packService, orchestrator),
		Envelopes: envelopeHandler.NewHandler(lifecycle),
		Templates: templateHandler.NewHandler(templateService),
		RuleSets:  ruleSetHandler.NewHandler(rulesService),
		Audit:     auditHandler.NewHandler(auditService),
		Webhooks:  webhookHandler.NewHandler(lifecycle),
		Files:     filesHandler.NewHandler(objects),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "esign_provider", cfg.ESign.Provider)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newRenderer(cfg *config.Config) render.Renderer {
	if cfg.Render.ConverterURL == "" {
		return render.HTMLRenderer{}
	}

	return render.NewConverterRenderer(cfg.Render.ConverterURL, cfg.Render.Timeout)
}

func newProvider(cfg *config.Config) esign.Provider {
	if cfg.ESign.Provider == remote.Name {
		return remote.New(remote.Config{
			BaseURL:       cfg.ESign.BaseURL,
			APIKey:        cfg.ESign.APIKey,
			WebhookSecret: cfg.ESign.WebhookSecret,
			Timeout:       cfg.ESign.Timeout,
			MaxRetries:    cfg.ESign.MaxRetries,
		})
	}

	return stub.New(cfg.ESign.AutoComplete)
}
