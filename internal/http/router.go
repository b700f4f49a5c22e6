package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/envelope"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/files"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/pack"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/ruleset"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/template"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/webhook"
)

type Handlers struct {
	Documents *document.Handler
	Packs     *pack.Handler
	Envelopes *envelope.Handler
	Templates *template.Handler
	RuleSets  *ruleset.Handler
	Audit     *audit.Handler
	Webhooks  *webhook.Handler
	Files     *files.Handler
}

func New(verifier *auth.Verifier, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		// Providers and signed download links authenticate themselves.
		h.Webhooks.Routes(r)
		h.Files.Routes(r)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(verifier))

			h.Documents.Routes(r)
			h.Packs.Routes(r)
			h.Envelopes.Routes(r)
			h.Templates.Routes(r)
			h.RuleSets.Routes(r)
			h.Audit.Routes(r)
		})
	})

	return router
}
