package webhook

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

const maxPayloadBytes = 5 << 20

// Handler receives signing provider callbacks. Requests are authenticated by
// the provider's signature, not by bearer token.
type Handler struct {
	lc *esign.Lifecycle
}

func NewHandler(lc *esign.Lifecycle) *Handler {
	return &Handler{lc: lc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/webhooks/esign/{provider}", h.receive)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		respond.BadRequest(w, r, "reading body: "+err.Error())
		return
	}

	res, err := h.lc.ProcessWebhook(r.Context(), provider, esign.WebhookRequest{
		Header:     r.Header.Clone(),
		Body:       body,
		ReceivedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("webhook not processed", "provider", provider, "error", err)
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, res)
}
