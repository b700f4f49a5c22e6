package files

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

// SignedReader serves objects behind signed, expiring download URLs.
type SignedReader interface {
	ReadSigned(ctx context.Context, q url.Values) ([]byte, string, error)
}

type Handler struct {
	store SignedReader
}

func NewHandler(store SignedReader) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/files", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	buf, key, err := h.store.ReadSigned(r.Context(), r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.Header().Set("Content-Disposition", "attachment; filename=\""+path.Base(key)+"\"")
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(buf)
}
