package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/audit/{entityType}/{entityID}", h.trail)
}

func (h *Handler) trail(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	entityID, ok := respond.ID(w, r, "entityID")
	if !ok {
		return
	}

	records, err := h.svc.Trail(r.Context(), p.OrgID, chi.URLParam(r, "entityType"), entityID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records))
}
