package ruleset

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/encoding"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
)

const maxDefinitionBytes = 1 << 20

type Handler struct {
	svc *rules.Service
}

func NewHandler(svc *rules.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/rulesets", h.publish)
	r.Get("/rulesets/{id}", h.get)
}

type ruleSetResponse struct {
	ID            uuid.UUID  `json:"id"`
	OrgID         *uuid.UUID `json:"orgId,omitempty"`
	Jurisdiction  string     `json:"jurisdiction"`
	Version       int        `json:"version"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
	Rules         rules.Body `json:"rules"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toResponse(rs *rules.RuleSet) ruleSetResponse {
	return ruleSetResponse{
		ID:            rs.ID,
		OrgID:         rs.OrgID,
		Jurisdiction:  rs.Jurisdiction,
		Version:       rs.Version,
		EffectiveFrom: rs.EffectiveFrom,
		EffectiveTo:   rs.EffectiveTo,
		Rules:         rs.Body,
		CreatedAt:     rs.CreatedAt,
	}
}

// publish accepts a rule set definition as YAML or JSON and stores it as the
// next version of its scope.
func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDefinitionBytes))
	if err != nil {
		respond.BadRequest(w, r, "reading body: "+err.Error())
		return
	}

	buf, err = encoding.ToUTF8(buf)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	params, err := rules.ParseDefinition(buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rs, err := h.svc.Publish(r.Context(), p, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	rs, err := h.svc.Get(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rs))
}
