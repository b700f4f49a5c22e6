package template

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

type Handler struct {
	svc *template.Service
}

func NewHandler(svc *template.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/templates", h.list)
	r.Post("/templates", h.create)
	r.Get("/templates/{id}", h.get)
	r.Post("/templates/{id}/default", h.setDefault)
	r.Delete("/templates/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := template.ListFilter{IncludeGlobal: true}

	if s := q.Get("doc_type"); s != "" {
		filter.DocType = new(strings.ToUpper(s))
	}

	if s := q.Get("jurisdiction"); s != "" {
		filter.Jurisdiction = new(strings.ToUpper(s))
	}

	if s := q.Get("include_global"); s != "" {
		filter.IncludeGlobal, _ = strconv.ParseBool(s)
	}

	if s := q.Get("include_deleted"); s != "" {
		filter.IncludeDeleted, _ = strconv.ParseBool(s)
	}

	tpls, err := h.svc.List(r.Context(), p.OrgID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(tpls))
}

type createRequest struct {
	Global        bool            `json:"global"`
	DocType       string          `json:"docType"`
	Jurisdiction  string          `json:"jurisdiction"`
	DealType      deal.Type       `json:"dealType"`
	Engine        template.Engine `json:"templateEngine"`
	SourceHTML    string          `json:"sourceHtml"`
	SourceDocxKey string          `json:"sourceDocxKey"`
	RequiredPaths []string        `json:"requiredPaths"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
	DefaultForOrg bool            `json:"defaultForOrg"`
	IsDefault     bool            `json:"isDefault"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	tpl, err := h.svc.Create(r.Context(), p, template.CreateParams{
		Global:         req.Global,
		DocType:        req.DocType,
		Jurisdiction:   req.Jurisdiction,
		DealType:       req.DealType,
		Engine:         template.Engine(strings.ToUpper(string(req.Engine))),
		SourceHTML:     req.SourceHTML,
		SourceDocxKey:  req.SourceDocxKey,
		RequiredFields: template.RequiredFields{RequiredPaths: req.RequiredPaths},
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveTo:    req.EffectiveTo,
		DefaultForOrg:  req.DefaultForOrg,
		IsDefault:      req.IsDefault,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tpl))
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

	tpl, err := h.svc.Get(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tpl))
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	tpl, err := h.svc.SetDefault(r.Context(), p, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tpl))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), p, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
