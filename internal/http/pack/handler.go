package pack

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealdesk/internal/encoding"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
)

const maxDefinitionBytes = 256 << 10

type Handler struct {
	svc  *pack.Service
	orch *pack.Orchestrator
}

func NewHandler(svc *pack.Service, orch *pack.Orchestrator) *Handler {
	return &Handler{svc: svc, orch: orch}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/packs", h.list)
	r.Post("/packs", h.create)
	r.Get("/packs/{id}", h.get)
	r.Post("/deals/{dealID}/packs/{packID}/run", h.run)
	r.Get("/deals/{dealID}/checklist", h.checklist)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	packs, err := h.svc.List(r.Context(), p.OrgID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if packs == nil {
		packs = []*pack.Pack{}
	}

	respond.JSON(w, http.StatusOK, packs)
}

// create accepts a pack definition as JSON or YAML.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
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

	params, err := pack.ParseDefinition(buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), p, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, created)
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

	pk, err := h.svc.Get(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, pk)
}

type runRequest struct {
	Regenerate bool       `json:"regenerate"`
	Reason     string     `json:"reason"`
	AsOf       *time.Time `json:"asOf,omitempty"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	packID, ok := respond.ID(w, r, "packID")
	if !ok {
		return
	}

	var req runRequest
	if err := respond.Decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	res, err := h.orch.Run(r.Context(), p, pack.RunRequest{
		DealID:     dealID,
		PackID:     packID,
		Regenerate: req.Regenerate,
		Reason:     req.Reason,
		AsOf:       req.AsOf,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) checklist(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	items, err := h.svc.Checklist(r.Context(), p.OrgID, dealID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if items == nil {
		items = []*pack.ChecklistItem{}
	}

	respond.JSON(w, http.StatusOK, items)
}
