package document

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

type Handler struct {
	gen *document.Generator
	svc *document.Service
}

func NewHandler(gen *document.Generator, svc *document.Service) *Handler {
	return &Handler{gen: gen, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/deals/{dealID}/evaluation", h.evaluate)
	r.Post("/deals/{dealID}/documents/generate", h.generate)
	r.Get("/deals/{dealID}/documents", h.list)
	r.Get("/documents/{id}", h.get)
	r.Get("/documents/{id}/download", h.download)
}

type generateRequest struct {
	DocTypes   []string   `json:"docTypes"`
	Regenerate bool       `json:"regenerate"`
	Reason     string     `json:"reason"`
	AsOf       *time.Time `json:"asOf,omitempty"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	var req generateRequest
	if err := respond.Decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	res, err := h.gen.Generate(r.Context(), p, document.Request{
		DealID:     dealID,
		DocTypes:   req.DocTypes,
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

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	var asOf *time.Time

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.BadRequest(w, r, "as_of must be YYYY-MM-DD")
			return
		}

		asOf = new(t)
	}

	sess, err := h.gen.Prepare(r.Context(), p, dealID, asOf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, sess.Evaluation)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	docs, err := h.svc.ListForDeal(r.Context(), p.OrgID, dealID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(docs))
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

	d, err := h.svc.Get(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

type downloadResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	signed, _ := strconv.ParseBool(r.URL.Query().Get("signed"))

	url, err := h.svc.DownloadURL(r.Context(), p.OrgID, id, signed)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, downloadResponse{ID: id, URL: url})
}
