package envelope

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

type Handler struct {
	lc *esign.Lifecycle
}

func NewHandler(lc *esign.Lifecycle) *Handler {
	return &Handler{lc: lc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/deals/{dealID}/envelopes", h.send)
	r.Get("/deals/{dealID}/envelopes", h.listForDeal)
	r.Get("/envelopes/{id}", h.get)
	r.Get("/envelopes/{id}/documents", h.documents)
	r.Post("/envelopes/{id}/void", h.void)
	r.Post("/envelopes/{id}/refresh", h.refresh)
}

type sendRequest struct {
	DocumentIDs []uuid.UUID       `json:"documentIds"`
	Recipients  []esign.Recipient `json:"recipients"`
	RequestID   string            `json:"requestId"`
	Provider    string            `json:"provider,omitempty"`
}

// send creates an envelope. The request id may also be given in the
// Idempotency-Key header.
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	var req sendRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	if req.RequestID == "" {
		req.RequestID = r.Header.Get("Idempotency-Key")
	}

	env, err := h.lc.Send(r.Context(), p, esign.SendRequest{
		DealID:      dealID,
		DocumentIDs: req.DocumentIDs,
		Recipients:  req.Recipients,
		RequestID:   req.RequestID,
		Provider:    req.Provider,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, env)
}

func (h *Handler) listForDeal(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	dealID, ok := respond.ID(w, r, "dealID")
	if !ok {
		return
	}

	envs, err := h.lc.ListForDeal(r.Context(), p.OrgID, dealID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if envs == nil {
		envs = []*esign.Envelope{}
	}

	respond.JSON(w, http.StatusOK, envs)
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

	env, err := h.lc.Get(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, env)
}

type envelopeDocument struct {
	ID         uuid.UUID `json:"id"`
	DocType    string    `json:"docType"`
	Status     string    `json:"status"`
	FileHash   string    `json:"fileHash,omitempty"`
	SignedFile bool      `json:"signed"`
}

func (h *Handler) documents(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	docs, err := h.lc.Documents(r.Context(), p.OrgID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := make([]envelopeDocument, len(docs))
	for i, d := range docs {
		out[i] = envelopeDocument{
			ID:         d.ID,
			DocType:    d.DocType,
			Status:     string(d.Status),
			FileHash:   d.FileHash,
			SignedFile: d.SignedFileKey() != "",
		}
	}

	respond.JSON(w, http.StatusOK, out)
}

type voidRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req voidRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	env, err := h.lc.Void(r.Context(), p, id, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, env)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	p, ok := respond.Principal(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	env, err := h.lc.Refresh(r.Context(), p, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, env)
}
