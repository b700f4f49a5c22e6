// Package respond writes JSON bodies and the error envelope shared by every
// handler.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

const maxBodyBytes = 1 << 20

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into dst, rejecting unknown fields.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	return dec.Decode(dst)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	RequestID string    `json:"request_id"`
	Error     errorBody `json:"error"`
}

func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}

	return "req_" + uuid.NewString()
}

func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	JSON(w, status, errorEnvelope{
		RequestID: requestID(r),
		Error:     errorBody{Code: code, Message: message, Details: details},
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusBadRequest, "bad_request", message, nil)
}

type mapping struct {
	target error
	status int
	code   string
}

var mappings = []mapping{
	{auth.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{deal.ErrNotFound, http.StatusNotFound, "deal_not_found"},
	{document.ErrNotFound, http.StatusNotFound, "document_not_found"},
	{document.ErrNoArtifact, http.StatusNotFound, "artifact_not_found"},
	{template.ErrNotFound, http.StatusNotFound, "template_not_found"},
	{rules.ErrNotFound, http.StatusNotFound, "rule_set_not_found"},
	{pack.ErrNotFound, http.StatusNotFound, "pack_not_found"},
	{esign.ErrNotFound, http.StatusNotFound, "envelope_not_found"},
	{esign.ErrUnknownProvider, http.StatusNotFound, "unknown_provider"},
	{storage.ErrNotFound, http.StatusNotFound, "object_not_found"},
	{esign.ErrRequestConflict, http.StatusConflict, "request_conflict"},
	{esign.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{esign.ErrNotSignable, http.StatusUnprocessableEntity, "not_signable"},
	{template.ErrInvalidTemplate, http.StatusUnprocessableEntity, "invalid_template"},
	{rules.ErrInvalidRuleSet, http.StatusUnprocessableEntity, "invalid_rule_set"},
	{pack.ErrInvalidPack, http.StatusUnprocessableEntity, "invalid_pack"},
	{esign.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
	{esign.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{esign.ErrWebhookRejected, http.StatusBadRequest, "webhook_rejected"},
	{storage.ErrBadURL, http.StatusForbidden, "bad_download_url"},
	{template.ErrGlobalReadOnly, http.StatusForbidden, "global_read_only"},
	{esign.ErrProvider, http.StatusBadGateway, "provider_error"},
}

// Error maps a service error onto a status code. Anything unrecognised is
// logged and reported as a 500 without its message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			Fail(w, r, m.status, m.code, err.Error(), nil)
			return
		}
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	Fail(w, r, http.StatusInternalServerError, "internal", "internal error", nil)
}

// Principal returns the authenticated caller, writing a 401 when the request
// carries none.
func Principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		Fail(w, r, http.StatusUnauthorized, "unauthorized", "missing credentials", nil)
		return auth.Principal{}, false
	}

	return p, true
}

// ID parses a uuid URL parameter, writing a 400 when it is malformed.
func ID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		BadRequest(w, r, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}
