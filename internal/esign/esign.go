// Package esign drives signature envelopes through their lifecycle against a
// pluggable signing provider.
package esign

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

var (
	ErrNotFound          = errors.New("envelope not found")
	ErrRequestConflict   = errors.New("request id already used for a different deal or document set")
	ErrNotSignable       = errors.New("document cannot be sent for signature")
	ErrInvalidTransition = errors.New("invalid envelope status transition")
	ErrReasonRequired    = errors.New("a reason is required")
	ErrInvalidRequest    = errors.New("invalid envelope request")
	ErrUnknownProvider   = errors.New("unknown signing provider")
	ErrWebhookRejected   = errors.New("webhook rejected")
	ErrProvider          = errors.New("signing provider error")
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusSent            Status = "SENT"
	StatusPartiallySigned Status = "PARTIALLY_SIGNED"
	StatusCompleted       Status = "COMPLETED"
	StatusVoided          Status = "VOIDED"
	StatusDeclined        Status = "DECLINED"
	StatusError           Status = "ERROR"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusVoided
}

var providerStatuses = map[string]Status{
	"created":          StatusDraft,
	"draft":            StatusDraft,
	"sent":             StatusSent,
	"delivered":        StatusSent,
	"pending":          StatusSent,
	"viewed":           StatusSent,
	"in_progress":      StatusSent,
	"partially_signed": StatusPartiallySigned,
	"completed":        StatusCompleted,
	"signed":           StatusCompleted,
	"voided":           StatusVoided,
	"canceled":         StatusVoided,
	"cancelled":        StatusVoided,
	"declined":         StatusDeclined,
	"rejected":         StatusDeclined,
	"error":            StatusError,
	"failed":           StatusError,
}

// MapProviderStatus translates a provider's status vocabulary into an
// envelope status. Unknown values report false.
func MapProviderStatus(s string) (Status, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	if st, ok := providerStatuses[key]; ok {
		return st, true
	}

	// Our own vocabulary round-trips.
	switch st := Status(strings.ToUpper(key)); st {
	case StatusDraft, StatusSent, StatusPartiallySigned, StatusCompleted, StatusVoided, StatusDeclined, StatusError:
		return st, true
	}

	return "", false
}

var progressRank = map[Status]int{
	StatusDraft:           0,
	StatusSent:            1,
	StatusPartiallySigned: 2,
	StatusCompleted:       3,
}

// CanTransition reports whether an envelope may move from one status to
// another. Progress only moves forward; VOIDED, DECLINED and ERROR are
// reachable from any non-terminal status. An ERROR envelope may recover to
// any progress status, and a DECLINED one can only be voided.
func CanTransition(from, to Status) bool {
	if from == to || from.Terminal() {
		return false
	}

	switch to {
	case StatusVoided:
		return true
	case StatusDeclined, StatusError:
		return from != StatusDeclined
	}

	toRank, ok := progressRank[to]
	if !ok {
		return false
	}

	switch from {
	case StatusError:
		return true
	case StatusDeclined:
		return false
	}

	return toRank > progressRank[from]
}

// DocumentStatusFor is the document status that mirrors an envelope status.
// DRAFT leaves documents untouched.
func DocumentStatusFor(s Status) (document.Status, bool) {
	switch s {
	case StatusSent:
		return document.StatusSentForSignature, true
	case StatusPartiallySigned:
		return document.StatusPartiallySigned, true
	case StatusCompleted:
		return document.StatusCompleted, true
	case StatusVoided:
		return document.StatusVoided, true
	case StatusDeclined, StatusError:
		return document.StatusFailed, true
	default:
		return "", false
	}
}

// Metadata keys stored on envelopes.
const (
	MetaSignedFileKey  = "signedFileKey"
	MetaSignedFileHash = "signedFileHash"
	MetaVoidReason     = "voidReason"
	MetaDocumentIDs    = "documentIds"
)

type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleCoBuyer Role = "cobuyer"
	RoleDealer  Role = "dealer"
)

type Recipient struct {
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Order int    `json:"order"`
}

// Envelope is a signature request covering one or more deal documents.
type Envelope struct {
	ID                 uuid.UUID      `json:"id"`
	OrgID              uuid.UUID      `json:"orgId"`
	DealID             uuid.UUID      `json:"dealId"`
	Provider           string         `json:"provider"`
	ProviderEnvelopeID string         `json:"providerEnvelopeId,omitempty"`
	RequestID          string         `json:"requestId"`
	Status             Status         `json:"status"`
	Recipients         []Recipient    `json:"recipients"`
	SentAt             *time.Time     `json:"sentAt,omitempty"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`
	Metadata           map[string]any `json:"metadata"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func (e *Envelope) SignedFileKey() string {
	s, _ := e.Metadata[MetaSignedFileKey].(string)
	return s
}

// DocumentIDs returns the ids of the documents sent in the envelope.
func (e *Envelope) DocumentIDs() []string {
	switch v := e.Metadata[MetaDocumentIDs].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, id := range v {
			if s, ok := id.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

func (e *Envelope) setMeta(key string, v any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}

	e.Metadata[key] = v
}

// Event is a received provider callback, kept only for deduplication.
type Event struct {
	ID              uuid.UUID
	OrgID           uuid.UUID
	EnvelopeID      uuid.UUID
	Provider        string
	ProviderEventID string
	EventType       string
	Payload         map[string]any
	ReceivedAt      time.Time
}
