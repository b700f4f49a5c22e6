package document

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/render"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrNoArtifact = errors.New("document has no stored artifact")
)

// Status is the lifecycle state of a generated document.
type Status string

const (
	StatusGenerated        Status = "GENERATED"
	StatusSentForSignature Status = "SENT_FOR_SIGNATURE"
	StatusPartiallySigned  Status = "PARTIALLY_SIGNED"
	StatusCompleted        Status = "COMPLETED"
	StatusVoided           Status = "VOIDED"
	StatusFailed           Status = "FAILED"
)

var forwardRank = map[Status]int{
	StatusGenerated:        0,
	StatusSentForSignature: 1,
	StatusPartiallySigned:  2,
	StatusCompleted:        3,
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusVoided
}

// Locked reports whether the document belongs to a live or completed envelope
// and must not be regenerated.
func (s Status) Locked() bool {
	return s == StatusSentForSignature || s == StatusPartiallySigned || s == StatusCompleted
}

// CanAdvanceTo reports whether s may move to next. Documents only move
// forward; VOIDED and FAILED are reachable from any non-terminal state.
func (s Status) CanAdvanceTo(next Status) bool {
	if s.Terminal() || s == next {
		return false
	}

	if next == StatusVoided || next == StatusFailed {
		return true
	}

	from, ok := forwardRank[s]
	if !ok {
		return false
	}

	to, ok := forwardRank[next]

	return ok && to > from
}

// Metadata keys stored in metadata_json.
const (
	MetaRenderMode      = "renderMode"
	MetaContentType     = "contentType"
	MetaExtension       = "extension"
	MetaTemplateVersion = "templateVersion"
	MetaChecklistReason = "checklistReason"
	MetaSignedFileKey   = "signedFileKey"
	MetaSignedFileHash  = "signedFileHash"
)

// Document is a DealDocument row. The current document for a (deal, docType)
// is the newest row that is not VOIDED; older rows are kept for audit.
type Document struct {
	ID               uuid.UUID
	OrgID            uuid.UUID
	DealID           uuid.UUID
	TemplateID       uuid.UUID
	DocType          string
	Status           Status
	FileKey          string
	FileHash         string
	EnvelopeID       *uuid.UUID
	RegenerateReason string
	Metadata         map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (d *Document) meta(key string) string {
	s, _ := d.Metadata[key].(string)
	return s
}

func (d *Document) RenderMode() render.Mode { return render.Mode(d.meta(MetaRenderMode)) }

func (d *Document) ContentType() string { return d.meta(MetaContentType) }

func (d *Document) SignedFileKey() string { return d.meta(MetaSignedFileKey) }

// SetMeta sets a metadata key, allocating the map when needed.
func (d *Document) SetMeta(key string, v any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}

	d.Metadata[key] = v
}

// Outcome is the terminal result of generating one document type.
type Outcome string

const (
	OutcomeGenerated                Outcome = "GENERATED"
	OutcomeMissingTemplate          Outcome = "MISSING_TEMPLATE"
	OutcomeUnsupportedTemplate      Outcome = "UNSUPPORTED_TEMPLATE"
	OutcomeSkippedExisting          Outcome = "SKIPPED_EXISTING"
	OutcomeRegenerateReasonRequired Outcome = "REGENERATE_REASON_REQUIRED"
	OutcomeMissingFields            Outcome = "MISSING_FIELDS"
)

// ItemResult reports what happened to one requested document type. It always
// carries enough detail to fix the source data without reading logs.
type ItemResult struct {
	DocType       string     `json:"docType"`
	Outcome       Outcome    `json:"outcome"`
	DocumentID    *uuid.UUID `json:"documentId,omitempty"`
	TemplateID    *uuid.UUID `json:"templateId,omitempty"`
	MissingFields []string   `json:"missingFields,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Message       string     `json:"message,omitempty"`
}
