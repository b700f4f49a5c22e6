package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

type documentResponse struct {
	ID               uuid.UUID       `json:"id"`
	DealID           uuid.UUID       `json:"dealId"`
	TemplateID       uuid.UUID       `json:"templateId"`
	DocType          string          `json:"docType"`
	Status           document.Status `json:"status"`
	FileHash         string          `json:"fileHash,omitempty"`
	RenderMode       string          `json:"renderMode,omitempty"`
	ContentType      string          `json:"contentType,omitempty"`
	EnvelopeID       *uuid.UUID      `json:"envelopeId,omitempty"`
	RegenerateReason string          `json:"regenerateReason,omitempty"`
	Signed           bool            `json:"signed"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func toResponse(d *document.Document) documentResponse {
	return documentResponse{
		ID:               d.ID,
		DealID:           d.DealID,
		TemplateID:       d.TemplateID,
		DocType:          d.DocType,
		Status:           d.Status,
		FileHash:         d.FileHash,
		RenderMode:       string(d.RenderMode()),
		ContentType:      d.ContentType(),
		EnvelopeID:       d.EnvelopeID,
		RegenerateReason: d.RegenerateReason,
		Signed:           d.SignedFileKey() != "",
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func toResponseList(docs []*document.Document) []documentResponse {
	out := make([]documentResponse, len(docs))
	for i, d := range docs {
		out[i] = toResponse(d)
	}

	return out
}
