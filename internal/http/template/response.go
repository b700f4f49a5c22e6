package template

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

type templateResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrgID         *uuid.UUID      `json:"orgId,omitempty"`
	Global        bool            `json:"global"`
	DocType       string          `json:"docType"`
	Jurisdiction  string          `json:"jurisdiction"`
	DealType      deal.Type       `json:"dealType"`
	Version       int             `json:"version"`
	Engine        template.Engine `json:"templateEngine"`
	RequiredPaths []string        `json:"requiredPaths"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
	DefaultForOrg bool            `json:"defaultForOrg"`
	IsDefault     bool            `json:"isDefault"`
	CreatedAt     time.Time       `json:"createdAt"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
}

func toResponse(t *template.Template) templateResponse {
	paths := t.RequiredFields.RequiredPaths
	if paths == nil {
		paths = []string{}
	}

	return templateResponse{
		ID:            t.ID,
		OrgID:         t.OrgID,
		Global:        t.OrgID == nil,
		DocType:       t.DocType,
		Jurisdiction:  t.Jurisdiction,
		DealType:      t.DealType,
		Version:       t.Version,
		Engine:        t.Engine,
		RequiredPaths: paths,
		EffectiveFrom: t.EffectiveFrom,
		EffectiveTo:   t.EffectiveTo,
		DefaultForOrg: t.DefaultForOrg,
		IsDefault:     t.IsDefault,
		CreatedAt:     t.CreatedAt,
		DeletedAt:     t.DeletedAt,
	}
}

func toResponseList(tpls []*template.Template) []templateResponse {
	out := make([]templateResponse, len(tpls))
	for i, t := range tpls {
		out[i] = toResponse(t)
	}

	return out
}
