package template

import (
	"cmp"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/scope"
)

var (
	ErrNotFound        = errors.New("template not found")
	ErrInvalidTemplate = errors.New("invalid template")
	ErrGlobalReadOnly  = errors.New("global templates cannot be modified by an organization")
)

// Engine is the source format of a template.
type Engine string

const (
	EngineHTML Engine = "HTML"
	EngineDOCX Engine = "DOCX"
)

// RequiredFields lists dotted render-context paths that must be non-empty
// before a template may be rendered.
type RequiredFields struct {
	RequiredPaths []string `json:"requiredPaths"`
}

type Template struct {
	ID             uuid.UUID
	OrgID          *uuid.UUID
	DocType        string
	Jurisdiction   string
	DealType       deal.Type
	Version        int
	Engine         Engine
	SourceHTML     string
	SourceDocxKey  string
	RequiredFields RequiredFields
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	DefaultForOrg  bool
	IsDefault      bool
	CreatedAt      time.Time
	DeletedAt      *time.Time
}

func (t *Template) ScopeOrg() *uuid.UUID { return t.OrgID }

func (t *Template) EffectiveWindow() (time.Time, *time.Time) { return t.EffectiveFrom, t.EffectiveTo }

func (t *Template) IsDeleted() bool { return t.DeletedAt != nil }

// Scope is the (owner, jurisdiction, docType, dealType) tuple inside which
// versions increase and at most one template is the org default.
type Scope struct {
	OrgID        *uuid.UUID
	Jurisdiction string
	DocType      string
	DealType     deal.Type
}

func (t *Template) Scope() Scope {
	return Scope{OrgID: t.OrgID, Jurisdiction: t.Jurisdiction, DocType: t.DocType, DealType: t.DealType}
}

// Query selects the template for one document on one deal.
type Query struct {
	OrgID        uuid.UUID
	DocType      string
	Jurisdiction string
	DealType     deal.Type
	AsOf         time.Time
}

func (q Query) normalize() Query {
	q.DocType = normalizeCode(q.DocType)
	q.Jurisdiction = normalizeCode(q.Jurisdiction)
	q.DealType = deal.Type(normalizeCode(string(q.DealType)))

	return q
}

// Resolve picks the best template for q from unfiltered candidates. Candidates
// for other tuples are ignored. When any org template is active it shadows all
// global ones; the pool is then ordered by defaultForOrg, isDefault, version
// and effectiveFrom, all descending.
func Resolve(candidates []*Template, q Query) (*Template, bool) {
	q = q.normalize()

	matching := make([]*Template, 0, len(candidates))

	for _, c := range candidates {
		if c == nil {
			continue
		}

		if normalizeCode(c.DocType) != q.DocType ||
			normalizeCode(c.Jurisdiction) != q.Jurisdiction ||
			deal.Type(normalizeCode(string(c.DealType))) != q.DealType {
			continue
		}

		matching = append(matching, c)
	}

	return scope.Pick(matching, q.OrgID, q.AsOf, compareTemplates)
}

func compareTemplates(a, b *Template) int {
	return cmp.Or(
		compareBoolDesc(a.DefaultForOrg, b.DefaultForOrg),
		compareBoolDesc(a.IsDefault, b.IsDefault),
		cmp.Compare(b.Version, a.Version),
		b.EffectiveFrom.Compare(a.EffectiveFrom),
	)
}

func compareBoolDesc(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
