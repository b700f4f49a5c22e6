package template

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=template
type Repository interface {
	// ListCandidates returns every global or orgID-owned template for the
	// tuple, including deleted and out-of-window rows.
	ListCandidates(ctx context.Context, orgID uuid.UUID, docType, jurisdiction string, dealType deal.Type) ([]*Template, error)
	ListTemplates(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Template, error)
	GetTemplate(ctx context.Context, orgID, id uuid.UUID) (*Template, error)

	BeginWrite(ctx context.Context, sc Scope) (WriteTx, error)
}

// WriteTx holds the scope lock for version assignment and default flag changes.
type WriteTx interface {
	GetTemplateForUpdate(ctx context.Context, id uuid.UUID) (*Template, error)
	LatestVersion(ctx context.Context, sc Scope) (int, error)
	InsertTemplate(ctx context.Context, t *Template) error
	ClearDefaults(ctx context.Context, sc Scope) error
	SetDefaultForOrg(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ListFilter struct {
	DocType        *string
	Jurisdiction   *string
	IncludeGlobal  bool
	IncludeDeleted bool
}

type CreateParams struct {
	Global         bool
	DocType        string
	Jurisdiction   string
	DealType       deal.Type
	Engine         Engine
	SourceHTML     string
	SourceDocxKey  string
	RequiredFields RequiredFields
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	DefaultForOrg  bool
	IsDefault      bool
}

func (p CreateParams) validate() error {
	switch {
	case normalizeCode(p.DocType) == "":
		return fmt.Errorf("%w: docType is required", ErrInvalidTemplate)
	case normalizeCode(p.Jurisdiction) == "":
		return fmt.Errorf("%w: jurisdiction is required", ErrInvalidTemplate)
	case normalizeCode(string(p.DealType)) == "":
		return fmt.Errorf("%w: dealType is required", ErrInvalidTemplate)
	case p.EffectiveFrom.IsZero():
		return fmt.Errorf("%w: effectiveFrom is required", ErrInvalidTemplate)
	case p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom):
		return fmt.Errorf("%w: effectiveTo is before effectiveFrom", ErrInvalidTemplate)
	}

	switch p.Engine {
	case EngineHTML:
		if p.SourceHTML == "" {
			return fmt.Errorf("%w: sourceHtml is required for HTML templates", ErrInvalidTemplate)
		}
	case EngineDOCX:
		if p.SourceDocxKey == "" {
			return fmt.Errorf("%w: sourceDocxKey is required for DOCX templates", ErrInvalidTemplate)
		}
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidTemplate, p.Engine)
	}

	return nil
}

// Resolve loads the candidates for q and picks the winner. A false result
// means no template is available; it is not an error.
func (s *Service) Resolve(ctx context.Context, q Query) (*Template, bool, error) {
	q = q.normalize()
	if q.AsOf.IsZero() {
		q.AsOf = s.now().UTC()
	}

	candidates, err := s.repo.ListCandidates(ctx, q.OrgID, q.DocType, q.Jurisdiction, q.DealType)
	if err != nil {
		return nil, false, fmt.Errorf("listing template candidates: %w", err)
	}

	tpl, ok := Resolve(candidates, q)

	return tpl, ok, nil
}

// Create stores the next version within the template's scope. When the new
// template is the org default, the flag is cleared on its siblings in the
// same transaction.
func (s *Service) Create(ctx context.Context, p auth.Principal, params CreateParams) (*Template, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	t := &Template{
		DocType:        normalizeCode(params.DocType),
		Jurisdiction:   normalizeCode(params.Jurisdiction),
		DealType:       deal.Type(normalizeCode(string(params.DealType))),
		Engine:         params.Engine,
		SourceHTML:     params.SourceHTML,
		SourceDocxKey:  params.SourceDocxKey,
		RequiredFields: params.RequiredFields,
		EffectiveFrom:  params.EffectiveFrom,
		EffectiveTo:    params.EffectiveTo,
		DefaultForOrg:  params.DefaultForOrg,
		IsDefault:      params.IsDefault,
	}

	if !params.Global {
		t.OrgID = new(p.OrgID)
	}

	sc := t.Scope()

	wtx, err := s.repo.BeginWrite(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("begin template write: %w", err)
	}
	defer wtx.Rollback()

	latest, err := wtx.LatestVersion(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("reading latest template version: %w", err)
	}

	t.Version = latest + 1

	if t.DefaultForOrg {
		if err := wtx.ClearDefaults(ctx, sc); err != nil {
			return nil, fmt.Errorf("clearing default templates: %w", err)
		}
	}

	if err := wtx.InsertTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}

	if err := wtx.RecordAudit(ctx, audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityTemplate,
		EntityID:   t.ID,
		Action:     audit.ActionCreate,
		After:      snapshot(t),
	}); err != nil {
		return nil, fmt.Errorf("recording audit: %w", err)
	}

	if err := wtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template: %w", err)
	}

	return t, nil
}

// SetDefault makes id the only org default within its scope.
func (s *Service) SetDefault(ctx context.Context, p auth.Principal, id uuid.UUID) (*Template, error) {
	return s.mutate(ctx, p, id, audit.ActionSetDefault, func(ctx context.Context, wtx WriteTx, t *Template) error {
		if err := wtx.ClearDefaults(ctx, t.Scope()); err != nil {
			return fmt.Errorf("clearing default templates: %w", err)
		}

		if err := wtx.SetDefaultForOrg(ctx, t.ID); err != nil {
			return fmt.Errorf("setting default template: %w", err)
		}

		t.DefaultForOrg = true

		return nil
	})
}

// Delete soft-deletes a template so resolution no longer considers it.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	_, err := s.mutate(ctx, p, id, audit.ActionDelete, func(ctx context.Context, wtx WriteTx, t *Template) error {
		if err := wtx.SoftDelete(ctx, t.ID); err != nil {
			return fmt.Errorf("deleting template: %w", err)
		}

		t.DefaultForOrg = false
		t.DeletedAt = new(s.now().UTC())

		return nil
	})

	return err
}

func (s *Service) mutate(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
	action string,
	apply func(ctx context.Context, wtx WriteTx, t *Template) error,
) (*Template, error) {
	current, err := s.repo.GetTemplate(ctx, p.OrgID, id)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	if current.OrgID == nil {
		return nil, ErrGlobalReadOnly
	}

	wtx, err := s.repo.BeginWrite(ctx, current.Scope())
	if err != nil {
		return nil, fmt.Errorf("begin template write: %w", err)
	}
	defer wtx.Rollback()

	t, err := wtx.GetTemplateForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("locking template: %w", err)
	}

	if t.IsDeleted() {
		return nil, ErrNotFound
	}

	before := snapshot(t)

	if err := apply(ctx, wtx, t); err != nil {
		return nil, err
	}

	if err := wtx.RecordAudit(ctx, audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityTemplate,
		EntityID:   t.ID,
		Action:     action,
		Before:     before,
		After:      snapshot(t),
	}); err != nil {
		return nil, fmt.Errorf("recording audit: %w", err)
	}

	if err := wtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template: %w", err)
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Template, error) {
	return s.repo.ListTemplates(ctx, orgID, filter)
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Template, error) {
	return s.repo.GetTemplate(ctx, orgID, id)
}

func snapshot(t *Template) map[string]any {
	return map[string]any{
		"docType":       t.DocType,
		"jurisdiction":  t.Jurisdiction,
		"dealType":      t.DealType,
		"version":       t.Version,
		"engine":        t.Engine,
		"defaultForOrg": t.DefaultForOrg,
		"isDefault":     t.IsDefault,
		"effectiveFrom": t.EffectiveFrom.Format(time.DateOnly),
		"deleted":       t.IsDeleted(),
	}
}
