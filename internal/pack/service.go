package pack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pack
type Repository interface {
	GetPack(ctx context.Context, orgID, id uuid.UUID) (*Pack, error)
	ListPacks(ctx context.Context, orgID uuid.UUID) ([]*Pack, error)
	ListChecklist(ctx context.Context, orgID, dealID uuid.UUID) ([]*ChecklistItem, error)
	UpsertChecklist(ctx context.Context, item *ChecklistItem) error

	BeginPack(ctx context.Context) (PackTx, error)
}

type PackTx interface {
	InsertPack(ctx context.Context, p *Pack) error
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}

// Generator is the slice of document.Generator the orchestrator drives.
type Generator interface {
	Prepare(ctx context.Context, p auth.Principal, dealID uuid.UUID, asOf *time.Time) (*document.Session, error)
	GenerateItem(ctx context.Context, p auth.Principal, sess *document.Session, docType string, opts document.ItemOptions) (document.ItemResult, error)
	Current(ctx context.Context, sess *document.Session, docType string) (*document.Document, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new pack for the principal's organization.
func (s *Service) Create(ctx context.Context, p auth.Principal, params CreateParams) (*Pack, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	pk := &Pack{
		OrgID:       p.OrgID,
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Items:       make([]Item, len(params.Items)),
	}

	for i, item := range params.Items {
		item.DocType = normalizeDocType(item.DocType)
		pk.Items[i] = item
	}

	tx, err := s.repo.BeginPack(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin pack: %w", err)
	}
	defer tx.Rollback()

	if err := tx.InsertPack(ctx, pk); err != nil {
		return nil, fmt.Errorf("inserting pack: %w", err)
	}

	if err := tx.RecordAudit(ctx, audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityPack,
		EntityID:   pk.ID,
		Action:     audit.ActionCreate,
		After:      pk,
	}); err != nil {
		return nil, fmt.Errorf("recording audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit pack: %w", err)
	}

	return pk, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Pack, error) {
	return s.repo.GetPack(ctx, orgID, id)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]*Pack, error) {
	return s.repo.ListPacks(ctx, orgID)
}

// Checklist returns the stored checklist rows of a deal.
func (s *Service) Checklist(ctx context.Context, orgID, dealID uuid.UUID) ([]*ChecklistItem, error) {
	return s.repo.ListChecklist(ctx, orgID, dealID)
}
