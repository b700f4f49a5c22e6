package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	// CurrentDocument returns the newest non-voided document for the deal and
	// docType, or ErrNotFound.
	CurrentDocument(ctx context.Context, orgID, dealID uuid.UUID, docType string) (*Document, error)
	GetDocument(ctx context.Context, orgID, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context, orgID, dealID uuid.UUID) ([]*Document, error)

	BeginDeal(ctx context.Context, dealID uuid.UUID, docType string) (DealTx, error)
}

// DealTx serializes writes to one (deal, docType) slot.
type DealTx interface {
	CurrentDocument(ctx context.Context, orgID, dealID uuid.UUID, docType string) (*Document, error)
	CreateDocument(ctx context.Context, d *Document) error
	UpdateGenerated(ctx context.Context, d *Document) error
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}

// Service is the read side of generated documents.
type Service struct {
	repo  Repository
	store storage.Store
}

func NewService(repo Repository, store storage.Store) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) ListForDeal(ctx context.Context, orgID, dealID uuid.UUID) ([]*Document, error) {
	return s.repo.ListDocuments(ctx, orgID, dealID)
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Document, error) {
	return s.repo.GetDocument(ctx, orgID, id)
}

// DownloadURL returns a short-lived link to the document's artifact. With
// signed set, the link points at the signed combined artifact instead.
func (s *Service) DownloadURL(ctx context.Context, orgID, id uuid.UUID, signed bool) (string, error) {
	d, err := s.repo.GetDocument(ctx, orgID, id)
	if err != nil {
		return "", err
	}

	key := d.FileKey
	if signed {
		key = d.SignedFileKey()
	}

	if key == "" {
		return "", ErrNoArtifact
	}

	url, err := s.store.DownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("building download url: %w", err)
	}

	return url, nil
}
