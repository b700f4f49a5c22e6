package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=deal
type Repository interface {
	GetSnapshot(ctx context.Context, orgID, dealID uuid.UUID) (*Snapshot, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Snapshot loads the deal and stamps it with the evaluation time.
func (s *Service) Snapshot(ctx context.Context, orgID, dealID uuid.UUID) (*Snapshot, error) {
	snap, err := s.repo.GetSnapshot(ctx, orgID, dealID)
	if err != nil {
		return nil, fmt.Errorf("loading deal snapshot: %w", err)
	}

	if snap.AsOf.IsZero() {
		snap.AsOf = s.now().UTC()
	}

	return snap, nil
}
