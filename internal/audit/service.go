package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	List(ctx context.Context, orgID uuid.UUID, entityType string, entityID uuid.UUID) ([]*Record, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Trail returns the audit history of one entity, oldest first.
func (s *Service) Trail(ctx context.Context, orgID uuid.UUID, entityType string, entityID uuid.UUID) ([]*Record, error) {
	records, err := s.repo.List(ctx, orgID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing audit trail: %w", err)
	}

	return records, nil
}
