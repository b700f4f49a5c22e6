package esign

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=esign
type Repository interface {
	GetEnvelope(ctx context.Context, orgID, id uuid.UUID) (*Envelope, error)
	FindByRequestID(ctx context.Context, orgID uuid.UUID, requestID string) (*Envelope, error)
	// FindByProviderID resolves a webhook's envelope before the organization
	// is known.
	FindByProviderID(ctx context.Context, provider, providerEnvelopeID string) (*Envelope, error)
	ListEnvelopes(ctx context.Context, orgID, dealID uuid.UUID) ([]*Envelope, error)
	GetDocuments(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error)
	EnvelopeDocuments(ctx context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is the transaction boundary of every envelope mutation. Lock methods
// take row locks held until Commit or Rollback.
type Tx interface {
	// InsertEnvelope reports false when the request id is already taken in
	// the organization.
	InsertEnvelope(ctx context.Context, env *Envelope) (bool, error)
	LockEnvelope(ctx context.Context, orgID, id uuid.UUID) (*Envelope, error)
	UpdateEnvelope(ctx context.Context, env *Envelope) error
	LockDocuments(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error)
	LockEnvelopeDocuments(ctx context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error)
	UpdateDocument(ctx context.Context, d *document.Document) error
	// InsertEvent reports false when (provider, providerEventId) was already
	// recorded.
	InsertEvent(ctx context.Context, e *Event) (bool, error)
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}
