package esign

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Provider is a signing service. Implementations speak the provider's own
// status vocabulary; the lifecycle maps it with MapProviderStatus.
type Provider interface {
	Name() string
	CreateEnvelope(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	GetEnvelope(ctx context.Context, req GetRequest) (*RemoteEnvelope, error)
	VoidEnvelope(ctx context.Context, req VoidRequest) error
	VerifyWebhook(ctx context.Context, req WebhookRequest) (*WebhookEvent, error)
}

type ProviderDocument struct {
	ID          uuid.UUID
	DocType     string
	Title       string
	ContentType string
	Buffer      []byte
}

type CreateRequest struct {
	OrgID      uuid.UUID
	DealID     uuid.UUID
	RequestID  string
	Documents  []ProviderDocument
	Recipients []Recipient
}

type CreateResponse struct {
	ProviderEnvelopeID string
	Status             string
	// SignedPDF is set by providers that complete synchronously.
	SignedPDF []byte
}

type GetRequest struct {
	EnvelopeID         uuid.UUID
	ProviderEnvelopeID string
}

type RemoteEnvelope struct {
	Status    string
	SignedPDF []byte
}

type VoidRequest struct {
	EnvelopeID         uuid.UUID
	ProviderEnvelopeID string
	Reason             string
}

type WebhookRequest struct {
	Header     http.Header
	Body       []byte
	ReceivedAt time.Time
}

// WebhookEvent is a verified provider callback.
type WebhookEvent struct {
	ProviderEnvelopeID string
	EventType          string
	ProviderEventID    string
	IdempotencyKey     string
	Payload            map[string]any
}
