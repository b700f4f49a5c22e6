// Package stub is an in-process signing provider for development and tests.
package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

const Name = "stub"

type envelope struct {
	status string
	signed []byte
}

// Provider keeps envelopes in memory. With AutoComplete set, envelopes are
// signed as soon as they are created.
type Provider struct {
	AutoComplete bool

	mu        sync.Mutex
	envelopes map[string]*envelope
	calls     map[string]int
}

func New(autoComplete bool) *Provider {
	return &Provider{
		AutoComplete: autoComplete,
		envelopes:    make(map[string]*envelope),
		calls:        make(map[string]int),
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) CreateEnvelope(_ context.Context, req esign.CreateRequest) (*esign.CreateResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls["CreateEnvelope"]++

	id := "stub-" + uuid.NewString()
	env := &envelope{status: "sent"}

	if p.AutoComplete {
		env.status = "completed"
		env.signed = combine(req.Documents)
	}

	p.envelopes[id] = env

	return &esign.CreateResponse{ProviderEnvelopeID: id, Status: env.status, SignedPDF: env.signed}, nil
}

func (p *Provider) GetEnvelope(_ context.Context, req esign.GetRequest) (*esign.RemoteEnvelope, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls["GetEnvelope"]++

	env, ok := p.envelopes[req.ProviderEnvelopeID]
	if !ok {
		return nil, fmt.Errorf("stub envelope %q not found", req.ProviderEnvelopeID)
	}

	return &esign.RemoteEnvelope{Status: env.status, SignedPDF: env.signed}, nil
}

func (p *Provider) VoidEnvelope(_ context.Context, req esign.VoidRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls["VoidEnvelope"]++

	env, ok := p.envelopes[req.ProviderEnvelopeID]
	if !ok {
		return fmt.Errorf("stub envelope %q not found", req.ProviderEnvelopeID)
	}

	env.status = "voided"

	return nil
}

// SetStatus changes an envelope's provider status. Completing an envelope
// attaches a placeholder signed artifact unless signed is given.
func (p *Provider) SetStatus(providerEnvelopeID, status string, signed []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	env, ok := p.envelopes[providerEnvelopeID]
	if !ok {
		return fmt.Errorf("stub envelope %q not found", providerEnvelopeID)
	}

	env.status = status

	if strings.EqualFold(status, "completed") {
		if signed == nil {
			signed = []byte("%PDF-1.7\n% signed " + providerEnvelopeID + "\n")
		}

		env.signed = signed
	}

	return nil
}

// Calls returns how many times method was invoked.
func (p *Provider) Calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls[method]
}

type webhookBody struct {
	EnvelopeID     string         `json:"envelopeId"`
	EventType      string         `json:"eventType"`
	EventID        string         `json:"eventId"`
	IdempotencyKey string         `json:"idempotencyKey"`
	Data           map[string]any `json:"data"`
}

// VerifyWebhook accepts any well-formed JSON callback.
func (p *Provider) VerifyWebhook(_ context.Context, req esign.WebhookRequest) (*esign.WebhookEvent, error) {
	var body webhookBody
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return nil, fmt.Errorf("decoding stub webhook: %w", err)
	}

	if body.EnvelopeID == "" {
		return nil, errors.New("stub webhook has no envelopeId")
	}

	return &esign.WebhookEvent{
		ProviderEnvelopeID: body.EnvelopeID,
		EventType:          body.EventType,
		ProviderEventID:    body.EventID,
		IdempotencyKey:     body.IdempotencyKey,
		Payload:            body.Data,
	}, nil
}

func combine(docs []esign.ProviderDocument) []byte {
	var b bytes.Buffer

	for _, d := range docs {
		b.Write(d.Buffer)
		b.WriteByte('\n')
	}

	return b.Bytes()
}
