// Package remote is a signing provider that speaks a JSON REST API and signs
// its callbacks with HMAC-SHA256.
package remote

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

const (
	Name = "remote"

	signatureHeader = "X-Signature"
	eventIDHeader   = "X-Event-Id"
	eventTypeHeader = "X-Event-Type"

	maxResponseBytes = 32 << 20
)

var ErrBadSignature = errors.New("webhook signature mismatch")

type Config struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
	MaxRetries    uint64
}

type Provider struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Provider{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (p *Provider) Name() string { return Name }

type apiDocument struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Content     []byte    `json:"content"`
}

type apiRecipient struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Order int    `json:"routingOrder"`
}

type createEnvelopeRequest struct {
	RequestID  string            `json:"requestId"`
	Metadata   map[string]string `json:"metadata"`
	Documents  []apiDocument     `json:"documents"`
	Recipients []apiRecipient    `json:"recipients"`
}

type envelopeResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	SignedPDF []byte `json:"signedPdf,omitempty"`
}

func (p *Provider) CreateEnvelope(ctx context.Context, req esign.CreateRequest) (*esign.CreateResponse, error) {
	body := createEnvelopeRequest{
		RequestID: req.RequestID,
		Metadata: map[string]string{
			"orgId":  req.OrgID.String(),
			"dealId": req.DealID.String(),
		},
		Documents:  make([]apiDocument, len(req.Documents)),
		Recipients: make([]apiRecipient, len(req.Recipients)),
	}

	for i, d := range req.Documents {
		body.Documents[i] = apiDocument{ID: d.ID, Name: d.Title, ContentType: d.ContentType, Content: d.Buffer}
	}

	for i, r := range req.Recipients {
		body.Recipients[i] = apiRecipient{Role: string(r.Role), Name: r.Name, Email: r.Email, Order: r.Order}
	}

	var out envelopeResponse

	// The request id doubles as the provider's idempotency key, so a retried
	// create cannot open a second envelope.
	if err := p.do(ctx, http.MethodPost, "/envelopes", req.RequestID, body, &out); err != nil {
		return nil, err
	}

	if out.ID == "" {
		return nil, errors.New("provider returned no envelope id")
	}

	return &esign.CreateResponse{ProviderEnvelopeID: out.ID, Status: out.Status, SignedPDF: out.SignedPDF}, nil
}

func (p *Provider) GetEnvelope(ctx context.Context, req esign.GetRequest) (*esign.RemoteEnvelope, error) {
	var out envelopeResponse

	if err := p.do(ctx, http.MethodGet, "/envelopes/"+url.PathEscape(req.ProviderEnvelopeID), "", nil, &out); err != nil {
		return nil, err
	}

	return &esign.RemoteEnvelope{Status: out.Status, SignedPDF: out.SignedPDF}, nil
}

func (p *Provider) VoidEnvelope(ctx context.Context, req esign.VoidRequest) error {
	body := map[string]string{"reason": req.Reason}
	path := "/envelopes/" + url.PathEscape(req.ProviderEnvelopeID) + "/void"

	return p.do(ctx, http.MethodPost, path, "", body, nil)
}

type webhookBody struct {
	EnvelopeID     string         `json:"envelopeId"`
	IdempotencyKey string         `json:"idempotencyKey"`
	Data           map[string]any `json:"data"`
}

// VerifyWebhook checks the hex HMAC-SHA256 of the raw body in X-Signature.
func (p *Provider) VerifyWebhook(_ context.Context, req esign.WebhookRequest) (*esign.WebhookEvent, error) {
	if strings.TrimSpace(p.cfg.WebhookSecret) == "" {
		return nil, errors.New("webhook secret is not configured")
	}

	provided, err := hex.DecodeString(strings.TrimSpace(req.Header.Get(signatureHeader)))
	if err != nil || len(provided) == 0 {
		return nil, ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(p.cfg.WebhookSecret))
	mac.Write(req.Body)

	if !hmac.Equal(mac.Sum(nil), provided) {
		return nil, ErrBadSignature
	}

	var body webhookBody
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return nil, fmt.Errorf("decoding webhook body: %w", err)
	}

	if body.EnvelopeID == "" {
		return nil, errors.New("webhook has no envelopeId")
	}

	eventType := strings.TrimSpace(req.Header.Get(eventTypeHeader))
	if eventType == "" {
		eventType = "unknown"
	}

	return &esign.WebhookEvent{
		ProviderEnvelopeID: body.EnvelopeID,
		EventType:          eventType,
		ProviderEventID:    strings.TrimSpace(req.Header.Get(eventIDHeader)),
		IdempotencyKey:     body.IdempotencyKey,
		Payload:            body.Data,
	}, nil
}

// Sign returns the X-Signature value for body. Used by tests and local
// tooling that replays callbacks.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.code, e.body)
}

// do sends one API call, retrying transport errors and 5xx/429 responses with
// exponential backoff.
func (p *Provider) do(ctx context.Context, method, path, idempotencyKey string, in, out any) error {
	var payload []byte

	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		payload = buf
	}

	backoff := retry.WithMaxRetries(p.cfg.MaxRetries, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := p.once(ctx, method, path, idempotencyKey, payload, out)

		var se *statusError
		if errors.As(err, &se) && se.code != http.StatusTooManyRequests && se.code < 500 {
			return err
		}

		if err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
}

func (p *Provider) once(ctx context.Context, method, path, idempotencyKey string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}

	return nil
}
