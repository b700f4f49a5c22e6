package esign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{in: "sent", want: StatusSent, ok: true},
		{in: "Delivered", want: StatusSent, ok: true},
		{in: "partially-signed", want: StatusPartiallySigned, ok: true},
		{in: " completed ", want: StatusCompleted, ok: true},
		{in: "cancelled", want: StatusVoided, ok: true},
		{in: "rejected", want: StatusDeclined, ok: true},
		{in: "failed", want: StatusError, ok: true},
		{in: "PARTIALLY_SIGNED", want: StatusPartiallySigned, ok: true},
		{in: "archived", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MapProviderStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusSent, StatusPartiallySigned, true},
		{StatusSent, StatusCompleted, true},
		{StatusPartiallySigned, StatusSent, false},
		{StatusSent, StatusSent, false},
		{StatusCompleted, StatusVoided, false},
		{StatusVoided, StatusSent, false},
		{StatusSent, StatusVoided, true},
		{StatusSent, StatusDeclined, true},
		{StatusDeclined, StatusError, false},
		{StatusDeclined, StatusCompleted, false},
		{StatusDeclined, StatusVoided, true},
		{StatusError, StatusSent, true},
		{StatusError, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestDocumentStatusFor(t *testing.T) {
	_, ok := DocumentStatusFor(StatusDraft)
	assert.False(t, ok)

	got, ok := DocumentStatusFor(StatusDeclined)
	assert.True(t, ok)
	assert.Equal(t, document.StatusFailed, got)

	got, _ = DocumentStatusFor(StatusCompleted)
	assert.Equal(t, document.StatusCompleted, got)
}

func TestDedupKey(t *testing.T) {
	body := []byte(`{"envelopeId":"x"}`)

	assert.Equal(t, "evt-1", dedupKey(&WebhookEvent{ProviderEventID: " evt-1 ", IdempotencyKey: "k"}, body))
	assert.Equal(t, "idem:k", dedupKey(&WebhookEvent{IdempotencyKey: "k"}, body))

	hashed := dedupKey(&WebhookEvent{}, body)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, hashed)
	assert.Equal(t, hashed, dedupKey(&WebhookEvent{}, body))
	assert.NotEqual(t, hashed, dedupKey(&WebhookEvent{}, []byte(`{"envelopeId":"y"}`)))
}
