package stub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

func TestProvider(t *testing.T) {
	ctx := context.Background()
	p := New(false)

	resp, err := p.CreateEnvelope(ctx, esign.CreateRequest{
		Documents: []esign.ProviderDocument{{Buffer: []byte("%PDF a")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
	assert.Empty(t, resp.SignedPDF)

	require.NoError(t, p.SetStatus(resp.ProviderEnvelopeID, "completed", nil))

	got, err := p.GetEnvelope(ctx, esign.GetRequest{ProviderEnvelopeID: resp.ProviderEnvelopeID})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.NotEmpty(t, got.SignedPDF)

	assert.Error(t, p.VoidEnvelope(ctx, esign.VoidRequest{ProviderEnvelopeID: "nope"}))
	assert.Equal(t, 1, p.Calls("CreateEnvelope"))
}

func TestProvider_AutoComplete(t *testing.T) {
	p := New(true)

	resp, err := p.CreateEnvelope(context.Background(), esign.CreateRequest{
		Documents: []esign.ProviderDocument{{Buffer: []byte("a")}, {Buffer: []byte("b")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, []byte("a\nb\n"), resp.SignedPDF)
}

func TestVerifyWebhook(t *testing.T) {
	p := New(false)

	ev, err := p.VerifyWebhook(context.Background(), esign.WebhookRequest{
		Body: []byte(`{"envelopeId":"stub-1","eventType":"envelope.completed","eventId":"e1","data":{"a":1}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "stub-1", ev.ProviderEnvelopeID)
	assert.Equal(t, "e1", ev.ProviderEventID)
	assert.Equal(t, "envelope.completed", ev.EventType)

	_, err = p.VerifyWebhook(context.Background(), esign.WebhookRequest{Body: []byte(`{}`)})
	assert.Error(t, err)
}
