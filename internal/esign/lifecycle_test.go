package esign_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign/stub"
	"github.com/MrJamesThe3rd/dealdesk/internal/event"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
)

type fixture struct {
	lc       *esign.Lifecycle
	repo     *fakeRepo
	provider *stub.Provider
	store    *storage.Memory
	events   *event.Recorder
	p        auth.Principal
	dealID   uuid.UUID
	docIDs   []uuid.UUID
}

func newFixture(t *testing.T, autoComplete bool) *fixture {
	t.Helper()

	f := &fixture{
		repo:     newFakeRepo(),
		provider: stub.New(autoComplete),
		store:    storage.NewMemory(),
		events:   &event.Recorder{},
		p:        auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()},
		dealID:   uuid.New(),
	}

	for _, docType := range []string{"BUYERS_ORDER", "ODOMETER_DISCLOSURE"} {
		f.docIDs = append(f.docIDs, f.addDocument(t, docType, render.ModePDF))
	}

	f.lc = esign.NewLifecycle(f.repo, f.store, f.events, f.provider)

	return f
}

func (f *fixture) addDocument(t *testing.T, docType string, mode render.Mode) uuid.UUID {
	t.Helper()

	buf := []byte("%PDF-1.7 " + docType)
	hash := render.Hash(buf)
	key := storage.DocumentKey(f.p.OrgID, f.dealID, docType, hash, "pdf")
	require.NoError(t, f.store.PutObject(context.Background(), key, buf, "application/pdf"))

	d := &document.Document{
		ID:         uuid.New(),
		OrgID:      f.p.OrgID,
		DealID:     f.dealID,
		TemplateID: uuid.New(),
		DocType:    docType,
		Status:     document.StatusGenerated,
		FileKey:    key,
		FileHash:   hash,
		Metadata: map[string]any{
			document.MetaRenderMode:  string(mode),
			document.MetaContentType: "application/pdf",
		},
	}
	f.repo.putDocument(d)

	return d.ID
}

func (f *fixture) request(requestID string) esign.SendRequest {
	return esign.SendRequest{
		DealID:      f.dealID,
		DocumentIDs: f.docIDs,
		RequestID:   requestID,
		Recipients: []esign.Recipient{
			{Role: esign.RoleBuyer, Name: "Ana Buyer", Email: "ana@example.com"},
			{Role: esign.RoleDealer, Name: "Finance Desk", Email: "finance@dealer.example"},
		},
	}
}

func (f *fixture) webhook(providerEnvelopeID, eventID string) esign.WebhookRequest {
	body := fmt.Sprintf(`{"envelopeId":%q,"eventId":%q,"eventType":"envelope.updated"}`, providerEnvelopeID, eventID)
	return esign.WebhookRequest{Body: []byte(body), ReceivedAt: time.Now()}
}

func TestSend(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	assert.Equal(t, esign.StatusSent, env.Status)
	assert.Equal(t, stub.Name, env.Provider)
	assert.NotEmpty(t, env.ProviderEnvelopeID)
	require.NotNil(t, env.SentAt)
	assert.Equal(t, 1, env.Recipients[0].Order)
	assert.Equal(t, 2, env.Recipients[1].Order)

	for _, id := range f.docIDs {
		d := f.repo.document(id)
		assert.Equal(t, document.StatusSentForSignature, d.Status)
		require.NotNil(t, d.EnvelopeID)
		assert.Equal(t, env.ID, *d.EnvelopeID)
	}

	changed := f.events.OfType(event.TypeEnvelopeStatusChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, esign.StatusDraft, changed[0].Payload["previousStatus"])
	assert.Equal(t, esign.StatusSent, changed[0].Payload["status"])
}

func TestSend_SameRequestIDReturnsExistingEnvelope(t *testing.T) {
	f := newFixture(t, false)

	first, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	second, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.provider.Calls("CreateEnvelope"))
	assert.Equal(t, 1, f.repo.envelopeCount())
}

func TestSend_RequestIDReusedForAnotherDeal(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	other := f.request("req-1")
	other.DealID = uuid.New()

	_, err = f.lc.Send(context.Background(), f.p, other)
	assert.ErrorIs(t, err, esign.ErrRequestConflict)
	assert.Equal(t, 1, f.provider.Calls("CreateEnvelope"))
}

func TestSend_RequestIDReusedForOtherDocuments(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	subset := f.request("req-1")
	subset.DocumentIDs = f.docIDs[:1]

	_, err = f.lc.Send(context.Background(), f.p, subset)
	assert.ErrorIs(t, err, esign.ErrRequestConflict)

	reordered := f.request("req-1")
	reordered.DocumentIDs = []uuid.UUID{f.docIDs[1], f.docIDs[0]}

	_, err = f.lc.Send(context.Background(), f.p, reordered)
	require.NoError(t, err)
	assert.Equal(t, 1, f.provider.Calls("CreateEnvelope"))
}

func TestEnvelope_DocumentIDsFromStoredJSON(t *testing.T) {
	env := &esign.Envelope{Metadata: map[string]any{esign.MetaDocumentIDs: []any{"a", "b"}}}
	assert.Equal(t, []string{"a", "b"}, env.DocumentIDs())

	assert.Nil(t, (&esign.Envelope{}).DocumentIDs())
}

func TestSend_HTMLFallbackIsNotSignable(t *testing.T) {
	f := newFixture(t, false)
	htmlDoc := f.addDocument(t, "PRIVACY_NOTICE", render.ModeHTMLFallback)

	req := f.request("req-1")
	req.DocumentIDs = append(req.DocumentIDs, htmlDoc)

	_, err := f.lc.Send(context.Background(), f.p, req)
	assert.ErrorIs(t, err, esign.ErrNotSignable)
	assert.Zero(t, f.provider.Calls("CreateEnvelope"))
	assert.Zero(t, f.repo.envelopeCount())
	assert.Equal(t, document.StatusGenerated, f.repo.document(f.docIDs[0]).Status)
}

func TestSend_LockedDocumentIsNotSignable(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	_, err = f.lc.Send(context.Background(), f.p, f.request("req-2"))
	assert.ErrorIs(t, err, esign.ErrNotSignable)
	assert.Equal(t, 1, f.provider.Calls("CreateEnvelope"))
}

func TestSend_InvalidRequest(t *testing.T) {
	f := newFixture(t, false)

	tests := []struct {
		name   string
		mutate func(*esign.SendRequest)
	}{
		{name: "no request id", mutate: func(r *esign.SendRequest) { r.RequestID = " " }},
		{name: "no documents", mutate: func(r *esign.SendRequest) { r.DocumentIDs = nil }},
		{name: "no recipients", mutate: func(r *esign.SendRequest) { r.Recipients = nil }},
		{name: "bad email", mutate: func(r *esign.SendRequest) { r.Recipients[0].Email = "not-an-email" }},
		{name: "unknown role", mutate: func(r *esign.SendRequest) { r.Recipients[0].Role = "notary" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("req-1")
			tt.mutate(&req)

			_, err := f.lc.Send(context.Background(), f.p, req)
			assert.ErrorIs(t, err, esign.ErrInvalidRequest)
		})
	}

	assert.Zero(t, f.provider.Calls("CreateEnvelope"))
}

func TestSend_UnknownProvider(t *testing.T) {
	f := newFixture(t, false)

	req := f.request("req-1")
	req.Provider = "docusign"

	_, err := f.lc.Send(context.Background(), f.p, req)
	assert.ErrorIs(t, err, esign.ErrUnknownProvider)
}

type failingProvider struct {
	*stub.Provider
}

func (failingProvider) CreateEnvelope(context.Context, esign.CreateRequest) (*esign.CreateResponse, error) {
	return nil, errors.New("503 service unavailable")
}

func TestSend_ProviderFailureWritesNothing(t *testing.T) {
	f := newFixture(t, false)
	lc := esign.NewLifecycle(f.repo, f.store, f.events, failingProvider{stub.New(false)})

	_, err := lc.Send(context.Background(), f.p, f.request("req-1"))
	assert.ErrorIs(t, err, esign.ErrProvider)
	assert.Zero(t, f.repo.envelopeCount())
	assert.Zero(t, f.repo.auditCount())
	assert.Equal(t, document.StatusGenerated, f.repo.document(f.docIDs[0]).Status)
}

func TestSend_AutoCompleteFinalizes(t *testing.T) {
	f := newFixture(t, true)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	assert.Equal(t, esign.StatusCompleted, env.Status)
	require.NotNil(t, env.CompletedAt)
	require.NotEmpty(t, env.SignedFileKey())

	_, err = f.store.GetObject(context.Background(), env.SignedFileKey())
	require.NoError(t, err)

	for _, id := range f.docIDs {
		d := f.repo.document(id)
		assert.Equal(t, document.StatusCompleted, d.Status)
		assert.Equal(t, env.SignedFileKey(), d.SignedFileKey())
	}
}

func TestProcessWebhook_CompletesOnceAndDeduplicates(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)
	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "completed", nil))

	res, err := f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook(env.ProviderEnvelopeID, "evt-1"))
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.Equal(t, env.ID, res.EnvelopeID)
	assert.Equal(t, esign.StatusCompleted, res.Status)

	stored, err := f.lc.Get(context.Background(), f.p.OrgID, env.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.SignedFileKey())

	for _, id := range f.docIDs {
		d := f.repo.document(id)
		assert.Equal(t, document.StatusCompleted, d.Status)
		assert.Equal(t, stored.SignedFileKey(), d.SignedFileKey())
	}

	events, audits, emitted := f.repo.eventCount(), f.repo.auditCount(), len(f.events.Events)

	again, err := f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook(env.ProviderEnvelopeID, "evt-1"))
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, events, f.repo.eventCount())
	assert.Equal(t, audits, f.repo.auditCount())
	assert.Len(t, f.events.Events, emitted)
}

func TestProcessWebhook_CompletedWithoutArtifactWaits(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)
	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "completed", []byte{}))

	res, err := f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook(env.ProviderEnvelopeID, "evt-1"))
	require.NoError(t, err)
	assert.Equal(t, esign.StatusSent, res.Status)

	stored, err := f.lc.Get(context.Background(), f.p.OrgID, env.ID)
	require.NoError(t, err)
	assert.Equal(t, esign.StatusSent, stored.Status)
	assert.Nil(t, stored.CompletedAt)
	assert.Empty(t, stored.SignedFileKey())
	assert.Equal(t, document.StatusSentForSignature, f.repo.document(f.docIDs[0]).Status)
	assert.Len(t, f.events.OfType(event.TypeEnvelopeStatusChanged), 1)

	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "completed", nil))

	got, err := f.lc.Refresh(context.Background(), f.p, env.ID)
	require.NoError(t, err)
	assert.Equal(t, esign.StatusCompleted, got.Status)
	assert.NotEmpty(t, got.SignedFileKey())
	assert.Equal(t, document.StatusCompleted, f.repo.document(f.docIDs[0]).Status)
}

func TestVoid_CompletedWithoutArtifactIsStillVoidable(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)
	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "completed", []byte{}))

	_, err = f.lc.Refresh(context.Background(), f.p, env.ID)
	require.NoError(t, err)

	voided, err := f.lc.Void(context.Background(), f.p, env.ID, "customer walked")
	require.NoError(t, err)
	assert.Equal(t, esign.StatusVoided, voided.Status)
	assert.Equal(t, document.StatusVoided, f.repo.document(f.docIDs[0]).Status)
}

func TestProcessWebhook_OutOfOrderStatusIsIgnored(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "partially_signed", nil))
	_, err = f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook(env.ProviderEnvelopeID, "evt-1"))
	require.NoError(t, err)

	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "sent", nil))
	res, err := f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook(env.ProviderEnvelopeID, "evt-2"))
	require.NoError(t, err)

	assert.Equal(t, esign.StatusPartiallySigned, res.Status)
	assert.Equal(t, document.StatusPartiallySigned, f.repo.document(f.docIDs[0]).Status)
}

func TestProcessWebhook_UnknownEnvelopeIsIgnored(t *testing.T) {
	f := newFixture(t, false)

	res, err := f.lc.ProcessWebhook(context.Background(), stub.Name, f.webhook("stub-missing", "evt-1"))
	require.NoError(t, err)
	assert.True(t, res.Ignored)
	assert.Zero(t, f.repo.eventCount())
}

func TestProcessWebhook_Rejected(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.lc.ProcessWebhook(context.Background(), stub.Name, esign.WebhookRequest{Body: []byte("not json")})
	assert.ErrorIs(t, err, esign.ErrWebhookRejected)

	_, err = f.lc.ProcessWebhook(context.Background(), "", f.webhook("stub-1", "evt-1"))
	assert.ErrorIs(t, err, esign.ErrUnknownProvider)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)
	require.NoError(t, f.provider.SetStatus(env.ProviderEnvelopeID, "declined", nil))

	got, err := f.lc.Refresh(context.Background(), f.p, env.ID)
	require.NoError(t, err)

	assert.Equal(t, esign.StatusDeclined, got.Status)
	assert.Equal(t, document.StatusFailed, f.repo.document(f.docIDs[0]).Status)
}

func TestVoid(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	_, err = f.lc.Void(context.Background(), f.p, env.ID, "  ")
	require.ErrorIs(t, err, esign.ErrReasonRequired)

	voided, err := f.lc.Void(context.Background(), f.p, env.ID, "wrong buyer name")
	require.NoError(t, err)
	assert.Equal(t, esign.StatusVoided, voided.Status)
	assert.Equal(t, "wrong buyer name", voided.Metadata[esign.MetaVoidReason])
	assert.Equal(t, 1, f.provider.Calls("VoidEnvelope"))

	for _, id := range f.docIDs {
		assert.Equal(t, document.StatusVoided, f.repo.document(id).Status)
	}

	remote, err := f.provider.GetEnvelope(context.Background(), esign.GetRequest{ProviderEnvelopeID: env.ProviderEnvelopeID})
	require.NoError(t, err)
	assert.Equal(t, "voided", remote.Status)

	_, err = f.lc.Void(context.Background(), f.p, env.ID, "again")
	assert.ErrorIs(t, err, esign.ErrInvalidTransition)
}

func TestVoid_CompletedEnvelope(t *testing.T) {
	f := newFixture(t, true)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	_, err = f.lc.Void(context.Background(), f.p, env.ID, "too late")
	assert.ErrorIs(t, err, esign.ErrInvalidTransition)
	assert.Zero(t, f.provider.Calls("VoidEnvelope"))
}

func TestVoid_NotFound(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.lc.Void(context.Background(), f.p, uuid.New(), "reason")
	assert.ErrorIs(t, err, esign.ErrNotFound)
}

func TestListForDealAndDocuments(t *testing.T) {
	f := newFixture(t, false)

	env, err := f.lc.Send(context.Background(), f.p, f.request("req-1"))
	require.NoError(t, err)

	list, err := f.lc.ListForDeal(context.Background(), f.p.OrgID, f.dealID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, env.ID, list[0].ID)

	docs, err := f.lc.Documents(context.Background(), f.p.OrgID, env.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
