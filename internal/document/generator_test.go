package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/event"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

type pdfRenderer struct{}

func (pdfRenderer) RenderArtifact(_ context.Context, _, markup string) (*render.Artifact, error) {
	return &render.Artifact{
		Buffer:      []byte("%PDF-1.7\n" + markup),
		ContentType: "application/pdf",
		Extension:   "pdf",
		Mode:        render.ModePDF,
	}, nil
}

type failingStore struct{ storage.Store }

func (failingStore) PutObject(context.Context, string, []byte, string) error {
	return errors.New("disk full")
}

type fixture struct {
	gen      *Generator
	repo     *fakeRepo
	store    *storage.Memory
	events   *event.Recorder
	rules    *fakeRules
	tpls     fakeTemplates
	snap     deal.Snapshot
	p        auth.Principal
	renderer render.Renderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orgID := uuid.New()

	f := &fixture{
		repo:   newFakeRepo(),
		store:  storage.NewMemory(),
		events: &event.Recorder{},
		rules: &fakeRules{checklist: []rules.ChecklistItem{
			{DocType: "BUYERS_ORDER", Reason: "every deal"},
			{DocType: "ODOMETER_DISCLOSURE", Reason: "vehicle under 20 years old"},
		}},
		snap: deal.Snapshot{
			DealID:       uuid.New(),
			OrgID:        orgID,
			DealNumber:   "D-1001",
			Jurisdiction: "TX",
			DealType:     deal.TypeFinance,
			SalePrice:    decimal.RequireFromString("25000"),
			Customer:     deal.Customer{FirstName: "Ana", LastName: "Silva"},
			Vehicle:      deal.Vehicle{VIN: "1HGCM82633A004352", Year: 2021, Make: "Honda", Mileage: 12000},
		},
		p:        auth.Principal{OrgID: orgID, ActorID: uuid.New()},
		renderer: pdfRenderer{},
	}

	f.tpls = fakeTemplates{
		"BUYERS_ORDER": {
			ID: uuid.New(), DocType: "BUYERS_ORDER", Version: 3, Engine: template.EngineHTML,
			SourceHTML:     "<h1>{{ deal.dealNumber }}</h1><p>{{ customer.fullName }}</p>{{ SIGN_BUYER_1 }}",
			RequiredFields: template.RequiredFields{RequiredPaths: []string{"deal.dealNumber", "customer.firstName"}},
		},
		"ODOMETER_DISCLOSURE": {
			ID: uuid.New(), DocType: "ODOMETER_DISCLOSURE", Version: 1, Engine: template.EngineHTML,
			SourceHTML:     "<p>{{ vehicle.vin }} {{ vehicle.mileage }}</p>",
			RequiredFields: template.RequiredFields{RequiredPaths: []string{"vehicle.vin", "vehicle.mileage"}},
		},
	}

	return f
}

func (f *fixture) build() *Generator {
	f.gen = NewGenerator(f.repo, &fakeDeals{snap: f.snap}, f.rules, f.tpls, f.renderer, f.store, f.events, Config{})
	return f.gen
}

func (f *fixture) generate(t *testing.T, req Request) *GenerateResult {
	t.Helper()

	req.DealID = f.snap.DealID

	res, err := f.build().Generate(context.Background(), f.p, req)
	require.NoError(t, err)

	return res
}

func TestGenerate_UsesChecklistWhenNoDocTypes(t *testing.T) {
	f := newFixture(t)

	res := f.generate(t, Request{})

	require.Len(t, res.Items, 2)
	assert.Equal(t, "BUYERS_ORDER", res.Items[0].DocType)
	assert.Equal(t, "ODOMETER_DISCLOSURE", res.Items[1].DocType)

	for _, item := range res.Items {
		assert.Equal(t, OutcomeGenerated, item.Outcome, item.Message)
		require.NotNil(t, item.DocumentID)
		require.NotNil(t, item.TemplateID)
	}

	assert.Equal(t, "every deal", res.Items[0].Reason)
	assert.Len(t, f.events.OfType(event.TypeDocumentGenerated), 2)
	assert.Equal(t, 2, f.store.Puts())
}

func TestGenerate_PersistsArtifactAndAudit(t *testing.T) {
	f := newFixture(t)

	res := f.generate(t, Request{DocTypes: []string{" buyers_order "}})
	require.Len(t, res.Items, 1)

	rows := f.repo.rows(f.snap.DealID, "BUYERS_ORDER")
	require.Len(t, rows, 1)

	doc := rows[0]
	assert.Equal(t, *res.Items[0].DocumentID, doc.ID)
	assert.Equal(t, StatusGenerated, doc.Status)
	assert.Equal(t, render.ModePDF, doc.RenderMode())
	assert.Equal(t, "every deal", doc.Metadata[MetaChecklistReason])
	assert.Equal(t, storage.DocumentKey(f.snap.OrgID, f.snap.DealID, "BUYERS_ORDER", doc.FileHash, "pdf"), doc.FileKey)

	buf, err := f.store.GetObject(context.Background(), doc.FileKey)
	require.NoError(t, err)
	assert.Equal(t, render.Hash(buf), doc.FileHash)
	assert.Contains(t, string(buf), "<h1>D-1001</h1><p>Ana Silva</p>[[SIGN_BUYER_1]]")

	require.Len(t, f.repo.audits, 1)
	assert.Equal(t, audit.ActionCreate, f.repo.audits[0].Action)
	assert.Equal(t, audit.EntityDocument, f.repo.audits[0].EntityType)
	assert.Equal(t, f.p.ActorID, f.repo.audits[0].ActorID)
	assert.Nil(t, f.repo.audits[0].Before)

	events := f.events.OfType(event.TypeDocumentGenerated)
	require.Len(t, events, 1)
	assert.Equal(t, doc.ID, events[0].EntityID)
	assert.Equal(t, false, events[0].Payload["regenerated"])
}

func TestGenerate_RegenerationGating(t *testing.T) {
	f := newFixture(t)

	first := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})
	require.Equal(t, OutcomeGenerated, first.Items[0].Outcome)
	docID := *first.Items[0].DocumentID

	skipped := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})
	assert.Equal(t, OutcomeSkippedExisting, skipped.Items[0].Outcome)
	assert.Equal(t, docID, *skipped.Items[0].DocumentID)

	noReason := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}, Regenerate: true, Reason: "   "})
	assert.Equal(t, OutcomeRegenerateReasonRequired, noReason.Items[0].Outcome)

	f.snap.DealNumber = "D-1001-A"
	again := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}, Regenerate: true, Reason: "deal number corrected"})
	require.Equal(t, OutcomeGenerated, again.Items[0].Outcome)
	assert.Equal(t, docID, *again.Items[0].DocumentID)

	rows := f.repo.rows(f.snap.DealID, "BUYERS_ORDER")
	require.Len(t, rows, 1, "regeneration must update the row in place")
	assert.Equal(t, "deal number corrected", rows[0].RegenerateReason)

	require.Len(t, f.repo.audits, 2)
	regen := f.repo.audits[1]
	assert.Equal(t, audit.ActionRegenerate, regen.Action)

	before, ok := regen.Before.(map[string]any)
	require.True(t, ok)
	after, ok := regen.After.(map[string]any)
	require.True(t, ok)
	assert.NotEqual(t, before["fileHash"], after["fileHash"])
	assert.Equal(t, rows[0].FileHash, after["fileHash"])

	events := f.events.OfType(event.TypeDocumentGenerated)
	require.Len(t, events, 2)
	assert.Equal(t, true, events[1].Payload["regenerated"])
}

func TestGenerate_LockedDocumentIsNotRegenerated(t *testing.T) {
	f := newFixture(t)

	envID := uuid.New()
	f.repo.put(&Document{
		ID:         uuid.New(),
		OrgID:      f.snap.OrgID,
		DealID:     f.snap.DealID,
		DocType:    "BUYERS_ORDER",
		Status:     StatusSentForSignature,
		EnvelopeID: &envID,
	})

	res := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}, Regenerate: true, Reason: "fix"})

	assert.Equal(t, OutcomeSkippedExisting, res.Items[0].Outcome)
	assert.Contains(t, res.Items[0].Message, "void first")
	assert.Zero(t, f.store.Puts())
}

func TestGenerate_VoidedDocumentGetsFreshRow(t *testing.T) {
	f := newFixture(t)

	voided := uuid.New()
	f.repo.put(&Document{ID: voided, OrgID: f.snap.OrgID, DealID: f.snap.DealID, DocType: "BUYERS_ORDER", Status: StatusVoided})

	res := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})

	require.Equal(t, OutcomeGenerated, res.Items[0].Outcome)
	assert.NotEqual(t, voided, *res.Items[0].DocumentID)
	assert.Len(t, f.repo.rows(f.snap.DealID, "BUYERS_ORDER"), 2)
}

func TestGenerator_CurrentIgnoresVoided(t *testing.T) {
	f := newFixture(t)
	gen := f.build()

	sess, err := gen.Prepare(context.Background(), f.p, f.snap.DealID, nil)
	require.NoError(t, err)

	got, err := gen.Current(context.Background(), sess, "BUYERS_ORDER")
	require.NoError(t, err)
	assert.Nil(t, got)

	f.repo.put(&Document{ID: uuid.New(), OrgID: f.snap.OrgID, DealID: f.snap.DealID, DocType: "BUYERS_ORDER", Status: StatusVoided})

	got, err = gen.Current(context.Background(), sess, "buyers_order")
	require.NoError(t, err)
	assert.Nil(t, got)

	live := uuid.New()
	f.repo.put(&Document{ID: live, OrgID: f.snap.OrgID, DealID: f.snap.DealID, DocType: "ODOMETER_DISCLOSURE", Status: StatusGenerated})

	got, err = gen.Current(context.Background(), sess, "ODOMETER_DISCLOSURE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, live, got.ID)
}

func TestGenerate_MissingFieldsReportsEveryPath(t *testing.T) {
	f := newFixture(t)
	f.snap.Vehicle.VIN = ""
	f.tpls["ODOMETER_DISCLOSURE"].RequiredFields.RequiredPaths = []string{"vehicle.vin", "customer.firstName", "dealer.licenseNumber"}

	res := f.generate(t, Request{DocTypes: []string{"ODOMETER_DISCLOSURE"}})

	item := res.Items[0]
	assert.Equal(t, OutcomeMissingFields, item.Outcome)
	assert.Equal(t, []string{"vehicle.vin", "dealer.licenseNumber"}, item.MissingFields)
	assert.Contains(t, item.Message, "vehicle.vin")
	assert.Nil(t, item.DocumentID)
	assert.Zero(t, f.store.Puts())
	assert.Empty(t, f.events.Events)
}

func TestGenerate_MissingFieldsExactlyVIN(t *testing.T) {
	f := newFixture(t)
	f.snap.Vehicle.VIN = ""

	res := f.generate(t, Request{DocTypes: []string{"ODOMETER_DISCLOSURE"}})

	assert.Equal(t, OutcomeMissingFields, res.Items[0].Outcome)
	assert.Equal(t, []string{"vehicle.vin"}, res.Items[0].MissingFields)
}

func TestGenerate_MissingTemplate(t *testing.T) {
	f := newFixture(t)

	res := f.generate(t, Request{DocTypes: []string{"TITLE_APPLICATION"}})

	item := res.Items[0]
	assert.Equal(t, OutcomeMissingTemplate, item.Outcome)
	assert.Contains(t, item.Message, "TITLE_APPLICATION")
	assert.Contains(t, item.Message, "TX/FINANCE")
	assert.Nil(t, item.TemplateID)
}

func TestGenerate_UnsupportedTemplate(t *testing.T) {
	f := newFixture(t)
	f.tpls["BUYERS_ORDER"].Engine = template.EngineDOCX

	res := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})

	assert.Equal(t, OutcomeUnsupportedTemplate, res.Items[0].Outcome)
	assert.NotNil(t, res.Items[0].TemplateID)
}

func TestGenerate_HTMLFallbackIsRecorded(t *testing.T) {
	f := newFixture(t)
	f.renderer = render.HTMLRenderer{}

	res := f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})
	require.Equal(t, OutcomeGenerated, res.Items[0].Outcome)

	doc := f.repo.rows(f.snap.DealID, "BUYERS_ORDER")[0]
	assert.Equal(t, render.ModeHTMLFallback, doc.RenderMode())
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType())
}

func TestGenerate_ComputedFieldsRender(t *testing.T) {
	f := newFixture(t)
	f.rules.computed = map[string]any{"docFee": "150.00"}
	f.tpls["BUYERS_ORDER"].SourceHTML = "<p>Doc fee {{ computed.docFee }}</p>"

	f.generate(t, Request{DocTypes: []string{"BUYERS_ORDER"}})

	doc := f.repo.rows(f.snap.DealID, "BUYERS_ORDER")[0]
	buf, err := f.store.GetObject(context.Background(), doc.FileKey)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "Doc fee 150.00")
}

func TestGenerate_StorageFailureAborts(t *testing.T) {
	f := newFixture(t)

	gen := NewGenerator(f.repo, &fakeDeals{snap: f.snap}, f.rules, f.tpls, f.renderer, failingStore{}, f.events, Config{})

	_, err := gen.Generate(context.Background(), f.p, Request{DealID: f.snap.DealID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, f.repo.rows(f.snap.DealID, "BUYERS_ORDER"))
	assert.Empty(t, f.events.Events)
}

func TestGenerate_UnknownDeal(t *testing.T) {
	f := newFixture(t)

	_, err := f.build().Generate(context.Background(), f.p, Request{DealID: uuid.New()})
	assert.ErrorIs(t, err, deal.ErrNotFound)
}

func TestGenerate_AsOfOverridesSnapshotDate(t *testing.T) {
	f := newFixture(t)
	asOf := time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC)

	sess, err := f.build().Prepare(context.Background(), f.p, f.snap.DealID, &asOf)
	require.NoError(t, err)

	assert.Equal(t, asOf, sess.Snapshot.AsOf)
	assert.Equal(t, "2024-12-31", sess.Context["deal"].(map[string]any)["date"])
}

func TestStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusGenerated, StatusSentForSignature, true},
		{StatusSentForSignature, StatusPartiallySigned, true},
		{StatusPartiallySigned, StatusCompleted, true},
		{StatusGenerated, StatusCompleted, true},
		{StatusPartiallySigned, StatusSentForSignature, false},
		{StatusSentForSignature, StatusVoided, true},
		{StatusGenerated, StatusFailed, true},
		{StatusCompleted, StatusVoided, false},
		{StatusVoided, StatusGenerated, false},
		{StatusFailed, StatusVoided, true},
		{StatusGenerated, StatusGenerated, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
