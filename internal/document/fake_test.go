package document

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

// fakeRepo keeps deal_documents rows in memory. Transactions apply writes
// only on Commit.
type fakeRepo struct {
	mu     sync.Mutex
	docs   []*Document
	audits []audit.Entry
	clock  time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func clone(d *Document) *Document {
	c := *d
	c.Metadata = maps.Clone(d.Metadata)

	return &c
}

func (f *fakeRepo) current(orgID, dealID uuid.UUID, docType string) *Document {
	var found *Document

	for _, d := range f.docs {
		if d.OrgID == orgID && d.DealID == dealID && d.DocType == docType && d.Status != StatusVoided {
			found = d
		}
	}

	return found
}

func (f *fakeRepo) CurrentDocument(_ context.Context, orgID, dealID uuid.UUID, docType string) (*Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.current(orgID, dealID, docType)
	if d == nil {
		return nil, ErrNotFound
	}

	return clone(d), nil
}

func (f *fakeRepo) GetDocument(_ context.Context, orgID, id uuid.UUID) (*Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range f.docs {
		if d.ID == id && d.OrgID == orgID {
			return clone(d), nil
		}
	}

	return nil, ErrNotFound
}

func (f *fakeRepo) ListDocuments(_ context.Context, orgID, dealID uuid.UUID) ([]*Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*Document

	for _, d := range f.docs {
		if d.OrgID == orgID && d.DealID == dealID {
			out = append(out, clone(d))
		}
	}

	return out, nil
}

func (f *fakeRepo) BeginDeal(context.Context, uuid.UUID, string) (DealTx, error) {
	return &fakeTx{repo: f}, nil
}

func (f *fakeRepo) rows(dealID uuid.UUID, docType string) []*Document {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.DeleteFunc(slices.Clone(f.docs), func(d *Document) bool {
		return d.DealID != dealID || d.DocType != docType
	})
}

func (f *fakeRepo) put(d *Document) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.docs = append(f.docs, d)
}

type fakeTx struct {
	repo    *fakeRepo
	creates []*Document
	updates []*Document
	audits  []audit.Entry
	done    bool
}

func (t *fakeTx) CurrentDocument(ctx context.Context, orgID, dealID uuid.UUID, docType string) (*Document, error) {
	return t.repo.CurrentDocument(ctx, orgID, dealID, docType)
}

func (t *fakeTx) CreateDocument(_ context.Context, d *Document) error {
	d.ID = uuid.New()
	t.creates = append(t.creates, clone(d))

	return nil
}

func (t *fakeTx) UpdateGenerated(_ context.Context, d *Document) error {
	t.updates = append(t.updates, clone(d))
	return nil
}

func (t *fakeTx) RecordAudit(_ context.Context, e audit.Entry) error {
	t.audits = append(t.audits, e)
	return nil
}

func (t *fakeTx) Commit() error {
	if t.done {
		return errors.New("tx already closed")
	}

	t.done = true

	f := t.repo
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range t.creates {
		f.clock = f.clock.Add(time.Second)
		d.CreatedAt, d.UpdatedAt = f.clock, f.clock
		f.docs = append(f.docs, d)
	}

	for _, u := range t.updates {
		for i, d := range f.docs {
			if d.ID == u.ID {
				f.docs[i] = u
			}
		}
	}

	f.audits = append(f.audits, t.audits...)

	return nil
}

func (t *fakeTx) Rollback() error {
	t.done = true
	return nil
}

type fakeDeals struct {
	snap deal.Snapshot
}

func (f *fakeDeals) Snapshot(_ context.Context, orgID, dealID uuid.UUID) (*deal.Snapshot, error) {
	if orgID != f.snap.OrgID || dealID != f.snap.DealID {
		return nil, deal.ErrNotFound
	}

	s := f.snap
	s.AsOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	return &s, nil
}

type fakeRules struct {
	checklist []rules.ChecklistItem
	computed  map[string]any
}

func (f *fakeRules) Evaluate(context.Context, *deal.Snapshot) (*rules.Evaluation, error) {
	return &rules.Evaluation{Result: rules.Result{
		RequiredChecklist: f.checklist,
		ValidationErrors:  []rules.Finding{},
		ComputedFields:    maps.Clone(f.computed),
		Notices:           []string{},
	}}, nil
}

type fakeTemplates map[string]*template.Template

func (f fakeTemplates) Resolve(_ context.Context, q template.Query) (*template.Template, bool, error) {
	t, ok := f[q.DocType]
	return t, ok, nil
}
