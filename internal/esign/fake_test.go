package esign_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

type fakeState struct {
	envelopes map[uuid.UUID]*esign.Envelope
	docs      map[uuid.UUID]*document.Document
	events    map[string]*esign.Event
	audits    []audit.Entry
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		envelopes: make(map[uuid.UUID]*esign.Envelope, len(s.envelopes)),
		docs:      make(map[uuid.UUID]*document.Document, len(s.docs)),
		events:    maps.Clone(s.events),
		audits:    slices.Clone(s.audits),
	}

	for id, e := range s.envelopes {
		c.envelopes[id] = cloneEnvelope(e)
	}

	for id, d := range s.docs {
		c.docs[id] = cloneDocument(d)
	}

	return c
}

func cloneEnvelope(e *esign.Envelope) *esign.Envelope {
	c := *e
	c.Metadata = maps.Clone(e.Metadata)
	c.Recipients = slices.Clone(e.Recipients)

	return &c
}

func cloneDocument(d *document.Document) *document.Document {
	c := *d
	c.Metadata = maps.Clone(d.Metadata)

	return &c
}

// fakeRepo snapshots its state when a transaction begins and swaps the
// snapshot in on Commit, so rolled back work leaves no trace.
type fakeRepo struct {
	mu    sync.Mutex
	state *fakeState
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{state: &fakeState{
		envelopes: make(map[uuid.UUID]*esign.Envelope),
		docs:      make(map[uuid.UUID]*document.Document),
		events:    make(map[string]*esign.Event),
	}}
}

func (f *fakeRepo) putDocument(d *document.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.docs[d.ID] = cloneDocument(d)
}

func (f *fakeRepo) document(id uuid.UUID) *document.Document {
	f.mu.Lock()
	defer f.mu.Unlock()

	return cloneDocument(f.state.docs[id])
}

func (f *fakeRepo) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.state.events)
}

func (f *fakeRepo) auditCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.state.audits)
}

func (f *fakeRepo) envelopeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.state.envelopes)
}

func (f *fakeRepo) GetEnvelope(_ context.Context, orgID, id uuid.UUID) (*esign.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return getEnvelope(f.state, orgID, id)
}

func getEnvelope(s *fakeState, orgID, id uuid.UUID) (*esign.Envelope, error) {
	e, ok := s.envelopes[id]
	if !ok || e.OrgID != orgID {
		return nil, esign.ErrNotFound
	}

	return cloneEnvelope(e), nil
}

func (f *fakeRepo) FindByRequestID(_ context.Context, orgID uuid.UUID, requestID string) (*esign.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.state.envelopes {
		if e.OrgID == orgID && e.RequestID == requestID {
			return cloneEnvelope(e), nil
		}
	}

	return nil, esign.ErrNotFound
}

func (f *fakeRepo) FindByProviderID(_ context.Context, provider, providerEnvelopeID string) (*esign.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.state.envelopes {
		if e.Provider == provider && e.ProviderEnvelopeID == providerEnvelopeID {
			return cloneEnvelope(e), nil
		}
	}

	return nil, esign.ErrNotFound
}

func (f *fakeRepo) ListEnvelopes(_ context.Context, orgID, dealID uuid.UUID) ([]*esign.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*esign.Envelope

	for _, e := range f.state.envelopes {
		if e.OrgID == orgID && e.DealID == dealID {
			out = append(out, cloneEnvelope(e))
		}
	}

	return out, nil
}

func documentsByID(s *fakeState, orgID uuid.UUID, ids []uuid.UUID) []*document.Document {
	var out []*document.Document

	for _, id := range ids {
		if d, ok := s.docs[id]; ok && d.OrgID == orgID {
			out = append(out, cloneDocument(d))
		}
	}

	return out
}

func envelopeDocuments(s *fakeState, orgID, envelopeID uuid.UUID) []*document.Document {
	var out []*document.Document

	for _, d := range s.docs {
		if d.OrgID == orgID && d.EnvelopeID != nil && *d.EnvelopeID == envelopeID {
			out = append(out, cloneDocument(d))
		}
	}

	return out
}

func (f *fakeRepo) GetDocuments(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return documentsByID(f.state, orgID, ids), nil
}

func (f *fakeRepo) EnvelopeDocuments(_ context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return envelopeDocuments(f.state, orgID, envelopeID), nil
}

func (f *fakeRepo) Begin(context.Context) (esign.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return &fakeTx{repo: f, state: f.state.clone()}, nil
}

type fakeTx struct {
	repo  *fakeRepo
	state *fakeState
	done  bool
}

func (t *fakeTx) InsertEnvelope(_ context.Context, e *esign.Envelope) (bool, error) {
	for _, existing := range t.state.envelopes {
		if existing.OrgID == e.OrgID && existing.RequestID == e.RequestID {
			return false, nil
		}
	}

	e.ID = uuid.New()
	t.state.envelopes[e.ID] = cloneEnvelope(e)

	return true, nil
}

func (t *fakeTx) LockEnvelope(_ context.Context, orgID, id uuid.UUID) (*esign.Envelope, error) {
	return getEnvelope(t.state, orgID, id)
}

func (t *fakeTx) UpdateEnvelope(_ context.Context, e *esign.Envelope) error {
	if _, ok := t.state.envelopes[e.ID]; !ok {
		return esign.ErrNotFound
	}

	t.state.envelopes[e.ID] = cloneEnvelope(e)

	return nil
}

func (t *fakeTx) LockDocuments(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error) {
	return documentsByID(t.state, orgID, ids), nil
}

func (t *fakeTx) LockEnvelopeDocuments(_ context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error) {
	return envelopeDocuments(t.state, orgID, envelopeID), nil
}

func (t *fakeTx) UpdateDocument(_ context.Context, d *document.Document) error {
	if _, ok := t.state.docs[d.ID]; !ok {
		return document.ErrNotFound
	}

	t.state.docs[d.ID] = cloneDocument(d)

	return nil
}

func (t *fakeTx) InsertEvent(_ context.Context, e *esign.Event) (bool, error) {
	key := e.Provider + "/" + e.ProviderEventID
	if _, ok := t.state.events[key]; ok {
		return false, nil
	}

	e.ID = uuid.New()
	c := *e
	t.state.events[key] = &c

	return true, nil
}

func (t *fakeTx) RecordAudit(_ context.Context, e audit.Entry) error {
	t.state.audits = append(t.state.audits, e)
	return nil
}

func (t *fakeTx) Commit() error {
	if t.done {
		return errors.New("tx already closed")
	}

	t.done = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	t.repo.state = t.state

	return nil
}

func (t *fakeTx) Rollback() error {
	t.done = true
	return nil
}
