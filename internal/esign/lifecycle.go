package esign

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/event"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
)

// Lifecycle creates envelopes, tracks their provider status and fans status
// changes out to the envelope's documents.
type Lifecycle struct {
	repo      Repository
	providers map[string]Provider
	fallback  string
	store     storage.Store
	events    event.Emitter
	now       func() time.Time
}

// NewLifecycle registers providers by name. The first provider is used when a
// send request does not name one.
func NewLifecycle(repo Repository, store storage.Store, events event.Emitter, providers ...Provider) *Lifecycle {
	l := &Lifecycle{
		repo:      repo,
		providers: make(map[string]Provider, len(providers)),
		store:     store,
		events:    events,
		now:       time.Now,
	}

	for _, p := range providers {
		if l.fallback == "" {
			l.fallback = p.Name()
		}

		l.providers[p.Name()] = p
	}

	return l
}

func (l *Lifecycle) provider(name string) (Provider, error) {
	if name == "" {
		name = l.fallback
	}

	p, ok := l.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	return p, nil
}

type SendRequest struct {
	DealID      uuid.UUID
	DocumentIDs []uuid.UUID
	Recipients  []Recipient
	RequestID   string
	Provider    string
}

func (r *SendRequest) normalize() error {
	r.RequestID = strings.TrimSpace(r.RequestID)
	if r.RequestID == "" {
		return fmt.Errorf("%w: requestId is required", ErrInvalidRequest)
	}

	if r.DealID == uuid.Nil {
		return fmt.Errorf("%w: dealId is required", ErrInvalidRequest)
	}

	ids := make([]uuid.UUID, 0, len(r.DocumentIDs))
	for _, id := range r.DocumentIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one document is required", ErrInvalidRequest)
	}

	r.DocumentIDs = ids

	if len(r.Recipients) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidRequest)
	}

	for i := range r.Recipients {
		rc := &r.Recipients[i]
		rc.Role = Role(strings.ToLower(strings.TrimSpace(string(rc.Role))))
		rc.Name = strings.TrimSpace(rc.Name)
		rc.Email = strings.TrimSpace(rc.Email)

		switch rc.Role {
		case RoleBuyer, RoleCoBuyer, RoleDealer:
		default:
			return fmt.Errorf("%w: recipient %d has unknown role %q", ErrInvalidRequest, i, rc.Role)
		}

		if rc.Name == "" {
			return fmt.Errorf("%w: recipient %d has no name", ErrInvalidRequest, i)
		}

		if _, err := mail.ParseAddress(rc.Email); err != nil {
			return fmt.Errorf("%w: recipient %d has an invalid email", ErrInvalidRequest, i)
		}

		if rc.Order == 0 {
			rc.Order = i + 1
		}
	}

	return nil
}

func checkSignable(d *document.Document, dealID uuid.UUID) error {
	switch {
	case d.DealID != dealID:
		return fmt.Errorf("%w: document %s belongs to another deal", ErrNotSignable, d.ID)
	case d.Status != document.StatusGenerated:
		return fmt.Errorf("%w: document %s (%s) is %s", ErrNotSignable, d.ID, d.DocType, d.Status)
	case d.FileKey == "":
		return fmt.Errorf("%w: document %s (%s) has no stored artifact", ErrNotSignable, d.ID, d.DocType)
	case d.RenderMode() != render.ModePDF:
		return fmt.Errorf("%w: document %s (%s) was not rendered as PDF", ErrNotSignable, d.ID, d.DocType)
	}

	return nil
}

// Send creates an envelope for generated documents of a deal. A request id
// that was already used returns the existing envelope for the same deal and
// is rejected for any other deal. Nothing is written when the provider call
// fails.
func (l *Lifecycle) Send(ctx context.Context, p auth.Principal, req SendRequest) (*Envelope, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	if existing, err := l.existingForRequest(ctx, p.OrgID, req); existing != nil || err != nil {
		return existing, err
	}

	docs, err := l.repo.GetDocuments(ctx, p.OrgID, req.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	if len(docs) != len(req.DocumentIDs) {
		return nil, fmt.Errorf("%w: one or more documents were not found", ErrNotSignable)
	}

	payload := make([]ProviderDocument, 0, len(docs))

	for _, d := range docs {
		if err := checkSignable(d, req.DealID); err != nil {
			return nil, err
		}

		buf, err := l.store.GetObject(ctx, d.FileKey)
		if err != nil {
			return nil, fmt.Errorf("loading artifact of %s: %w", d.DocType, err)
		}

		payload = append(payload, ProviderDocument{
			ID:          d.ID,
			DocType:     d.DocType,
			Title:       render.Title(d.DocType),
			ContentType: d.ContentType(),
			Buffer:      buf,
		})
	}

	prov, err := l.provider(req.Provider)
	if err != nil {
		return nil, err
	}

	remote, err := prov.CreateEnvelope(ctx, CreateRequest{
		OrgID:      p.OrgID,
		DealID:     req.DealID,
		RequestID:  req.RequestID,
		Documents:  payload,
		Recipients: req.Recipients,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating envelope: %w", ErrProvider, err)
	}

	next, ok := MapProviderStatus(remote.Status)
	if !ok {
		slog.Warn("unknown provider status on create", "provider", prov.Name(), "status", remote.Status)
		next = StatusDraft
	}

	// COMPLETED is only ever written together with the signed artifact.
	completing := next == StatusCompleted
	if completing {
		next = StatusSent
	}

	env, created, err := l.persistSend(ctx, p, req, prov, remote, next)
	if err != nil {
		l.voidOrphan(ctx, prov, remote.ProviderEnvelopeID)
		return nil, err
	}

	if !created {
		l.voidOrphan(ctx, prov, remote.ProviderEnvelopeID)
		return env, nil
	}

	l.emitStatus(ctx, env, StatusDraft)

	slog.Info("envelope sent",
		"envelope_id", env.ID,
		"deal_id", env.DealID,
		"provider", env.Provider,
		"status", env.Status,
		"documents", len(docs),
	)

	if completing {
		return l.finalizeLogged(ctx, p, env, remote.SignedPDF), nil
	}

	return env, nil
}

func (l *Lifecycle) existingForRequest(ctx context.Context, orgID uuid.UUID, req SendRequest) (*Envelope, error) {
	existing, err := l.repo.FindByRequestID(ctx, orgID, req.RequestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("looking up request id: %w", err)
	}

	if !sameRequest(existing, req) {
		return nil, ErrRequestConflict
	}

	return existing, nil
}

// sameRequest reports whether env was created for the deal and document set
// of req. Document order does not matter.
func sameRequest(env *Envelope, req SendRequest) bool {
	if env.DealID != req.DealID {
		return false
	}

	sent := env.DocumentIDs()
	if len(sent) != len(req.DocumentIDs) {
		return false
	}

	for _, id := range req.DocumentIDs {
		if !slices.Contains(sent, id.String()) {
			return false
		}
	}

	return true
}

// persistSend writes the envelope and stamps its documents. created is false
// when a concurrent request with the same id won; the winner is returned.
func (l *Lifecycle) persistSend(
	ctx context.Context,
	p auth.Principal,
	req SendRequest,
	prov Provider,
	remote *CreateResponse,
	next Status,
) (*Envelope, bool, error) {
	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin envelope: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, len(req.DocumentIDs))
	for i, id := range req.DocumentIDs {
		ids[i] = id.String()
	}

	env := &Envelope{
		OrgID:              p.OrgID,
		DealID:             req.DealID,
		Provider:           prov.Name(),
		ProviderEnvelopeID: remote.ProviderEnvelopeID,
		RequestID:          req.RequestID,
		Status:             StatusDraft,
		Recipients:         req.Recipients,
		SentAt:             new(l.now().UTC()),
		Metadata:           map[string]any{MetaDocumentIDs: ids},
	}

	inserted, err := tx.InsertEnvelope(ctx, env)
	if err != nil {
		return nil, false, fmt.Errorf("inserting envelope: %w", err)
	}

	if !inserted {
		tx.Rollback()

		winner, err := l.repo.FindByRequestID(ctx, p.OrgID, req.RequestID)
		if err != nil {
			return nil, false, fmt.Errorf("loading concurrent envelope: %w", err)
		}

		if !sameRequest(winner, req) {
			return nil, false, ErrRequestConflict
		}

		return winner, false, nil
	}

	if err := tx.RecordAudit(ctx, audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityEnvelope,
		EntityID:   env.ID,
		Action:     audit.ActionCreate,
		After:      envelopeSnapshot(env),
	}); err != nil {
		return nil, false, fmt.Errorf("recording audit: %w", err)
	}

	docs, err := tx.LockDocuments(ctx, p.OrgID, req.DocumentIDs)
	if err != nil {
		return nil, false, fmt.Errorf("locking documents: %w", err)
	}

	if len(docs) != len(req.DocumentIDs) {
		return nil, false, fmt.Errorf("%w: one or more documents were not found", ErrNotSignable)
	}

	for _, d := range docs {
		if err := checkSignable(d, req.DealID); err != nil {
			return nil, false, err
		}
	}

	stamp := func(d *document.Document) { d.EnvelopeID = new(env.ID) }

	if err := l.applyStatus(ctx, tx, p, env, next, audit.ActionSend, docs, stamp); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit envelope: %w", err)
	}

	return env, true, nil
}

// voidOrphan cancels a provider envelope that no row refers to.
func (l *Lifecycle) voidOrphan(ctx context.Context, prov Provider, providerEnvelopeID string) {
	if providerEnvelopeID == "" {
		return
	}

	if err := prov.VoidEnvelope(ctx, VoidRequest{ProviderEnvelopeID: providerEnvelopeID, Reason: "superseded request"}); err != nil {
		slog.Error("failed to void orphaned provider envelope",
			"provider", prov.Name(),
			"provider_envelope_id", providerEnvelopeID,
			"error", err,
		)
	}
}

// applyStatus moves env to next and mirrors the change onto docs. stamp, when
// set, is applied to every document before its status is updated. Documents
// never move backwards; a document that cannot advance keeps its status.
func (l *Lifecycle) applyStatus(
	ctx context.Context,
	tx Tx,
	p auth.Principal,
	env *Envelope,
	next Status,
	action string,
	docs []*document.Document,
	stamp func(*document.Document),
) error {
	prev := env.Status
	if prev != next && !CanTransition(prev, next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, prev, next)
	}

	before := envelopeSnapshot(env)
	now := l.now().UTC()

	env.Status = next

	if next == StatusCompleted && env.CompletedAt == nil {
		env.CompletedAt = &now
	}

	if err := tx.UpdateEnvelope(ctx, env); err != nil {
		return fmt.Errorf("updating envelope: %w", err)
	}

	if err := tx.RecordAudit(ctx, audit.Entry{
		OrgID:      env.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityEnvelope,
		EntityID:   env.ID,
		Action:     action,
		Before:     before,
		After:      envelopeSnapshot(env),
	}); err != nil {
		return fmt.Errorf("recording audit: %w", err)
	}

	target, mirrored := DocumentStatusFor(next)

	for _, d := range docs {
		docBefore := documentSnapshot(d)
		touched := false

		if stamp != nil {
			stamp(d)
			touched = true
		}

		if mirrored && d.Status.CanAdvanceTo(target) {
			d.Status = target
			touched = true
		}

		if !touched {
			continue
		}

		if err := tx.UpdateDocument(ctx, d); err != nil {
			return fmt.Errorf("updating document %s: %w", d.ID, err)
		}

		if err := tx.RecordAudit(ctx, audit.Entry{
			OrgID:      d.OrgID,
			ActorID:    p.ActorID,
			EntityType: audit.EntityDocument,
			EntityID:   d.ID,
			Action:     audit.ActionStatusChanged,
			Before:     docBefore,
			After:      documentSnapshot(d),
		}); err != nil {
			return fmt.Errorf("recording audit: %w", err)
		}
	}

	return nil
}

type WebhookResult struct {
	Duplicate  bool      `json:"duplicate"`
	Ignored    bool      `json:"ignored"`
	EnvelopeID uuid.UUID `json:"envelopeId,omitzero"`
	Status     Status    `json:"status,omitempty"`
}

// ProcessWebhook verifies a provider callback, records it once and refreshes
// the envelope from the provider. Duplicate deliveries are accepted without
// side effects; the event uniqueness constraint decides which delivery wins.
func (l *Lifecycle) ProcessWebhook(ctx context.Context, providerName string, req WebhookRequest) (*WebhookResult, error) {
	if providerName == "" {
		return nil, ErrUnknownProvider
	}

	prov, err := l.provider(providerName)
	if err != nil {
		return nil, err
	}

	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = l.now().UTC()
	}

	evt, err := prov.VerifyWebhook(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWebhookRejected, err)
	}

	env, err := l.repo.FindByProviderID(ctx, prov.Name(), evt.ProviderEnvelopeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("webhook for unknown envelope",
				"provider", prov.Name(),
				"provider_envelope_id", evt.ProviderEnvelopeID,
				"event_type", evt.EventType,
			)

			return &WebhookResult{Ignored: true}, nil
		}

		return nil, fmt.Errorf("finding envelope: %w", err)
	}

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin webhook: %w", err)
	}
	defer tx.Rollback()

	inserted, err := tx.InsertEvent(ctx, &Event{
		OrgID:           env.OrgID,
		EnvelopeID:      env.ID,
		Provider:        prov.Name(),
		ProviderEventID: dedupKey(evt, req.Body),
		EventType:       evt.EventType,
		Payload:         evt.Payload,
		ReceivedAt:      req.ReceivedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("recording webhook event: %w", err)
	}

	if !inserted {
		slog.Info("duplicate webhook ignored", "provider", prov.Name(), "envelope_id", env.ID)
		return &WebhookResult{Duplicate: true, EnvelopeID: env.ID, Status: env.Status}, nil
	}

	remote, err := prov.GetEnvelope(ctx, GetRequest{EnvelopeID: env.ID, ProviderEnvelopeID: env.ProviderEnvelopeID})
	if err != nil {
		return nil, fmt.Errorf("%w: refreshing envelope: %w", ErrProvider, err)
	}

	actor := auth.System(env.OrgID)

	synced, prev, completing, err := l.sync(ctx, tx, actor, env, remote)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit webhook: %w", err)
	}

	l.emitStatus(ctx, synced, prev)

	if completing {
		synced = l.finalizeLogged(ctx, actor, synced, remote.SignedPDF)
	}

	return &WebhookResult{EnvelopeID: synced.ID, Status: synced.Status}, nil
}

// Refresh re-reads an envelope's status from its provider, for operators
// recovering from a missed callback.
func (l *Lifecycle) Refresh(ctx context.Context, p auth.Principal, envelopeID uuid.UUID) (*Envelope, error) {
	env, err := l.repo.GetEnvelope(ctx, p.OrgID, envelopeID)
	if err != nil {
		return nil, err
	}

	if env.ProviderEnvelopeID == "" || env.Status == StatusVoided {
		return env, nil
	}

	prov, err := l.provider(env.Provider)
	if err != nil {
		return nil, err
	}

	remote, err := prov.GetEnvelope(ctx, GetRequest{EnvelopeID: env.ID, ProviderEnvelopeID: env.ProviderEnvelopeID})
	if err != nil {
		return nil, fmt.Errorf("%w: refreshing envelope: %w", ErrProvider, err)
	}

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin refresh: %w", err)
	}
	defer tx.Rollback()

	synced, prev, completing, err := l.sync(ctx, tx, p, env, remote)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit refresh: %w", err)
	}

	l.emitStatus(ctx, synced, prev)

	if completing {
		synced = l.finalizeLogged(ctx, p, synced, remote.SignedPDF)
	}

	return synced, nil
}

// sync applies a provider status to the locked envelope. Unknown and
// out-of-order statuses leave the envelope unchanged. A provider COMPLETED is
// not applied here: completing reports that Finalize has to run, so the
// status lands in the same transaction as the signed artifact.
func (l *Lifecycle) sync(ctx context.Context, tx Tx, p auth.Principal, env *Envelope, remote *RemoteEnvelope) (*Envelope, Status, bool, error) {
	locked, err := tx.LockEnvelope(ctx, env.OrgID, env.ID)
	if err != nil {
		return nil, "", false, fmt.Errorf("locking envelope: %w", err)
	}

	prev := locked.Status

	if prev == StatusCompleted && locked.SignedFileKey() == "" {
		return locked, prev, true, nil
	}

	next, ok := MapProviderStatus(remote.Status)
	if !ok {
		slog.Warn("unknown provider status", "provider", locked.Provider, "envelope_id", locked.ID, "status", remote.Status)
		return locked, prev, false, nil
	}

	if !CanTransition(prev, next) {
		if prev != next {
			slog.Info("ignoring out-of-order envelope status", "envelope_id", locked.ID, "from", prev, "to", next)
		}

		return locked, prev, false, nil
	}

	if next == StatusCompleted {
		return locked, prev, true, nil
	}

	docs, err := tx.LockEnvelopeDocuments(ctx, locked.OrgID, locked.ID)
	if err != nil {
		return nil, "", false, fmt.Errorf("locking envelope documents: %w", err)
	}

	if err := l.applyStatus(ctx, tx, p, locked, next, audit.ActionStatusChanged, docs, nil); err != nil {
		return nil, "", false, err
	}

	return locked, prev, false, nil
}

// Finalize stores the signed combined artifact and completes the envelope and
// its documents in one transaction. signed may be nil, in which case the
// provider is asked for it; without a signed artifact Finalize does nothing
// and the envelope keeps its status, so that a later call can retry.
func (l *Lifecycle) Finalize(ctx context.Context, p auth.Principal, env *Envelope, signed []byte) (*Envelope, error) {
	if !completable(env) {
		return env, nil
	}

	prov, err := l.provider(env.Provider)
	if err != nil {
		return nil, err
	}

	if len(signed) == 0 && env.ProviderEnvelopeID != "" {
		remote, err := prov.GetEnvelope(ctx, GetRequest{EnvelopeID: env.ID, ProviderEnvelopeID: env.ProviderEnvelopeID})
		if err != nil {
			return nil, fmt.Errorf("%w: fetching signed artifact: %w", ErrProvider, err)
		}

		signed = remote.SignedPDF
	}

	if len(signed) == 0 {
		slog.Info("no signed artifact available yet", "envelope_id", env.ID)
		return env, nil
	}

	hash := render.Hash(signed)
	key := storage.SignedKey(env.OrgID, env.DealID, env.ID, hash)

	if err := l.store.PutObject(ctx, key, signed, "application/pdf"); err != nil {
		return nil, fmt.Errorf("storing signed artifact: %w", err)
	}

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin finalize: %w", err)
	}
	defer tx.Rollback()

	locked, err := tx.LockEnvelope(ctx, env.OrgID, env.ID)
	if err != nil {
		return nil, fmt.Errorf("locking envelope: %w", err)
	}

	if !completable(locked) {
		return locked, nil
	}

	docs, err := tx.LockEnvelopeDocuments(ctx, locked.OrgID, locked.ID)
	if err != nil {
		return nil, fmt.Errorf("locking envelope documents: %w", err)
	}

	prev := locked.Status

	locked.setMeta(MetaSignedFileKey, key)
	locked.setMeta(MetaSignedFileHash, hash)

	stamp := func(d *document.Document) {
		d.SetMeta(document.MetaSignedFileKey, key)
		d.SetMeta(document.MetaSignedFileHash, hash)
	}

	if err := l.applyStatus(ctx, tx, p, locked, StatusCompleted, audit.ActionFinalize, docs, stamp); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit finalize: %w", err)
	}

	l.emitStatus(ctx, locked, prev)

	slog.Info("envelope finalized", "envelope_id", locked.ID, "signed_file_key", key)

	return locked, nil
}

// completable reports whether env may still be finalized: it has no signed
// artifact and is either completed or able to move to COMPLETED.
func completable(env *Envelope) bool {
	if env.SignedFileKey() != "" {
		return false
	}

	return env.Status == StatusCompleted || CanTransition(env.Status, StatusCompleted)
}

// finalizeLogged runs Finalize where a failure must not fail the caller. The
// envelope is returned unchanged when finalization fails.
func (l *Lifecycle) finalizeLogged(ctx context.Context, p auth.Principal, env *Envelope, signed []byte) *Envelope {
	done, err := l.Finalize(ctx, p, env, signed)
	if err != nil {
		slog.Error("failed to finalize envelope", "envelope_id", env.ID, "error", err)
		return env
	}

	return done
}

// Void cancels an envelope that is neither completed nor already voided and
// cascades VOIDED to its documents.
func (l *Lifecycle) Void(ctx context.Context, p auth.Principal, envelopeID uuid.UUID, reason string) (*Envelope, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	env, err := l.repo.GetEnvelope(ctx, p.OrgID, envelopeID)
	if err != nil {
		return nil, err
	}

	if env.Status.Terminal() {
		return nil, fmt.Errorf("%w: envelope is %s", ErrInvalidTransition, env.Status)
	}

	prov, err := l.provider(env.Provider)
	if err != nil {
		return nil, err
	}

	if env.ProviderEnvelopeID != "" {
		if err := prov.VoidEnvelope(ctx, VoidRequest{
			EnvelopeID:         env.ID,
			ProviderEnvelopeID: env.ProviderEnvelopeID,
			Reason:             reason,
		}); err != nil {
			return nil, fmt.Errorf("%w: voiding envelope: %w", ErrProvider, err)
		}
	}

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin void: %w", err)
	}
	defer tx.Rollback()

	locked, err := tx.LockEnvelope(ctx, p.OrgID, envelopeID)
	if err != nil {
		return nil, fmt.Errorf("locking envelope: %w", err)
	}

	if locked.Status.Terminal() {
		return nil, fmt.Errorf("%w: envelope is %s", ErrInvalidTransition, locked.Status)
	}

	docs, err := tx.LockEnvelopeDocuments(ctx, locked.OrgID, locked.ID)
	if err != nil {
		return nil, fmt.Errorf("locking envelope documents: %w", err)
	}

	prev := locked.Status
	locked.setMeta(MetaVoidReason, reason)

	if err := l.applyStatus(ctx, tx, p, locked, StatusVoided, audit.ActionVoid, docs, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit void: %w", err)
	}

	l.emitStatus(ctx, locked, prev)

	return locked, nil
}

func (l *Lifecycle) Get(ctx context.Context, orgID, id uuid.UUID) (*Envelope, error) {
	return l.repo.GetEnvelope(ctx, orgID, id)
}

func (l *Lifecycle) ListForDeal(ctx context.Context, orgID, dealID uuid.UUID) ([]*Envelope, error) {
	return l.repo.ListEnvelopes(ctx, orgID, dealID)
}

func (l *Lifecycle) Documents(ctx context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error) {
	return l.repo.EnvelopeDocuments(ctx, orgID, envelopeID)
}

func (l *Lifecycle) emitStatus(ctx context.Context, env *Envelope, prev Status) {
	if env.Status == prev {
		return
	}

	event.Publish(ctx, l.events, event.Event{
		OrgID:      env.OrgID,
		Type:       event.TypeEnvelopeStatusChanged,
		EntityType: audit.EntityEnvelope,
		EntityID:   env.ID,
		Payload: map[string]any{
			"dealId":         env.DealID,
			"previousStatus": prev,
			"status":         env.Status,
			"provider":       env.Provider,
		},
	})
}

// dedupKey identifies a webhook delivery: the provider's event id, else its
// idempotency key, else the hash of the raw body.
func dedupKey(evt *WebhookEvent, body []byte) string {
	if id := strings.TrimSpace(evt.ProviderEventID); id != "" {
		return id
	}

	if key := strings.TrimSpace(evt.IdempotencyKey); key != "" {
		return "idem:" + key
	}

	sum := sha256.Sum256(body)

	return "sha256:" + hex.EncodeToString(sum[:])
}

func envelopeSnapshot(e *Envelope) map[string]any {
	return map[string]any{
		"status":             e.Status,
		"provider":           e.Provider,
		"providerEnvelopeId": e.ProviderEnvelopeID,
		"requestId":          e.RequestID,
		"signedFileKey":      e.SignedFileKey(),
	}
}

func documentSnapshot(d *document.Document) map[string]any {
	snap := map[string]any{
		"status":        d.Status,
		"signedFileKey": d.SignedFileKey(),
	}

	if d.EnvelopeID != nil {
		snap["envelopeId"] = *d.EnvelopeID
	}

	return snap
}
