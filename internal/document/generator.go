package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/event"
	"github.com/MrJamesThe3rd/dealdesk/internal/fieldpath"
	"github.com/MrJamesThe3rd/dealdesk/internal/render"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	"github.com/MrJamesThe3rd/dealdesk/internal/storage"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

type SnapshotLoader interface {
	Snapshot(ctx context.Context, orgID, dealID uuid.UUID) (*deal.Snapshot, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, snap *deal.Snapshot) (*rules.Evaluation, error)
}

type TemplateResolver interface {
	Resolve(ctx context.Context, q template.Query) (*template.Template, bool, error)
}

type Config struct {
	OutputFormat string
	Anchor       render.AnchorFunc
}

// Generator produces and refreshes the documents of a deal.
type Generator struct {
	repo      Repository
	deals     SnapshotLoader
	rules     Evaluator
	templates TemplateResolver
	renderer  render.Renderer
	store     storage.Store
	events    event.Emitter
	cfg       Config
}

func NewGenerator(
	repo Repository,
	deals SnapshotLoader,
	rules Evaluator,
	templates TemplateResolver,
	renderer render.Renderer,
	store storage.Store,
	events event.Emitter,
	cfg Config,
) *Generator {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatPDF
	}

	if cfg.Anchor == nil {
		cfg.Anchor = render.DefaultAnchor
	}

	return &Generator{
		repo:      repo,
		deals:     deals,
		rules:     rules,
		templates: templates,
		renderer:  renderer,
		store:     store,
		events:    events,
		cfg:       cfg,
	}
}

type Request struct {
	DealID     uuid.UUID
	DocTypes   []string
	Regenerate bool
	Reason     string
	AsOf       *time.Time
}

type GenerateResult struct {
	DealID     uuid.UUID         `json:"dealId"`
	Items      []ItemResult      `json:"items"`
	Evaluation *rules.Evaluation `json:"evaluation"`
	Notices    []string          `json:"notices"`
}

// Session is a deal snapshot and its rule evaluation, loaded once and shared
// by every item generated in the same run.
type Session struct {
	Snapshot   *deal.Snapshot
	Evaluation *rules.Evaluation
	Context    map[string]any
}

// Reason returns the checklist reason for docType, if the rules require it.
func (s *Session) Reason(docType string) string {
	for _, item := range s.Evaluation.RequiredChecklist {
		if item.DocType == docType {
			return item.Reason
		}
	}

	return ""
}

type ItemOptions struct {
	Regenerate bool
	Reason     string
}

// Prepare loads the deal snapshot as of asOf (now when nil) and evaluates the
// rules that apply to it.
func (g *Generator) Prepare(ctx context.Context, p auth.Principal, dealID uuid.UUID, asOf *time.Time) (*Session, error) {
	snap, err := g.deals.Snapshot(ctx, p.OrgID, dealID)
	if err != nil {
		return nil, fmt.Errorf("loading deal snapshot: %w", err)
	}

	if asOf != nil {
		snap.AsOf = asOf.UTC()
	}

	ev, err := g.rules.Evaluate(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("evaluating rules: %w", err)
	}

	return &Session{
		Snapshot:   snap,
		Evaluation: ev,
		Context:    render.Context(*snap, ev.ComputedFields),
	}, nil
}

// Generate produces every requested document type, or the rule checklist when
// none are requested. Items are processed in order and each gets exactly one
// outcome. An infrastructure error stops the run; items already generated stay
// committed.
func (g *Generator) Generate(ctx context.Context, p auth.Principal, req Request) (*GenerateResult, error) {
	sess, err := g.Prepare(ctx, p, req.DealID, req.AsOf)
	if err != nil {
		return nil, err
	}

	docTypes := normalizeDocTypes(req.DocTypes)
	if len(docTypes) == 0 {
		for _, item := range sess.Evaluation.RequiredChecklist {
			docTypes = append(docTypes, item.DocType)
		}
	}

	res := &GenerateResult{
		DealID:     req.DealID,
		Items:      make([]ItemResult, 0, len(docTypes)),
		Evaluation: sess.Evaluation,
		Notices:    slices.Clone(sess.Evaluation.Notices),
	}

	if len(docTypes) == 0 {
		res.Notices = append(res.Notices, "no documents required for this deal")
	}

	opts := ItemOptions{Regenerate: req.Regenerate, Reason: req.Reason}

	for _, docType := range docTypes {
		item, err := g.GenerateItem(ctx, p, sess, docType, opts)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", docType, err)
		}

		res.Items = append(res.Items, item)
	}

	return res, nil
}

// Current returns the live document for docType in the session's deal, or
// nil when there is none. Voided documents are never current.
func (g *Generator) Current(ctx context.Context, sess *Session, docType string) (*Document, error) {
	snap := sess.Snapshot

	doc, err := g.repo.CurrentDocument(ctx, snap.OrgID, snap.DealID, normalizeDocType(docType))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading current document: %w", err)
	}

	return doc, nil
}

// GenerateItem runs the generation pipeline for a single document type.
func (g *Generator) GenerateItem(ctx context.Context, p auth.Principal, sess *Session, docType string, opts ItemOptions) (ItemResult, error) {
	snap := sess.Snapshot
	docType = normalizeDocType(docType)
	opts.Reason = strings.TrimSpace(opts.Reason)

	item := ItemResult{DocType: docType, Reason: sess.Reason(docType)}

	tpl, ok, err := g.templates.Resolve(ctx, template.Query{
		OrgID:        snap.OrgID,
		DocType:      docType,
		Jurisdiction: snap.Jurisdiction,
		DealType:     snap.DealType,
		AsOf:         snap.AsOf,
	})
	if err != nil {
		return item, fmt.Errorf("resolving template: %w", err)
	}

	if !ok {
		item.Outcome = OutcomeMissingTemplate
		item.Message = fmt.Sprintf("no template for %s (%s/%s) effective %s",
			docType, snap.Jurisdiction, snap.DealType, snap.AsOf.Format(time.DateOnly))

		return item, nil
	}

	item.TemplateID = new(tpl.ID)

	if !canProduce(tpl.Engine, g.cfg.OutputFormat) {
		item.Outcome = OutcomeUnsupportedTemplate
		item.Message = fmt.Sprintf("template engine %s cannot produce %s output", tpl.Engine, g.cfg.OutputFormat)

		return item, nil
	}

	existing, err := g.repo.CurrentDocument(ctx, snap.OrgID, snap.DealID, docType)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return item, fmt.Errorf("loading current document: %w", err)
	}

	if gated, stop := gate(item, existing, opts); stop {
		return gated, nil
	}

	if missing := fieldpath.Missing(sess.Context, tpl.RequiredFields.RequiredPaths); len(missing) > 0 {
		item.Outcome = OutcomeMissingFields
		item.MissingFields = missing
		item.Message = "missing required fields: " + strings.Join(missing, ", ")

		return item, nil
	}

	title := render.Title(docType)
	markup := render.Markup(tpl.SourceHTML, sess.Context, g.cfg.Anchor)

	art, err := g.renderer.RenderArtifact(ctx, title, markup)
	if err != nil {
		return item, fmt.Errorf("rendering artifact: %w", err)
	}

	hash := render.Hash(art.Buffer)
	key := storage.DocumentKey(snap.OrgID, snap.DealID, docType, hash, art.Extension)

	if err := g.store.PutObject(ctx, key, art.Buffer, art.ContentType); err != nil {
		return item, fmt.Errorf("storing artifact: %w", err)
	}

	doc, regenerated, err := g.persist(ctx, p, sess, tpl, docType, key, hash, art, opts)
	if err != nil {
		return item, err
	}

	if doc == nil {
		// Lost a race with a concurrent generation; report what it left behind.
		current, err := g.repo.CurrentDocument(ctx, snap.OrgID, snap.DealID, docType)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return item, fmt.Errorf("loading current document: %w", err)
		}

		gated, _ := gate(item, current, opts)

		return gated, nil
	}

	item.Outcome = OutcomeGenerated
	item.DocumentID = new(doc.ID)

	event.Publish(ctx, g.events, event.Event{
		OrgID:      doc.OrgID,
		Type:       event.TypeDocumentGenerated,
		EntityType: audit.EntityDocument,
		EntityID:   doc.ID,
		Payload: map[string]any{
			"dealId":      doc.DealID,
			"docType":     doc.DocType,
			"templateId":  doc.TemplateID,
			"fileHash":    doc.FileHash,
			"renderMode":  art.Mode,
			"regenerated": regenerated,
		},
	})

	slog.Info("document generated",
		"deal_id", doc.DealID,
		"doc_type", doc.DocType,
		"document_id", doc.ID,
		"regenerated", regenerated,
	)

	return item, nil
}

// persist writes the document row under the deal lock. A nil document means
// the slot changed since the pre-render check and the write was abandoned.
func (g *Generator) persist(
	ctx context.Context,
	p auth.Principal,
	sess *Session,
	tpl *template.Template,
	docType, key, hash string,
	art *render.Artifact,
	opts ItemOptions,
) (*Document, bool, error) {
	snap := sess.Snapshot

	tx, err := g.repo.BeginDeal(ctx, snap.DealID, docType)
	if err != nil {
		return nil, false, fmt.Errorf("begin document write: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.CurrentDocument(ctx, snap.OrgID, snap.DealID, docType)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("locking current document: %w", err)
	}

	if _, stop := gate(ItemResult{}, existing, opts); stop {
		return nil, false, nil
	}

	meta := map[string]any{
		MetaRenderMode:      string(art.Mode),
		MetaContentType:     art.ContentType,
		MetaExtension:       art.Extension,
		MetaTemplateVersion: tpl.Version,
	}

	if reason := sess.Reason(docType); reason != "" {
		meta[MetaChecklistReason] = reason
	}

	entry := audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityDocument,
	}

	var doc *Document

	if existing == nil {
		doc = &Document{
			OrgID:      snap.OrgID,
			DealID:     snap.DealID,
			TemplateID: tpl.ID,
			DocType:    docType,
			Status:     StatusGenerated,
			FileKey:    key,
			FileHash:   hash,
			Metadata:   meta,
		}

		if err := tx.CreateDocument(ctx, doc); err != nil {
			return nil, false, fmt.Errorf("creating document: %w", err)
		}

		entry.Action = audit.ActionCreate
	} else {
		entry.Action = audit.ActionRegenerate
		entry.Before = snapshot(existing)

		doc = existing
		doc.TemplateID = tpl.ID
		doc.Status = StatusGenerated
		doc.FileKey = key
		doc.FileHash = hash
		doc.EnvelopeID = nil
		doc.RegenerateReason = opts.Reason
		doc.Metadata = meta

		if err := tx.UpdateGenerated(ctx, doc); err != nil {
			return nil, false, fmt.Errorf("updating document: %w", err)
		}
	}

	entry.EntityID = doc.ID
	entry.After = snapshot(doc)

	if err := tx.RecordAudit(ctx, entry); err != nil {
		return nil, false, fmt.Errorf("recording audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit document: %w", err)
	}

	return doc, existing != nil, nil
}

// gate applies the existing-document rules. stop reports that the item is
// finished with the returned outcome.
func gate(item ItemResult, existing *Document, opts ItemOptions) (ItemResult, bool) {
	if existing == nil {
		return item, false
	}

	item.DocumentID = new(existing.ID)

	switch {
	case existing.Status.Locked():
		item.Outcome = OutcomeSkippedExisting
		item.Message = fmt.Sprintf("document locked by envelope (%s); void first", existing.Status)
	case !opts.Regenerate:
		item.Outcome = OutcomeSkippedExisting
		item.Message = "document already generated; request regeneration to replace it"
	case opts.Reason == "":
		item.Outcome = OutcomeRegenerateReasonRequired
		item.Message = "a reason is required to regenerate an existing document"
	default:
		return item, false
	}

	return item, true
}

func canProduce(engine template.Engine, format string) bool {
	switch engine {
	case template.EngineHTML:
		return format == FormatPDF || format == FormatHTML
	default:
		return false
	}
}

func snapshot(d *Document) map[string]any {
	return map[string]any{
		"templateId":       d.TemplateID,
		"docType":          d.DocType,
		"status":           d.Status,
		"fileKey":          d.FileKey,
		"fileHash":         d.FileHash,
		"regenerateReason": d.RegenerateReason,
	}
}

func normalizeDocType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeDocTypes(in []string) []string {
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = normalizeDocType(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}

		out = append(out, s)
	}

	return out
}
