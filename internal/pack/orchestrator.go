package pack

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
)

const DefaultMaxPerRun = 10

// Orchestrator runs the document generator over a pack's items, a bounded
// number per invocation.
type Orchestrator struct {
	repo      Repository
	gen       Generator
	maxPerRun int
}

func NewOrchestrator(repo Repository, gen Generator, maxPerRun int) *Orchestrator {
	if maxPerRun <= 0 {
		maxPerRun = DefaultMaxPerRun
	}

	return &Orchestrator{repo: repo, gen: gen, maxPerRun: maxPerRun}
}

type RunRequest struct {
	DealID     uuid.UUID
	PackID     uuid.UUID
	Regenerate bool
	Reason     string
	AsOf       *time.Time
}

type RunResult struct {
	DealID      uuid.UUID             `json:"dealId"`
	PackID      uuid.UUID             `json:"packId"`
	Items       []document.ItemResult `json:"items"`
	Processed   int                   `json:"processed"`
	Remaining   []string              `json:"remaining"`
	NotRequired []string              `json:"notRequired"`
	Evaluation  *rules.Evaluation     `json:"evaluation"`
	Notices     []string              `json:"notices"`
}

// Run processes the pack's items in (position, docType) order. Items with a
// live document are reported as skipped without counting toward the cap
// unless regeneration is requested. Every item handed to the generator
// counts, and items past the cap are listed as remaining.
func (o *Orchestrator) Run(ctx context.Context, p auth.Principal, req RunRequest) (*RunResult, error) {
	pk, err := o.repo.GetPack(ctx, p.OrgID, req.PackID)
	if err != nil {
		return nil, fmt.Errorf("loading pack: %w", err)
	}

	sess, err := o.gen.Prepare(ctx, p, req.DealID, req.AsOf)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		DealID:      req.DealID,
		PackID:      pk.ID,
		Items:       []document.ItemResult{},
		Remaining:   []string{},
		NotRequired: []string{},
		Evaluation:  sess.Evaluation,
		Notices:     slices.Clone(sess.Evaluation.Notices),
	}

	items := pk.Ordered()
	opts := document.ItemOptions{Regenerate: req.Regenerate, Reason: req.Reason}

	for _, item := range items {
		if !item.Required && !sess.Evaluation.Required(item.DocType) {
			res.NotRequired = append(res.NotRequired, item.DocType)

			if err := o.record(ctx, p, req, item, StatusNotRequired, document.ItemResult{}); err != nil {
				return nil, err
			}

			continue
		}

		if !req.Regenerate {
			current, err := o.gen.Current(ctx, sess, item.DocType)
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", item.DocType, err)
			}

			if current != nil {
				skipped := document.ItemResult{
					DocType:    item.DocType,
					Outcome:    document.OutcomeSkippedExisting,
					DocumentID: new(current.ID),
					Reason:     sess.Reason(item.DocType),
					Message:    fmt.Sprintf("document already exists (%s)", current.Status),
				}
				res.Items = append(res.Items, skipped)

				if err := o.record(ctx, p, req, item, string(skipped.Outcome), skipped); err != nil {
					return nil, err
				}

				continue
			}
		}

		if res.Processed >= o.maxPerRun {
			res.Remaining = append(res.Remaining, item.DocType)
			continue
		}

		res.Processed++

		out, err := o.gen.GenerateItem(ctx, p, sess, item.DocType, opts)
		if err != nil {
			failed := document.ItemResult{DocType: item.DocType, Message: err.Error()}
			if recErr := o.record(ctx, p, req, item, StatusFailed, failed); recErr != nil {
				slog.Error("failed to record checklist failure", "deal_id", req.DealID, "doc_type", item.DocType, "error", recErr)
			}

			return nil, fmt.Errorf("generating %s: %w", item.DocType, err)
		}

		res.Items = append(res.Items, out)

		if err := o.record(ctx, p, req, item, string(out.Outcome), out); err != nil {
			return nil, err
		}
	}

	if n := len(res.Remaining); n > 0 {
		res.Notices = append(res.Notices, fmt.Sprintf("%d items remaining; re-run to continue", n))
	}

	for _, c := range sess.Evaluation.RequiredChecklist {
		if !slices.ContainsFunc(items, func(i Item) bool { return i.DocType == c.DocType }) {
			res.Notices = append(res.Notices, fmt.Sprintf("rules require %s, which is not in pack %q", c.DocType, pk.Name))
		}
	}

	slog.Info("pack run finished",
		"deal_id", req.DealID,
		"pack_id", pk.ID,
		"processed", res.Processed,
		"remaining", len(res.Remaining),
	)

	return res, nil
}

func (o *Orchestrator) record(ctx context.Context, p auth.Principal, req RunRequest, item Item, status string, out document.ItemResult) error {
	c := &ChecklistItem{
		OrgID:         p.OrgID,
		DealID:        req.DealID,
		PackID:        req.PackID,
		DocType:       item.DocType,
		Required:      item.Required,
		Status:        status,
		DocumentID:    out.DocumentID,
		MissingFields: out.MissingFields,
		Message:       out.Message,
	}

	if err := o.repo.UpsertChecklist(ctx, c); err != nil {
		return fmt.Errorf("saving checklist item %s: %w", item.DocType, err)
	}

	return nil
}
