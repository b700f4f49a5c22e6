package rules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/scope"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rules
type Repository interface {
	// ListCandidates returns every rule set for the jurisdiction that is
	// global or owned by orgID, unfiltered by date.
	ListCandidates(ctx context.Context, orgID uuid.UUID, jurisdiction string) ([]*RuleSet, error)
	GetRuleSet(ctx context.Context, orgID, id uuid.UUID) (*RuleSet, error)

	BeginPublish(ctx context.Context, orgID *uuid.UUID, jurisdiction string) (PublishTx, error)
}

// PublishTx serializes version assignment within one (org, jurisdiction) scope.
type PublishTx interface {
	LatestVersion(ctx context.Context, orgID *uuid.UUID, jurisdiction string) (int, error)
	InsertRuleSet(ctx context.Context, rs *RuleSet) error
	RecordAudit(ctx context.Context, e audit.Entry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Evaluation is a rule result together with the rule sets that produced it,
// in application order.
type Evaluation struct {
	Result
	RuleSetIDs []uuid.UUID `json:"ruleSetIds"`
}

// Evaluate layers the newest effective global and org rule sets for the
// snapshot's jurisdiction and evaluates them.
func (s *Service) Evaluate(ctx context.Context, snap *deal.Snapshot) (*Evaluation, error) {
	jurisdiction := normalizeJurisdiction(snap.Jurisdiction)

	candidates, err := s.repo.ListCandidates(ctx, snap.OrgID, jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("listing rule sets: %w", err)
	}

	layered := scope.Layer(candidates, snap.OrgID, snap.AsOf, func(r *RuleSet) int { return r.Version })

	bodies := make([]Body, len(layered))
	ids := make([]uuid.UUID, len(layered))

	for i, rs := range layered {
		bodies[i] = rs.Body
		ids[i] = rs.ID
	}

	ev := &Evaluation{Result: Evaluate(*snap, bodies), RuleSetIDs: ids}

	if len(layered) == 0 {
		ev.Notices = append(ev.Notices, fmt.Sprintf("no rule set in effect for jurisdiction %s on %s", jurisdiction, snap.AsOf.Format(time.DateOnly)))
	}

	return ev, nil
}

type PublishParams struct {
	Jurisdiction  string
	Global        bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Body          Body
}

func (p PublishParams) validate() error {
	if normalizeJurisdiction(p.Jurisdiction) == "" {
		return fmt.Errorf("%w: jurisdiction is required", ErrInvalidRuleSet)
	}

	if p.EffectiveFrom.IsZero() {
		return fmt.Errorf("%w: effectiveFrom is required", ErrInvalidRuleSet)
	}

	if p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom) {
		return fmt.Errorf("%w: effectiveTo is before effectiveFrom", ErrInvalidRuleSet)
	}

	return p.Body.validate()
}

// Publish stores the next version of a rule set in the caller's scope, or the
// global scope when Global is set.
func (s *Service) Publish(ctx context.Context, p auth.Principal, params PublishParams) (*RuleSet, error) {
	rs, _, err := s.publish(ctx, p, params, false)
	return rs, err
}

// Seed publishes params only when its scope has no rule set yet. It reports
// whether anything was stored.
func (s *Service) Seed(ctx context.Context, p auth.Principal, params PublishParams) (*RuleSet, bool, error) {
	return s.publish(ctx, p, params, true)
}

func (s *Service) publish(ctx context.Context, p auth.Principal, params PublishParams, onlyIfEmpty bool) (*RuleSet, bool, error) {
	if err := params.validate(); err != nil {
		return nil, false, err
	}

	jurisdiction := normalizeJurisdiction(params.Jurisdiction)

	var owner *uuid.UUID
	if !params.Global {
		owner = new(p.OrgID)
	}

	ptx, err := s.repo.BeginPublish(ctx, owner, jurisdiction)
	if err != nil {
		return nil, false, fmt.Errorf("begin publish: %w", err)
	}
	defer ptx.Rollback()

	latest, err := ptx.LatestVersion(ctx, owner, jurisdiction)
	if err != nil {
		return nil, false, fmt.Errorf("reading latest version: %w", err)
	}

	if onlyIfEmpty && latest > 0 {
		return nil, false, nil
	}

	rs := &RuleSet{
		OrgID:         owner,
		Jurisdiction:  jurisdiction,
		Version:       latest + 1,
		EffectiveFrom: params.EffectiveFrom,
		EffectiveTo:   params.EffectiveTo,
		Body:          params.Body,
	}

	if err := ptx.InsertRuleSet(ctx, rs); err != nil {
		return nil, false, fmt.Errorf("inserting rule set: %w", err)
	}

	err = ptx.RecordAudit(ctx, audit.Entry{
		OrgID:      p.OrgID,
		ActorID:    p.ActorID,
		EntityType: audit.EntityRuleSet,
		EntityID:   rs.ID,
		Action:     audit.ActionCreate,
		After: map[string]any{
			"jurisdiction":  rs.Jurisdiction,
			"version":       rs.Version,
			"global":        owner == nil,
			"effectiveFrom": rs.EffectiveFrom.Format(time.DateOnly),
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("recording audit: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit publish: %w", err)
	}

	return rs, true, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*RuleSet, error) {
	return s.repo.GetRuleSet(ctx, orgID, id)
}

func normalizeJurisdiction(j string) string {
	return strings.ToUpper(strings.TrimSpace(j))
}
