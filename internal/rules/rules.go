package rules

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("rule set not found")
	ErrInvalidRuleSet = errors.New("invalid rule set")
)

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleSet is one published version of a jurisdiction's rules, either global
// (OrgID nil) or owned by an organization. Rule sets are append-only.
type RuleSet struct {
	ID            uuid.UUID
	OrgID         *uuid.UUID
	Jurisdiction  string
	Version       int
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Body          Body
	CreatedAt     time.Time
}

func (r *RuleSet) ScopeOrg() *uuid.UUID { return r.OrgID }

func (r *RuleSet) EffectiveWindow() (time.Time, *time.Time) { return r.EffectiveFrom, r.EffectiveTo }

func (r *RuleSet) IsDeleted() bool { return false }

// Body is the rule content of a rule set.
type Body struct {
	Scenarios      []Scenario     `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Validations    []Validation   `json:"validations,omitempty" yaml:"validations,omitempty"`
	ComputedFields map[string]any `json:"computedFields,omitempty" yaml:"computedFields,omitempty"`
}

// Scenario requires documents when all of its predicates match. A scenario
// without predicates always applies.
type Scenario struct {
	Code              string      `json:"code" yaml:"code"`
	When              []Predicate `json:"when,omitempty" yaml:"when,omitempty"`
	RequiredDocuments []string    `json:"requiredDocuments" yaml:"requiredDocuments"`
	Reason            string      `json:"reason" yaml:"reason"`
}

// Validation produces a finding when all of its predicates match.
type Validation struct {
	Code     string      `json:"code" yaml:"code"`
	When     []Predicate `json:"when,omitempty" yaml:"when,omitempty"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
}

// ChecklistItem is one required document and why it is required.
type ChecklistItem struct {
	DocType string `json:"docType"`
	Reason  string `json:"reason"`
}

type Finding struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result is the outcome of evaluating a deal against layered rule sets.
type Result struct {
	RequiredChecklist []ChecklistItem `json:"requiredChecklist"`
	ValidationErrors  []Finding       `json:"validationErrors"`
	ComputedFields    map[string]any  `json:"computedFields"`
	Notices           []string        `json:"notices"`
}

// Required reports whether docType is on the checklist.
func (r Result) Required(docType string) bool {
	for _, it := range r.RequiredChecklist {
		if it.DocType == docType {
			return true
		}
	}

	return false
}
