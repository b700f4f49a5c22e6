package pack

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound    = errors.New("pack not found")
	ErrInvalidPack = errors.New("invalid pack")
)

// Checklist statuses beyond the generation outcomes.
const (
	StatusFailed      = "FAILED"
	StatusNotRequired = "NOT_REQUIRED"
)

// Pack is an org-defined checklist template: the documents a deal of some
// kind is expected to carry, in signing order.
type Pack struct {
	ID          uuid.UUID `json:"id"`
	OrgID       uuid.UUID `json:"orgId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Item is one document slot in a pack. Optional items are only generated when
// the deal's rules require them.
type Item struct {
	DocType  string `json:"docType" yaml:"docType"`
	Required bool   `json:"required" yaml:"required"`
	Position int    `json:"position" yaml:"position"`
}

// Ordered returns the items sorted by position, then document type.
func (p *Pack) Ordered() []Item {
	items := slices.Clone(p.Items)

	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.DocType, b.DocType))
	})

	return items
}

// ChecklistItem is the stored per-deal status of one pack item.
type ChecklistItem struct {
	ID            uuid.UUID  `json:"id"`
	OrgID         uuid.UUID  `json:"orgId"`
	DealID        uuid.UUID  `json:"dealId"`
	PackID        uuid.UUID  `json:"packId"`
	DocType       string     `json:"docType"`
	Required      bool       `json:"required"`
	Status        string     `json:"status"`
	DocumentID    *uuid.UUID `json:"documentId,omitempty"`
	MissingFields []string   `json:"missingFields,omitempty"`
	Message       string     `json:"message,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type CreateParams struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Items       []Item `yaml:"items"`
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPack)
	}

	if len(p.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidPack)
	}

	seen := make(map[string]bool, len(p.Items))

	for i, item := range p.Items {
		docType := normalizeDocType(item.DocType)
		if docType == "" {
			return fmt.Errorf("%w: item %d has no docType", ErrInvalidPack, i)
		}

		if seen[docType] {
			return fmt.Errorf("%w: duplicate docType %s", ErrInvalidPack, docType)
		}

		seen[docType] = true
	}

	return nil
}

// ParseDefinition reads a pack definition file (YAML or JSON).
func ParseDefinition(buf []byte) (CreateParams, error) {
	var p CreateParams
	if err := yaml.Unmarshal(buf, &p); err != nil {
		return CreateParams{}, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	if err := p.validate(); err != nil {
		return CreateParams{}, err
	}

	return p, nil
}

func normalizeDocType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
