package template_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buyersOrder(org *uuid.UUID, version int, from time.Time) *template.Template {
	return &template.Template{
		ID:            uuid.New(),
		OrgID:         org,
		DocType:       "BUYERS_ORDER",
		Jurisdiction:  "TX",
		DealType:      deal.TypeFinance,
		Version:       version,
		Engine:        template.EngineHTML,
		SourceHTML:    "<p>{{ deal.dealNumber }}</p>",
		EffectiveFrom: from,
	}
}

func TestResolve_ScopePriority(t *testing.T) {
	orgID := uuid.New()
	q := template.Query{
		OrgID:        orgID,
		DocType:      "BUYERS_ORDER",
		Jurisdiction: "TX",
		DealType:     deal.TypeFinance,
		AsOf:         date(2025, 6, 1),
	}

	global := buyersOrder(nil, 1, date(2024, 1, 1))
	org := buyersOrder(&orgID, 2, date(2025, 1, 1))

	got, ok := template.Resolve([]*template.Template{global, org}, q)
	require.True(t, ok)
	assert.Equal(t, org.ID, got.ID)

	org.DeletedAt = new(date(2025, 5, 1))

	got, ok = template.Resolve([]*template.Template{global, org}, q)
	require.True(t, ok)
	assert.Equal(t, global.ID, got.ID)
}

func TestResolve(t *testing.T) {
	orgID := uuid.New()
	q := template.Query{
		OrgID:        orgID,
		DocType:      "buyers_order",
		Jurisdiction: "tx",
		DealType:     "finance",
		AsOf:         date(2025, 6, 1),
	}

	type testCase struct {
		name       string
		candidates func() []*template.Template
		wantIndex  int
		wantOK     bool
	}

	tests := []testCase{
		{
			name:       "Empty",
			candidates: func() []*template.Template { return nil },
		},
		{
			name: "DefaultForOrgBeatsHigherVersion",
			candidates: func() []*template.Template {
				a := buyersOrder(&orgID, 3, date(2024, 1, 1))
				b := buyersOrder(&orgID, 1, date(2024, 1, 1))
				b.DefaultForOrg = true

				return []*template.Template{a, b}
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "IsDefaultBeatsHigherVersion",
			candidates: func() []*template.Template {
				a := buyersOrder(nil, 5, date(2024, 1, 1))
				b := buyersOrder(nil, 2, date(2024, 1, 1))
				b.IsDefault = true

				return []*template.Template{a, b}
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "EffectiveFromBreaksVersionTie",
			candidates: func() []*template.Template {
				a := buyersOrder(&orgID, 2, date(2024, 1, 1))
				b := buyersOrder(&orgID, 2, date(2025, 1, 1))

				return []*template.Template{a, b}
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "OtherTupleIgnored",
			candidates: func() []*template.Template {
				lease := buyersOrder(&orgID, 9, date(2024, 1, 1))
				lease.DealType = deal.TypeLease
				global := buyersOrder(nil, 1, date(2024, 1, 1))

				return []*template.Template{lease, global}
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "ExpiredOnly",
			candidates: func() []*template.Template {
				a := buyersOrder(nil, 1, date(2024, 1, 1))
				a.EffectiveTo = new(date(2025, 5, 31))

				return []*template.Template{a}
			},
		},
		{
			name: "OrgShadowsDefaultGlobal",
			candidates: func() []*template.Template {
				g := buyersOrder(nil, 7, date(2024, 1, 1))
				g.IsDefault = true
				o := buyersOrder(&orgID, 1, date(2025, 1, 1))

				return []*template.Template{g, o}
			},
			wantIndex: 1,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := tt.candidates()

			got, ok := template.Resolve(candidates, q)
			require.Equal(t, tt.wantOK, ok)

			if ok {
				assert.Equal(t, candidates[tt.wantIndex].ID, got.ID)
			}
		})
	}
}
