package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
)

func TestParseBody_YAML(t *testing.T) {
	data := []byte(`
scenarios:
  - code: FINANCED
    when:
      - type: flag
        field: deal.isFinanced
      - type: field_in
        field: deal.dealType
        values: [FINANCE, LEASE]
    requiredDocuments: [RETAIL_INSTALLMENT_CONTRACT]
    reason: financed deal
validations:
  - code: OUT_OF_STATE
    when:
      - type: flag
        field: deal.isOutOfStateBuyer
    severity: warning
    message: verify out-of-state registration
computedFields:
  suggestedTaxRate: 0.0625
`)

	body, err := rules.ParseBody(data)
	require.NoError(t, err)

	require.Len(t, body.Scenarios, 1)
	assert.Equal(t, rules.KindFieldIn, body.Scenarios[0].When[1].Kind)
	assert.Equal(t, []any{"FINANCE", "LEASE"}, body.Scenarios[0].When[1].Values)
	assert.Equal(t, rules.SeverityWarning, body.Validations[0].Severity)
	assert.Equal(t, 0.0625, body.ComputedFields["suggestedTaxRate"])
}

func TestParseBody_JSON(t *testing.T) {
	data := []byte(`{"scenarios":[{"code":"ALWAYS","requiredDocuments":["BUYERS_ORDER"],"reason":"every deal"}]}`)

	body, err := rules.ParseBody(data)
	require.NoError(t, err)

	require.Len(t, body.Scenarios, 1)
	assert.Empty(t, body.Scenarios[0].When)
	assert.Equal(t, []string{"BUYERS_ORDER"}, body.Scenarios[0].RequiredDocuments)
}

func TestParseBody_Invalid(t *testing.T) {
	type testCase struct {
		name string
		data string
	}

	tests := []testCase{
		{name: "Syntax", data: "scenarios: [:"},
		{name: "MissingCode", data: "scenarios:\n  - reason: x\n"},
		{name: "BadSeverity", data: "validations:\n  - code: X\n    severity: fatal\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.ParseBody([]byte(tt.data))
			assert.ErrorIs(t, err, rules.ErrInvalidRuleSet)
		})
	}
}

func TestParseDefinition(t *testing.T) {
	data := []byte(`
jurisdiction: tx
global: true
effectiveFrom: "2024-01-01"
effectiveTo: "2024-12-31"
rules:
  scenarios:
    - code: ALWAYS
      requiredDocuments: [BUYERS_ORDER]
      reason: every deal
`)

	params, err := rules.ParseDefinition(data)
	require.NoError(t, err)

	assert.True(t, params.Global)
	assert.Equal(t, "tx", params.Jurisdiction)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), params.EffectiveFrom)
	require.NotNil(t, params.EffectiveTo)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *params.EffectiveTo)

	_, err = rules.ParseDefinition([]byte("jurisdiction: TX\neffectiveFrom: \"2025-01-01\"\neffectiveTo: \"2024-01-01\"\n"))
	assert.ErrorIs(t, err, rules.ErrInvalidRuleSet)
}
