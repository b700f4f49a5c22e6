package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealdesk/internal/fieldpath"
)

// Kind tags a predicate variant.
type Kind string

const (
	KindFieldEquals Kind = "field_equals"
	KindFieldIn     Kind = "field_in"
	KindFlag        Kind = "flag"
	KindFieldGT     Kind = "field_gt"
)

// Predicate is a closed union over Kind. Only the fields relevant to the kind
// are read:
//
//	field_equals: Field, Value
//	field_in:     Field, Values
//	flag:         Field, Expect (defaults to true)
//	field_gt:     Field, Value (numeric)
type Predicate struct {
	Kind   Kind   `json:"type" yaml:"type"`
	Field  string `json:"field" yaml:"field"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Values []any  `json:"values,omitempty" yaml:"values,omitempty"`
	Expect *bool  `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Known reports whether p is a well-formed variant.
func (p Predicate) Known() bool {
	if strings.TrimSpace(p.Field) == "" {
		return false
	}

	switch p.Kind {
	case KindFieldEquals, KindFlag, KindFieldGT:
		return true
	case KindFieldIn:
		return len(p.Values) > 0
	default:
		return false
	}
}

// Match evaluates p against fields. Unknown or malformed predicates never
// match; Match never panics.
func Match(p Predicate, fields map[string]any) bool {
	if !p.Known() {
		return false
	}

	got, found := fieldpath.Lookup(fields, p.Field)

	switch p.Kind {
	case KindFieldEquals:
		return found && equalValues(got, p.Value)
	case KindFieldIn:
		if !found {
			return false
		}

		for _, v := range p.Values {
			if equalValues(got, v) {
				return true
			}
		}

		return false
	case KindFlag:
		want := true
		if p.Expect != nil {
			want = *p.Expect
		}

		b, _ := got.(bool)

		return b == want
	case KindFieldGT:
		if !found {
			return false
		}

		a, ok := toDecimal(got)
		if !ok {
			return false
		}

		b, ok := toDecimal(p.Value)
		if !ok {
			return false
		}

		return a.GreaterThan(b)
	}

	return false
}

// MatchAll reports whether every predicate matches. An empty list matches.
func MatchAll(ps []Predicate, fields map[string]any) bool {
	for _, p := range ps {
		if !Match(p, fields) {
			return false
		}
	}

	return true
}

// equalValues compares a snapshot value to a rule operand. Numbers compare by
// value so "25000.00" equals 25000; strings compare exactly.
func equalValues(got, want any) bool {
	if isNumber(got) || isNumber(want) {
		a, okA := toDecimal(got)
		b, okB := toDecimal(want)

		return okA && okB && a.Equal(b)
	}

	switch w := want.(type) {
	case string:
		s, ok := got.(string)
		return ok && s == w
	case bool:
		b, ok := got.(bool)
		return ok && b == w
	case nil:
		return got == nil
	}

	return fmt.Sprint(got) == fmt.Sprint(want)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64, decimal.Decimal:
		return true
	}

	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, false
		}

		return d, true
	}

	return decimal.Decimal{}, false
}
