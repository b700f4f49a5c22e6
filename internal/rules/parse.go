package rules

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseBody decodes a rule body from YAML or JSON.
func ParseBody(data []byte) (Body, error) {
	var b Body
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	if err := b.validate(); err != nil {
		return Body{}, err
	}

	return b, nil
}

// Definition is the file form of a rule set used for seeding and for the
// publish endpoint.
type Definition struct {
	Jurisdiction  string `yaml:"jurisdiction"`
	Global        bool   `yaml:"global"`
	EffectiveFrom string `yaml:"effectiveFrom"`
	EffectiveTo   string `yaml:"effectiveTo,omitempty"`
	Rules         Body   `yaml:"rules"`
}

// ParseDefinition decodes a rule set definition and converts it into publish
// parameters.
func ParseDefinition(data []byte) (PublishParams, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return PublishParams{}, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	from, err := time.Parse(time.DateOnly, strings.TrimSpace(def.EffectiveFrom))
	if err != nil {
		return PublishParams{}, fmt.Errorf("%w: effectiveFrom: %v", ErrInvalidRuleSet, err)
	}

	params := PublishParams{
		Jurisdiction:  def.Jurisdiction,
		Global:        def.Global,
		EffectiveFrom: from,
		Body:          def.Rules,
	}

	if s := strings.TrimSpace(def.EffectiveTo); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return PublishParams{}, fmt.Errorf("%w: effectiveTo: %v", ErrInvalidRuleSet, err)
		}

		params.EffectiveTo = &to
	}

	if err := params.validate(); err != nil {
		return PublishParams{}, err
	}

	return params, nil
}

func (b Body) validate() error {
	for i, sc := range b.Scenarios {
		if sc.Code == "" {
			return fmt.Errorf("%w: scenario %d has no code", ErrInvalidRuleSet, i)
		}
	}

	for i, v := range b.Validations {
		if v.Code == "" {
			return fmt.Errorf("%w: validation %d has no code", ErrInvalidRuleSet, i)
		}

		switch v.Severity {
		case "", SeverityError, SeverityWarning:
		default:
			return fmt.Errorf("%w: validation %q has severity %q", ErrInvalidRuleSet, v.Code, v.Severity)
		}
	}

	return nil
}
