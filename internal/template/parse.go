package template

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
)

// Definition is the file form of a template used for seeding. The HTML source
// lives next to it and is named by SourceFile.
type Definition struct {
	Global        bool     `yaml:"global"`
	DocType       string   `yaml:"docType"`
	Jurisdiction  string   `yaml:"jurisdiction"`
	DealType      string   `yaml:"dealType"`
	Engine        string   `yaml:"engine"`
	SourceFile    string   `yaml:"sourceFile"`
	SourceDocxKey string   `yaml:"sourceDocxKey"`
	RequiredPaths []string `yaml:"requiredPaths"`
	EffectiveFrom string   `yaml:"effectiveFrom"`
	EffectiveTo   string   `yaml:"effectiveTo,omitempty"`
	IsDefault     bool     `yaml:"isDefault"`
}

// ParseDefinition decodes a template definition. readSource loads the file
// named by SourceFile; it is not called for DOCX templates.
func ParseDefinition(data []byte, readSource func(name string) ([]byte, error)) (CreateParams, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return CreateParams{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	from, err := time.Parse(time.DateOnly, strings.TrimSpace(def.EffectiveFrom))
	if err != nil {
		return CreateParams{}, fmt.Errorf("%w: effectiveFrom: %v", ErrInvalidTemplate, err)
	}

	params := CreateParams{
		Global:         def.Global,
		DocType:        def.DocType,
		Jurisdiction:   def.Jurisdiction,
		DealType:       deal.Type(normalizeCode(def.DealType)),
		Engine:         Engine(normalizeCode(def.Engine)),
		SourceDocxKey:  def.SourceDocxKey,
		RequiredFields: RequiredFields{RequiredPaths: def.RequiredPaths},
		EffectiveFrom:  from,
		IsDefault:      def.IsDefault,
	}

	if params.Engine == "" {
		params.Engine = EngineHTML
	}

	if s := strings.TrimSpace(def.EffectiveTo); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return CreateParams{}, fmt.Errorf("%w: effectiveTo: %v", ErrInvalidTemplate, err)
		}

		params.EffectiveTo = &to
	}

	if params.Engine == EngineHTML && def.SourceFile != "" {
		src, err := readSource(def.SourceFile)
		if err != nil {
			return CreateParams{}, fmt.Errorf("reading template source %s: %w", def.SourceFile, err)
		}

		params.SourceHTML = string(src)
	}

	if err := params.validate(); err != nil {
		return CreateParams{}, err
	}

	return params, nil
}
