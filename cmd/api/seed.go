package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/config"
	"github.com/MrJamesThe3rd/dealdesk/internal/encoding"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

// seed loads rule sets, templates and packs from the rulesets, templates and
// packs subdirectories of the seed dir. Anything whose scope or name is
// already taken is skipped, so restarts are harmless.
func seed(
	ctx context.Context,
	cfg *config.Config,
	rulesSvc *rules.Service,
	templateSvc *template.Service,
	packSvc *pack.Service,
) error {
	var orgID uuid.UUID

	if cfg.App.SeedOrgID != "" {
		id, err := uuid.Parse(cfg.App.SeedOrgID)
		if err != nil {
			return fmt.Errorf("parsing SEED_ORG_ID: %w", err)
		}

		orgID = id
	}

	actor := auth.System(orgID)

	ruleFiles, err := definitionFiles(filepath.Join(cfg.App.SeedDir, "rulesets"))
	if err != nil {
		return err
	}

	for _, path := range ruleFiles {
		buf, err := readDefinition(path)
		if err != nil {
			return err
		}

		params, err := rules.ParseDefinition(buf)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		if !params.Global && orgID == uuid.Nil {
			return fmt.Errorf("%s: org rule set needs SEED_ORG_ID", path)
		}

		rs, stored, err := rulesSvc.Seed(ctx, actor, params)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}

		if stored {
			slog.Info("seeded rule set", "file", path, "jurisdiction", rs.Jurisdiction, "version", rs.Version)
		}
	}

	if err := seedTemplates(ctx, filepath.Join(cfg.App.SeedDir, "templates"), actor, templateSvc); err != nil {
		return err
	}

	packFiles, err := definitionFiles(filepath.Join(cfg.App.SeedDir, "packs"))
	if err != nil {
		return err
	}

	if len(packFiles) == 0 {
		return nil
	}

	if orgID == uuid.Nil {
		return fmt.Errorf("seeding packs needs SEED_ORG_ID")
	}

	existing, err := packSvc.List(ctx, orgID)
	if err != nil {
		return fmt.Errorf("listing packs: %w", err)
	}

	for _, path := range packFiles {
		buf, err := readDefinition(path)
		if err != nil {
			return err
		}

		params, err := pack.ParseDefinition(buf)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		if slices.ContainsFunc(existing, func(p *pack.Pack) bool { return p.Name == strings.TrimSpace(params.Name) }) {
			continue
		}

		pk, err := packSvc.Create(ctx, actor, params)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}

		slog.Info("seeded pack", "file", path, "name", pk.Name)
	}

	return nil
}

func seedTemplates(ctx context.Context, dir string, actor auth.Principal, svc *template.Service) error {
	files, err := definitionFiles(dir)
	if err != nil {
		return err
	}

	for _, path := range files {
		buf, err := readDefinition(path)
		if err != nil {
			return err
		}

		params, err := template.ParseDefinition(buf, func(name string) ([]byte, error) {
			return readDefinition(filepath.Join(dir, filepath.Base(name)))
		})
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		if !params.Global && actor.OrgID == uuid.Nil {
			return fmt.Errorf("%s: org template needs SEED_ORG_ID", path)
		}

		existing, err := svc.List(ctx, actor.OrgID, template.ListFilter{
			DocType:       new(strings.ToUpper(params.DocType)),
			Jurisdiction:  new(strings.ToUpper(params.Jurisdiction)),
			IncludeGlobal: true,
		})
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}

		taken := slices.ContainsFunc(existing, func(t *template.Template) bool {
			return (t.OrgID == nil) == params.Global && t.DealType == params.DealType
		})
		if taken {
			continue
		}

		tpl, err := svc.Create(ctx, actor, params)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}

		slog.Info("seeded template", "file", path, "doc_type", tpl.DocType, "version", tpl.Version)
	}

	return nil
}

// readDefinition reads a seed file as UTF-8 whatever editor produced it.
func readDefinition(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	buf, err := encoding.ToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return buf, nil
}

// definitionFiles lists the YAML and JSON files of dir in name order. A
// missing directory yields no files.
func definitionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	slices.Sort(files)

	return files, nil
}
