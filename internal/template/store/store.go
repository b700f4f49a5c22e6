package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectColumns.
const selectColumns = `
	id, org_id, doc_type, jurisdiction, deal_type, version, template_engine,
	COALESCE(source_html, ''), COALESCE(source_docx_key, ''), required_fields_json,
	effective_from, effective_to, default_for_org, is_default, created_at, deleted_at
`

func scanTemplate(s scanner) (*template.Template, error) {
	var (
		t                  template.Template
		dealType, engine   string
		requiredFieldsJSON []byte
	)

	if err := s.Scan(
		&t.ID, &t.OrgID, &t.DocType, &t.Jurisdiction, &dealType, &t.Version, &engine,
		&t.SourceHTML, &t.SourceDocxKey, &requiredFieldsJSON,
		&t.EffectiveFrom, &t.EffectiveTo, &t.DefaultForOrg, &t.IsDefault, &t.CreatedAt, &t.DeletedAt,
	); err != nil {
		return nil, err
	}

	t.DealType = deal.Type(dealType)
	t.Engine = template.Engine(engine)

	if len(requiredFieldsJSON) > 0 {
		if err := json.Unmarshal(requiredFieldsJSON, &t.RequiredFields); err != nil {
			return nil, fmt.Errorf("decoding required fields of %s: %w", t.ID, err)
		}
	}

	return &t, nil
}

func scanTemplates(rows *sql.Rows) ([]*template.Template, error) {
	defer rows.Close()

	var out []*template.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return out, nil
}

func (s *Store) ListCandidates(ctx context.Context, orgID uuid.UUID, docType, jurisdiction string, dealType deal.Type) ([]*template.Template, error) {
	query := `SELECT ` + selectColumns + `
		FROM document_templates
		WHERE doc_type = $1 AND jurisdiction = $2 AND deal_type = $3
		  AND (org_id IS NULL OR org_id = $4)`

	rows, err := s.db.QueryContext(ctx, query, docType, jurisdiction, dealType, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing template candidates: %w", err)
	}

	return scanTemplates(rows)
}

func (s *Store) ListTemplates(ctx context.Context, orgID uuid.UUID, filter template.ListFilter) ([]*template.Template, error) {
	query := `SELECT ` + selectColumns + ` FROM document_templates WHERE `

	args := []any{orgID}
	argIdx := 2

	if filter.IncludeGlobal {
		query += `(org_id = $1 OR org_id IS NULL)`
	} else {
		query += `org_id = $1`
	}

	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	if filter.DocType != nil {
		query += fmt.Sprintf(" AND doc_type = $%d", argIdx)

		args = append(args, *filter.DocType)
		argIdx++
	}

	if filter.Jurisdiction != nil {
		query += fmt.Sprintf(" AND jurisdiction = $%d", argIdx)

		args = append(args, *filter.Jurisdiction)
	}

	query += " ORDER BY jurisdiction, doc_type, deal_type, version DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	return scanTemplates(rows)
}

func (s *Store) GetTemplate(ctx context.Context, orgID, id uuid.UUID) (*template.Template, error) {
	query := `SELECT ` + selectColumns + `
		FROM document_templates
		WHERE id = $1 AND (org_id IS NULL OR org_id = $2)`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, template.ErrNotFound
		}

		return nil, fmt.Errorf("getting template: %w", err)
	}

	return t, nil
}

func scopeLockKey(sc template.Scope) int64 {
	h := fnv.New64a()
	h.Write([]byte("document_templates"))
	h.Write([]byte{0})

	if sc.OrgID != nil {
		h.Write(sc.OrgID[:])
	}

	for _, part := range []string{sc.Jurisdiction, sc.DocType, string(sc.DealType)} {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}

	return int64(h.Sum64())
}

type writeTx struct {
	tx *sql.Tx
}

func (s *Store) BeginWrite(ctx context.Context, sc template.Scope) (template.WriteTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning template tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", scopeLockKey(sc)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring template scope lock: %w", err)
	}

	return &writeTx{tx: dbTx}, nil
}

func (w *writeTx) Commit() error   { return w.tx.Commit() }
func (w *writeTx) Rollback() error { return w.tx.Rollback() }

func (w *writeTx) GetTemplateForUpdate(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	query := `SELECT ` + selectColumns + ` FROM document_templates WHERE id = $1 FOR UPDATE`

	t, err := scanTemplate(w.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, template.ErrNotFound
		}

		return nil, fmt.Errorf("locking template: %w", err)
	}

	return t, nil
}

const scopeWhere = `org_id IS NOT DISTINCT FROM $1 AND jurisdiction = $2 AND doc_type = $3 AND deal_type = $4`

func scopeArgs(sc template.Scope) []any {
	return []any{sc.OrgID, sc.Jurisdiction, sc.DocType, sc.DealType}
}

func (w *writeTx) LatestVersion(ctx context.Context, sc template.Scope) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) FROM document_templates WHERE ` + scopeWhere

	var v int
	if err := w.tx.QueryRowContext(ctx, query, scopeArgs(sc)...).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading latest template version: %w", err)
	}

	return v, nil
}

func (w *writeTx) ClearDefaults(ctx context.Context, sc template.Scope) error {
	query := `UPDATE document_templates SET default_for_org = FALSE WHERE default_for_org AND ` + scopeWhere

	if _, err := w.tx.ExecContext(ctx, query, scopeArgs(sc)...); err != nil {
		return fmt.Errorf("clearing default templates: %w", err)
	}

	return nil
}

func (w *writeTx) InsertTemplate(ctx context.Context, t *template.Template) error {
	required, err := json.Marshal(t.RequiredFields)
	if err != nil {
		return fmt.Errorf("encoding required fields: %w", err)
	}

	query := `
		INSERT INTO document_templates (
			org_id, doc_type, jurisdiction, deal_type, version, template_engine,
			source_html, source_docx_key, required_fields_json,
			effective_from, effective_to, default_for_org, is_default, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at
	`

	err = w.tx.QueryRowContext(ctx, query,
		t.OrgID,
		t.DocType,
		t.Jurisdiction,
		t.DealType,
		t.Version,
		t.Engine,
		t.SourceHTML,
		t.SourceDocxKey,
		required,
		t.EffectiveFrom,
		t.EffectiveTo,
		t.DefaultForOrg,
		t.IsDefault,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	return nil
}

func (w *writeTx) SetDefaultForOrg(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE document_templates SET default_for_org = TRUE WHERE id = $1 AND deleted_at IS NULL`

	if _, err := w.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("setting default template: %w", err)
	}

	return nil
}

func (w *writeTx) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE document_templates SET deleted_at = NOW(), default_for_org = FALSE WHERE id = $1 AND deleted_at IS NULL`

	if _, err := w.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}

	return nil
}

func (w *writeTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return audit.Insert(ctx, w.tx, e)
}
