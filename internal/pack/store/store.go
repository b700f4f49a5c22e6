package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
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

const packColumns = `id, org_id, name, COALESCE(description, ''), items_json, created_at`

func scanPack(s scanner) (*pack.Pack, error) {
	var (
		p         pack.Pack
		itemsJSON []byte
	)

	if err := s.Scan(&p.ID, &p.OrgID, &p.Name, &p.Description, &itemsJSON, &p.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
		return nil, fmt.Errorf("decoding items of pack %s: %w", p.ID, err)
	}

	return &p, nil
}

func (s *Store) GetPack(ctx context.Context, orgID, id uuid.UUID) (*pack.Pack, error) {
	query := `SELECT ` + packColumns + ` FROM document_packs WHERE id = $1 AND org_id = $2`

	p, err := scanPack(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pack.ErrNotFound
		}

		return nil, fmt.Errorf("getting pack: %w", err)
	}

	return p, nil
}

func (s *Store) ListPacks(ctx context.Context, orgID uuid.UUID) ([]*pack.Pack, error) {
	query := `SELECT ` + packColumns + ` FROM document_packs WHERE org_id = $1 ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	defer rows.Close()

	var out []*pack.Pack

	for rows.Next() {
		p, err := scanPack(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pack: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating packs: %w", err)
	}

	return out, nil
}

func (s *Store) ListChecklist(ctx context.Context, orgID, dealID uuid.UUID) ([]*pack.ChecklistItem, error) {
	query := `
		SELECT id, org_id, deal_id, pack_id, doc_type, required, status, document_id,
		       missing_fields_json, COALESCE(message, ''), updated_at
		FROM deal_checklist_items
		WHERE org_id = $1 AND deal_id = $2
		ORDER BY doc_type
	`

	rows, err := s.db.QueryContext(ctx, query, orgID, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist: %w", err)
	}
	defer rows.Close()

	var out []*pack.ChecklistItem

	for rows.Next() {
		var (
			c           pack.ChecklistItem
			missingJSON []byte
		)

		if err := rows.Scan(
			&c.ID, &c.OrgID, &c.DealID, &c.PackID, &c.DocType, &c.Required, &c.Status, &c.DocumentID,
			&missingJSON, &c.Message, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}

		if len(missingJSON) > 0 {
			if err := json.Unmarshal(missingJSON, &c.MissingFields); err != nil {
				return nil, fmt.Errorf("decoding missing fields of %s: %w", c.ID, err)
			}
		}

		out = append(out, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist: %w", err)
	}

	return out, nil
}

// UpsertChecklist writes the latest status of a deal's checklist slot. There
// is one row per (deal, docType).
func (s *Store) UpsertChecklist(ctx context.Context, c *pack.ChecklistItem) error {
	missing, err := json.Marshal(c.MissingFields)
	if err != nil {
		return fmt.Errorf("encoding missing fields: %w", err)
	}

	query := `
		INSERT INTO deal_checklist_items (
			org_id, deal_id, pack_id, doc_type, required, status, document_id,
			missing_fields_json, message, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NOW())
		ON CONFLICT (deal_id, doc_type) DO UPDATE SET
			pack_id = EXCLUDED.pack_id,
			required = EXCLUDED.required,
			status = EXCLUDED.status,
			document_id = COALESCE(EXCLUDED.document_id, deal_checklist_items.document_id),
			missing_fields_json = EXCLUDED.missing_fields_json,
			message = EXCLUDED.message,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.OrgID,
		c.DealID,
		c.PackID,
		c.DocType,
		c.Required,
		c.Status,
		c.DocumentID,
		missing,
		c.Message,
	).Scan(&c.ID, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting checklist item: %w", err)
	}

	return nil
}

type packTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPack(ctx context.Context) (pack.PackTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning pack tx: %w", err)
	}

	return &packTx{tx: dbTx}, nil
}

func (p *packTx) Commit() error   { return p.tx.Commit() }
func (p *packTx) Rollback() error { return p.tx.Rollback() }

func (p *packTx) InsertPack(ctx context.Context, pk *pack.Pack) error {
	items, err := json.Marshal(pk.Items)
	if err != nil {
		return fmt.Errorf("encoding pack items: %w", err)
	}

	query := `
		INSERT INTO document_packs (org_id, name, description, items_json, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW())
		RETURNING id, created_at
	`

	if err := p.tx.QueryRowContext(ctx, query, pk.OrgID, pk.Name, pk.Description, items).Scan(&pk.ID, &pk.CreatedAt); err != nil {
		return fmt.Errorf("inserting pack: %w", err)
	}

	return nil
}

func (p *packTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return audit.Insert(ctx, p.tx, e)
}
