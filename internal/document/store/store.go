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
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type Scanner interface {
	Scan(dest ...any) error
}

// Columns is the deal_documents select list in the order Scan expects. Use
// it qualified with the table name when joining.
const Columns = `
	id, org_id, deal_id, template_id, doc_type, status,
	COALESCE(file_key, ''), COALESCE(file_hash, ''), envelope_id,
	COALESCE(regenerate_reason, ''), metadata_json, created_at, updated_at
`

// Scan reads one deal_documents row selected with Columns.
func Scan(s Scanner) (*document.Document, error) {
	var (
		d        document.Document
		status   string
		metaJSON []byte
	)

	if err := s.Scan(
		&d.ID, &d.OrgID, &d.DealID, &d.TemplateID, &d.DocType, &status,
		&d.FileKey, &d.FileHash, &d.EnvelopeID,
		&d.RegenerateReason, &metaJSON, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Status = document.Status(status)

	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &d.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata of document %s: %w", d.ID, err)
		}
	}

	return &d, nil
}

// ScanAll drains rows and closes them.
func ScanAll(rows *sql.Rows) ([]*document.Document, error) {
	defer rows.Close()

	var out []*document.Document

	for rows.Next() {
		d, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return out, nil
}

// EncodeMetadata marshals metadata for the metadata_json column.
func EncodeMetadata(meta map[string]any) ([]byte, error) {
	if meta == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(meta)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func currentDocument(ctx context.Context, q querier, orgID, dealID uuid.UUID, docType string, lock bool) (*document.Document, error) {
	query := `SELECT ` + Columns + `
		FROM deal_documents
		WHERE org_id = $1 AND deal_id = $2 AND doc_type = $3 AND status <> 'VOIDED'
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	if lock {
		query += ` FOR UPDATE`
	}

	d, err := Scan(q.QueryRowContext(ctx, query, orgID, dealID, docType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting current document: %w", err)
	}

	return d, nil
}

func (s *Store) CurrentDocument(ctx context.Context, orgID, dealID uuid.UUID, docType string) (*document.Document, error) {
	return currentDocument(ctx, s.db, orgID, dealID, docType, false)
}

func (s *Store) GetDocument(ctx context.Context, orgID, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + Columns + ` FROM deal_documents WHERE id = $1 AND org_id = $2`

	d, err := Scan(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return d, nil
}

func (s *Store) ListDocuments(ctx context.Context, orgID, dealID uuid.UUID) ([]*document.Document, error) {
	query := `SELECT ` + Columns + `
		FROM deal_documents
		WHERE org_id = $1 AND deal_id = $2
		ORDER BY doc_type, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, orgID, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return ScanAll(rows)
}

func dealLockKey(dealID uuid.UUID, docType string) int64 {
	h := fnv.New64a()
	h.Write([]byte("deal_documents"))
	h.Write([]byte{0})
	h.Write(dealID[:])
	h.Write([]byte{0})
	h.Write([]byte(docType))

	return int64(h.Sum64())
}

type dealTx struct {
	tx *sql.Tx
}

func (s *Store) BeginDeal(ctx context.Context, dealID uuid.UUID, docType string) (document.DealTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning document tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", dealLockKey(dealID, docType)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring document lock: %w", err)
	}

	return &dealTx{tx: dbTx}, nil
}

func (d *dealTx) Commit() error   { return d.tx.Commit() }
func (d *dealTx) Rollback() error { return d.tx.Rollback() }

func (d *dealTx) CurrentDocument(ctx context.Context, orgID, dealID uuid.UUID, docType string) (*document.Document, error) {
	return currentDocument(ctx, d.tx, orgID, dealID, docType, true)
}

func (d *dealTx) CreateDocument(ctx context.Context, doc *document.Document) error {
	meta, err := EncodeMetadata(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encoding document metadata: %w", err)
	}

	query := `
		INSERT INTO deal_documents (
			org_id, deal_id, template_id, doc_type, status, file_key, file_hash,
			metadata_json, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = d.tx.QueryRowContext(ctx, query,
		doc.OrgID,
		doc.DealID,
		doc.TemplateID,
		doc.DocType,
		doc.Status,
		doc.FileKey,
		doc.FileHash,
		meta,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	return nil
}

func (d *dealTx) UpdateGenerated(ctx context.Context, doc *document.Document) error {
	meta, err := EncodeMetadata(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encoding document metadata: %w", err)
	}

	query := `
		UPDATE deal_documents
		SET template_id = $2, status = $3, file_key = $4, file_hash = $5, envelope_id = NULL,
		    regenerate_reason = NULLIF($6, ''), metadata_json = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = d.tx.QueryRowContext(ctx, query,
		doc.ID,
		doc.TemplateID,
		doc.Status,
		doc.FileKey,
		doc.FileHash,
		doc.RegenerateReason,
		meta,
	).Scan(&doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return document.ErrNotFound
		}

		return fmt.Errorf("updating document: %w", err)
	}

	return nil
}

func (d *dealTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return audit.Insert(ctx, d.tx, e)
}
