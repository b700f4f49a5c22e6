package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/document"
	docstore "github.com/MrJamesThe3rd/dealdesk/internal/document/store"
	"github.com/MrJamesThe3rd/dealdesk/internal/esign"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const envelopeColumns = `
	id, org_id, deal_id, provider, COALESCE(provider_envelope_id, ''), request_id, status,
	recipients_json, sent_at, completed_at, metadata_json, created_at, updated_at
`

func scanEnvelope(s docstore.Scanner) (*esign.Envelope, error) {
	var (
		e              esign.Envelope
		status         string
		recipientsJSON []byte
		metaJSON       []byte
	)

	if err := s.Scan(
		&e.ID, &e.OrgID, &e.DealID, &e.Provider, &e.ProviderEnvelopeID, &e.RequestID, &status,
		&recipientsJSON, &e.SentAt, &e.CompletedAt, &metaJSON, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = esign.Status(status)

	if len(recipientsJSON) > 0 {
		if err := json.Unmarshal(recipientsJSON, &e.Recipients); err != nil {
			return nil, fmt.Errorf("decoding recipients of envelope %s: %w", e.ID, err)
		}
	}

	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata of envelope %s: %w", e.ID, err)
		}
	}

	return &e, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getEnvelope(ctx context.Context, q querier, orgID, id uuid.UUID, lock bool) (*esign.Envelope, error) {
	query := `SELECT ` + envelopeColumns + ` FROM document_envelopes WHERE id = $1 AND org_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}

	e, err := scanEnvelope(q.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, esign.ErrNotFound
		}

		return nil, fmt.Errorf("getting envelope: %w", err)
	}

	return e, nil
}

func (s *Store) GetEnvelope(ctx context.Context, orgID, id uuid.UUID) (*esign.Envelope, error) {
	return getEnvelope(ctx, s.db, orgID, id, false)
}

func (s *Store) FindByRequestID(ctx context.Context, orgID uuid.UUID, requestID string) (*esign.Envelope, error) {
	query := `SELECT ` + envelopeColumns + ` FROM document_envelopes WHERE org_id = $1 AND request_id = $2`

	e, err := scanEnvelope(s.db.QueryRowContext(ctx, query, orgID, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, esign.ErrNotFound
		}

		return nil, fmt.Errorf("finding envelope by request id: %w", err)
	}

	return e, nil
}

func (s *Store) FindByProviderID(ctx context.Context, provider, providerEnvelopeID string) (*esign.Envelope, error) {
	query := `SELECT ` + envelopeColumns + `
		FROM document_envelopes
		WHERE provider = $1 AND provider_envelope_id = $2`

	e, err := scanEnvelope(s.db.QueryRowContext(ctx, query, provider, providerEnvelopeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, esign.ErrNotFound
		}

		return nil, fmt.Errorf("finding envelope by provider id: %w", err)
	}

	return e, nil
}

func (s *Store) ListEnvelopes(ctx context.Context, orgID, dealID uuid.UUID) ([]*esign.Envelope, error) {
	query := `SELECT ` + envelopeColumns + `
		FROM document_envelopes
		WHERE org_id = $1 AND deal_id = $2
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, orgID, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing envelopes: %w", err)
	}
	defer rows.Close()

	var out []*esign.Envelope

	for rows.Next() {
		e, err := scanEnvelope(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning envelope: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating envelopes: %w", err)
	}

	return out, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}

func documentsByID(ctx context.Context, q querier, orgID uuid.UUID, ids []uuid.UUID, lock bool) ([]*document.Document, error) {
	query := `SELECT ` + docstore.Columns + `
		FROM deal_documents
		WHERE org_id = $1 AND id = ANY($2::uuid[])
		ORDER BY doc_type, id`

	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.QueryContext(ctx, query, orgID, pq.Array(idStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	return docstore.ScanAll(rows)
}

func envelopeDocuments(ctx context.Context, q querier, orgID, envelopeID uuid.UUID, lock bool) ([]*document.Document, error) {
	query := `SELECT ` + docstore.Columns + `
		FROM deal_documents
		WHERE org_id = $1 AND envelope_id = $2
		ORDER BY doc_type, id`

	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.QueryContext(ctx, query, orgID, envelopeID)
	if err != nil {
		return nil, fmt.Errorf("loading envelope documents: %w", err)
	}

	return docstore.ScanAll(rows)
}

func (s *Store) GetDocuments(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error) {
	return documentsByID(ctx, s.db, orgID, ids, false)
}

func (s *Store) EnvelopeDocuments(ctx context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error) {
	return envelopeDocuments(ctx, s.db, orgID, envelopeID, false)
}

type envelopeTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (esign.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning envelope tx: %w", err)
	}

	return &envelopeTx{tx: tx}, nil
}

func (t *envelopeTx) Commit() error   { return t.tx.Commit() }
func (t *envelopeTx) Rollback() error { return t.tx.Rollback() }

func encodeEnvelope(e *esign.Envelope) (recipients, meta []byte, err error) {
	rs := e.Recipients
	if rs == nil {
		rs = []esign.Recipient{}
	}

	recipients, err = json.Marshal(rs)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding recipients: %w", err)
	}

	meta, err = docstore.EncodeMetadata(e.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding envelope metadata: %w", err)
	}

	return recipients, meta, nil
}

func (t *envelopeTx) InsertEnvelope(ctx context.Context, e *esign.Envelope) (bool, error) {
	recipients, meta, err := encodeEnvelope(e)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO document_envelopes (
			org_id, deal_id, provider, provider_envelope_id, request_id, status,
			recipients_json, sent_at, metadata_json, created_at, updated_at
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (org_id, request_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err = t.tx.QueryRowContext(ctx, query,
		e.OrgID,
		e.DealID,
		e.Provider,
		e.ProviderEnvelopeID,
		e.RequestID,
		e.Status,
		recipients,
		e.SentAt,
		meta,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("inserting envelope: %w", err)
	}

	return true, nil
}

func (t *envelopeTx) LockEnvelope(ctx context.Context, orgID, id uuid.UUID) (*esign.Envelope, error) {
	return getEnvelope(ctx, t.tx, orgID, id, true)
}

func (t *envelopeTx) UpdateEnvelope(ctx context.Context, e *esign.Envelope) error {
	_, meta, err := encodeEnvelope(e)
	if err != nil {
		return err
	}

	query := `
		UPDATE document_envelopes
		SET status = $3, completed_at = $4, metadata_json = $5, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
		RETURNING updated_at
	`

	err = t.tx.QueryRowContext(ctx, query, e.ID, e.OrgID, e.Status, e.CompletedAt, meta).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return esign.ErrNotFound
		}

		return fmt.Errorf("updating envelope: %w", err)
	}

	return nil
}

func (t *envelopeTx) LockDocuments(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error) {
	return documentsByID(ctx, t.tx, orgID, ids, true)
}

func (t *envelopeTx) LockEnvelopeDocuments(ctx context.Context, orgID, envelopeID uuid.UUID) ([]*document.Document, error) {
	return envelopeDocuments(ctx, t.tx, orgID, envelopeID, true)
}

func (t *envelopeTx) UpdateDocument(ctx context.Context, d *document.Document) error {
	meta, err := docstore.EncodeMetadata(d.Metadata)
	if err != nil {
		return fmt.Errorf("encoding document metadata: %w", err)
	}

	query := `
		UPDATE deal_documents
		SET status = $3, envelope_id = $4, metadata_json = $5, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
		RETURNING updated_at
	`

	err = t.tx.QueryRowContext(ctx, query, d.ID, d.OrgID, d.Status, d.EnvelopeID, meta).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return document.ErrNotFound
		}

		return fmt.Errorf("updating document: %w", err)
	}

	return nil
}

func (t *envelopeTx) InsertEvent(ctx context.Context, e *esign.Event) (bool, error) {
	payload, err := docstore.EncodeMetadata(e.Payload)
	if err != nil {
		return false, fmt.Errorf("encoding event payload: %w", err)
	}

	query := `
		INSERT INTO document_events (
			org_id, envelope_id, provider, provider_event_id, event_type, payload_json, received_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider, provider_event_id) DO NOTHING
		RETURNING id
	`

	err = t.tx.QueryRowContext(ctx, query,
		e.OrgID,
		e.EnvelopeID,
		e.Provider,
		e.ProviderEventID,
		e.EventType,
		payload,
		e.ReceivedAt,
	).Scan(&e.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("inserting event: %w", err)
	}

	return true, nil
}

func (t *envelopeTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return audit.Insert(ctx, t.tx, e)
}
