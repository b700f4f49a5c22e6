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
	"github.com/MrJamesThe3rd/dealdesk/internal/rules"
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

const selectColumns = `id, org_id, jurisdiction, version, effective_from, effective_to, body_json, created_at`

func scanRuleSet(s scanner) (*rules.RuleSet, error) {
	var (
		rs   rules.RuleSet
		body []byte
	)

	if err := s.Scan(&rs.ID, &rs.OrgID, &rs.Jurisdiction, &rs.Version, &rs.EffectiveFrom, &rs.EffectiveTo, &body, &rs.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, &rs.Body); err != nil {
		return nil, fmt.Errorf("decoding rule body %s: %w", rs.ID, err)
	}

	return &rs, nil
}

func (s *Store) ListCandidates(ctx context.Context, orgID uuid.UUID, jurisdiction string) ([]*rules.RuleSet, error) {
	query := `SELECT ` + selectColumns + `
		FROM rule_sets
		WHERE jurisdiction = $1 AND (org_id IS NULL OR org_id = $2)
		ORDER BY version ASC`

	rows, err := s.db.QueryContext(ctx, query, jurisdiction, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing rule sets: %w", err)
	}
	defer rows.Close()

	var out []*rules.RuleSet

	for rows.Next() {
		rs, err := scanRuleSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rule set: %w", err)
		}

		out = append(out, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rule sets: %w", err)
	}

	return out, nil
}

func (s *Store) GetRuleSet(ctx context.Context, orgID, id uuid.UUID) (*rules.RuleSet, error) {
	query := `SELECT ` + selectColumns + `
		FROM rule_sets
		WHERE id = $1 AND (org_id IS NULL OR org_id = $2)`

	rs, err := scanRuleSet(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rules.ErrNotFound
		}

		return nil, fmt.Errorf("getting rule set: %w", err)
	}

	return rs, nil
}

func publishLockKey(orgID *uuid.UUID, jurisdiction string) int64 {
	h := fnv.New64a()
	h.Write([]byte("rule_sets"))
	h.Write([]byte{0})

	if orgID != nil {
		h.Write(orgID[:])
	}

	h.Write([]byte{0})
	h.Write([]byte(jurisdiction))

	return int64(h.Sum64())
}

type publishTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPublish(ctx context.Context, orgID *uuid.UUID, jurisdiction string) (rules.PublishTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning publish tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", publishLockKey(orgID, jurisdiction)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring publish lock: %w", err)
	}

	return &publishTx{tx: dbTx}, nil
}

func (p *publishTx) Commit() error   { return p.tx.Commit() }
func (p *publishTx) Rollback() error { return p.tx.Rollback() }

func (p *publishTx) LatestVersion(ctx context.Context, orgID *uuid.UUID, jurisdiction string) (int, error) {
	query := `
		SELECT COALESCE(MAX(version), 0)
		FROM rule_sets
		WHERE jurisdiction = $1 AND org_id IS NOT DISTINCT FROM $2
	`

	var v int
	if err := p.tx.QueryRowContext(ctx, query, jurisdiction, orgID).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading latest rule set version: %w", err)
	}

	return v, nil
}

func (p *publishTx) InsertRuleSet(ctx context.Context, rs *rules.RuleSet) error {
	body, err := json.Marshal(rs.Body)
	if err != nil {
		return fmt.Errorf("encoding rule body: %w", err)
	}

	query := `
		INSERT INTO rule_sets (org_id, jurisdiction, version, effective_from, effective_to, body_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = p.tx.QueryRowContext(ctx, query,
		rs.OrgID,
		rs.Jurisdiction,
		rs.Version,
		rs.EffectiveFrom,
		rs.EffectiveTo,
		body,
	).Scan(&rs.ID, &rs.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting rule set: %w", err)
	}

	return nil
}

func (p *publishTx) RecordAudit(ctx context.Context, e audit.Entry) error {
	return audit.Insert(ctx, p.tx, e)
}
