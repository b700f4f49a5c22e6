package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context, orgID uuid.UUID, entityType string, entityID uuid.UUID) ([]*audit.Record, error) {
	query := `
		SELECT id, org_id, actor_id, entity_type, entity_id, action, before_json, after_json, created_at
		FROM audit_log
		WHERE org_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, orgID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing audit log: %w", err)
	}
	defer rows.Close()

	var records []*audit.Record

	for rows.Next() {
		var (
			r             audit.Record
			before, after []byte
		)

		if err := rows.Scan(&r.ID, &r.OrgID, &r.ActorID, &r.EntityType, &r.EntityID, &r.Action, &before, &after, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		r.Before = before
		r.After = after
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return records, nil
}
