package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entity types recorded in the audit log.
const (
	EntityDocument = "deal_document"
	EntityEnvelope = "document_envelope"
	EntityTemplate = "document_template"
	EntityRuleSet  = "rule_set"
	EntityPack     = "document_pack"
)

// Actions recorded in the audit log.
const (
	ActionCreate        = "create"
	ActionRegenerate    = "regenerate"
	ActionSetDefault    = "set_default"
	ActionDelete        = "delete"
	ActionSend          = "send"
	ActionStatusChanged = "status_changed"
	ActionFinalize      = "finalize"
	ActionVoid          = "void"
)

// Entry is one audit record. Before and After are JSON encoded as-is.
type Entry struct {
	OrgID      uuid.UUID
	ActorID    uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     string
	Before     any
	After      any
}

// Record is a stored audit entry as read back for the audit trail.
type Record struct {
	ID         uuid.UUID
	OrgID      uuid.UUID
	ActorID    *uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}

// Execer is satisfied by *sql.Tx so audit rows share the caller's transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert writes e using exec. Stores call it from inside the transaction that
// performs the audited mutation.
func Insert(ctx context.Context, exec Execer, e Entry) error {
	before, err := marshal(e.Before)
	if err != nil {
		return fmt.Errorf("encoding audit before: %w", err)
	}

	after, err := marshal(e.After)
	if err != nil {
		return fmt.Errorf("encoding audit after: %w", err)
	}

	var actor *uuid.UUID
	if e.ActorID != uuid.Nil {
		actor = &e.ActorID
	}

	query := `
		INSERT INTO audit_log (org_id, actor_id, entity_type, entity_id, action, before_json, after_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	if _, err := exec.ExecContext(ctx, query, e.OrgID, actor, e.EntityType, e.EntityID, e.Action, before, after); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

// marshal returns an untyped nil for absent snapshots so the column is NULL.
func marshal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return b, nil
}
