package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/dealdesk/internal/event"
)

// Outbox stores events in webhook_outbox where the delivery subsystem picks
// them up, signs them and retries them.
type Outbox struct {
	db *sql.DB
}

func New(db *sql.DB) *Outbox {
	return &Outbox{db: db}
}

// NewEmitter returns the outbox, or an event.LogEmitter when the outbox is
// disabled.
func NewEmitter(db *sql.DB, outbox bool) event.Emitter {
	if !outbox {
		return event.LogEmitter{}
	}

	return New(db)
}

func (o *Outbox) Emit(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("encoding event payload: %w", err)
	}

	query := `
		INSERT INTO webhook_outbox (org_id, event_type, entity_type, entity_id, payload_json, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	if _, err := o.db.ExecContext(ctx, query, e.OrgID, e.Type, e.EntityType, e.EntityID, payload); err != nil {
		return fmt.Errorf("inserting outbox event: %w", err)
	}

	return nil
}
