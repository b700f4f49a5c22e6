package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

const (
	TypeDocumentGenerated     = "document.generated"
	TypeEnvelopeStatusChanged = "envelope.statusChanged"
)

// Event is a domain event handed to the outbound webhook fan-out.
type Event struct {
	OrgID      uuid.UUID      `json:"orgId"`
	Type       string         `json:"eventType"`
	EntityType string         `json:"entityType"`
	EntityID   uuid.UUID      `json:"entityId"`
	Payload    map[string]any `json:"payload"`
}

type Emitter interface {
	Emit(ctx context.Context, e Event) error
}

// Publish emits e and logs failures. Events are only published after the
// mutation they describe has committed, so a failure here cannot be undone
// and is not reported to the caller.
func Publish(ctx context.Context, em Emitter, e Event) {
	if em == nil {
		return
	}

	if err := em.Emit(ctx, e); err != nil {
		slog.Error("failed to emit event",
			"type", e.Type,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"error", err,
		)
	}
}

// LogEmitter writes events to the default logger. The binaries use it when
// EVENTS_OUTBOX is false.
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, e Event) error {
	slog.Info("domain event",
		"type", e.Type,
		"org_id", e.OrgID,
		"entity_type", e.EntityType,
		"entity_id", e.EntityID,
	)

	return nil
}

// Recorder keeps emitted events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) OfType(t string) []Event {
	var out []Event

	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}

	return out
}
