package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
)

type recordResponse struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    *uuid.UUID      `json:"actorId,omitempty"`
	EntityType string          `json:"entityType"`
	EntityID   uuid.UUID       `json:"entityId"`
	Action     string          `json:"action"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toResponseList(records []*audit.Record) []recordResponse {
	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = recordResponse{
			ID:         rec.ID,
			ActorID:    rec.ActorID,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			Action:     rec.Action,
			Before:     rec.Before,
			After:      rec.After,
			CreatedAt:  rec.CreatedAt,
		}
	}

	return out
}
