// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestEvent is a typed transition record appended in the same transaction
// as the state change it describes. The notifier consumes these rows out of
// band; they double as the request's communication/audit trail.
type RequestEvent struct {
	BaseModel
	RequestID    uuid.UUID  `json:"request_id" gorm:"type:uuid;not null;index"`
	Type         EventType  `json:"type" gorm:"type:varchar(40);not null;index"`
	ActorID      *uuid.UUID `json:"actor_id" gorm:"type:uuid"`
	Data         JSONB      `json:"data,omitempty" gorm:"type:jsonb"`
	DispatchedAt *time.Time `json:"dispatched_at" gorm:"index"`
}

// NewEvent builds an undispatched event row for appending inside a transition.
func NewEvent(eventType EventType, actorID *uuid.UUID, data JSONB) RequestEvent {
	return RequestEvent{
		Type:    eventType,
		ActorID: actorID,
		Data:    data,
	}
}
