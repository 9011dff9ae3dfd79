// internal/store/store.go
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/models"
)

// RequestStore owns the canonical CustomContentRequest entities. Every
// mutation in the system funnels through Transition, which is the only place
// transition legality is checked, so the persistence technology can be
// swapped without touching the state machine.
type RequestStore interface {
	Create(ctx context.Context, req *models.CustomContentRequest) error
	Get(ctx context.Context, id uuid.UUID) (*models.CustomContentRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, role models.UserType) ([]models.CustomContentRequest, error)
	ListByPlatform(ctx context.Context, platformID uuid.UUID) ([]models.CustomContentRequest, error)
	ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.CustomContentRequest, error)

	// Transition is the compare-and-transition primitive: it loads the
	// request under per-request mutual exclusion, verifies the current
	// status is in the allowed predecessor set (nil allows any
	// non-terminal status), applies mutate, and commits the new state
	// together with any appended offers, revisions and events. If mutate
	// returns an error nothing is written and the error is returned
	// unchanged.
	Transition(ctx context.Context, id uuid.UUID, action string,
		allowed []models.RequestStatus,
		mutate func(req *models.CustomContentRequest) error) (*models.CustomContentRequest, error)

	// Event feed for the out-of-band notifier.
	UndispatchedEvents(ctx context.Context, limit int) ([]models.RequestEvent, error)
	MarkEventDispatched(ctx context.Context, eventID uuid.UUID) error
}

func statusAllowed(current models.RequestStatus, allowed []models.RequestStatus) bool {
	if allowed == nil {
		return !current.Terminal()
	}
	for _, s := range allowed {
		if s == current {
			return true
		}
	}
	return false
}
