// internal/escrow/bridge.go
package escrow

import (
	"context"

	"github.com/google/uuid"
)

// HoldParams describes the funds to place under escrow custody.
type HoldParams struct {
	From           uuid.UUID
	To             uuid.UUID
	Amount         float64
	Currency       string
	Reason         string
	HoldWindowDays int
	AutoRelease    bool
	// IdempotencyKey dedupes retries after an ambiguous failure so a
	// retried hold can never double-charge the fan.
	IdempotencyKey string
	Metadata       map[string]string
}

// Bridge is the external escrow collaborator. The core consumes this
// boundary; it never implements custody itself.
type Bridge interface {
	// HoldFunds places the amount in escrow and returns the opaque
	// transaction reference proving custody.
	HoldFunds(ctx context.Context, params HoldParams) (string, error)

	// ReleaseFunds moves held funds to the creator. Only the review
	// cycle's approve path and dispute resolution may call it.
	ReleaseFunds(ctx context.Context, escrowRef, reason string, authorizedBy uuid.UUID) error

	// RefundFunds returns held funds to the fan; used when a dispute
	// resolves against the creator.
	RefundFunds(ctx context.Context, escrowRef, reason string) error

	// CreateDispute freezes the held funds pending external adjudication.
	CreateDispute(ctx context.Context, escrowRef string, initiatedBy uuid.UUID, reason string) (string, error)

	// Healthy reports whether the bridge can currently be reached.
	Healthy(ctx context.Context) bool
}
