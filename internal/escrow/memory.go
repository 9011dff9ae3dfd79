// internal/escrow/memory.go
package escrow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type HoldState string

const (
	HoldStateHeld     HoldState = "held"
	HoldStateReleased HoldState = "released"
	HoldStateRefunded HoldState = "refunded"
	HoldStateDisputed HoldState = "disputed"
)

type MemoryHold struct {
	Ref          string
	Params       HoldParams
	State        HoldState
	DisputeRef   string
	ReleaseCount int
}

// MemoryBridge simulates escrow custody in process. It backs development mode
// when no Stripe credentials are configured, mirroring how the storage
// service degrades without AWS credentials, and it is the bridge used by the
// service tests.
type MemoryBridge struct {
	mu     sync.Mutex
	holds  map[string]*MemoryHold
	byIdem map[string]string
}

func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		holds:  make(map[string]*MemoryHold),
		byIdem: make(map[string]string),
	}
}

func (b *MemoryBridge) HoldFunds(_ context.Context, params HoldParams) (string, error) {
	if params.Amount <= 0 {
		return "", errors.New("hold amount must be positive")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Retries with the same idempotency key return the existing hold
	// instead of double-holding funds.
	if params.IdempotencyKey != "" {
		if ref, ok := b.byIdem[params.IdempotencyKey]; ok {
			return ref, nil
		}
	}

	ref := "esc_" + uuid.NewString()
	b.holds[ref] = &MemoryHold{Ref: ref, Params: params, State: HoldStateHeld}
	if params.IdempotencyKey != "" {
		b.byIdem[params.IdempotencyKey] = ref
	}
	return ref, nil
}

func (b *MemoryBridge) ReleaseFunds(_ context.Context, escrowRef, reason string, authorizedBy uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	hold, ok := b.holds[escrowRef]
	if !ok {
		return fmt.Errorf("unknown escrow reference %s", escrowRef)
	}
	if hold.State != HoldStateHeld && hold.State != HoldStateDisputed {
		return fmt.Errorf("escrow hold %s is %s, cannot release", escrowRef, hold.State)
	}
	hold.State = HoldStateReleased
	hold.ReleaseCount++
	return nil
}

func (b *MemoryBridge) RefundFunds(_ context.Context, escrowRef, reason string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	hold, ok := b.holds[escrowRef]
	if !ok {
		return fmt.Errorf("unknown escrow reference %s", escrowRef)
	}
	if hold.State != HoldStateHeld && hold.State != HoldStateDisputed {
		return fmt.Errorf("escrow hold %s is %s, cannot refund", escrowRef, hold.State)
	}
	hold.State = HoldStateRefunded
	return nil
}

func (b *MemoryBridge) CreateDispute(_ context.Context, escrowRef string, initiatedBy uuid.UUID, reason string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hold, ok := b.holds[escrowRef]
	if !ok {
		return "", fmt.Errorf("unknown escrow reference %s", escrowRef)
	}
	if hold.State != HoldStateHeld {
		return "", fmt.Errorf("escrow hold %s is %s, cannot dispute", escrowRef, hold.State)
	}
	hold.State = HoldStateDisputed
	hold.DisputeRef = "dp_" + uuid.NewString()
	return hold.DisputeRef, nil
}

func (b *MemoryBridge) Healthy(_ context.Context) bool { return true }

// Hold exposes the simulated hold for health reporting and tests.
func (b *MemoryBridge) Hold(escrowRef string) (MemoryHold, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	hold, ok := b.holds[escrowRef]
	if !ok {
		return MemoryHold{}, false
	}
	return *hold, true
}

// HoldCount reports how many distinct holds have been created.
func (b *MemoryBridge) HoldCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.holds)
}
