// internal/escrow/memory_test.go
package escrow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdParams(idemKey string) HoldParams {
	return HoldParams{
		From:           uuid.New(),
		To:             uuid.New(),
		Amount:         150,
		Currency:       "USD",
		Reason:         "commission escrow hold",
		IdempotencyKey: idemKey,
	}
}

func TestHoldFundsRejectsNonPositiveAmount(t *testing.T) {
	b := NewMemoryBridge()
	params := holdParams("")
	params.Amount = 0
	_, err := b.HoldFunds(context.Background(), params)
	assert.Error(t, err)
	assert.Zero(t, b.HoldCount())
}

func TestHoldFundsDedupesByIdempotencyKey(t *testing.T) {
	b := NewMemoryBridge()
	ctx := context.Background()

	first, err := b.HoldFunds(ctx, holdParams("escrow-hold-abc"))
	require.NoError(t, err)

	retry, err := b.HoldFunds(ctx, holdParams("escrow-hold-abc"))
	require.NoError(t, err)
	assert.Equal(t, first, retry)
	assert.Equal(t, 1, b.HoldCount())

	other, err := b.HoldFunds(ctx, holdParams("escrow-hold-def"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, b.HoldCount())
}

func TestReleaseIsTerminal(t *testing.T) {
	b := NewMemoryBridge()
	ctx := context.Background()

	ref, err := b.HoldFunds(ctx, holdParams(""))
	require.NoError(t, err)

	require.NoError(t, b.ReleaseFunds(ctx, ref, "manual", uuid.New()))

	hold, ok := b.Hold(ref)
	require.True(t, ok)
	assert.Equal(t, HoldStateReleased, hold.State)
	assert.Equal(t, 1, hold.ReleaseCount)

	// Released funds can be neither released again nor refunded.
	assert.Error(t, b.ReleaseFunds(ctx, ref, "manual", uuid.New()))
	assert.Error(t, b.RefundFunds(ctx, ref, "manual"))

	hold, _ = b.Hold(ref)
	assert.Equal(t, 1, hold.ReleaseCount)
}

func TestDisputeLifecycle(t *testing.T) {
	b := NewMemoryBridge()
	ctx := context.Background()

	ref, err := b.HoldFunds(ctx, holdParams(""))
	require.NoError(t, err)

	disputeRef, err := b.CreateDispute(ctx, ref, uuid.New(), "content mismatch")
	require.NoError(t, err)
	assert.NotEmpty(t, disputeRef)

	hold, _ := b.Hold(ref)
	assert.Equal(t, HoldStateDisputed, hold.State)

	// A disputed hold cannot be disputed twice but can be resolved
	// either way.
	_, err = b.CreateDispute(ctx, ref, uuid.New(), "again")
	assert.Error(t, err)

	require.NoError(t, b.RefundFunds(ctx, ref, "dispute_resolution"))
	hold, _ = b.Hold(ref)
	assert.Equal(t, HoldStateRefunded, hold.State)
}

func TestUnknownReferenceErrors(t *testing.T) {
	b := NewMemoryBridge()
	ctx := context.Background()

	assert.Error(t, b.ReleaseFunds(ctx, "esc_missing", "manual", uuid.New()))
	assert.Error(t, b.RefundFunds(ctx, "esc_missing", "manual"))
	_, err := b.CreateDispute(ctx, "esc_missing", uuid.New(), "reason")
	assert.Error(t, err)
}
