// internal/store/memory_store_test.go
package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/models"
)

func newTestRequest() *models.CustomContentRequest {
	return &models.CustomContentRequest{
		PlatformID:     uuid.New(),
		FanID:          uuid.New(),
		CreatorID:      uuid.New(),
		ContentType:    models.ContentTypeVideo,
		Description:    "test commission",
		ProposedAmount: 100,
		Currency:       "USD",
		Status:         models.StatusPendingCreatorReview,
		Offers: []models.NegotiationOffer{
			{
				Origin:    models.OfferOriginFan,
				Amount:    100,
				Outcome:   models.OfferOutcomePending,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			},
		},
	}
}

func TestMemoryStoreCreateAssignsSequence(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		req := newTestRequest()
		require.NoError(t, s.Create(ctx, req))
		assert.Equal(t, int64(i), req.SequenceNumber)
		assert.NotEqual(t, uuid.Nil, req.ID)
		assert.NotEqual(t, uuid.Nil, req.Offers[0].ID)
	}
}

func TestMemoryStoreGetReturnsNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryStoreGetReturnsClone(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	got, err := s.Get(ctx, req.ID)
	require.NoError(t, err)
	got.Status = models.StatusCompleted
	got.Offers[0].Outcome = models.OfferOutcomeAccepted

	reread, err := s.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingCreatorReview, reread.Status)
	assert.Equal(t, models.OfferOutcomePending, reread.Offers[0].Outcome)
}

func TestTransitionRejectsDisallowedStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	_, err := s.Transition(ctx, req.ID, "deliver",
		[]models.RequestStatus{models.StatusInProduction},
		func(r *models.CustomContentRequest) error {
			t.Fatal("mutate must not run for a disallowed status")
			return nil
		})
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidStateTransition))
}

func TestTransitionNilAllowedMeansAnyNonTerminal(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	_, err := s.Transition(ctx, req.ID, "touch", nil,
		func(r *models.CustomContentRequest) error { return nil })
	require.NoError(t, err)

	// Drive to a terminal status, then nil-allowed must refuse.
	_, err = s.Transition(ctx, req.ID, "cancel", nil,
		func(r *models.CustomContentRequest) error {
			r.Status = models.StatusCancelled
			return nil
		})
	require.NoError(t, err)

	_, err = s.Transition(ctx, req.ID, "touch", nil,
		func(r *models.CustomContentRequest) error { return nil })
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidStateTransition))
}

func TestTransitionMutateFailureWritesNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	before, err := s.Get(ctx, req.ID)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Transition(ctx, req.ID, "partial", nil,
		func(r *models.CustomContentRequest) error {
			// Mutations before the failure must not leak out.
			r.Status = models.StatusAccepted
			r.Offers[0].Outcome = models.OfferOutcomeAccepted
			r.Offers = append(r.Offers, models.NegotiationOffer{Amount: 50})
			r.Events = append(r.Events, models.NewEvent(models.EventOfferAccepted, nil, nil))
			return boom
		})
	assert.ErrorIs(t, err, boom)

	after, err := s.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTransitionStampsAppendedRecords(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	updated, err := s.Transition(ctx, req.ID, "counter", nil,
		func(r *models.CustomContentRequest) error {
			r.Offers[0].Outcome = models.OfferOutcomeCountered
			r.Offers = append(r.Offers, models.NegotiationOffer{
				Origin:  models.OfferOriginCreator,
				Amount:  140,
				Outcome: models.OfferOutcomePending,
			})
			r.Events = append(r.Events, models.NewEvent(models.EventOfferCountered, nil, nil))
			return nil
		})
	require.NoError(t, err)

	appended := updated.Offers[1]
	assert.NotEqual(t, uuid.Nil, appended.ID)
	assert.Equal(t, req.ID, appended.RequestID)
	assert.Equal(t, 1, appended.Position)
	require.Len(t, updated.Events, 1)
	assert.Equal(t, req.ID, updated.Events[0].RequestID)
}

func TestTransitionSerializesConcurrentWriters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	req := newTestRequest()
	require.NoError(t, s.Create(ctx, req))

	// Many goroutines race to resolve the single pending offer; the
	// compare step under the lock lets exactly one of them through.
	const writers = 32
	var wg sync.WaitGroup
	succeeded := make(chan struct{}, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Transition(ctx, req.ID, "accept",
				[]models.RequestStatus{models.StatusPendingCreatorReview},
				func(r *models.CustomContentRequest) error {
					cur := r.CurrentOffer()
					if cur == nil {
						return errors.New("no open offer")
					}
					cur.Outcome = models.OfferOutcomeAccepted
					r.Status = models.StatusAccepted
					return nil
				})
			if err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	wins := 0
	for range succeeded {
		wins++
	}
	assert.Equal(t, 1, wins)

	final, err := s.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, final.Status)
	assert.Nil(t, final.CurrentOffer())
}

func TestListByUserFiltersByRole(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	fanID := uuid.New()
	asFan := newTestRequest()
	asFan.FanID = fanID
	require.NoError(t, s.Create(ctx, asFan))

	asCreator := newTestRequest()
	asCreator.CreatorID = fanID
	require.NoError(t, s.Create(ctx, asCreator))

	fanSide, err := s.ListByUser(ctx, fanID, models.UserTypeFan)
	require.NoError(t, err)
	require.Len(t, fanSide, 1)
	assert.Equal(t, asFan.ID, fanSide[0].ID)

	creatorSide, err := s.ListByUser(ctx, fanID, models.UserTypeCreator)
	require.NoError(t, err)
	require.Len(t, creatorSide, 1)
	assert.Equal(t, asCreator.ID, creatorSide[0].ID)
}

func TestEventFeedDispatchCycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	req := newTestRequest()
	req.Events = []models.RequestEvent{
		models.NewEvent(models.EventRequestCreated, nil, nil),
	}
	require.NoError(t, s.Create(ctx, req))

	pending, err := s.UndispatchedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.MarkEventDispatched(ctx, pending[0].ID))

	pending, err = s.UndispatchedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
