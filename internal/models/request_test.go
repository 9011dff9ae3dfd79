// internal/models/request_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCurrentOfferPicksLatestPending(t *testing.T) {
	r := &CustomContentRequest{
		Offers: []NegotiationOffer{
			{Position: 1, Amount: 100, Outcome: OfferOutcomeCountered},
			{Position: 2, Amount: 120, Outcome: OfferOutcomeCountered},
			{Position: 3, Amount: 110, Outcome: OfferOutcomePending},
		},
	}
	offer := r.CurrentOffer()
	assert.NotNil(t, offer)
	assert.Equal(t, 3, offer.Position)

	r.Offers[2].Outcome = OfferOutcomeAccepted
	assert.Nil(t, r.CurrentOffer())
}

func TestComplianceSatisfiedRequiresBothAttestations(t *testing.T) {
	now := time.Now()
	r := &CustomContentRequest{}
	assert.False(t, r.ComplianceSatisfied())

	r.TermsAcceptedAt = &now
	assert.False(t, r.ComplianceSatisfied())

	r.NoChargebackSignedAt = &now
	assert.True(t, r.ComplianceSatisfied())
}

func TestOfferExpired(t *testing.T) {
	now := time.Now()
	offer := &NegotiationOffer{Outcome: OfferOutcomePending, ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, offer.Expired(now))

	offer.ExpiresAt = now.Add(time.Hour)
	assert.False(t, offer.Expired(now))

	// Settled offers never expire regardless of timestamp.
	offer.Outcome = OfferOutcomeAccepted
	offer.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, offer.Expired(now))
}

func TestParticipantRole(t *testing.T) {
	fanID := uuid.New()
	creatorID := uuid.New()
	r := &CustomContentRequest{FanID: fanID, CreatorID: creatorID}

	assert.Equal(t, UserTypeFan, r.ParticipantRole(fanID))
	assert.Equal(t, UserTypeCreator, r.ParticipantRole(creatorID))
	assert.Empty(t, r.ParticipantRole(uuid.New()))
}

func TestStatusTerminalAndEscrowHeld(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.False(t, StatusInEscrow.Terminal())
	assert.False(t, StatusDisputed.Terminal())

	assert.True(t, StatusInEscrow.EscrowHeld())
	assert.True(t, StatusDisputed.EscrowHeld())
	assert.False(t, StatusNegotiating.EscrowHeld())
	assert.False(t, StatusCancelled.EscrowHeld())
}
