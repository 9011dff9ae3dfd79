// internal/services/workflow_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/escrow"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
)

type WorkflowTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *store.MemoryStore
	bridge *escrow.MemoryBridge
	cfg    *config.Config

	commission  *CommissionService
	negotiation *NegotiationService
	compliance  *ComplianceService
	escrow      *EscrowService
	delivery    *DeliveryService

	fanID     uuid.UUID
	creatorID uuid.UUID
	adminID   uuid.UUID
}

func (suite *WorkflowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = store.NewMemoryStore()
	suite.bridge = escrow.NewMemoryBridge()
	suite.cfg = &config.Config{
		Escrow: config.EscrowConfig{
			HoldWindowDays: 30,
			CallTimeout:    5,
		},
		Policy: config.PolicyConfig{
			OfferExpiryDays: 7,
			MaxRevisions:    2,
		},
	}

	suite.commission = NewCommissionService(suite.store, suite.cfg)
	suite.negotiation = NewNegotiationService(suite.store, suite.cfg)
	suite.compliance = NewComplianceService(suite.store)
	suite.escrow = NewEscrowService(suite.store, suite.bridge, suite.cfg)
	suite.delivery = NewDeliveryService(suite.store, suite.bridge, suite.cfg)

	suite.fanID = uuid.New()
	suite.creatorID = uuid.New()
	suite.adminID = uuid.New()
}

func (suite *WorkflowTestSuite) createRequest() *models.CustomContentRequest {
	request, err := suite.commission.CreateRequest(suite.ctx, suite.fanID, &CreateCommissionRequest{
		CreatorID:      suite.creatorID,
		PlatformID:     uuid.New(),
		ContentType:    "video",
		Description:    "A custom birthday greeting video",
		ProposedAmount: 150,
	})
	suite.Require().NoError(err)
	return request
}

// acceptedRequest drives a fresh request through negotiation to accepted.
func (suite *WorkflowTestSuite) acceptedRequest() *models.CustomContentRequest {
	request := suite.createRequest()
	accepted, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "accept"})
	suite.Require().NoError(err)
	return accepted
}

// fundedRequest drives a request all the way into production with escrow held.
func (suite *WorkflowTestSuite) fundedRequest() *models.CustomContentRequest {
	request := suite.acceptedRequest()
	_, err := suite.compliance.AcceptTerms(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	_, err = suite.compliance.SignNoChargebackAgreement(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	funded, err := suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	return funded
}

// deliveredRequest additionally has content delivered and awaiting review.
func (suite *WorkflowTestSuite) deliveredRequest() *models.CustomContentRequest {
	request := suite.fundedRequest()
	delivered, err := suite.delivery.DeliverContent(suite.ctx, request.ID, suite.creatorID,
		&DeliverContentRequest{ContentRef: "deliveries/final.mp4"})
	suite.Require().NoError(err)
	return delivered
}

func (suite *WorkflowTestSuite) TestCreateRequestOpensInitialOffer() {
	request := suite.createRequest()

	assert.Equal(suite.T(), models.StatusPendingCreatorReview, request.Status)
	assert.Equal(suite.T(), int64(1), request.SequenceNumber)
	suite.Require().Len(request.Offers, 1)
	assert.Equal(suite.T(), models.OfferOriginFan, request.Offers[0].Origin)
	assert.Equal(suite.T(), models.OfferOutcomePending, request.Offers[0].Outcome)
	assert.Equal(suite.T(), 150.0, request.Offers[0].Amount)
	assert.True(suite.T(), request.Offers[0].ExpiresAt.After(time.Now()))
}

func (suite *WorkflowTestSuite) TestCannotCommissionYourself() {
	_, err := suite.commission.CreateRequest(suite.ctx, suite.fanID, &CreateCommissionRequest{
		CreatorID:      suite.fanID,
		PlatformID:     uuid.New(),
		ContentType:    "photo",
		Description:    "self portrait",
		ProposedAmount: 10,
	})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))
}

func (suite *WorkflowTestSuite) TestNegotiationCounterOfferCycle() {
	request := suite.createRequest()

	// Creator counters the fan's 150 with 200.
	countered, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "counter", Amount: 200, Message: "rush fee"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusNegotiating, countered.Status)
	suite.Require().Len(countered.Offers, 2)
	assert.Equal(suite.T(), models.OfferOutcomeCountered, countered.Offers[0].Outcome)
	assert.NotNil(suite.T(), countered.Offers[0].ResolvedAt)

	// Fan counters back with 175.
	countered, err = suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "counter", Amount: 175})
	suite.Require().NoError(err)
	suite.Require().Len(countered.Offers, 3)

	// Creator accepts 175; that becomes the immutable final amount.
	accepted, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "accept"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusAccepted, accepted.Status)
	suite.Require().NotNil(accepted.FinalAmount)
	assert.Equal(suite.T(), 175.0, *accepted.FinalAmount)

	// Exactly one offer was open at any time.
	pending := 0
	for _, offer := range accepted.Offers {
		if offer.Outcome == models.OfferOutcomePending {
			pending++
		}
	}
	assert.Equal(suite.T(), 0, pending)
}

func (suite *WorkflowTestSuite) TestFanCannotRespondToOwnOffer() {
	request := suite.createRequest()

	// The only open offer is the fan's initial one and the request is
	// still pending creator review.
	_, err := suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "accept"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidStateTransition))
}

func (suite *WorkflowTestSuite) TestCreatorCannotSettleOwnCounterOffer() {
	request := suite.createRequest()

	// Creator counters; the pending offer is now creator-origin.
	_, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "counter", Amount: 500})
	suite.Require().NoError(err)

	// The creator can neither accept nor re-counter their own price; the
	// final amount must come from an offer the fan agreed to.
	_, err = suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "accept"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))

	_, err = suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "counter", Amount: 600})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))

	stored, getErr := suite.store.Get(suite.ctx, request.ID)
	suite.Require().NoError(getErr)
	assert.Equal(suite.T(), models.StatusNegotiating, stored.Status)
	assert.Nil(suite.T(), stored.FinalAmount)
	current := stored.CurrentOffer()
	suite.Require().NotNil(current)
	assert.Equal(suite.T(), models.OfferOriginCreator, current.Origin)
	assert.Equal(suite.T(), 500.0, current.Amount)
}

func (suite *WorkflowTestSuite) TestFanCannotSettleOwnCounterOffer() {
	request := suite.createRequest()

	_, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "counter", Amount: 200})
	suite.Require().NoError(err)
	_, err = suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "counter", Amount: 175})
	suite.Require().NoError(err)

	// The pending offer is fan-origin; the fan cannot settle it.
	_, err = suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "accept"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))

	_, err = suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "counter", Amount: 160})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))

	// Withdrawing via reject stays legal for either party at any point.
	cancelled, err := suite.negotiation.FanRespond(suite.ctx, request.ID, suite.fanID,
		&RespondRequest{Action: "reject", Reason: "changed my mind"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusCancelled, cancelled.Status)
}

func (suite *WorkflowTestSuite) TestWrongActorCannotRespond() {
	request := suite.createRequest()

	_, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, uuid.New(),
		&RespondRequest{Action: "accept"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUnauthorizedActor))

	// The failed attempt wrote nothing.
	stored, getErr := suite.store.Get(suite.ctx, request.ID)
	suite.Require().NoError(getErr)
	assert.Equal(suite.T(), models.StatusPendingCreatorReview, stored.Status)
}

func (suite *WorkflowTestSuite) TestRejectCancelsRequest() {
	request := suite.createRequest()

	cancelled, err := suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "reject", Reason: "fully booked"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusCancelled, cancelled.Status)
	assert.Equal(suite.T(), "fully booked", cancelled.CancellationReason)
	assert.NotNil(suite.T(), cancelled.CancelledAt)
	assert.Equal(suite.T(), models.OfferOutcomeRejected, cancelled.Offers[0].Outcome)

	// Terminal: no further negotiation is possible.
	_, err = suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "counter", Amount: 80})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidStateTransition))
}

func (suite *WorkflowTestSuite) TestComplianceGateBlocksFunding() {
	request := suite.acceptedRequest()

	// Neither attestation is recorded yet.
	_, err := suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.fanID)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeComplianceNotSatisfied))

	// The abort left the request exactly where it was.
	stored, getErr := suite.store.Get(suite.ctx, request.ID)
	suite.Require().NoError(getErr)
	assert.Equal(suite.T(), models.StatusAccepted, stored.Status)
	assert.Empty(suite.T(), stored.EscrowTransactionID)
	assert.Zero(suite.T(), suite.bridge.HoldCount())

	// One attestation is not enough.
	_, err = suite.compliance.AcceptTerms(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	_, err = suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.fanID)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeComplianceNotSatisfied))

	// Both attestations unlock funding.
	_, err = suite.compliance.SignNoChargebackAgreement(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	funded, err := suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusInProduction, funded.Status)
	assert.NotEmpty(suite.T(), funded.EscrowTransactionID)
}

func (suite *WorkflowTestSuite) TestComplianceIsIdempotent() {
	request := suite.acceptedRequest()

	first, err := suite.compliance.AcceptTerms(suite.ctx, request.ID, suite.creatorID)
	suite.Require().NoError(err)
	suite.Require().NotNil(first.TermsAcceptedAt)
	originalStamp := *first.TermsAcceptedAt

	time.Sleep(5 * time.Millisecond)
	second, err := suite.compliance.AcceptTerms(suite.ctx, request.ID, suite.creatorID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), originalStamp, *second.TermsAcceptedAt)

	// Re-confirmation did not append a second attestation event.
	count := 0
	for _, ev := range second.Events {
		if ev.Type == models.EventTermsAccepted {
			count++
		}
	}
	assert.Equal(suite.T(), 1, count)
}

func (suite *WorkflowTestSuite) TestOnlyFanSignsAgreement() {
	request := suite.acceptedRequest()

	_, err := suite.compliance.SignNoChargebackAgreement(suite.ctx, request.ID, suite.creatorID)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUnauthorizedActor))
}

func (suite *WorkflowTestSuite) TestFundingIsIdempotentAcrossRetries() {
	request := suite.fundedRequest()
	assert.Equal(suite.T(), 1, suite.bridge.HoldCount())

	// A duplicate funding attempt is rejected by the state machine and
	// does not create a second hold.
	_, err := suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.fanID)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidStateTransition))
	assert.Equal(suite.T(), 1, suite.bridge.HoldCount())
}

func (suite *WorkflowTestSuite) TestOnlyFanFundsEscrow() {
	request := suite.acceptedRequest()
	_, err := suite.compliance.AcceptTerms(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)
	_, err = suite.compliance.SignNoChargebackAgreement(suite.ctx, request.ID, suite.fanID)
	suite.Require().NoError(err)

	_, err = suite.escrow.ProcessPaymentToEscrow(suite.ctx, request.ID, suite.creatorID)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUnauthorizedActor))
	assert.Zero(suite.T(), suite.bridge.HoldCount())
}

func (suite *WorkflowTestSuite) TestDeliveryAndApprovalReleasesEscrow() {
	request := suite.deliveredRequest()
	assert.Equal(suite.T(), models.StatusAwaitingReview, request.Status)
	assert.Equal(suite.T(), models.ReviewOutcomePending, request.ReviewOutcome)
	assert.Equal(suite.T(), "deliveries/final.mp4", request.DeliveredContentRef)

	completed, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "approve", Notes: "perfect"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusCompleted, completed.Status)
	assert.Equal(suite.T(), models.ReviewOutcomeApproved, completed.ReviewOutcome)
	assert.NotNil(suite.T(), completed.CompletedAt)

	hold, ok := suite.bridge.Hold(completed.EscrowTransactionID)
	suite.Require().True(ok)
	assert.Equal(suite.T(), escrow.HoldStateReleased, hold.State)
	assert.Equal(suite.T(), 1, hold.ReleaseCount)
}

func (suite *WorkflowTestSuite) TestOnlyCreatorDelivers() {
	request := suite.fundedRequest()

	_, err := suite.delivery.DeliverContent(suite.ctx, request.ID, suite.fanID,
		&DeliverContentRequest{ContentRef: "deliveries/fake.mp4"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUnauthorizedActor))
}

func (suite *WorkflowTestSuite) TestRevisionCycle() {
	request := suite.deliveredRequest()

	// Fan asks for rework; request returns to production with an open
	// revision and funds stay held.
	revised, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "request_revision", RevisionDetails: "wrong song in the background"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusInProduction, revised.Status)
	suite.Require().Len(revised.Revisions, 1)
	assert.Equal(suite.T(), models.RevisionStatusPending, revised.Revisions[0].Status)

	hold, ok := suite.bridge.Hold(revised.EscrowTransactionID)
	suite.Require().True(ok)
	assert.Equal(suite.T(), escrow.HoldStateHeld, hold.State)

	// Redelivery closes the revision out.
	redelivered, err := suite.delivery.DeliverContent(suite.ctx, request.ID, suite.creatorID,
		&DeliverContentRequest{ContentRef: "deliveries/final_v2.mp4"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusAwaitingReview, redelivered.Status)
	assert.Equal(suite.T(), models.RevisionStatusCompleted, redelivered.Revisions[0].Status)
	assert.NotNil(suite.T(), redelivered.Revisions[0].CompletedAt)
}

func (suite *WorkflowTestSuite) TestRevisionLimitEnforced() {
	request := suite.deliveredRequest()

	for i := 0; i < suite.cfg.Policy.MaxRevisions; i++ {
		_, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
			&FanReviewRequest{Action: "request_revision", RevisionDetails: "still not right"})
		suite.Require().NoError(err)
		_, err = suite.delivery.DeliverContent(suite.ctx, request.ID, suite.creatorID,
			&DeliverContentRequest{ContentRef: "deliveries/retry.mp4"})
		suite.Require().NoError(err)
	}

	_, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "request_revision", RevisionDetails: "one more"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))
}

func (suite *WorkflowTestSuite) TestDisputeFreezesFundsUntilResolution() {
	request := suite.deliveredRequest()

	disputed, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "dispute", Notes: "not what was agreed"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusDisputed, disputed.Status)
	assert.NotEmpty(suite.T(), disputed.DisputeReference)

	hold, ok := suite.bridge.Hold(disputed.EscrowTransactionID)
	suite.Require().True(ok)
	assert.Equal(suite.T(), escrow.HoldStateDisputed, hold.State)

	// No review action is possible while disputed.
	_, err = suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "approve"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidStateTransition))

	// Resolution in the creator's favor releases the hold and completes.
	resolved, err := suite.delivery.ResolveDispute(suite.ctx, request.ID, suite.adminID,
		&ResolveDisputeRequest{Outcome: "release"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusCompleted, resolved.Status)

	hold, _ = suite.bridge.Hold(resolved.EscrowTransactionID)
	assert.Equal(suite.T(), escrow.HoldStateReleased, hold.State)
	assert.Equal(suite.T(), 1, hold.ReleaseCount)
}

func (suite *WorkflowTestSuite) TestDisputeFailureLeavesReviewOpen() {
	request := suite.deliveredRequest()

	// Simulate bridge-side drift: the hold was settled out of band, so the
	// dispute call will be rejected.
	suite.Require().NoError(suite.bridge.RefundFunds(suite.ctx, request.EscrowTransactionID, "out of band"))

	_, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "dispute", Notes: "content mismatch"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeEscrowDisputeFailed))

	// The failed bridge call aborted the transition: still reviewable.
	stored, getErr := suite.store.Get(suite.ctx, request.ID)
	suite.Require().NoError(getErr)
	assert.Equal(suite.T(), models.StatusAwaitingReview, stored.Status)
	assert.Empty(suite.T(), stored.DisputeReference)
}

func (suite *WorkflowTestSuite) TestDisputeRefundCancelsAndClearsEscrowRef() {
	request := suite.deliveredRequest()
	escrowRef := request.EscrowTransactionID

	_, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "dispute", Notes: "wrong content entirely"})
	suite.Require().NoError(err)

	resolved, err := suite.delivery.ResolveDispute(suite.ctx, request.ID, suite.adminID,
		&ResolveDisputeRequest{Outcome: "refund"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusCancelled, resolved.Status)
	assert.Empty(suite.T(), resolved.EscrowTransactionID)

	hold, ok := suite.bridge.Hold(escrowRef)
	suite.Require().True(ok)
	assert.Equal(suite.T(), escrow.HoldStateRefunded, hold.State)
}

func (suite *WorkflowTestSuite) TestExpirySweepClosesStaleRequests() {
	request := suite.createRequest()

	// Backdate the open offer past its expiry window.
	_, err := suite.store.Transition(suite.ctx, request.ID, "backdate", nil,
		func(r *models.CustomContentRequest) error {
			r.Offers[0].ExpiresAt = time.Now().Add(-time.Hour)
			return nil
		})
	suite.Require().NoError(err)

	// A stale offer cannot be accepted.
	_, err = suite.negotiation.CreatorRespond(suite.ctx, request.ID, suite.creatorID,
		&RespondRequest{Action: "accept"})
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidation))

	expired, err := suite.negotiation.ExpireStaleOffers(suite.ctx)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, expired)

	stored, err := suite.store.Get(suite.ctx, request.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StatusExpired, stored.Status)
	assert.Equal(suite.T(), models.OfferOutcomeRejected, stored.Offers[0].Outcome)

	// Sweep is convergent: a second pass finds nothing.
	expired, err = suite.negotiation.ExpireStaleOffers(suite.ctx)
	suite.Require().NoError(err)
	assert.Zero(suite.T(), expired)
}

func (suite *WorkflowTestSuite) TestGetRequestRestrictedToParties() {
	request := suite.createRequest()

	_, err := suite.commission.GetRequest(suite.ctx, request.ID, uuid.New(), models.UserTypeFan)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUnauthorizedActor))

	// Admins bypass party scoping.
	_, err = suite.commission.GetRequest(suite.ctx, request.ID, uuid.New(), models.UserTypeAdmin)
	assert.NoError(suite.T(), err)
}

func (suite *WorkflowTestSuite) TestEventTrailCoversFullLifecycle() {
	request := suite.deliveredRequest()
	completed, err := suite.delivery.FanReview(suite.ctx, request.ID, suite.fanID,
		&FanReviewRequest{Action: "approve"})
	suite.Require().NoError(err)

	var types []models.EventType
	for _, ev := range completed.Events {
		types = append(types, ev.Type)
	}
	assert.Equal(suite.T(), []models.EventType{
		models.EventRequestCreated,
		models.EventOfferAccepted,
		models.EventTermsAccepted,
		models.EventAgreementSigned,
		models.EventPaymentProcessing,
		models.EventEscrowFunded,
		models.EventProductionStarted,
		models.EventContentDelivered,
		models.EventReviewApproved,
		models.EventEscrowReleased,
	}, types)
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}
