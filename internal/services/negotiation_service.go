// internal/services/negotiation_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

// NegotiationService runs the bilateral offer/counter-offer protocol. A new
// offer always resolves the previous pending one, so at most one offer is
// open at any time.
type NegotiationService struct {
	store store.RequestStore
	cfg   *config.Config
}

type RespondRequest struct {
	Action  string  `json:"action" validate:"required,oneof=accept counter reject"`
	Amount  float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Message string  `json:"message,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

func NewNegotiationService(requestStore store.RequestStore, cfg *config.Config) *NegotiationService {
	return &NegotiationService{
		store: requestStore,
		cfg:   cfg,
	}
}

// CreatorRespond handles the creator's answer to the current fan offer:
// accept finalizes the price, counter re-opens negotiation with a new offer,
// reject cancels the request.
func (s *NegotiationService) CreatorRespond(ctx context.Context, requestID, creatorID uuid.UUID, req *RespondRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	allowed := []models.RequestStatus{models.StatusPendingCreatorReview, models.StatusNegotiating}
	return s.store.Transition(ctx, requestID, "creator_respond", allowed, func(r *models.CustomContentRequest) error {
		if r.CreatorID != creatorID {
			return apperrors.UnauthorizedActor("respond to this commission request")
		}
		return s.respond(r, models.OfferOriginCreator, creatorID, req)
	})
}

// FanRespond handles the fan's answer to a creator counter offer. Only legal
// while negotiating; accept and counter additionally require the pending
// offer to be creator-origin, so the fan cannot settle their own price.
func (s *NegotiationService) FanRespond(ctx context.Context, requestID, fanID uuid.UUID, req *RespondRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	allowed := []models.RequestStatus{models.StatusNegotiating}
	return s.store.Transition(ctx, requestID, "fan_respond", allowed, func(r *models.CustomContentRequest) error {
		if r.FanID != fanID {
			return apperrors.UnauthorizedActor("respond to this commission request")
		}
		return s.respond(r, models.OfferOriginFan, fanID, req)
	})
}

// respond applies one negotiation action. Accept and counter are only legal
// against the other party's pending offer; a price is final only when both
// sides have agreed to it. Reject is legal for either party at any point.
func (s *NegotiationService) respond(r *models.CustomContentRequest, origin models.OfferOrigin, actorID uuid.UUID, req *RespondRequest) error {
	now := time.Now()
	current := r.CurrentOffer()

	switch models.RespondAction(req.Action) {
	case models.RespondActionAccept:
		if current == nil {
			return apperrors.Validation("no open offer to accept")
		}
		if current.Origin == origin {
			return apperrors.Validation("cannot accept your own offer; wait for the other party")
		}
		if current.Expired(now) {
			// A stale offer cannot be accepted; it counts as rejected
			// and the expiry sweep will close the request out.
			return apperrors.Validation("current offer has expired")
		}
		current.Outcome = models.OfferOutcomeAccepted
		current.ResolvedAt = &now
		amount := current.Amount
		r.NegotiatedAmount = &amount
		r.FinalAmount = &amount
		r.Status = models.StatusAccepted
		r.Events = append(r.Events, models.NewEvent(models.EventOfferAccepted, &actorID, models.JSONB{
			"final_amount": amount,
			"currency":     r.Currency,
		}))

	case models.RespondActionCounter:
		if req.Amount <= 0 {
			return apperrors.Validation("counter offer requires a positive amount")
		}
		if current != nil && current.Origin == origin {
			return apperrors.Validation("cannot counter your own offer; wait for the other party")
		}
		if current != nil {
			current.Outcome = models.OfferOutcomeCountered
			current.ResolvedAt = &now
		}
		r.Offers = append(r.Offers, models.NegotiationOffer{
			Origin:    origin,
			Amount:    req.Amount,
			Message:   req.Message,
			Outcome:   models.OfferOutcomePending,
			ExpiresAt: now.AddDate(0, 0, s.cfg.Policy.OfferExpiryDays),
		})
		r.Status = models.StatusNegotiating
		r.Events = append(r.Events, models.NewEvent(models.EventOfferCountered, &actorID, models.JSONB{
			"amount": req.Amount,
			"origin": string(origin),
		}))

	case models.RespondActionReject:
		if current != nil {
			current.Outcome = models.OfferOutcomeRejected
			current.ResolvedAt = &now
		}
		r.Status = models.StatusCancelled
		r.CancelledAt = &now
		r.CancellationReason = req.Reason
		if r.CancellationReason == "" {
			r.CancellationReason = "rejected by " + string(origin)
		}
		r.Events = append(r.Events, models.NewEvent(models.EventRequestCancelled, &actorID, models.JSONB{
			"reason": r.CancellationReason,
		}))

	default:
		return apperrors.Validation("action must be accept, counter or reject")
	}

	return nil
}

// ExpireStaleOffers closes out requests whose current offer passed its expiry
// without a response. Run periodically so a stale offer can never be accepted
// long after the other party moved on.
func (s *NegotiationService) ExpireStaleOffers(ctx context.Context) (int, error) {
	expired := 0
	for _, status := range []models.RequestStatus{models.StatusPendingCreatorReview, models.StatusNegotiating} {
		requests, err := s.store.ListByStatus(ctx, status)
		if err != nil {
			return expired, err
		}
		for _, candidate := range requests {
			cur := candidate.CurrentOffer()
			if cur == nil || !cur.Expired(time.Now()) {
				continue
			}
			_, err := s.store.Transition(ctx, candidate.ID, "expire_offer",
				[]models.RequestStatus{models.StatusPendingCreatorReview, models.StatusNegotiating},
				func(r *models.CustomContentRequest) error {
					now := time.Now()
					open := r.CurrentOffer()
					if open == nil || !open.Expired(now) {
						// Re-check under the lock; the offer may have
						// been resolved since listing.
						return apperrors.Validation("offer no longer expired")
					}
					open.Outcome = models.OfferOutcomeRejected
					open.ResolvedAt = &now
					r.Status = models.StatusExpired
					r.CancelledAt = &now
					r.CancellationReason = "offer expired without response"
					r.Events = append(r.Events, models.NewEvent(models.EventRequestExpired, nil, models.JSONB{
						"expired_offer_amount": open.Amount,
					}))
					return nil
				})
			if err != nil {
				logrus.WithError(err).WithField("request_id", candidate.ID).
					Warn("Failed to expire stale offer")
				continue
			}
			expired++
		}
	}
	return expired, nil
}

// RunExpirySweep loops ExpireStaleOffers until the context is cancelled.
func (s *NegotiationService) RunExpirySweep(ctx context.Context) {
	interval := time.Duration(s.cfg.Policy.SweepInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ExpireStaleOffers(ctx); err != nil {
				logrus.WithError(err).Error("Offer expiry sweep failed")
			} else if n > 0 {
				logrus.WithField("expired", n).Info("Expired stale offers")
			}
		}
	}
}
