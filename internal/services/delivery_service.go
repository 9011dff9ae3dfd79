// internal/services/delivery_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/escrow"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

// DeliveryService manages the content handoff, the fan's review, revision
// loops and dispute initiation. Bridge calls happen inside the transition so
// a failed release or dispute aborts the state change entirely.
type DeliveryService struct {
	store  store.RequestStore
	bridge escrow.Bridge
	cfg    *config.Config
}

type DeliverContentRequest struct {
	ContentRef string `json:"content_ref" validate:"required"`
	Notes      string `json:"notes,omitempty"`
}

type FanReviewRequest struct {
	Action          string `json:"action" validate:"required,oneof=approve request_revision dispute"`
	Notes           string `json:"notes,omitempty"`
	RevisionDetails string `json:"revision_details,omitempty"`
}

type ResolveDisputeRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=release refund"`
	Notes   string `json:"notes,omitempty"`
}

func NewDeliveryService(requestStore store.RequestStore, bridge escrow.Bridge, cfg *config.Config) *DeliveryService {
	return &DeliveryService{
		store:  requestStore,
		bridge: bridge,
		cfg:    cfg,
	}
}

// DeliverContent hands finished content to the fan for review. Redelivery
// after a revision request closes out the open revision record.
func (s *DeliveryService) DeliverContent(ctx context.Context, requestID, creatorID uuid.UUID, req *DeliverContentRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	return s.store.Transition(ctx, requestID, "deliver_content",
		[]models.RequestStatus{models.StatusInProduction},
		func(r *models.CustomContentRequest) error {
			if r.CreatorID != creatorID {
				return apperrors.UnauthorizedActor("deliver content for this request")
			}

			now := time.Now()
			r.DeliveredContentRef = req.ContentRef
			r.DeliveredAt = &now
			r.DeliveryNotes = req.Notes
			r.ReviewOutcome = models.ReviewOutcomePending
			r.Status = models.StatusAwaitingReview

			if open := r.OpenRevision(); open != nil {
				open.Status = models.RevisionStatusCompleted
				open.CompletedAt = &now
			}

			r.Events = append(r.Events, models.NewEvent(models.EventContentDelivered, &creatorID, models.JSONB{
				"content_ref": req.ContentRef,
			}))
			return nil
		})
}

// FanReview is the fan's verdict on delivered content. Approve releases the
// escrowed funds to the creator at this instant and nowhere else; dispute
// freezes them pending external adjudication.
func (s *DeliveryService) FanReview(ctx context.Context, requestID, fanID uuid.UUID, req *FanReviewRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	return s.store.Transition(ctx, requestID, "fan_review",
		[]models.RequestStatus{models.StatusAwaitingReview},
		func(r *models.CustomContentRequest) error {
			if r.FanID != fanID {
				return apperrors.UnauthorizedActor("review this delivery")
			}

			now := time.Now()
			switch models.ReviewAction(req.Action) {
			case models.ReviewActionApprove:
				callCtx, cancel := s.bridgeContext(ctx)
				defer cancel()
				if err := s.bridge.ReleaseFunds(callCtx, r.EscrowTransactionID, "manual", fanID); err != nil {
					return apperrors.EscrowReleaseFailed(err)
				}
				r.ReviewOutcome = models.ReviewOutcomeApproved
				r.ReviewNotes = req.Notes
				r.ReviewedAt = &now
				r.Status = models.StatusCompleted
				r.CompletedAt = &now
				r.Events = append(r.Events,
					models.NewEvent(models.EventReviewApproved, &fanID, nil),
					models.NewEvent(models.EventEscrowReleased, &fanID, models.JSONB{
						"escrow_ref": r.EscrowTransactionID,
					}),
				)

			case models.ReviewActionRequestRevision:
				if max := s.cfg.Policy.MaxRevisions; max > 0 && len(r.Revisions) >= max {
					return apperrors.Validation(fmt.Sprintf(
						"revision limit of %d reached; approve the delivery or open a dispute", max))
				}
				details := req.RevisionDetails
				if details == "" {
					details = req.Notes
				}
				if details == "" {
					return apperrors.Validation("revision request requires details")
				}
				r.ReviewOutcome = models.ReviewOutcomeRevisionRequested
				r.ReviewNotes = req.Notes
				r.ReviewedAt = &now
				r.Status = models.StatusInProduction
				r.Revisions = append(r.Revisions, models.RevisionRequest{
					Details: details,
					Status:  models.RevisionStatusPending,
				})
				r.Events = append(r.Events, models.NewEvent(models.EventRevisionRequested, &fanID, models.JSONB{
					"details": details,
				}))

			case models.ReviewActionDispute:
				if req.Notes == "" {
					return apperrors.Validation("dispute requires a reason")
				}
				callCtx, cancel := s.bridgeContext(ctx)
				defer cancel()
				disputeRef, err := s.bridge.CreateDispute(callCtx, r.EscrowTransactionID, fanID, req.Notes)
				if err != nil {
					return apperrors.EscrowDisputeFailed(err)
				}
				r.ReviewOutcome = models.ReviewOutcomeDisputed
				r.ReviewNotes = req.Notes
				r.ReviewedAt = &now
				r.Status = models.StatusDisputed
				r.DisputeReference = disputeRef
				r.Events = append(r.Events, models.NewEvent(models.EventDisputeOpened, &fanID, models.JSONB{
					"escrow_ref":  r.EscrowTransactionID,
					"dispute_ref": disputeRef,
					"reason":      req.Notes,
				}))

			default:
				return apperrors.Validation("action must be approve, request_revision or dispute")
			}
			return nil
		})
}

// ResolveDispute is the external adjudication callback: release pays the
// creator and completes the request, refund returns the hold to the fan and
// cancels it.
func (s *DeliveryService) ResolveDispute(ctx context.Context, requestID, resolvedBy uuid.UUID, req *ResolveDisputeRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	return s.store.Transition(ctx, requestID, "resolve_dispute",
		[]models.RequestStatus{models.StatusDisputed},
		func(r *models.CustomContentRequest) error {
			now := time.Now()
			callCtx, cancel := s.bridgeContext(ctx)
			defer cancel()

			switch models.DisputeOutcome(req.Outcome) {
			case models.DisputeOutcomeRelease:
				if err := s.bridge.ReleaseFunds(callCtx, r.EscrowTransactionID, "dispute_resolution", resolvedBy); err != nil {
					return apperrors.EscrowReleaseFailed(err)
				}
				r.Status = models.StatusCompleted
				r.CompletedAt = &now

			case models.DisputeOutcomeRefund:
				escrowRef := r.EscrowTransactionID
				if err := s.bridge.RefundFunds(callCtx, escrowRef, "dispute_resolution"); err != nil {
					return apperrors.EscrowReleaseFailed(err)
				}
				// Funds are back with the fan; the reference is cleared
				// because nothing is held any more.
				r.EscrowTransactionID = ""
				r.Status = models.StatusCancelled
				r.CancelledAt = &now
				r.CancellationReason = "dispute resolved in fan's favor"

			default:
				return apperrors.Validation("outcome must be release or refund")
			}

			r.Events = append(r.Events, models.NewEvent(models.EventDisputeResolved, &resolvedBy, models.JSONB{
				"outcome": req.Outcome,
				"notes":   req.Notes,
			}))
			return nil
		})
}

func (s *DeliveryService) bridgeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.cfg.Escrow.CallTimeout)*time.Second)
}
