// internal/services/escrow_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/escrow"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
)

// EscrowService sequences accepted → pay → hold → produce. It owns the
// funding contract: funds are released only through the review cycle's
// approve path or a dispute resolution, never through an administrative
// back door.
type EscrowService struct {
	store  store.RequestStore
	bridge escrow.Bridge
	cfg    *config.Config
}

func NewEscrowService(requestStore store.RequestStore, bridge escrow.Bridge, cfg *config.Config) *EscrowService {
	return &EscrowService{
		store:  requestStore,
		bridge: bridge,
		cfg:    cfg,
	}
}

// ProcessPaymentToEscrow funds the escrow hold for an accepted request. The
// compliance gate is checked before anything is written or any external call
// is made. If the bridge call fails or times out, the request stays in
// payment_processing and the whole operation can be retried; the per-request
// idempotency key guarantees a retry can never double-hold funds.
func (s *EscrowService) ProcessPaymentToEscrow(ctx context.Context, requestID, actingUserID uuid.UUID) (*models.CustomContentRequest, error) {
	allowed := []models.RequestStatus{models.StatusAccepted, models.StatusPaymentProcessing}

	pending, err := s.store.Transition(ctx, requestID, "process_payment_to_escrow", allowed, func(r *models.CustomContentRequest) error {
		if r.FanID != actingUserID {
			return apperrors.UnauthorizedActor("fund escrow for this request")
		}
		if !r.ComplianceSatisfied() {
			return apperrors.ComplianceNotSatisfied()
		}
		if r.FinalAmount == nil {
			return apperrors.Validation("request has no final amount")
		}
		if r.Status == models.StatusAccepted {
			r.Status = models.StatusPaymentProcessing
			r.Events = append(r.Events, models.NewEvent(models.EventPaymentProcessing, &actingUserID, models.JSONB{
				"amount":   *r.FinalAmount,
				"currency": r.Currency,
			}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Escrow.CallTimeout)*time.Second)
	defer cancel()

	escrowRef, err := s.bridge.HoldFunds(callCtx, escrow.HoldParams{
		From:           pending.FanID,
		To:             pending.CreatorID,
		Amount:         *pending.FinalAmount,
		Currency:       pending.Currency,
		Reason:         fmt.Sprintf("commission #%d escrow hold", pending.SequenceNumber),
		HoldWindowDays: s.cfg.Escrow.HoldWindowDays,
		AutoRelease:    s.cfg.Escrow.AutoRelease,
		IdempotencyKey: "escrow-hold-" + requestID.String(),
		Metadata: map[string]string{
			"request_id":  requestID.String(),
			"platform_id": pending.PlatformID.String(),
		},
	})
	if err != nil {
		// The request deliberately stays in payment_processing: a timed
		// out call may still have succeeded on the bridge side, and the
		// idempotency key resolves that ambiguity on retry.
		logrus.WithError(err).WithField("request_id", requestID).Error("Escrow funding failed")
		return nil, apperrors.EscrowFundingFailed(err)
	}

	// Production begins the moment funds are secured; there is no waiting
	// state between in_escrow and in_production.
	return s.store.Transition(ctx, requestID, "record_escrow_hold",
		[]models.RequestStatus{models.StatusPaymentProcessing},
		func(r *models.CustomContentRequest) error {
			r.EscrowTransactionID = escrowRef
			r.Status = models.StatusInProduction
			r.Events = append(r.Events,
				models.NewEvent(models.EventEscrowFunded, &actingUserID, models.JSONB{
					"escrow_ref": escrowRef,
					"amount":     *r.FinalAmount,
				}),
				models.NewEvent(models.EventProductionStarted, nil, nil),
			)
			return nil
		})
}
