// internal/services/compliance_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
)

// ComplianceService records the two attestations gating escrow funding.
// Both operations are idempotent: re-invocation is a no-op re-confirmation
// and never resets the original timestamp.
type ComplianceService struct {
	store store.RequestStore
}

func NewComplianceService(requestStore store.RequestStore) *ComplianceService {
	return &ComplianceService{store: requestStore}
}

func (s *ComplianceService) AcceptTerms(ctx context.Context, requestID, actingUserID uuid.UUID) (*models.CustomContentRequest, error) {
	return s.store.Transition(ctx, requestID, "accept_terms", nil, func(r *models.CustomContentRequest) error {
		if r.ParticipantRole(actingUserID) == "" {
			return apperrors.UnauthorizedActor("accept terms for this request")
		}
		if r.TermsAcceptedAt != nil {
			return nil
		}
		now := time.Now()
		r.TermsAcceptedAt = &now
		r.Events = append(r.Events, models.NewEvent(models.EventTermsAccepted, &actingUserID, nil))
		return nil
	})
}

// SignNoChargebackAgreement is restricted to the fan: only the paying party
// can attest that they will not claw the payment back.
func (s *ComplianceService) SignNoChargebackAgreement(ctx context.Context, requestID, actingUserID uuid.UUID) (*models.CustomContentRequest, error) {
	return s.store.Transition(ctx, requestID, "sign_no_chargeback_agreement", nil, func(r *models.CustomContentRequest) error {
		if r.FanID != actingUserID {
			return apperrors.UnauthorizedActor("sign the no-chargeback agreement")
		}
		if r.NoChargebackSignedAt != nil {
			return nil
		}
		now := time.Now()
		r.NoChargebackSignedAt = &now
		r.Events = append(r.Events, models.NewEvent(models.EventAgreementSigned, &actingUserID, nil))
		return nil
	})
}
