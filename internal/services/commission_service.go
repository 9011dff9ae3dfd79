// internal/services/commission_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

// CommissionService owns request creation and read access. All writes after
// creation go through the negotiation, compliance, escrow and delivery
// services.
type CommissionService struct {
	store store.RequestStore
	cfg   *config.Config
}

type CreateCommissionRequest struct {
	CreatorID           uuid.UUID  `json:"creator_id" validate:"required"`
	PlatformID          uuid.UUID  `json:"platform_id" validate:"required"`
	ContentType         string     `json:"content_type" validate:"required,content_type"`
	Description         string     `json:"description" validate:"required"`
	SpecialRequirements []string   `json:"special_requirements,omitempty"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	ProposedAmount      float64    `json:"proposed_amount" validate:"required,gt=0"`
	Currency            string     `json:"currency,omitempty" validate:"omitempty,currency"`
	PaymentMethodRef    string     `json:"payment_method_ref,omitempty"`
	Message             string     `json:"message,omitempty"`
}

func NewCommissionService(requestStore store.RequestStore, cfg *config.Config) *CommissionService {
	return &CommissionService{
		store: requestStore,
		cfg:   cfg,
	}
}

func (s *CommissionService) CreateRequest(ctx context.Context, fanID uuid.UUID, req *CreateCommissionRequest) (*models.CustomContentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("validation failed: %v", err))
	}

	if req.CreatorID == fanID {
		return nil, apperrors.Validation("cannot commission content from yourself")
	}

	if req.DueDate != nil && !req.DueDate.After(time.Now()) {
		return nil, apperrors.Validation("due date must be in the future")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	request := &models.CustomContentRequest{
		PlatformID:          req.PlatformID,
		FanID:               fanID,
		CreatorID:           req.CreatorID,
		ContentType:         models.ContentType(req.ContentType),
		Description:         req.Description,
		SpecialRequirements: req.SpecialRequirements,
		DueDate:             req.DueDate,
		ProposedAmount:      req.ProposedAmount,
		Currency:            currency,
		PaymentMethodRef:    req.PaymentMethodRef,
		Status:              models.StatusPendingCreatorReview,
		Offers: []models.NegotiationOffer{
			{
				Origin:    models.OfferOriginFan,
				Amount:    req.ProposedAmount,
				Message:   req.Message,
				Outcome:   models.OfferOutcomePending,
				ExpiresAt: now.AddDate(0, 0, s.cfg.Policy.OfferExpiryDays),
			},
		},
		Events: []models.RequestEvent{
			models.NewEvent(models.EventRequestCreated, &fanID, models.JSONB{
				"proposed_amount": req.ProposedAmount,
				"currency":        currency,
				"content_type":    req.ContentType,
			}),
		},
	}

	if err := s.store.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// GetRequest returns the full entity, restricted to the request's parties and
// platform administrators.
func (s *CommissionService) GetRequest(ctx context.Context, id, userID uuid.UUID, userType models.UserType) (*models.CustomContentRequest, error) {
	request, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if userType != models.UserTypeAdmin && request.ParticipantRole(userID) == "" {
		return nil, apperrors.UnauthorizedActor("view commission request")
	}

	return request, nil
}

func (s *CommissionService) ListByUser(ctx context.Context, userID uuid.UUID, role models.UserType) ([]models.CustomContentRequest, error) {
	return s.store.ListByUser(ctx, userID, role)
}

func (s *CommissionService) ListByPlatform(ctx context.Context, platformID uuid.UUID) ([]models.CustomContentRequest, error) {
	return s.store.ListByPlatform(ctx, platformID)
}

func (s *CommissionService) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.CustomContentRequest, error) {
	return s.store.ListByStatus(ctx, status)
}

// ListEvents exposes the request's transition trail to its parties.
func (s *CommissionService) ListEvents(ctx context.Context, id, userID uuid.UUID, userType models.UserType) ([]models.RequestEvent, error) {
	request, err := s.GetRequest(ctx, id, userID, userType)
	if err != nil {
		return nil, err
	}
	return request.Events, nil
}
