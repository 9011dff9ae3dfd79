// internal/store/gorm_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fanzlabs/commissions-backend/internal/apperrors"
	"github.com/fanzlabs/commissions-backend/internal/models"
)

// GormStore persists requests in Postgres. Per-request mutual exclusion is a
// row lock (SELECT ... FOR UPDATE) held for the duration of the transition
// transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, req *models.CustomContentRequest) error {
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create commission request: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.CustomContentRequest, error) {
	var req models.CustomContentRequest
	err := s.db.WithContext(ctx).
		Preload("Offers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Revisions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &req, nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID uuid.UUID, role models.UserType) ([]models.CustomContentRequest, error) {
	query := s.db.WithContext(ctx).Model(&models.CustomContentRequest{})
	switch role {
	case models.UserTypeFan:
		query = query.Where("fan_id = ?", userID)
	case models.UserTypeCreator:
		query = query.Where("creator_id = ?", userID)
	default:
		query = query.Where("fan_id = ? OR creator_id = ?", userID, userID)
	}
	return s.list(query)
}

func (s *GormStore) ListByPlatform(ctx context.Context, platformID uuid.UUID) ([]models.CustomContentRequest, error) {
	return s.list(s.db.WithContext(ctx).Model(&models.CustomContentRequest{}).
		Where("platform_id = ?", platformID))
}

func (s *GormStore) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.CustomContentRequest, error) {
	return s.list(s.db.WithContext(ctx).Model(&models.CustomContentRequest{}).
		Where("status = ?", status))
}

func (s *GormStore) list(query *gorm.DB) ([]models.CustomContentRequest, error) {
	var requests []models.CustomContentRequest
	err := query.
		Preload("Offers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commission requests: %w", err)
	}
	return requests, nil
}

func (s *GormStore) Transition(ctx context.Context, id uuid.UUID, action string,
	allowed []models.RequestStatus,
	mutate func(req *models.CustomContentRequest) error) (*models.CustomContentRequest, error) {

	var result *models.CustomContentRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.CustomContentRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(id.String())
			}
			return fmt.Errorf("database error: %w", err)
		}

		// Associations are loaded after the row lock is held so the
		// history seen by mutate cannot race a concurrent transition.
		if err := tx.Where("request_id = ?", id).Order("position ASC").Find(&req.Offers).Error; err != nil {
			return fmt.Errorf("failed to load offers: %w", err)
		}
		if err := tx.Where("request_id = ?", id).Order("position ASC").Find(&req.Revisions).Error; err != nil {
			return fmt.Errorf("failed to load revisions: %w", err)
		}

		if !statusAllowed(req.Status, allowed) {
			return apperrors.InvalidStateTransition(action, req.Status)
		}

		if err := mutate(&req); err != nil {
			return err
		}

		stampNewRecords(&req, time.Now())

		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&req).Error; err != nil {
			return fmt.Errorf("failed to commit transition %s: %w", action, err)
		}

		result = &req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *GormStore) UndispatchedEvents(ctx context.Context, limit int) ([]models.RequestEvent, error) {
	var events []models.RequestEvent
	err := s.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch undispatched events: %w", err)
	}
	return events, nil
}

func (s *GormStore) MarkEventDispatched(ctx context.Context, eventID uuid.UUID) error {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(&models.RequestEvent{}).
		Where("id = ?", eventID).
		Update("dispatched_at", &now).Error
	if err != nil {
		return fmt.Errorf("failed to mark event dispatched: %w", err)
	}
	return nil
}

// stampNewRecords assigns ids and positions to records appended by mutate so
// the whole transition commits as one write.
func stampNewRecords(req *models.CustomContentRequest, now time.Time) {
	for i := range req.Offers {
		if req.Offers[i].ID == uuid.Nil {
			req.Offers[i].ID = uuid.New()
			req.Offers[i].RequestID = req.ID
			req.Offers[i].Position = i
			req.Offers[i].CreatedAt = now
		}
	}
	for i := range req.Revisions {
		if req.Revisions[i].ID == uuid.Nil {
			req.Revisions[i].ID = uuid.New()
			req.Revisions[i].RequestID = req.ID
			req.Revisions[i].Position = i
			req.Revisions[i].CreatedAt = now
		}
	}
	for i := range req.Events {
		if req.Events[i].ID == uuid.Nil {
			req.Events[i].ID = uuid.New()
			req.Events[i].RequestID = req.ID
			req.Events[i].CreatedAt = now
		}
	}
}
