// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

// AdminService serves the platform dashboard: aggregate workflow statistics,
// audit logs, and cross-user request queries. Read-mostly; the only write is
// the audit trail.
type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`

	TotalRequests      int64            `json:"total_requests"`
	RequestsByStatus   map[string]int64 `json:"requests_by_status"`
	OpenDisputes       int64            `json:"open_disputes"`
	CompletedThisMonth int64            `json:"completed_this_month"`

	FundsInEscrow  float64 `json:"funds_in_escrow"`
	CompletedValue float64 `json:"completed_value"`
}

type AdminRequestFilter struct {
	utils.PaginationParams
	Status        *models.RequestStatus `json:"status,omitempty"`
	FanID         *uuid.UUID            `json:"fan_id,omitempty"`
	CreatorID     *uuid.UUID            `json:"creator_id,omitempty"`
	PlatformID    *uuid.UUID            `json:"platform_id,omitempty"`
	CreatedAfter  *time.Time            `json:"created_after,omitempty"`
	CreatedBefore *time.Time            `json:"created_before,omitempty"`
}

type AuditLogFilter struct {
	utils.PaginationParams
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Action       string     `json:"action,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{RequestsByStatus: make(map[string]int64)}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	db := s.db.WithContext(ctx)

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)

	db.Model(&models.CustomContentRequest{}).Count(&stats.TotalRequests)

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.CustomContentRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate request statuses: %w", err)
	}
	for _, row := range byStatus {
		stats.RequestsByStatus[row.Status] = row.Count
	}
	stats.OpenDisputes = stats.RequestsByStatus[string(models.StatusDisputed)]

	db.Model(&models.CustomContentRequest{}).
		Where("status = ? AND completed_at >= ?", models.StatusCompleted, monthStart).
		Count(&stats.CompletedThisMonth)

	heldStatuses := []models.RequestStatus{
		models.StatusInEscrow, models.StatusInProduction,
		models.StatusAwaitingReview, models.StatusDisputed,
	}
	db.Model(&models.CustomContentRequest{}).
		Where("status IN ?", heldStatuses).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&stats.FundsInEscrow)

	db.Model(&models.CustomContentRequest{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&stats.CompletedValue)

	return stats, nil
}

// ListRequests is the admin cross-user request query; party scoping does not
// apply here.
func (s *AdminService) ListRequests(ctx context.Context, filter *AdminRequestFilter) (*utils.PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.CustomContentRequest{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FanID != nil {
		query = query.Where("fan_id = ?", *filter.FanID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.PlatformID != nil {
		query = query.Where("platform_id = ?", *filter.PlatformID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	var requests []models.CustomContentRequest
	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "status", "final_amount", "sequence_number"})
	query = utils.ApplyPagination(query, filter.PaginationParams)
	if err := query.Preload("Offers").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	result := utils.CreatePaginationResult(requests, total, filter.PaginationParams)
	return &result, nil
}

// RecordAudit appends one audit trail entry. Failures are returned but
// callers typically log and continue; auditing never blocks the action.
func (s *AdminService) RecordAudit(ctx context.Context, userID *uuid.UUID, action, resourceType string, resourceID *uuid.UUID, newValues models.JSONB, ipAddress, userAgent string) error {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		NewValues:    newValues,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *AdminService) ListAuditLogs(ctx context.Context, filter *AuditLogFilter) (*utils.PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "action"})
	query = utils.ApplyPagination(query, filter.PaginationParams)
	if err := query.Preload("User").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	result := utils.CreatePaginationResult(logs, total, filter.PaginationParams)
	return &result, nil
}
