// internal/handlers/admin.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/i18n"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/services"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	deliveryService *services.DeliveryService
}

func NewAdminHandler(adminService *services.AdminService, deliveryService *services.DeliveryService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		deliveryService: deliveryService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/requests
func (h *AdminHandler) ListRequests(c *gin.Context) {
	filter := &services.AdminRequestFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		s := models.RequestStatus(status)
		filter.Status = &s
	}
	if fanIDStr := c.Query("fan_id"); fanIDStr != "" {
		if fanID, err := uuid.Parse(fanIDStr); err == nil {
			filter.FanID = &fanID
		}
	}
	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		if creatorID, err := uuid.Parse(creatorIDStr); err == nil {
			filter.CreatorID = &creatorID
		}
	}
	if platformIDStr := c.Query("platform_id"); platformIDStr != "" {
		if platformID, err := uuid.Parse(platformIDStr); err == nil {
			filter.PlatformID = &platformID
		}
	}
	if after := c.Query("created_after"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filter.CreatedAfter = &t
		}
	}
	if before := c.Query("created_before"); before != "" {
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			filter.CreatedBefore = &t
		}
	}

	result, err := h.adminService.ListRequests(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, *result)
}

// POST /admin/requests/:id/resolve-dispute
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req services.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := h.deliveryService.ResolveDispute(c.Request.Context(), id, adminID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDisputeResolved),
		"request": request,
	})
}

// GET /admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	filter := &services.AuditLogFilter{
		PaginationParams: utils.GetPaginationParams(c),
		Action:           c.Query("action"),
		ResourceType:     c.Query("resource_type"),
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			filter.UserID = &userID
		}
	}

	result, err := h.adminService.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, *result)
}
