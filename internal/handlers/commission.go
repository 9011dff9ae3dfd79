// internal/handlers/commission.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/i18n"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/services"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

// CommissionHandler exposes the commission workflow over HTTP. It translates
// requests to service calls and workflow errors to the response envelope; all
// legality and authorization decisions live in the services.
type CommissionHandler struct {
	commissionService  *services.CommissionService
	negotiationService *services.NegotiationService
	complianceService  *services.ComplianceService
	escrowService      *services.EscrowService
	deliveryService    *services.DeliveryService
}

func NewCommissionHandler(
	commissionService *services.CommissionService,
	negotiationService *services.NegotiationService,
	complianceService *services.ComplianceService,
	escrowService *services.EscrowService,
	deliveryService *services.DeliveryService,
) *CommissionHandler {
	return &CommissionHandler{
		commissionService:  commissionService,
		negotiationService: negotiationService,
		complianceService:  complianceService,
		escrowService:      escrowService,
		deliveryService:    deliveryService,
	}
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func requestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// POST /requests
func (h *CommissionHandler) CreateRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	fanID, ok := actorID(c)
	if !ok {
		return
	}

	var req services.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := h.commissionService.CreateRequest(c.Request.Context(), fanID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRequestCreated),
		"request": request,
	})
}

// GET /requests/:id
func (h *CommissionHandler) GetRequest(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	request, err := h.commissionService.GetRequest(c.Request.Context(), id, userID, userTypeFromContext(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"request": request})
}

// GET /requests?role=fan|creator
// Admins may instead filter across all requests with ?platform_id= or ?status=.
func (h *CommissionHandler) ListRequests(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if userTypeFromContext(c) == models.UserTypeAdmin {
		if platform := c.Query("platform_id"); platform != "" {
			platformID, err := uuid.Parse(platform)
			if err != nil {
				utils.BadRequestResponse(c, "platform_id must be a uuid", nil)
				return
			}
			requests, err := h.commissionService.ListByPlatform(c.Request.Context(), platformID)
			if err != nil {
				utils.AppErrorResponse(c, err)
				return
			}
			utils.SuccessResponse(c, gin.H{"requests": requests})
			return
		}
		if status := c.Query("status"); status != "" {
			requests, err := h.commissionService.ListByStatus(c.Request.Context(), models.RequestStatus(status))
			if err != nil {
				utils.AppErrorResponse(c, err)
				return
			}
			utils.SuccessResponse(c, gin.H{"requests": requests})
			return
		}
	}

	role := models.UserType(c.DefaultQuery("role", string(models.UserTypeFan)))
	if role != models.UserTypeFan && role != models.UserTypeCreator {
		utils.BadRequestResponse(c, "role must be fan or creator", nil)
		return
	}

	requests, err := h.commissionService.ListByUser(c.Request.Context(), userID, role)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"requests": requests})
}

// GET /requests/:id/events
func (h *CommissionHandler) ListEvents(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	events, err := h.commissionService.ListEvents(c.Request.Context(), id, userID, userTypeFromContext(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"events": events})
}

// POST /requests/:id/creator-response
func (h *CommissionHandler) CreatorRespond(c *gin.Context) {
	h.respond(c, h.negotiationService.CreatorRespond)
}

// POST /requests/:id/fan-response
func (h *CommissionHandler) FanRespond(c *gin.Context) {
	h.respond(c, h.negotiationService.FanRespond)
}

func (h *CommissionHandler) respond(c *gin.Context, respond func(ctx context.Context, requestID, actorID uuid.UUID, req *services.RespondRequest) (*models.CustomContentRequest, error)) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req services.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := respond(c.Request.Context(), id, userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	messageKey := i18n.KeyRequestCountered
	switch models.RespondAction(req.Action) {
	case models.RespondActionAccept:
		messageKey = i18n.KeyRequestAccepted
	case models.RespondActionReject:
		messageKey = i18n.KeyRequestCancelled
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"request": request,
	})
}

// POST /requests/:id/accept-terms
func (h *CommissionHandler) AcceptTerms(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	request, err := h.complianceService.AcceptTerms(c.Request.Context(), id, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTermsAccepted),
		"request": request,
	})
}

// POST /requests/:id/sign-agreement
func (h *CommissionHandler) SignAgreement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	request, err := h.complianceService.SignNoChargebackAgreement(c.Request.Context(), id, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAgreementSigned),
		"request": request,
	})
}

// POST /requests/:id/fund
func (h *CommissionHandler) FundEscrow(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	request, err := h.escrowService.ProcessPaymentToEscrow(c.Request.Context(), id, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEscrowFunded),
		"request": request,
	})
}

// POST /requests/:id/deliver
func (h *CommissionHandler) DeliverContent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req services.DeliverContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := h.deliveryService.DeliverContent(c.Request.Context(), id, userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContentDelivered),
		"request": request,
	})
}

// POST /requests/:id/review
func (h *CommissionHandler) ReviewDelivery(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req services.FanReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	request, err := h.deliveryService.FanReview(c.Request.Context(), id, userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"request": request})
}

func userTypeFromContext(c *gin.Context) models.UserType {
	if userType, exists := c.Get("user_type"); exists {
		if s, ok := userType.(string); ok {
			return models.UserType(s)
		}
	}
	return ""
}
