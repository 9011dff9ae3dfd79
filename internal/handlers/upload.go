// internal/handlers/upload.go
package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fanzlabs/commissions-backend/internal/services"
	"github.com/fanzlabs/commissions-backend/internal/utils"
)

var errInvalidArtifactKey = errors.New("key must reference a stored delivery or reference artifact")

type UploadHandler struct {
	storageService    *services.StorageService
	commissionService *services.CommissionService
}

func NewUploadHandler(storageService *services.StorageService, commissionService *services.CommissionService) *UploadHandler {
	return &UploadHandler{
		storageService:    storageService,
		commissionService: commissionService,
	}
}

// authorizeRequestAccess verifies the caller is a party to (or an admin for)
// the request the artifact belongs to. Writes the error response itself.
func (h *UploadHandler) authorizeRequestAccess(c *gin.Context, requestID uuid.UUID) bool {
	userID, ok := actorID(c)
	if !ok {
		return false
	}
	if _, err := h.commissionService.GetRequest(c.Request.Context(), requestID, userID, userTypeFromContext(c)); err != nil {
		utils.AppErrorResponse(c, err)
		return false
	}
	return true
}

// POST /requests/:id/uploads/delivery
func (h *UploadHandler) UploadDelivery(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	if !h.authorizeRequestAccess(c, id) {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadDelivery(id, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"upload": result})
}

// POST /requests/:id/uploads/reference
func (h *UploadHandler) UploadReference(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	if !h.authorizeRequestAccess(c, id) {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadReference(id, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"upload": result})
}

// GET /uploads/url?key=...
// Keys carry the owning request id as their second path segment
// (deliveries/<id>/… or references/<id>/…), so access is scoped to that
// request's parties before presigning.
func (h *UploadHandler) GetDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key is required", nil)
		return
	}

	ownerID, err := requestIDFromKey(key)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if !h.authorizeRequestAccess(c, ownerID) {
		return
	}

	url, err := h.storageService.PresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url, "expires_in": int((15 * time.Minute).Seconds())})
}

func requestIDFromKey(key string) (uuid.UUID, error) {
	parts := strings.Split(key, "/")
	if len(parts) >= 3 && (parts[0] == "deliveries" || parts[0] == "references") {
		if id, err := uuid.Parse(parts[1]); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, errInvalidArtifactKey
}
