// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/escrow"
	"github.com/fanzlabs/commissions-backend/internal/handlers"
	"github.com/fanzlabs/commissions-backend/internal/middleware"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/services"
	"github.com/fanzlabs/commissions-backend/internal/store"
	"github.com/fanzlabs/commissions-backend/internal/utils"
	"github.com/fanzlabs/commissions-backend/internal/ws"
)

// App bundles the HTTP engine with the long-running collaborators the server
// entrypoint owns: the offer-expiry sweep, the event dispatcher and the
// WebSocket hub.
type App struct {
	Engine              *gin.Engine
	Hub                 *ws.Hub
	NegotiationService  *services.NegotiationService
	NotificationService *services.NotificationService
}

func Initialize(db *gorm.DB, cfg *config.Config) *App {
	requestStore := store.NewGormStore(db)

	var bridge escrow.Bridge
	if cfg.Escrow.StripeSecretKey != "" {
		bridge = escrow.NewStripeBridge(cfg.Escrow.StripeSecretKey)
	} else {
		// Local development runs against the in-memory bridge.
		bridge = escrow.NewMemoryBridge()
	}

	hub := ws.NewHub()

	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	commissionService := services.NewCommissionService(requestStore, cfg)
	negotiationService := services.NewNegotiationService(requestStore, cfg)
	complianceService := services.NewComplianceService(requestStore)
	escrowService := services.NewEscrowService(requestStore, bridge, cfg)
	deliveryService := services.NewDeliveryService(requestStore, bridge, cfg)
	notificationService := services.NewNotificationService(requestStore, db, hub, cfg)
	adminService := services.NewAdminService(db)

	authHandler := handlers.NewAuthHandler(authService)
	commissionHandler := handlers.NewCommissionHandler(
		commissionService, negotiationService, complianceService, escrowService, deliveryService)
	adminHandler := handlers.NewAdminHandler(adminService, deliveryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	uploadHandler := handlers.NewUploadHandler(storageService, commissionService)
	wsHandler := handlers.NewWSHandler(hub)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	r.GET("/health", healthCheck(db, bridge))

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		requests := v1.Group("/requests")
		requests.Use(middleware.AuthRequired())
		{
			fanOnly := middleware.RoleRequired(models.UserTypeFan)
			creatorOnly := middleware.RoleRequired(models.UserTypeCreator)

			requests.POST("", fanOnly, commissionHandler.CreateRequest)
			requests.GET("", commissionHandler.ListRequests)
			requests.GET("/:id", commissionHandler.GetRequest)
			requests.GET("/:id/events", commissionHandler.ListEvents)

			requests.POST("/:id/creator-response", creatorOnly, commissionHandler.CreatorRespond)
			requests.POST("/:id/fan-response", fanOnly, commissionHandler.FanRespond)

			requests.POST("/:id/accept-terms", commissionHandler.AcceptTerms)
			requests.POST("/:id/sign-agreement", fanOnly, commissionHandler.SignAgreement)
			requests.POST("/:id/fund", fanOnly, commissionHandler.FundEscrow)

			requests.POST("/:id/deliver", creatorOnly, commissionHandler.DeliverContent)
			requests.POST("/:id/review", fanOnly, commissionHandler.ReviewDelivery)

			requests.POST("/:id/uploads/delivery", creatorOnly, middleware.UploadRateLimit(), uploadHandler.UploadDelivery)
			requests.POST("/:id/uploads/reference", fanOnly, middleware.UploadRateLimit(), uploadHandler.UploadReference)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired())
		{
			uploads.GET("/url", uploadHandler.GetDownloadURL)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/requests", adminHandler.ListRequests)
			admin.POST("/requests/:id/resolve-dispute", adminHandler.ResolveDispute)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	v1.GET("/ws", wsHandler.Connect)

	return &App{
		Engine:              r,
		Hub:                 hub,
		NegotiationService:  negotiationService,
		NotificationService: notificationService,
	}
}

func healthCheck(db *gorm.DB, bridge escrow.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "unhealthy"
		}

		escrowStatus := "healthy"
		if !bridge.Healthy(ctx) {
			escrowStatus = "unhealthy"
		}

		overall := "healthy"
		status := http.StatusOK
		if dbStatus != "healthy" || escrowStatus != "healthy" {
			overall = "degraded"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"escrow":   escrowStatus,
		})
	}
}
