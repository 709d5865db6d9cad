package handlers

import (
	"grain_dryer/internal/logger"
	"grain_dryer/internal/service"
	"grain_dryer/internal/stream"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, the live hub and logging.
type Handler struct {
	services *service.Service
	hub      *stream.Hub
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, hub *stream.Hub, log *logger.Logger) *Handler {
	return &Handler{services: services, hub: hub, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live subscription channel (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSensorRoutes(api)
		h.registerNotificationRoutes(api)
		h.registerProfileRoutes(api)
	}

	// Device ingestion is token-free: the dryer posts directly.
	r.POST("/api/v1/sensor/data", h.ingestReading)
}

func (h *Handler) registerSensorRoutes(api *gin.RouterGroup) {
	sensor := api.Group("/sensor")
	{
		sensor.GET("/latest", h.latestReading)
		sensor.GET("/history", h.readingHistory)
	}
}

func (h *Handler) registerNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PATCH("/:id/read", h.markNotificationRead)
		notifications.POST("/read-all", h.markAllNotificationsRead)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
	}
}
