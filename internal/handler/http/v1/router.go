package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Маршруты жизненного цикла тревог
	emergencies := api.Group("/emergencies", auth)
	{
		emergencies.POST("/trigger", h.triggerEmergency)
		emergencies.GET("", h.listEmergencies)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.POST("/:id/resolve", h.resolveEmergency)
		emergencies.POST("/:id/respond", h.acceptResponse)
	}

	// Подбор ответчиков без привязки к тревоге
	api.POST("/responders/match", auth, h.matchResponders)

	// Маршруты отслеживания пути
	tracking := api.Group("/tracking", auth)
	{
		tracking.POST("", h.startTracking)
		tracking.POST("/:id/position", h.updatePosition)
		tracking.POST("/:id/complete", h.completeTracking)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
