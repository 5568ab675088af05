package notification

import (
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.GET("/count", h.UnreadCount)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/:id/dismiss", h.Dismiss)
		notifications.POST("/mark-all-read", h.MarkAllRead)
		notifications.GET("/settings", h.GetSettings)
		notifications.PUT("/settings", h.UpdateSettings)
	}
}
