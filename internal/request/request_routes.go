package request

import (
	"guardshift/internal/authz"
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate middleware.CapabilityChecker) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		update := middleware.RequireCapability(gate, authz.ObjectRequest, authz.ActionUpdate)

		requests.POST("", h.Submit)
		requests.GET("", h.List)
		requests.PATCH("/:id/status", update, h.UpdateStatus)
		requests.PUT("/:id", h.Edit)
		requests.DELETE("/:id", h.Delete)
	}
}
