package override

import (
	"guardshift/internal/authz"
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate middleware.CapabilityChecker) {
	overrides := r.Group("/overrides")
	overrides.Use(middleware.AuthMiddleware())
	{
		overrides.POST("", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Create)
		overrides.DELETE("/:guardID", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Remove)
	}

	guards := r.Group("/guards")
	guards.Use(middleware.AuthMiddleware())
	{
		guards.GET("/:id/shift-info", h.ShiftInfo)
	}
}
