package guard

import (
	"guardshift/internal/authz"
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate middleware.CapabilityChecker) {
	guards := r.Group("/guards")
	guards.Use(middleware.AuthMiddleware())
	{
		guards.GET("", h.ListByLocation)
		guards.GET("/:id", h.GetByID)
		guards.POST("", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Create)
		guards.POST("/:id/deactivate", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Deactivate)
		guards.POST("/:id/reactivate", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Reactivate)
	}
}
