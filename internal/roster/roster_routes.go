package roster

import (
	"guardshift/internal/authz"
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate middleware.CapabilityChecker) {
	roster := r.Group("/roster")
	roster.Use(middleware.AuthMiddleware())
	{
		// The roster feeds the marking screen, so it carries the same gate
		// as the marking endpoints.
		roster.GET("/:locationID/:shift", middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite), h.Resolve)
	}
}
