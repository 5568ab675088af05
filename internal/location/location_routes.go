package location

import (
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	locations := r.Group("/locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.GET("", h.GetAccessible)
		locations.GET("/all", h.GetAll)
		locations.GET("/for-shift/:shift", h.GetForShift)
	}
}
