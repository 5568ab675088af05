package comment

import (
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	guards := r.Group("/guards")
	guards.Use(middleware.AuthMiddleware())
	{
		guards.GET("/:id/comments", h.ListByGuard)
		guards.POST("/:id/comments", h.Add)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.DELETE("/:id", h.Delete)
	}
}
