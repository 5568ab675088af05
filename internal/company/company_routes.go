package company

import (
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("", h.GetAll)
		companies.GET("/:id", h.GetByID)
	}
}
