package attendance

import (
	"guardshift/internal/authz"
	"guardshift/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate middleware.CapabilityChecker, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		write := middleware.RequireCapability(gate, authz.ObjectAttendance, authz.ActionWrite)

		attendances.POST("/mark", write, middleware.Idempotency(rdb), h.Mark)
		attendances.POST("/bulk-mark", write, middleware.Idempotency(rdb), h.BulkMark)
		attendances.GET("", h.List)
		attendances.DELETE("/:id", write, h.Delete)
		attendances.GET("/deleted", write, h.ListDeleted)
		attendances.POST("/deleted/:id/restore", write, h.Restore)
	}
}
