package middleware

import (
	"net/http"

	"guardshift/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// CapabilityChecker is a local interface; anything with an Enforce method
// (the authz gate) satisfies it.
type CapabilityChecker interface {
	Enforce(sub, obj, act string) (bool, error)
}

// RequireCapability short-circuits the request when the authenticated role
// does not hold obj:act. It must run after AuthMiddleware.
func RequireCapability(gate CapabilityChecker, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		if username == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		allowed, err := gate.Enforce(c.GetString("role"), obj, act)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource", obj+":"+act)
			c.Abort()
			return
		}

		c.Next()
	}
}
