package middleware

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/contextutil"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is a local interface so this package does not depend on the
// rbac package directly. Any service with a matching Enforce method fits.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize checks the caller's role against the policy table for the
// given resource and action. Must run after AuthMiddleware.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			contextutil.GetLogger(c.Request.Context(), nil).Warn("rbac denial",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
			)
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "you do not have permission to access this resource", map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
