package rbac

import (
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/roles", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListRoles)
		group.GET("/roles/:role/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.RolePermissions)
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)
	}
}
