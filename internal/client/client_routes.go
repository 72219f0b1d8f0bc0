package client

import (
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/middleware"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	{
		clients.GET("", middleware.RBACAuthorize(rbacService, "client", "read"), handler.GetAll)
		clients.GET("/:id", middleware.RBACAuthorize(rbacService, "client", "read"), handler.GetById)
		clients.POST("", middleware.RBACAuthorize(rbacService, "client", "create"), handler.Create)
		clients.PATCH("/:id", middleware.RBACAuthorize(rbacService, "client", "update"), handler.Update)
		clients.DELETE("/:id", middleware.RBACAuthorize(rbacService, "client", "delete"), handler.Delete)
	}
}
