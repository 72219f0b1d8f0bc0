package worker

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
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	{
		workers.GET("", middleware.RBACAuthorize(rbacService, "worker", "read"), handler.GetAll)
		workers.GET("/:id", middleware.RBACAuthorize(rbacService, "worker", "read"), handler.GetById)
		workers.POST("", middleware.RBACAuthorize(rbacService, "worker", "create"), handler.Register)
		workers.PATCH("/:id", middleware.RBACAuthorize(rbacService, "worker", "update"), handler.Update)
		workers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worker", "delete"), handler.Disengage)
		workers.POST("/:id/reactivate", middleware.RBACAuthorize(rbacService, "worker", "update"), handler.Reactivate)
	}
}
