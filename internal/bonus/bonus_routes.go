package bonus

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
	bonuses := r.Group("/bonuses")
	bonuses.Use(middleware.AuthMiddleware())
	{
		bonuses.GET("", middleware.RBACAuthorize(rbacService, "bonus", "read"), handler.GetAll)
		bonuses.GET("/options", middleware.RBACAuthorize(rbacService, "bonus", "read"), handler.GetOptions)
		bonuses.GET("/:id", middleware.RBACAuthorize(rbacService, "bonus", "read"), handler.GetById)
		bonuses.POST("", middleware.RBACAuthorize(rbacService, "bonus", "create"), handler.Create)
		bonuses.PATCH("/:id", middleware.RBACAuthorize(rbacService, "bonus", "update"), handler.Update)
		bonuses.DELETE("/:id", middleware.RBACAuthorize(rbacService, "bonus", "delete"), handler.Delete)
	}
}
