package bonusassignment

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
	assignments := r.Group("/bonus-assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.GET("/me", middleware.RBACAuthorize(rbacService, "bonus_assignment", "read"), handler.ListMine)
		assignments.GET("/file/:fileId", middleware.RBACAuthorize(rbacService, "bonus_assignment", "read"), handler.ListByFile)
		assignments.POST("", middleware.RBACAuthorize(rbacService, "bonus_assignment", "create"), handler.Assign)
		assignments.PATCH("/:id", middleware.RBACAuthorize(rbacService, "bonus_assignment", "update"), handler.Update)
	}
}
