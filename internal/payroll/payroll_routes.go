package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("/me", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetMine)
		payrolls.GET("/file/:fileId", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetForFile)
	}
}
