package machinery

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
	machines := r.Group("/machinery")
	machines.Use(middleware.AuthMiddleware())
	{
		machines.GET("", middleware.RBACAuthorize(rbacService, "machinery", "read"), handler.GetMachines)
		machines.GET("/:id", middleware.RBACAuthorize(rbacService, "machinery", "read"), handler.GetMachine)
		machines.POST("", middleware.RBACAuthorize(rbacService, "machinery", "create"), handler.CreateMachine)
		machines.PATCH("/:id", middleware.RBACAuthorize(rbacService, "machinery", "update"), handler.UpdateMachine)
		machines.DELETE("/:id", middleware.RBACAuthorize(rbacService, "machinery", "delete"), handler.DeleteMachine)
	}

	reports := r.Group("/rental-reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", middleware.RBACAuthorize(rbacService, "rental", "read"), handler.GetReports)
		reports.GET("/totals", middleware.RBACAuthorize(rbacService, "rental", "read"), handler.MonthlyTotals)
		reports.POST("", middleware.RBACAuthorize(rbacService, "rental", "create"), handler.CreateReport)
		// Reports are immutable; a wrong row is removed and re-entered.
		reports.DELETE("/:id", middleware.RBACAuthorize(rbacService, "rental", "update"), handler.DeleteReport)
	}
}
