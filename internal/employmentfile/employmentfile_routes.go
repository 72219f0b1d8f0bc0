package employmentfile

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
	files := r.Group("/employment-files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/me", handler.MyFile)
		files.GET("", middleware.RBACAuthorize(rbacService, "employment_file", "read"), handler.Search)
		files.GET("/worker/:workerId", middleware.RBACAuthorize(rbacService, "employment_file", "read"), handler.GetByWorker)
		files.PATCH("/:id", middleware.RBACAuthorize(rbacService, "employment_file", "update"), handler.Update)
		files.POST("/:id/contract", middleware.RBACAuthorize(rbacService, "employment_file", "update"), handler.UploadContract)
		files.DELETE("/:id/contract", middleware.RBACAuthorize(rbacService, "employment_file", "update"), handler.DeleteContract)
	}
}
