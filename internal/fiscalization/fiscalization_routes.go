package fiscalization

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	visits := r.Group("/fiscalization-visits")
	visits.Use(middleware.AuthMiddleware())
	{
		visits.GET("/job/:job_id", handler.GetByJob)
		visits.POST("", middleware.RBACAuthorize(rbacService, "fiscalization", "write"), handler.Create)
		visits.PUT("/:id", middleware.RBACAuthorize(rbacService, "fiscalization", "write"), handler.Update)
		visits.DELETE("/:id", middleware.RBACAuthorize(rbacService, "fiscalization", "write"), handler.Delete)
	}
}
