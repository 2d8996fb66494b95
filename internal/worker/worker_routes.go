package worker

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	{
		workers.GET("", handler.GetAll)
		workers.GET("/:id", handler.GetById)
		workers.POST("", middleware.RBACAuthorize(rbacService, "worker", "write"), handler.Create)
		workers.PUT("/:id", middleware.RBACAuthorize(rbacService, "worker", "write"), handler.Update)
		workers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worker", "write"), handler.Deactivate)
	}
}
