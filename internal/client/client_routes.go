package client

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	{
		clients.GET("", handler.GetAll)
		clients.GET("/:id", handler.GetById)
		clients.POST("", middleware.RBACAuthorize(rbacService, "client", "write"), handler.Create)
		clients.PUT("/:id", middleware.RBACAuthorize(rbacService, "client", "write"), handler.Update)
		clients.DELETE("/:id", middleware.RBACAuthorize(rbacService, "client", "write"), handler.Delete)
	}
}
