package tool

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	tools := r.Group("/tools")
	tools.Use(middleware.AuthMiddleware())
	{
		tools.GET("", handler.GetAll)
		tools.GET("/:id", handler.GetById)
		tools.GET("/:id/availability", handler.Availability)
		tools.GET("/:id/distribution", handler.Distribution)
		tools.GET("/:id/consistency", handler.VerifyConsistency)
		tools.GET("/:id/moves", handler.ListMoves)
		tools.POST("", middleware.RBACAuthorize(rbacService, "tool", "write"), handler.Create)
		tools.PUT("/:id", middleware.RBACAuthorize(rbacService, "tool", "write"), handler.Update)
		tools.POST("/:id/moves",
			middleware.RBACAuthorize(rbacService, "tool", "write"),
			middleware.Idempotency(rdb),
			handler.ApplyMove,
		)
	}
}
