package closing

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	closings := r.Group("/closings")
	closings.Use(middleware.AuthMiddleware())
	{
		closings.GET("/:id", handler.GetById)
		closings.GET("/worker/:worker_id", handler.GetByWorker)
		closings.POST("",
			middleware.RBACAuthorize(rbacService, "closing", "write"),
			middleware.Idempotency(rdb),
			handler.Close,
		)
		closings.POST("/:id/recalculate", middleware.RBACAuthorize(rbacService, "closing", "write"), handler.Recalculate)
		closings.POST("/:id/pay", middleware.RBACAuthorize(rbacService, "closing", "pay"), handler.MarkAsPaid)
	}
}
