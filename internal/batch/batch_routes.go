package batch

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	batches := r.Group("/batches")
	batches.Use(middleware.AuthMiddleware())
	{
		batches.GET("/:id", handler.GetById)
		batches.GET("/job/:job_id", handler.GetByJob)
		batches.POST("",
			middleware.RBACAuthorize(rbacService, "batch", "write"),
			middleware.Idempotency(rdb),
			handler.Register,
		)
	}
}
