package job

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", handler.GetAll)
		jobs.GET("/:id", handler.GetById)
		jobs.POST("", middleware.RBACAuthorize(rbacService, "job", "write"), handler.Create)
		jobs.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "job", "write"), handler.UpdateStatus)
		jobs.POST("/:id/stages/:stage_number/complete", middleware.RBACAuthorize(rbacService, "job", "write"), handler.CompleteStage)
		jobs.POST("/:id/stages/:stage_number/reopen", middleware.RBACAuthorize(rbacService, "job", "write"), handler.ReopenStage)
		jobs.PUT("/:id/stages/:stage_number/detail", middleware.RBACAuthorize(rbacService, "job", "write"), handler.UpsertStageDetail)
		jobs.GET("/:id/stages/:stage_number/history", handler.GetStageHistory)
	}
}
