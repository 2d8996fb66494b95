package report

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/dashboard", handler.Dashboard)
		reports.GET("/rankings", handler.Rankings)
		reports.GET("/workers/:id/profile", handler.WorkerProfile)
		reports.GET("/jobs/:id/cost", handler.JobCost)
	}
}
