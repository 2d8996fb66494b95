package indicator

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	indicators := r.Group("/indicators")
	indicators.Use(middleware.AuthMiddleware())
	{
		indicators.GET("/ranking/:code", handler.RankingByIndicator)
		indicators.GET("/first-completion/:code", handler.RankingFirstCompletion)
		indicators.GET("/stage-durations", handler.StageDurationAverage)
		indicators.GET("/workers/:id/summary", handler.WorkerSummary)
		indicators.GET("/cross-averages", handler.CrossIndicatorAverages)
	}
}
