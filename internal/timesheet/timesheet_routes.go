package timesheet

import (
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.GET("", handler.GetAll)
		timesheets.GET("/:id", handler.GetById)
		timesheets.POST("", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.Create)
		timesheets.PUT("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.Update)
		timesheets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.Delete)
	}
}
