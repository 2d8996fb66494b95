package app

import (
	"database/sql"

	"github.com/vendas-sistemas/perroni-sub000/internal/auth"
	"github.com/vendas-sistemas/perroni-sub000/internal/batch"
	"github.com/vendas-sistemas/perroni-sub000/internal/client"
	"github.com/vendas-sistemas/perroni-sub000/internal/closing"
	"github.com/vendas-sistemas/perroni-sub000/internal/fiscalization"
	"github.com/vendas-sistemas/perroni-sub000/internal/indicator"
	"github.com/vendas-sistemas/perroni-sub000/internal/job"
	"github.com/vendas-sistemas/perroni-sub000/internal/messaging/kafka"
	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"
	"github.com/vendas-sistemas/perroni-sub000/internal/rbac"
	"github.com/vendas-sistemas/perroni-sub000/internal/report"
	"github.com/vendas-sistemas/perroni-sub000/internal/shared/counter"
	"github.com/vendas-sistemas/perroni-sub000/internal/timesheet"
	"github.com/vendas-sistemas/perroni-sub000/internal/tool"
	"github.com/vendas-sistemas/perroni-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	workerRepo := worker.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	jobRepo := job.NewRepository(gormDB)
	fiscalizationRepo := fiscalization.NewRepository(gormDB)
	toolRepo := tool.NewRepository(gormDB, db)
	timesheetRepo := timesheet.NewRepository(gormDB, db)
	batchRepo := batch.NewRepository(gormDB, db)
	indicatorRepo := indicator.NewRepository(db)
	closingRepo := closing.NewRepository(gormDB, db)
	reportRepo := report.NewRepository(db)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	workerService := worker.NewService(db, workerRepo)
	clientService := client.NewService(db, clientRepo)
	jobService := job.NewService(db, jobRepo)
	fiscalizationService := fiscalization.NewService(fiscalizationRepo)
	toolService := tool.NewService(db, toolRepo, counterRepo)
	timesheetService := timesheet.NewService(db, timesheetRepo)
	batchService := batch.NewService(db, batchRepo, timesheetRepo, indicatorRepo, jobRepo, outboxRepo)
	closingService := closing.NewService(db, closingRepo, outboxRepo)
	analyticsService := indicator.NewAnalyticsService(indicatorRepo)
	reportService := report.NewService(reportRepo, analyticsService, rdb, zap.L().Named("report"))

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	workerHandler := worker.NewHandler(workerService)
	clientHandler := client.NewHandler(clientService)
	jobHandler := job.NewHandler(jobService)
	fiscalizationHandler := fiscalization.NewHandler(fiscalizationService)
	toolHandler := tool.NewHandler(toolService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	batchHandler := batch.NewHandler(batchService)
	closingHandler := closing.NewHandler(closingService)
	indicatorHandler := indicator.NewHandler(analyticsService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.ContextLogger(zap.L()))
	{
		auth.RegisterRoutes(api, authHandler)
		worker.RegisterRoutes(api, workerHandler, rbacService)
		client.RegisterRoutes(api, clientHandler, rbacService)
		job.RegisterRoutes(api, jobHandler, rbacService)
		fiscalization.RegisterRoutes(api, fiscalizationHandler, rbacService)
		tool.RegisterRoutes(api, toolHandler, rbacService, rdb)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		batch.RegisterRoutes(api, batchHandler, rbacService, rdb)
		closing.RegisterRoutes(api, closingHandler, rbacService, rdb)
		indicator.RegisterRoutes(api, indicatorHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
