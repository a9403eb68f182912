// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"agroplan/internal/domain/cycle"
	"agroplan/internal/domain/dashboard"
	"agroplan/internal/infrastructure/http/v1/handlers"
	"agroplan/internal/infrastructure/http/v1/middleware"
	"agroplan/internal/infrastructure/storage/postgres"
	"agroplan/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// CycleService serves cycle read endpoints
	CycleService *cycle.Service

	// DashboardService builds the operational report
	DashboardService *dashboard.Service

	// DashboardConfig tunes alert thresholds and list caps
	DashboardConfig dashboard.Config
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Compress())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	// API v1 - all endpoints require a valid JWT
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.JWTValidator))
	{
		baseHandler := handlers.NewBaseHandler()

		cycleHandler := handlers.NewCycleHandler(baseHandler, cfg.CycleService)
		cycleHandler.RegisterRoutes(apiV1.Group("/cycles"))

		// The operational report is management-facing
		dashboardGroup := apiV1.Group("/dashboard")
		dashboardGroup.Use(middleware.RequireRole("admin", "manager"))

		dashboardHandler := handlers.NewDashboardHandler(baseHandler, cfg.DashboardService, cfg.DashboardConfig)
		dashboardHandler.RegisterRoutes(dashboardGroup)
	}

	return router
}
