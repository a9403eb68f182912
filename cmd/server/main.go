// Package main is the entry point for the Agroplan API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agroplan/internal/domain/auth"
	"agroplan/internal/domain/cycle"
	"agroplan/internal/domain/dashboard"
	v1 "agroplan/internal/infrastructure/http/v1"
	"agroplan/internal/infrastructure/storage/postgres"
	"agroplan/internal/infrastructure/storage/postgres/cycle_repo"
	"agroplan/internal/infrastructure/storage/postgres/dashboard_repo"
	"agroplan/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting agroplan server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Repositories and services ---
	cycleRepo := cycle_repo.NewCycleRepo(pool.Unwrap())
	dashboardRepo := dashboard_repo.NewDashboardRepo(pool.Unwrap())

	cycleService := cycle.NewService(cycleRepo)
	dashboardService := dashboard.NewService(cycleRepo, dashboardRepo)

	// --- Dashboard thresholds ---
	dashboardCfg := dashboard.DefaultConfig()
	if v := getEnvFloat("DASHBOARD_LOW_SEED_STOCK_KG", 0); v > 0 {
		dashboardCfg.LowSeedStockThreshold = v
	}
	if v := getEnvFloat("DASHBOARD_LOW_INPUT_STOCK", 0); v > 0 {
		dashboardCfg.LowInputStockThreshold = v
	}
	if v := getEnvFloat("DASHBOARD_LOW_FUEL_PERCENT", 0); v > 0 {
		dashboardCfg.LowFuelFillPercent = v
	}
	if d := getEnvDuration("DASHBOARD_DUE_SOON_WINDOW", 0); d > 0 {
		dashboardCfg.DueSoonWindow = d
	}
	if n := getEnvInt("DASHBOARD_TOP_N", 0); n > 0 {
		dashboardCfg.TopN = n
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		CycleService:     cycleService,
		DashboardService: dashboardService,
		DashboardConfig:  dashboardCfg,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%g", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
