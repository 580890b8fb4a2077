package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/go-route-planner/app/db"
	appLogger "github.com/FACorreiaa/go-route-planner/app/logger"
	"github.com/FACorreiaa/go-route-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-route-planner/app/tracer"
	"github.com/FACorreiaa/go-route-planner/config"
	"github.com/FACorreiaa/go-route-planner/internal/container"
)

// @title        Route Planner API
// @version      1.0
// @description  Single-day sightseeing route planner.
// @host         localhost:8080
// @BasePath     /api/v1
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = cfg.Mode
	}
	logger := appLogger.New(env, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	providers, err := tracer.Init()
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	metricsSrv := tracer.MetricsServer(cfg.Handlers.Prometheus.Port, logger)
	go func() {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", slog.Any("error", err))
		}
	}()

	// --- Database Setup ---
	pool, err := setupDatabase(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to set up database", slog.Any("error", err))
		os.Exit(1)
	}

	c, err := container.NewContainer(ctx, &cfg, pool, logger)
	if err != nil {
		logger.Error("Failed to build application", slog.Any("error", err))
		if pool != nil {
			pool.Close()
		}
		os.Exit(1)
	}
	defer c.Close()

	router := newHandler(&cfg, c, logger)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: requestTimeout(&cfg) + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.Any("error", err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
}

// setupDatabase migrates and connects to Postgres. It returns a nil pool
// when Postgres is disabled.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if !cfg.Repositories.Postgres.Enabled {
		logger.Info("Postgres disabled", slog.Bool("bundled_seed", cfg.Repositories.BundledSeed))
		return nil, nil
	}

	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	// Run migrations *before* initializing the main pool
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	pool, err := database.Init(ctx, dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, errors.New("database not ready after waiting")
	}
	return pool, nil
}
