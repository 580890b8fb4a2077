package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appLogger "github.com/FACorreiaa/go-route-planner/app/logger"
	appMiddleware "github.com/FACorreiaa/go-route-planner/app/middleware"
	"github.com/FACorreiaa/go-route-planner/config"
	"github.com/FACorreiaa/go-route-planner/internal/container"
	api "github.com/FACorreiaa/go-route-planner/internal/router"
)

// newHandler mounts the API router behind the server-wide middleware.
func newHandler(cfg *config.Config, c *container.Container, logger *slog.Logger) http.Handler {
	routerConfig := &api.Config{
		TagsHandler:      c.TagsHandler,
		PlacesHandler:    c.PlacesHandler,
		CityHandler:      c.CityHandler,
		PlanHandler:      c.PlanHandler,
		AssistantHandler: c.AssistantHandler,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
	}
	if cfg.Server.PlanRateLimit > 0 {
		routerConfig.PlanThrottle = appMiddleware.Throttle(cfg.Server.PlanRateLimit, max(1, cfg.Server.PlanBurst), logger)
	}
	mainRouter := api.SetupRouter(routerConfig)

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(requestTimeout(cfg)))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)
	return router
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.Timeout <= 0 {
		return 60 * time.Second
	}
	return cfg.Server.Timeout
}
