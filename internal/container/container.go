package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-route-planner/app/db"
	"github.com/FACorreiaa/go-route-planner/config"
	"github.com/FACorreiaa/go-route-planner/internal/api/assistant"
	"github.com/FACorreiaa/go-route-planner/internal/api/city"
	generativeAI "github.com/FACorreiaa/go-route-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-route-planner/internal/api/places"
	"github.com/FACorreiaa/go-route-planner/internal/api/plan"
	"github.com/FACorreiaa/go-route-planner/internal/api/tags"
	"github.com/FACorreiaa/go-route-planner/internal/itinerary"
	"github.com/FACorreiaa/go-route-planner/internal/route"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	Cache            *places.TwoLayerCache
	TagsHandler      *tags.HandlerImpl
	PlacesHandler    *places.Handler
	CityHandler      *city.Handler
	PlanHandler      *plan.Handler
	AssistantHandler *assistant.Handler
}

// NewContainer initializes and returns a new dependency container. pool may
// be nil when Postgres is disabled; the seed catalog is then empty.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	cache, err := places.NewCache(cfg.Cache.TTL, cfg.Cache.Dir, logger)
	if err != nil {
		logger.Error("Failed to open provider cache", slog.Any("error", err))
		return nil, err
	}

	client := places.NewClient(cfg.Provider.APIKey, logger,
		places.WithBaseURL(cfg.Provider.BaseURL),
		places.WithLocale(cfg.Provider.Locale),
		places.WithPaging(cfg.Provider.PageSize, cfg.Provider.MaxPages),
		places.WithRetries(cfg.Provider.Retries, cfg.Provider.Backoff),
		places.WithRateLimit(cfg.Provider.RateLimit),
		places.WithTimeout(cfg.Provider.Timeout),
		places.WithCache(cache),
	)
	if !client.Enabled() {
		logger.Warn("2GIS API key is not set, planning from the seed catalog only")
	}

	var placesRepo places.Repository
	switch {
	case pool != nil:
		placesRepo = places.NewRepository(pool, logger)
	case cfg.Repositories.BundledSeed:
		memoryRepo, err := places.NewMemoryRepository(logger)
		if err != nil {
			_ = cache.Close()
			return nil, err
		}
		placesRepo = memoryRepo
	}
	placesService := places.NewServiceImpl(client, placesRepo, logger).
		WithDefaultQuery(cfg.Provider.DefaultQuery)

	plannerCfg, err := plannerConfig(cfg.Planner)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}
	encoder := itinerary.NewEncoder()
	planner := route.NewPlanner(plannerCfg, itinerary.NewExporter(encoder), logger)
	planService := plan.NewServiceImpl(placesService, planner, encoder, plan.Options{
		DefaultCity: cfg.Planner.DefaultCity,
		RadiusM:     cfg.Provider.RadiusM,
	}, logger)

	var generator assistant.Generator
	if cfg.LLM.APIKey != "" {
		aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			// the assistant still answers with its scripted flow
			logger.Warn("Gemini client unavailable", slog.Any("error", err))
		} else {
			generator = aiClient
			logger.Info("Gemini assistant enabled", slog.String("model", aiClient.Model()))
		}
	}
	assistantService := assistant.NewServiceImpl(generator, cfg.LLM.Timeout, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		Cache:            cache,
		TagsHandler:      tags.NewHandlerImpl(logger),
		PlacesHandler:    places.NewHandler(placesService, logger),
		CityHandler:      city.NewCityHandler(placesService, logger),
		PlanHandler:      plan.NewHandler(planService, logger),
		AssistantHandler: assistant.NewHandler(assistantService, logger),
	}, nil
}

func plannerConfig(p config.Planner) (route.Config, error) {
	out := route.Config{
		MaxStops:        p.MaxStops,
		Sequencer:       route.SequencerOptions{TimeBudget: p.TimeBudget},
		DisableMealStop: !p.MealStop,
	}
	if p.DayStart != "" {
		start, err := types.ParseClockTime(p.DayStart)
		if err != nil {
			return route.Config{}, fmt.Errorf("planner.dayStart: %w", err)
		}
		out.Schedule.DayStart = &start
	}
	if p.DayEnd != "" {
		end, err := types.ParseClockTime(p.DayEnd)
		if err != nil {
			return route.Config{}, fmt.Errorf("planner.dayEnd: %w", err)
		}
		out.Schedule.DayEnd = &end
	}
	return out, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Error("Failed to close provider cache", slog.Any("error", err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	if c.Pool == nil {
		return true
	}
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
