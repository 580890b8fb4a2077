package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-route-planner/docs"
	"github.com/FACorreiaa/go-route-planner/internal/api"
	"github.com/FACorreiaa/go-route-planner/internal/api/assistant"
	"github.com/FACorreiaa/go-route-planner/internal/api/city"
	"github.com/FACorreiaa/go-route-planner/internal/api/places"
	"github.com/FACorreiaa/go-route-planner/internal/api/plan"
	"github.com/FACorreiaa/go-route-planner/internal/api/tags"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TagsHandler      tags.Handler
	PlacesHandler    *places.Handler
	CityHandler      *city.Handler
	PlanHandler      *plan.Handler
	AssistantHandler *assistant.Handler
	AllowedOrigins   []string
	// PlanThrottle guards the planning routes, which fan out to the
	// provider. Nil disables it.
	PlanThrottle func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied in
// main.go before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tags", cfg.TagsHandler.GetTags)
		r.Post("/tags/normalize", cfg.TagsHandler.NormalizeTags)
		r.Get("/places", cfg.PlacesHandler.SearchPlaces)
		r.Get("/cities", cfg.CityHandler.GetAllCities)

		r.Group(func(r chi.Router) {
			if cfg.PlanThrottle != nil {
				r.Use(cfg.PlanThrottle)
			}
			r.Post("/plan", cfg.PlanHandler.PlanTrip)
			r.Post("/plan/ics", cfg.PlanHandler.PlanTripICS)
		})
		r.Post("/calendar", cfg.PlanHandler.ExportCalendar)

		r.Post("/llm/next", cfg.AssistantHandler.NextStep)
		r.Post("/llm/explain", cfg.AssistantHandler.Explain)
	})

	return r
}
