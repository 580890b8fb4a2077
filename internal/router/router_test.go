package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-route-planner/app/middleware"
	"github.com/FACorreiaa/go-route-planner/internal/api/assistant"
	"github.com/FACorreiaa/go-route-planner/internal/api/city"
	"github.com/FACorreiaa/go-route-planner/internal/api/places"
	"github.com/FACorreiaa/go-route-planner/internal/api/plan"
	"github.com/FACorreiaa/go-route-planner/internal/api/tags"
	"github.com/FACorreiaa/go-route-planner/internal/itinerary"
	"github.com/FACorreiaa/go-route-planner/internal/route"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	placesService := places.NewServiceImpl(nil, nil, logger)
	planner := route.NewPlanner(route.Config{}, itinerary.NewExporter(itinerary.NewEncoder()), logger)
	planService := plan.NewServiceImpl(placesService, planner, itinerary.NewEncoder(), plan.Options{}, logger)

	return SetupRouter(&Config{
		TagsHandler:      tags.NewHandlerImpl(logger),
		PlacesHandler:    places.NewHandler(placesService, logger),
		CityHandler:      city.NewCityHandler(placesService, logger),
		PlanHandler:      plan.NewHandler(planService, logger),
		AssistantHandler: assistant.NewHandler(assistant.NewServiceImpl(nil, 0, logger), logger),
		AllowedOrigins:   []string{"http://localhost:5173"},
		PlanThrottle:     appMiddleware.Throttle(0.001, 1, logger),
	})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestSetupRouterRoutes(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/v1/tags", "", http.StatusOK},
		{http.MethodPost, "/api/v1/tags/normalize", `{"tags":["музеи"]}`, http.StatusOK},
		{http.MethodGet, "/api/v1/places?lat=47.22&lon=39.72", "", http.StatusOK},
		{http.MethodGet, "/api/v1/cities", "", http.StatusOK},
		{http.MethodPost, "/api/v1/calendar", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/llm/next", `{"known_prefs":{}}`, http.StatusOK},
		{http.MethodPost, "/api/v1/llm/explain", `{"prefs":{},"stops":[]}`, http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", "", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/plan", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHealthz(t *testing.T) {
	rec := serve(testRouter(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestPlanRoutesAreThrottled(t *testing.T) {
	r := testRouter(t)

	rec := serve(r, http.MethodPost, "/api/v1/plan", `{"date":"2025-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"stops":[]`)

	rec = serve(r, http.MethodPost, "/api/v1/plan/ics", `{"date":"2025-06-01"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// other routes share no bucket with planning
	rec = serve(r, http.MethodGet, "/api/v1/tags", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plan", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/plan", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
