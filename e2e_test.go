package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-route-planner/config"
	"github.com/FACorreiaa/go-route-planner/internal/api/assistant"
	"github.com/FACorreiaa/go-route-planner/internal/container"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// E2ETestSuite runs complete planning workflows against the real HTTP stack
// with a fake 2GIS catalog behind it.
type E2ETestSuite struct {
	suite.Suite
	catalog   *httptest.Server
	server    *httptest.Server
	container *container.Container
	client    *http.Client

	mu      sync.Mutex
	queries map[string]int
}

func (s *E2ETestSuite) SetupSuite() {
	s.queries = make(map[string]int)
	s.catalog = httptest.NewServer(fakeCatalog(s.countQuery))

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Provider = config.Provider{
		BaseURL:   s.catalog.URL,
		APIKey:    "e2e-key",
		PageSize:  10,
		MaxPages:  2,
		RadiusM:   1500,
		Retries:   1,
		Backoff:   time.Millisecond,
		Timeout:   5 * time.Second,
		RateLimit: 0,
	}
	cfg.Cache = config.Cache{TTL: time.Hour, Dir: s.T().TempDir()}
	cfg.Planner = config.Planner{MaxStops: 7, DayStart: "10:00", DayEnd: "20:00", MealStop: true}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainer(context.Background(), cfg, nil, logger)
	s.Require().NoError(err)
	s.container = c

	s.server = httptest.NewServer(newHandler(cfg, c, logger))
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.container != nil {
		s.container.Close()
	}
	if s.catalog != nil {
		s.catalog.Close()
	}
}

// fakeCatalog answers museum searches with two places near the center of
// Rostov-on-Don and every other search with nothing.
func fakeCatalog(onQuery func(q string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if onQuery != nil {
			onQuery(q.Get("q"))
		}

		items := []map[string]any{}
		if q.Get("q") == "музей" && q.Get("page") == "1" {
			items = append(items,
				map[string]any{
					"id":      "m1",
					"name":    "Музей изобразительных искусств",
					"point":   map[string]float64{"lat": 47.2265, "lon": 39.7204},
					"rubrics": []map[string]string{{"name": "Музеи"}},
					"reviews": map[string]any{"general_rating": 4.7, "general_review_count": 320},
				},
				map[string]any{
					"id":      "m2",
					"name":    "Краеведческий музей",
					"point":   map[string]float64{"lat": 47.2310, "lon": 39.7204},
					"rubrics": []map[string]string{{"name": "Музеи"}},
				},
			)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meta":   map[string]int{"code": 200},
			"result": map[string]any{"items": items},
		})
	})
}

func (s *E2ETestSuite) countQuery(q string) {
	s.mu.Lock()
	s.queries[q]++
	s.mu.Unlock()
}

func (s *E2ETestSuite) calls(query string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[query]
}

func (s *E2ETestSuite) post(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := s.client.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *E2ETestSuite) decode(resp *http.Response, dst any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *E2ETestSuite) TestPlanWorkflow() {
	req := types.PlanRequest{Date: "2025-06-01", Tags: []string{"Музеи"}}

	resp := s.post("/api/v1/plan", req)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var plan types.PlanResponse
	s.decode(resp, &plan)

	s.Require().Len(plan.Stops, 2)
	s.Equal("Музей изобразительных искусств", plan.Stops[0].Name)
	s.True(strings.HasPrefix(plan.Stops[0].Arrive, "2025-06-01T10:"), plan.Stops[0].Arrive)
	s.Contains(plan.ICS, "BEGIN:VCALENDAR\r\n")
	s.Contains(plan.ICS, "X-WR-CALNAME:Маршрут: Ростов-на-Дону")
	s.Positive(plan.TotalMinutes)

	// the same plan again is served from the cache
	before := s.calls("музей")
	resp = s.post("/api/v1/plan", req)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	s.Equal(before, s.calls("музей"))

	// the planned stops export to a standalone calendar
	resp = s.post("/api/v1/calendar", types.CalendarRequest{Title: "Мой день", Stops: plan.Stops})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	ics, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Contains(string(ics), "X-WR-CALNAME:Мой день")
	s.Equal(2, strings.Count(string(ics), "BEGIN:VEVENT"))
}

func (s *E2ETestSuite) TestPlanICSWorkflow() {
	resp := s.post("/api/v1/plan/ics", types.PlanRequest{Date: "2025-06-02", Tags: []string{"museum"}})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("text/calendar; charset=utf-8", resp.Header.Get("Content-Type"))
	s.Equal(`attachment; filename="route_2025-06-02.ics"`, resp.Header.Get("Content-Disposition"))
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "DTSTART;TZID=Europe/Moscow:20250602T10")
}

func (s *E2ETestSuite) TestAssistantWorkflow() {
	known := assistant.Preferences{}
	answers := map[string]func(*assistant.Preferences){
		"date":   func(p *assistant.Preferences) { p.Date = "2025-06-03" },
		"tags":   func(p *assistant.Preferences) { p.Tags = []string{"музеи"} },
		"budget": func(p *assistant.Preferences) { p.Budget = "low" },
		"pace":   func(p *assistant.Preferences) { p.Pace = "relaxed" },
	}

	var step assistant.Step
	for range 5 {
		resp := s.post("/api/v1/llm/next", assistant.NextRequest{KnownPrefs: known})
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.decode(resp, &step)
		if step.Mode == assistant.ModeReady {
			break
		}
		answer, ok := answers[step.Field]
		s.Require().True(ok, step.Field)
		answer(&known)
	}
	s.Require().Equal(assistant.ModeReady, step.Mode)
	s.Require().NotNil(step.Prefs)

	resp := s.post("/api/v1/plan", types.PlanRequest{
		City:   step.Prefs.City,
		Date:   step.Prefs.Date,
		Tags:   step.Prefs.Tags,
		Budget: step.Prefs.Budget,
		Pace:   step.Prefs.Pace,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var plan types.PlanResponse
	s.decode(resp, &plan)
	s.Require().NotEmpty(plan.Stops)

	resp = s.post("/api/v1/llm/explain", assistant.ExplainRequest{Prefs: *step.Prefs, Stops: plan.Stops})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var explained assistant.ExplainResponse
	s.decode(resp, &explained)
	s.True(strings.HasPrefix(explained.Text, "Начнём с "+plan.Stops[0].Name), explained.Text)
}

func (s *E2ETestSuite) TestErrorHandlingWorkflow() {
	resp := s.post("/api/v1/plan", map[string]any{"date": "first of June"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	var body types.Response
	s.decode(resp, &body)
	s.False(body.Success)
	s.NotEmpty(body.Error)
	s.NotEmpty(body.RequestID)

	resp, err := s.client.Get(s.server.URL + "/api/v1/places?lat=47.22")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, err = s.client.Get(s.server.URL + "/api/v1/routes")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) TestConcurrentPlans() {
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := `{"date":"2025-06-04","tags":["museum"]}`
			resp, err := s.client.Post(s.server.URL+"/api/v1/plan", "application/json", strings.NewReader(payload))
			if err != nil {
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}()
	}
	wg.Wait()
	for _, code := range codes {
		s.Equal(http.StatusOK, code)
	}
}

func TestE2E(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
