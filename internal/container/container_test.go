package container

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-planner/config"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = time.Hour
	cfg.Planner = config.Planner{
		MaxStops:   5,
		DayStart:   "09:30",
		DayEnd:     "19:00",
		TimeBudget: 100 * time.Millisecond,
		MealStop:   false,
	}
	return cfg
}

func TestNewContainerWithoutDatabaseOrKeys(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := NewContainer(context.Background(), testConfig(), nil, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.NotNil(t, c.Cache)
	assert.NotNil(t, c.TagsHandler)
	assert.NotNil(t, c.PlacesHandler)
	assert.NotNil(t, c.CityHandler)
	assert.NotNil(t, c.PlanHandler)
	assert.NotNil(t, c.AssistantHandler)
	assert.True(t, c.WaitForDB(context.Background()))
}

func TestNewContainerBundledSeed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	countPlaces := func(t *testing.T, bundled bool) int {
		cfg := testConfig()
		cfg.Repositories.BundledSeed = bundled
		c, err := NewContainer(context.Background(), cfg, nil, logger)
		require.NoError(t, err)
		defer c.Close()

		rec := httptest.NewRecorder()
		c.CityHandler.GetAllCities(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var cities []types.CitySummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
		total := 0
		for _, city := range cities {
			total += city.Places
		}
		return total
	}

	assert.Equal(t, 18, countPlaces(t, true))
	assert.Zero(t, countPlaces(t, false))
}

func TestNewContainerRejectsBadPlannerHours(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	cfg.Planner.DayEnd = "8pm"

	_, err := NewContainer(context.Background(), cfg, nil, logger)
	assert.Error(t, err)
}

func TestPlannerConfig(t *testing.T) {
	got, err := plannerConfig(testConfig().Planner)
	require.NoError(t, err)

	assert.Equal(t, 5, got.MaxStops)
	require.NotNil(t, got.Schedule.DayStart)
	require.NotNil(t, got.Schedule.DayEnd)
	assert.Equal(t, types.NewClockTime(9, 30), *got.Schedule.DayStart)
	assert.Equal(t, types.NewClockTime(19, 0), *got.Schedule.DayEnd)
	assert.Equal(t, 100*time.Millisecond, got.Sequencer.TimeBudget)
	assert.True(t, got.DisableMealStop)
}

func TestPlannerConfigKeepsMidnightDayStart(t *testing.T) {
	cfg := testConfig().Planner
	cfg.DayStart = "00:00"

	got, err := plannerConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, got.Schedule.DayStart)
	assert.Equal(t, types.NewClockTime(0, 0), *got.Schedule.DayStart)
}

func TestPlannerConfigLeavesUnsetHoursToDefaults(t *testing.T) {
	got, err := plannerConfig(config.Planner{MaxStops: 7})
	require.NoError(t, err)
	assert.Nil(t, got.Schedule.DayStart)
	assert.Nil(t, got.Schedule.DayEnd)
}
