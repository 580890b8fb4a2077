package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.Equal(t, 7, cfg.Planner.MaxStops)
	assert.Equal(t, "10:00", cfg.Planner.DayStart)
	assert.Equal(t, "20:00", cfg.Planner.DayEnd)
	assert.Equal(t, 2000, cfg.Provider.RadiusM)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Provider.Backoff)
	assert.Equal(t, 1.0, cfg.Server.PlanRateLimit)
	assert.Equal(t, 5, cfg.Server.PlanBurst)
	assert.False(t, cfg.Repositories.Postgres.Enabled)
	assert.True(t, cfg.Repositories.BundledSeed)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	t.Setenv("ROUTE_PLANNER_MAXSTOPS", "5")
	t.Setenv("DGIS_API_KEY", "demo-key")

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Planner.MaxStops)
	assert.Equal(t, "demo-key", cfg.Provider.APIKey)
}
