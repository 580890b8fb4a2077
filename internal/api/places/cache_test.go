package places

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMakeKey(t *testing.T) {
	a := MakeKey("2gis_radius", map[string]any{"q": "музей", "page": 1, "lat": 47.2221})
	b := MakeKey("2gis_radius", map[string]any{"lat": 47.2221, "page": 1, "q": "музей"})
	c := MakeKey("2gis_radius", map[string]any{"lat": 47.2221, "page": 2, "q": "музей"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 40)
}

func TestTwoLayerCacheMemoryOnly(t *testing.T) {
	ctx := context.Background()
	c, err := NewCache(time.Hour, "", discardLogger())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`[1,2]`)))
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func TestTwoLayerCacheSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewCache(time.Hour, dir, discardLogger())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte(`{"ok":true}`)))
	require.NoError(t, first.Close())

	second, err := NewCache(time.Hour, dir, discardLogger())
	require.NoError(t, err)
	defer second.Close()

	got, ok := second.Get(ctx, "k")
	require.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, string(got))

	// promoted into memory
	_, ok = second.mem.Get("k")
	assert.True(t, ok)
}
