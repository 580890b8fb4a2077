package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0мин"},
		{45, "45мин"},
		{60, "1ч"},
		{120, "2ч"},
		{253, "4ч 13мин"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes))
	}
}

func TestExport(t *testing.T) {
	x := NewExporter(fixedEncoder())

	got, err := x.Export(sampleStops(), 253, types.CalendarMeta{})
	require.NoError(t, err)
	assert.Len(t, got.Stops, 3)
	assert.Equal(t, 253, got.TotalMinutes)
	assert.Equal(t, "4ч 13мин", got.TotalTimeHuman)
	assert.Contains(t, got.CalendarPayload, "BEGIN:VCALENDAR")
}

func TestExportEmpty(t *testing.T) {
	got, err := NewExporter(fixedEncoder()).Export(nil, 0, types.CalendarMeta{})
	require.NoError(t, err)
	assert.NotNil(t, got.Stops)
	assert.Empty(t, got.Stops)
	assert.Equal(t, "0мин", got.TotalTimeHuman)
	assert.NotEmpty(t, got.CalendarPayload)
}

func TestExportPropagatesInvalidTime(t *testing.T) {
	stops := []types.Stop{{Name: "x", Arrive: "bad", Leave: "bad"}}
	_, err := NewExporter(fixedEncoder()).Export(stops, 50, types.CalendarMeta{})
	assert.ErrorIs(t, err, ErrInvalidTime)
}
