// Package itinerary turns a planned schedule into the public itinerary and
// its iCalendar export.
package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// Exporter assembles itineraries from scheduled stops.
type Exporter struct {
	encoder *Encoder
}

func NewExporter(encoder *Encoder) *Exporter {
	return &Exporter{encoder: encoder}
}

// Export formats the total time and renders the calendar payload.
func (x *Exporter) Export(stops []types.Stop, totalMinutes int, meta types.CalendarMeta) (*types.Itinerary, error) {
	payload, err := x.encoder.Encode(stops, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	if stops == nil {
		stops = []types.Stop{}
	}
	return &types.Itinerary{
		Stops:           stops,
		TotalMinutes:    totalMinutes,
		TotalTimeHuman:  FormatDuration(totalMinutes),
		CalendarPayload: payload,
	}, nil
}

// FormatDuration renders minutes as "<H>ч <M>мин", leaving out a zero part.
// Zero minutes render as "0мин".
func FormatDuration(total int) string {
	hours, minutes := total/60, total%60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dч %dмин", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dч", hours)
	default:
		return fmt.Sprintf("%dмин", minutes)
	}
}
