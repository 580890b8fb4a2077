// Package route builds single-day sightseeing itineraries: it selects the
// candidate places, orders them into a compact tour and assigns visiting
// times. The package performs no I/O; callers hand in an already fetched
// place list and receive a finished itinerary.
package route

import (
	"context"
	"log/slog"
	"time"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// Exporter turns a finished schedule into the public itinerary, including
// its calendar payload.
type Exporter interface {
	Export(stops []types.Stop, totalMinutes int, meta types.CalendarMeta) (*types.Itinerary, error)
}

// Config tunes the planner. Zero values use the package defaults.
type Config struct {
	MaxStops        int
	Sequencer       SequencerOptions
	Schedule        ScheduleOptions
	DisableMealStop bool
}

// Request is one planning request.
type Request struct {
	Start  types.GeoPoint
	Places []types.Place
	Tags   tags.Set
	Date   time.Time
	// DayEnd overrides the configured end of the day when set.
	DayEnd *types.ClockTime
	Meta   types.CalendarMeta
	// Describe, when set, derives the calendar description from the number
	// of scheduled stops and replaces Meta.Description.
	Describe func(stops int) string
}

type Planner struct {
	cfg      Config
	exporter Exporter
	logger   *slog.Logger
}

func NewPlanner(cfg Config, exporter Exporter, logger *slog.Logger) *Planner {
	if cfg.MaxStops <= 0 {
		cfg.MaxStops = MaxStops
	}
	return &Planner{
		cfg:      cfg,
		exporter: exporter,
		logger:   logger,
	}
}

// Plan runs selection, sequencing, meal insertion and scheduling, then hands
// the stops to the exporter. An empty candidate list yields an empty
// itinerary, not an error.
func (p *Planner) Plan(ctx context.Context, req Request) (*types.Itinerary, error) {
	l := p.logger.With(slog.String("method", "Plan"))

	start := req.Start
	selected := SelectCandidates(req.Places, req.Tags, &start, p.cfg.MaxStops)
	places := make([]types.Place, len(selected))
	for i, c := range selected {
		places[i] = c.Place
	}

	order := Sequence(start, places, p.cfg.Sequencer)
	l.DebugContext(ctx, "Route sequenced",
		slog.Int("candidates", len(req.Places)),
		slog.Int("selected", len(order)),
		slog.Float64("length_km", RouteLength(start, order)))

	if !p.cfg.DisableMealStop {
		var inserted bool
		if order, inserted = InsertMeal(start, order, req.Places); inserted {
			l.DebugContext(ctx, "Meal stop inserted", slog.Int("stops", len(order)))
		}
	}

	opts := p.cfg.Schedule
	if req.DayEnd != nil {
		opts.DayEnd = req.DayEnd
	}
	schedule := BuildSchedule(req.Date, start, order, opts)
	if schedule.Dropped > 0 {
		l.InfoContext(ctx, "Route truncated at end of day",
			slog.Int("dropped", schedule.Dropped),
			slog.Int("kept", len(schedule.Stops)))
	}

	meta := req.Meta
	if req.Describe != nil {
		meta.Description = req.Describe(len(schedule.Stops))
	}
	return p.exporter.Export(schedule.Stops, schedule.TotalMinutes, meta)
}
