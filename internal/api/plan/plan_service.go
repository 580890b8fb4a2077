package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-route-planner/internal/api/places"
	"github.com/FACorreiaa/go-route-planner/internal/route"
	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const dateLayout = "2006-01-02"

// Planner builds an itinerary from a candidate pool.
type Planner interface {
	Plan(ctx context.Context, req route.Request) (*types.Itinerary, error)
}

// Calendar renders already scheduled stops as an iCalendar document.
type Calendar interface {
	Encode(stops []types.Stop, meta types.CalendarMeta) (string, error)
}

var _ Planner = (*route.Planner)(nil)

// Options holds request defaults.
type Options struct {
	DefaultCity string
	RadiusM     int
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	PlanTrip(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error)
	ExportCalendar(ctx context.Context, req types.CalendarRequest) (string, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	places   places.Service
	planner  Planner
	calendar Calendar
	opts     Options
}

func NewServiceImpl(placesService places.Service, planner Planner, calendar Calendar, opts Options, logger *slog.Logger) *ServiceImpl {
	if opts.DefaultCity == "" {
		opts.DefaultCity = types.DefaultCity
	}
	if opts.RadiusM <= 0 {
		opts.RadiusM = places.MaxRadiusM
	}
	return &ServiceImpl{
		logger:   logger,
		places:   placesService,
		planner:  planner,
		calendar: calendar,
		opts:     opts,
	}
}

// PlanTrip resolves the request, gathers candidates around the start point
// and plans the day. The start point is the user's location when given,
// otherwise the city center.
func (s *ServiceImpl) PlanTrip(ctx context.Context, req types.PlanRequest) (itinerary *types.Itinerary, err error) {
	ctx, span := otel.Tracer("PlanService").Start(ctx, "PlanTrip", trace.WithAttributes(
		attribute.String("date", req.Date),
		attribute.String("city", req.City),
	))
	defer span.End()

	m := metrics.Get()
	began := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		attrs := metric.WithAttributes(attribute.String("status", status))
		m.PlanRequestsTotal.Add(ctx, 1, attrs)
		m.PlanDurationSeconds.Record(ctx, time.Since(began).Seconds(), attrs)
		if itinerary != nil {
			m.PlanStops.Record(ctx, int64(len(itinerary.Stops)))
		}
	}()

	l := s.logger.With(slog.String("method", "PlanTrip"))

	date, err := time.ParseInLocation(dateLayout, req.Date, types.PlannerZone)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", req.Date, types.ErrInvalidInput)
	}
	var dayEnd *types.ClockTime
	if req.DayEnd != "" {
		end, err := types.ParseClockTime(req.DayEnd)
		if err != nil {
			return nil, err
		}
		dayEnd = &end
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = s.opts.DefaultCity
	}
	start := types.CityCenter(city)
	if req.UserLocation != nil {
		start = *req.UserLocation
	}
	radius := s.opts.RadiusM
	if req.RadiusM != nil {
		radius = *req.RadiusM
	}
	wanted := tags.Normalize(req.Tags)

	candidates, err := s.places.Candidates(ctx, places.CandidateQuery{
		City:     city,
		Center:   start,
		Location: req.UserLocation,
		Tags:     wanted,
		RadiusM:  places.ClampRadius(radius),
		Date:     date,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidates failed")
		return nil, fmt.Errorf("failed to gather candidates: %w", err)
	}

	itinerary, err = s.planner.Plan(ctx, route.Request{
		Start:  start,
		Places: candidates,
		Tags:   wanted,
		Date:   date,
		DayEnd: dayEnd,
		Meta:   types.CalendarMeta{Title: "Маршрут: " + city},
		Describe: func(stops int) string {
			return fmt.Sprintf("Маршрут на %s — %d остановок.", date.Format(dateLayout), stops)
		},
	})
	if err != nil {
		l.ErrorContext(ctx, "Planning failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "planning failed")
		return nil, fmt.Errorf("failed to plan route: %w", err)
	}

	l.InfoContext(ctx, "Route planned",
		slog.String("city", city),
		slog.String("date", req.Date),
		slog.Int("candidates", len(candidates)),
		slog.Int("stops", len(itinerary.Stops)),
		slog.Int("total_minutes", itinerary.TotalMinutes))
	span.SetAttributes(attribute.Int("stops.count", len(itinerary.Stops)))
	return itinerary, nil
}

// ExportCalendar renders client-supplied stops.
func (s *ServiceImpl) ExportCalendar(ctx context.Context, req types.CalendarRequest) (string, error) {
	_, span := otel.Tracer("PlanService").Start(ctx, "ExportCalendar", trace.WithAttributes(
		attribute.Int("stops.count", len(req.Stops)),
	))
	defer span.End()

	payload, err := s.calendar.Encode(req.Stops, types.CalendarMeta{Title: req.Title, Description: req.Description})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		return "", err
	}
	return payload, nil
}
