package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal       metric.Int64Counter
	PlanDurationSeconds     metric.Float64Histogram
	PlanStops               metric.Int64Histogram
	ProviderDurationSeconds metric.Float64Histogram
	ProviderErrorsTotal     metric.Int64Counter
	CacheHitsTotal          metric.Int64Counter
	CacheMissesTotal        metric.Int64Counter
	DbQueryDurationSeconds  metric.Float64Histogram
	DbQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once from the global MeterProvider.
// Call it after tracer.Init so the Prometheus exporter receives them.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-route-planner")
		m, err := newAppMetrics(meter)
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.PlanRequestsTotal, err = meter.Int64Counter(
		"plan_requests_total",
		metric.WithDescription("Total number of planned itineraries"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.PlanDurationSeconds, err = meter.Float64Histogram(
		"plan_duration_seconds",
		metric.WithDescription("Duration of planning requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.PlanStops, err = meter.Int64Histogram(
		"plan_stops",
		metric.WithDescription("Number of stops per planned itinerary"),
		metric.WithUnit("{stop}"),
	); err != nil {
		return nil, err
	}
	if m.ProviderDurationSeconds, err = meter.Float64Histogram(
		"provider_request_duration_seconds",
		metric.WithDescription("Duration of places provider requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.ProviderErrorsTotal, err = meter.Int64Counter(
		"provider_errors_total",
		metric.WithDescription("Total number of failed places provider requests"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.CacheHitsTotal, err = meter.Int64Counter(
		"cache_hits_total",
		metric.WithDescription("Provider cache hits by layer"),
	); err != nil {
		return nil, err
	}
	if m.CacheMissesTotal, err = meter.Int64Counter(
		"cache_misses_total",
		metric.WithDescription("Provider cache misses"),
	); err != nil {
		return nil, err
	}
	if m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the global AppMetrics. Before InitAppMetrics has run it falls
// back to no-op instruments from the default provider, which keeps unit
// tests free of setup.
func Get() *AppMetrics {
	if appMetrics == nil {
		m, err := newAppMetrics(otel.GetMeterProvider().Meter("go-route-planner"))
		if err != nil {
			panic("metrics instruments could not be created: " + err.Error())
		}
		return m
	}
	return appMetrics
}
