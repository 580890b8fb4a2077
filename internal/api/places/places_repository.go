package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Repository = (*PostgresRepository)(nil)

// Repository reads the curated seed catalog.
type Repository interface {
	ListByCity(ctx context.Context, city string) ([]types.Place, error)
	ListCities(ctx context.Context) ([]types.CitySummary, error)
}

type PostgresRepository struct {
	logger *slog.Logger
	db     DB
}

func NewRepository(db DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		db:     db,
	}
}

func observeQuery(ctx context.Context, op string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("query", op))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

// ListByCity returns the seed places of city ordered by name.
func (r *PostgresRepository) ListByCity(ctx context.Context, city string) (places []types.Place, err error) {
	ctx, span := otel.Tracer("PlacesRepository").Start(ctx, "ListByCity", trace.WithAttributes(
		attribute.String("city", city),
	))
	defer span.End()
	start := time.Now()
	defer func() { observeQuery(ctx, "list_places_by_city", start, err) }()

	query := `
        SELECT id, name, city, lat, lon, tags, rating, review_count, description, opening_hours
        FROM places
        WHERE city = $1
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query, city)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query places for %s: %w", city, err)
	}
	defer rows.Close()

	places = make([]types.Place, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			p     types.Place
			raw   []string
			hours []byte
		)
		if err = rows.Scan(&id, &p.Name, &p.City, &p.Lat, &p.Lon, &raw, &p.Rating, &p.ReviewCount, &p.Description, &hours); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		p.ID = id.String()
		p.Tags = tags.Normalize(raw)
		if len(hours) > 0 {
			if err = json.Unmarshal(hours, &p.OpeningHours); err != nil {
				return nil, fmt.Errorf("place %s has malformed opening hours: %w", p.Name, err)
			}
		}
		places = append(places, p)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}

	r.logger.DebugContext(ctx, "Loaded seed places", slog.String("city", city), slog.Int("count", len(places)))
	span.SetAttributes(attribute.Int("places.count", len(places)))
	return places, nil
}

// ListCities summarizes the catalog per city.
func (r *PostgresRepository) ListCities(ctx context.Context) (cities []types.CitySummary, err error) {
	ctx, span := otel.Tracer("PlacesRepository").Start(ctx, "ListCities")
	defer span.End()
	start := time.Now()
	defer func() { observeQuery(ctx, "list_cities", start, err) }()

	query := `
        SELECT city, avg(lat), avg(lon), count(*)
        FROM places
        GROUP BY city
        ORDER BY city
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities = make([]types.CitySummary, 0)
	for rows.Next() {
		var (
			c     types.CitySummary
			count int64
		)
		if err = rows.Scan(&c.Name, &c.Center.Lat, &c.Center.Lon, &count); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		c.Places = int(count)
		cities = append(cities, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}
	return cities, nil
}
