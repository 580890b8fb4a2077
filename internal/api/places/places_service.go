package places

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-route-planner/internal/route"
	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// maxParallelQueries bounds concurrent provider searches for one plan.
const maxParallelQueries = 4

// Provider is a remote source of places.
type Provider interface {
	Enabled() bool
	FetchByRadius(ctx context.Context, q RadiusQuery) ([]types.Place, error)
}

var _ Provider = (*Client)(nil)

// CandidateQuery gathers the candidate pool for one plan.
type CandidateQuery struct {
	City     string
	Center   types.GeoPoint
	Location *types.GeoPoint
	Tags     tags.Set
	RadiusM  int
	Date     time.Time
}

// SearchQuery is a single free-text search around a point.
type SearchQuery struct {
	Query   string
	City    string
	Point   types.GeoPoint
	RadiusM int
	Limit   int
	Date    time.Time
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Candidates(ctx context.Context, q CandidateQuery) ([]types.Place, error)
	Search(ctx context.Context, q SearchQuery) ([]types.Place, error)
	Cities(ctx context.Context) ([]types.CitySummary, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	provider   Provider
	repository Repository
	fallback   SearchSpec
}

// NewServiceImpl wires the catalog. repository may be nil when no database
// is configured; the seed catalog is then empty.
func NewServiceImpl(provider Provider, repository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		provider:   provider,
		repository: repository,
		fallback:   defaultSpec,
	}
}

// WithDefaultQuery replaces the free-text query used when no interests are
// given.
func (s *ServiceImpl) WithDefaultQuery(query string) *ServiceImpl {
	if query = strings.TrimSpace(query); query != "" {
		s.fallback = SearchSpec{Query: query, Types: defaultSpec.Types}
	}
	return s
}

// Candidates runs one provider search per planned query in parallel and
// merges the results with the seed catalog of the city. Provider results
// keep the order of the planned queries; duplicates are dropped by place
// key, first occurrence wins. Failures of either source are logged and
// leave fewer candidates.
func (s *ServiceImpl) Candidates(ctx context.Context, q CandidateQuery) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Candidates", trace.WithAttributes(
		attribute.String("city", q.City),
		attribute.StringSlice("tags", q.Tags.Strings()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Candidates"), slog.String("city", q.City))

	var fetched []types.Place
	if s.provider != nil && s.provider.Enabled() {
		fetched = s.fetchAll(ctx, l, q)
	}

	seed := s.seed(ctx, l, q.City)

	merged := mergePlaces(q.City, fetched, seed)
	l.InfoContext(ctx, "Candidates gathered",
		slog.Int("provider", len(fetched)),
		slog.Int("seed", len(seed)),
		slog.Int("merged", len(merged)))
	span.SetAttributes(attribute.Int("candidates.count", len(merged)))
	return merged, nil
}

func (s *ServiceImpl) fetchAll(ctx context.Context, l *slog.Logger, q CandidateQuery) []types.Place {
	specs := PlanQueries(q.Tags)
	if len(q.Tags) == 0 {
		specs = []SearchSpec{s.fallback}
	}
	results := make([][]types.Place, len(specs))

	var g errgroup.Group
	g.SetLimit(maxParallelQueries)
	for i, spec := range specs {
		g.Go(func() error {
			found, err := s.provider.FetchByRadius(ctx, RadiusQuery{
				Point:    q.Center,
				RadiusM:  q.RadiusM,
				Query:    spec.Query,
				Types:    spec.Types,
				Location: q.Location,
				Date:     q.Date,
			})
			if err != nil {
				l.WarnContext(ctx, "Provider search failed, continuing without it",
					slog.String("query", spec.Query),
					slog.Any("error", err))
			}
			// pages fetched before a failure are still usable
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	var out []types.Place
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func (s *ServiceImpl) seed(ctx context.Context, l *slog.Logger, city string) []types.Place {
	if s.repository == nil {
		return nil
	}
	seed, err := s.repository.ListByCity(ctx, city)
	if err != nil {
		l.WarnContext(ctx, "Seed catalog unavailable", slog.Any("error", err))
		return nil
	}
	return seed
}

func mergePlaces(city string, sources ...[]types.Place) []types.Place {
	seen := make(map[string]struct{})
	out := make([]types.Place, 0)
	for _, src := range sources {
		for _, p := range src {
			key := p.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if p.City == "" {
				p.City = city
			}
			out = append(out, p)
		}
	}
	return out
}

// Search looks places up with the provider and falls back to the seed
// catalog, filtered to the search radius and sorted by distance, when the
// provider is disabled, fails or finds nothing.
func (s *ServiceImpl) Search(ctx context.Context, q SearchQuery) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("query", q.Query),
		attribute.Int("radius_m", q.RadiusM),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Search"), slog.String("query", q.Query))

	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", types.ErrInvalidInput)
	}
	radius := ClampRadius(q.RadiusM)

	if s.provider != nil && s.provider.Enabled() {
		spec := s.fallback
		if strings.TrimSpace(q.Query) != "" {
			spec = SearchSpec{Query: q.Query}
		}
		found, err := s.provider.FetchByRadius(ctx, RadiusQuery{
			Point:   q.Point,
			RadiusM: radius,
			Query:   spec.Query,
			Types:   spec.Types,
			Date:    q.Date,
		})
		if err != nil {
			l.WarnContext(ctx, "Provider search failed, using seed catalog", slog.Any("error", err))
		}
		if len(found) > 0 {
			found = mergePlaces(q.City, found)
			return found[:min(len(found), q.Limit)], nil
		}
	}

	nearby := withinRadius(s.seed(ctx, l, q.City), q.Point, radius)
	return nearby[:min(len(nearby), q.Limit)], nil
}

func withinRadius(places []types.Place, center types.GeoPoint, radiusM int) []types.Place {
	limitKm := float64(radiusM) / 1000
	type hit struct {
		place types.Place
		km    float64
	}
	hits := make([]hit, 0, len(places))
	for _, p := range places {
		if km := route.DistanceKm(center, p.Point()); km <= limitKm {
			hits = append(hits, hit{place: p, km: km})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].km < hits[j].km })

	out := make([]types.Place, len(hits))
	for i, h := range hits {
		out[i] = h.place
	}
	return out
}

// Cities lists the cities the planner knows. Without a database the
// built-in city centers are returned.
func (s *ServiceImpl) Cities(ctx context.Context) ([]types.CitySummary, error) {
	if s.repository != nil {
		cities, err := s.repository.ListCities(ctx)
		if err == nil && len(cities) > 0 {
			return cities, nil
		}
		if err != nil {
			s.logger.WarnContext(ctx, "Falling back to built-in cities", slog.Any("error", err))
		}
	}

	out := make([]types.CitySummary, 0, len(types.CityCenters))
	for name, center := range types.CityCenters {
		out = append(out, types.CitySummary{Name: name, Center: center})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
