package places

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// seedJSON holds the same rows as the 000002_seed_places migration.
//
//go:embed seed.json
var seedJSON []byte

// seedNamespace scopes the name-based IDs of bundled seed places.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/FACorreiaa/go-route-planner/seed"))

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository serves the bundled seed catalog when Postgres is off.
type MemoryRepository struct {
	logger *slog.Logger
	byCity map[string][]types.Place
}

// NewMemoryRepository loads the bundled seed catalog.
func NewMemoryRepository(logger *slog.Logger) (*MemoryRepository, error) {
	return newMemoryRepository(seedJSON, logger)
}

func newMemoryRepository(data []byte, logger *slog.Logger) (*MemoryRepository, error) {
	var places []types.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}

	byCity := make(map[string][]types.Place)
	for _, p := range places {
		if p.ID == "" {
			p.ID = uuid.NewSHA1(seedNamespace, []byte(p.City+"|"+p.Name)).String()
		}
		byCity[p.City] = append(byCity[p.City], p)
	}
	for city := range byCity {
		list := byCity[city]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}

	logger.Debug("Loaded bundled seed catalog", slog.Int("places", len(places)), slog.Int("cities", len(byCity)))
	return &MemoryRepository{logger: logger, byCity: byCity}, nil
}

// ListByCity returns a copy of the seed places of city ordered by name.
func (r *MemoryRepository) ListByCity(_ context.Context, city string) ([]types.Place, error) {
	src := r.byCity[city]
	out := make([]types.Place, len(src))
	copy(out, src)
	return out, nil
}

// ListCities summarizes the catalog per city, centered on the mean
// coordinate of its places.
func (r *MemoryRepository) ListCities(_ context.Context) ([]types.CitySummary, error) {
	out := make([]types.CitySummary, 0, len(r.byCity))
	for city, places := range r.byCity {
		var lat, lon float64
		for _, p := range places {
			lat += p.Lat
			lon += p.Lon
		}
		n := float64(len(places))
		out = append(out, types.CitySummary{
			Name:   city,
			Center: types.GeoPoint{Lat: lat / n, Lon: lon / n},
			Places: len(places),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
