package route

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// kmPerDegLat is the length of one degree of latitude on the haversine sphere.
const kmPerDegLat = earthRadiusKm * math.Pi / 180

var rostov = types.GeoPoint{Lat: 47.2221, Lon: 39.7203}

var planDate = time.Date(2025, 6, 1, 0, 0, 0, 0, types.PlannerZone)

// north returns a place km kilometres due north of from.
func north(from types.GeoPoint, km float64, name string, ts ...tags.Tag) types.Place {
	return types.Place{
		ID:   name,
		Name: name,
		Lat:  from.Lat + km/kmPerDegLat,
		Lon:  from.Lon,
		Tags: tags.NewSet(ts...),
	}
}

func ptr[T any](v T) *T { return &v }

// randomPlaces scatters n places within roughly ±5 km of center.
func randomPlaces(r *rand.Rand, center types.GeoPoint, n int) []types.Place {
	out := make([]types.Place, n)
	for i := range out {
		out[i] = types.Place{
			ID:   string(rune('a' + i)),
			Name: string(rune('A' + i)),
			Lat:  center.Lat + (r.Float64()-0.5)*0.09,
			Lon:  center.Lon + (r.Float64()-0.5)*0.13,
			Tags: tags.Set{tags.Museum},
		}
	}
	return out
}

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}
