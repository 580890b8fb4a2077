package route

import (
	"math"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const (
	earthRadiusKm = 6371.0

	// WalkingThresholdKm separates walking hops from transit hops.
	WalkingThresholdKm = 1.2
	WalkingMinPerKm    = 12.0
	TransitMinPerKm    = 3.0
	// MinTravelMinutes keeps colocated hops from taking zero time.
	MinTravelMinutes = 8

	// travelEps absorbs float noise in km before partial minutes are dropped.
	travelEps = 1e-9

	DefaultVisitMinutes = 50
)

// DistanceKm returns the great-circle distance between a and b using the
// haversine formula.
func DistanceKm(a, b types.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	// rounding can push h slightly outside [0,1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// TravelMinutes estimates the time needed to cover km: walking pace for
// short hops, transit pace beyond WalkingThresholdKm, never less than
// MinTravelMinutes. Partial minutes are dropped.
func TravelMinutes(km float64) int {
	pace := TransitMinPerKm
	if km < WalkingThresholdKm {
		pace = WalkingMinPerKm
	}
	minutes := int(km*pace + travelEps)
	if minutes < MinTravelMinutes {
		return MinTravelMinutes
	}
	return minutes
}

var visitDurations = []struct {
	tags    []tags.Tag
	minutes int
}{
	{tags.Meal, 45},
	{[]tags.Tag{tags.Museum, tags.History, tags.Gallery}, 75},
	{[]tags.Tag{tags.Park, tags.Walk, tags.Embankment, tags.Nature}, 60},
}

// VisitMinutes returns the time spent at a place by tag category.
// The first matching category wins.
func VisitMinutes(p types.Place) int {
	for _, d := range visitDurations {
		if p.Tags.HasAny(d.tags...) {
			return d.minutes
		}
	}
	return DefaultVisitMinutes
}

// IsMeal reports whether a place serves food or coffee.
func IsMeal(p types.Place) bool {
	return p.Tags.HasAny(tags.Meal...)
}
