package route

import (
	"time"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const (
	// improvementEps is the minimum length gain (km) for a move to be accepted.
	improvementEps = 1e-9
	// DefaultMaxPasses caps 2-opt scans; the local optimum of a handful of
	// stops is reached long before.
	DefaultMaxPasses = 1000
	// mealMinStops is the smallest route that gets a meal stop inserted.
	mealMinStops = 4
)

// SequencerOptions bounds the local search.
type SequencerOptions struct {
	MaxPasses  int
	TimeBudget time.Duration // 0 means no wall-clock limit
}

// RouteLength is the length of the open path start → places[0] → … → places[n-1].
func RouteLength(start types.GeoPoint, places []types.Place) float64 {
	total := 0.0
	cur := start
	for _, p := range places {
		total += DistanceKm(cur, p.Point())
		cur = p.Point()
	}
	return total
}

// Sequence orders places into a compact visiting sequence: nearest
// neighbour construction followed by 2-opt and a single or-opt sweep.
// No accepted move increases the route length.
func Sequence(start types.GeoPoint, places []types.Place, opts SequencerOptions) []types.Place {
	order := NearestNeighbor(start, places)
	order = TwoOpt(start, order, opts)
	return OrOpt(start, order)
}

// NearestNeighbor repeatedly appends the unvisited place closest to the
// current position. Ties go to the earlier place in the input.
func NearestNeighbor(start types.GeoPoint, places []types.Place) []types.Place {
	remaining := make([]types.Place, len(places))
	copy(remaining, places)
	ordered := make([]types.Place, 0, len(places))

	cur := start
	for len(remaining) > 0 {
		best := 0
		bestDist := DistanceKm(cur, remaining[0].Point())
		for i := 1; i < len(remaining); i++ {
			if d := DistanceKm(cur, remaining[i].Point()); d < bestDist {
				best, bestDist = i, d
			}
		}
		next := remaining[best]
		ordered = append(ordered, next)
		cur = next.Point()
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// TwoOpt applies first-improvement segment reversals until a full scan finds
// no move shortening the route by more than improvementEps, or a bound in
// opts is hit. The start point stays fixed; the path is open at its end.
func TwoOpt(start types.GeoPoint, order []types.Place, opts SequencerOptions) []types.Place {
	cur := make([]types.Place, len(order))
	copy(cur, order)
	n := len(cur)
	if n < 2 {
		return cur
	}

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = time.Now().Add(opts.TimeBudget)
	}

	prev := func(i int) types.GeoPoint {
		if i == 0 {
			return start
		}
		return cur[i-1].Point()
	}

	for pass := 0; pass < maxPasses; pass++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				a := prev(i)
				before := DistanceKm(a, cur[i].Point())
				after := DistanceKm(a, cur[j].Point())
				if j < n-1 {
					next := cur[j+1].Point()
					before += DistanceKm(cur[j].Point(), next)
					after += DistanceKm(cur[i].Point(), next)
				}
				if after < before-improvementEps {
					reverse(cur[i : j+1])
					improved = true
				}
			}
		}
		if !improved {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}
	return cur
}

// OrOpt makes one sweep over the places, moving each one to the first other
// position that strictly shortens the route.
func OrOpt(start types.GeoPoint, order []types.Place) []types.Place {
	n := len(order)
	if n < 3 {
		out := make([]types.Place, n)
		copy(out, order)
		return out
	}

	// positions are tracked by index into order so equal places stay distinct
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	length := func(p []int) float64 {
		total := 0.0
		cur := start
		for _, k := range p {
			total += DistanceKm(cur, order[k].Point())
			cur = order[k].Point()
		}
		return total
	}
	best := length(perm)

	for k := 0; k < n; k++ {
		pos := indexOf(perm, k)
		rest := make([]int, 0, n-1)
		rest = append(rest, perm[:pos]...)
		rest = append(rest, perm[pos+1:]...)

		for ins := 0; ins < n; ins++ {
			if ins == pos {
				continue
			}
			cand := insertAt(rest, ins, k)
			if l := length(cand); l < best-improvementEps {
				perm, best = cand, l
				break
			}
		}
	}

	out := make([]types.Place, n)
	for i, k := range perm {
		out[i] = order[k]
	}
	return out
}

// InsertMeal adds a food or coffee stop to routes of at least four places
// that have none. The candidate nearest to the middle stop is inserted where
// it lengthens the route least. Candidates already on the route are skipped.
func InsertMeal(start types.GeoPoint, order []types.Place, candidates []types.Place) ([]types.Place, bool) {
	if len(order) < mealMinStops {
		return order, false
	}
	onRoute := make(map[string]bool, len(order))
	for _, p := range order {
		if IsMeal(p) {
			return order, false
		}
		onRoute[p.Key()] = true
	}

	mid := order[len(order)/2].Point()
	found := false
	var meal types.Place
	bestDist := 0.0
	for _, c := range candidates {
		if !IsMeal(c) || onRoute[c.Key()] {
			continue
		}
		if d := DistanceKm(mid, c.Point()); !found || d < bestDist {
			meal, bestDist, found = c, d, true
		}
	}
	if !found {
		return order, false
	}

	var best []types.Place
	bestLen := 0.0
	for pos := 0; pos <= len(order); pos++ {
		cand := make([]types.Place, 0, len(order)+1)
		cand = append(cand, order[:pos]...)
		cand = append(cand, meal)
		cand = append(cand, order[pos:]...)
		if l := RouteLength(start, cand); best == nil || l < bestLen {
			best, bestLen = cand, l
		}
	}
	return best, true
}

func reverse(s []types.Place) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func insertAt(s []int, pos, v int) []int {
	out := make([]int, 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, v)
	return append(out, s[pos:]...)
}
