package route

import (
	"math"
	"sort"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const (
	// MaxStops bounds the number of selected places.
	MaxStops = 7

	interestWeight  = 0.55
	proximityWeight = 0.30
	qualityWeight   = 0.15

	// neutralProximity is used for every candidate when there is no start point.
	neutralProximity = 0.5
	// neutralRating is the rating share assumed for unrated places.
	neutralRating = 0.5
	// maxReviewBonus caps the share of quality earned from review volume alone.
	maxReviewBonus = 0.2

	// gridCellDeg is roughly 150 m of latitude.
	gridCellDeg = 0.00135
)

// ScoredCandidate pairs a place with its selection score and grid cell.
// Index is the position of the place in the caller's candidate list.
type ScoredCandidate struct {
	Place types.Place
	Index int
	Score float64
	Cell  Cell
}

// Cell is a spatial bucket of gridCellDeg × gridCellDeg.
type Cell struct {
	Row, Col int64
}

func cellOf(p types.Place) Cell {
	return Cell{
		Row: int64(math.Floor(p.Lat / gridCellDeg)),
		Col: int64(math.Floor(p.Lon / gridCellDeg)),
	}
}

// InterestScore is the share of requested tags the place carries.
func InterestScore(p types.Place, requested tags.Set) float64 {
	if len(requested) == 0 {
		return 1.0
	}
	return float64(p.Tags.Intersect(requested)) / float64(len(requested))
}

// ProximityScore decays with distance from the start point.
func ProximityScore(p types.Place, start *types.GeoPoint) float64 {
	if start == nil {
		return neutralProximity
	}
	return 1 / (1 + DistanceKm(*start, p.Point()))
}

// QualityScore combines rating and review volume into [0,1].
func QualityScore(p types.Place) float64 {
	q := neutralRating
	if p.Rating != nil {
		q = *p.Rating / 5
	}
	if p.ReviewCount != nil && *p.ReviewCount > 0 {
		q += maxReviewBonus * math.Min(1, math.Log10(1+float64(*p.ReviewCount))/3)
	}
	return math.Min(1, math.Max(0, q))
}

// Score is the weighted sum used to rank candidates.
func Score(p types.Place, requested tags.Set, start *types.GeoPoint) float64 {
	return interestWeight*InterestScore(p, requested) +
		proximityWeight*ProximityScore(p, start) +
		qualityWeight*QualityScore(p)
}

// ScoreCandidates scores every place and returns them best first. Ties keep
// the input order.
func ScoreCandidates(places []types.Place, requested tags.Set, start *types.GeoPoint) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(places))
	for i, p := range places {
		scored[i] = ScoredCandidate{
			Place: p,
			Index: i,
			Score: Score(p, requested, start),
			Cell:  cellOf(p),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// SelectCandidates picks at most maxStops places balancing interest match,
// proximity and quality. Every requested tag present in the shortlist is
// represented at least once, and only the best place per ~150 m grid cell
// is used to fill the remaining slots.
func SelectCandidates(places []types.Place, requested tags.Set, start *types.GeoPoint, maxStops int) []ScoredCandidate {
	if len(places) == 0 || maxStops <= 0 {
		return nil
	}
	requested = tags.NewSet(requested...)

	scored := ScoreCandidates(places, requested, start)
	poolSize := max(maxStops*3, maxStops)
	pool := scored[:min(poolSize, len(scored))]

	chosen := make([]ScoredCandidate, 0, maxStops)
	taken := make(map[int]bool, maxStops)
	take := func(c ScoredCandidate) {
		chosen = append(chosen, c)
		taken[c.Index] = true
	}

	// coverage: best place for each requested tag not yet represented
	for _, tag := range requested {
		if len(chosen) >= maxStops {
			break
		}
		if covered(chosen, tag) {
			continue
		}
		for _, c := range pool {
			if !taken[c.Index] && c.Place.Tags.Has(tag) {
				take(c)
				break
			}
		}
	}

	for _, c := range dedupeByCell(pool) {
		if len(chosen) >= maxStops {
			break
		}
		if taken[c.Index] {
			continue
		}
		take(c)
	}

	return chosen
}

func covered(chosen []ScoredCandidate, tag tags.Tag) bool {
	for _, c := range chosen {
		if c.Place.Tags.Has(tag) {
			return true
		}
	}
	return false
}

// dedupeByCell keeps the first (best scored) candidate of every grid cell.
// pool must already be sorted by score.
func dedupeByCell(pool []ScoredCandidate) []ScoredCandidate {
	seen := make(map[Cell]bool, len(pool))
	out := make([]ScoredCandidate, 0, len(pool))
	for _, c := range pool {
		if seen[c.Cell] {
			continue
		}
		seen[c.Cell] = true
		out = append(out, c)
	}
	return out
}
