package places

import (
	"strings"
	"time"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const unknownName = "Неизвестное место"

type dgisItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type,omitempty"`
	AddressName string        `json:"address_name,omitempty"`
	Description string        `json:"description,omitempty"`
	Point       *dgisPoint    `json:"point,omitempty"`
	Rubrics     []dgisRubric  `json:"rubrics,omitempty"`
	Reviews     *dgisReviews  `json:"reviews,omitempty"`
	Schedule    *dgisSchedule `json:"schedule,omitempty"`
}

type dgisPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type dgisRubric struct {
	Name string `json:"name"`
}

type dgisReviews struct {
	GeneralRating      *float64 `json:"general_rating,omitempty"`
	GeneralReviewCount *int     `json:"general_review_count,omitempty"`
}

type dgisHours struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type dgisDay struct {
	WorkingHours []dgisHours `json:"working_hours"`
}

// dgisSchedule is keyed by English weekday abbreviations.
type dgisSchedule struct {
	Is24x7 bool     `json:"is_24x7,omitempty"`
	Mon    *dgisDay `json:"Mon,omitempty"`
	Tue    *dgisDay `json:"Tue,omitempty"`
	Wed    *dgisDay `json:"Wed,omitempty"`
	Thu    *dgisDay `json:"Thu,omitempty"`
	Fri    *dgisDay `json:"Fri,omitempty"`
	Sat    *dgisDay `json:"Sat,omitempty"`
	Sun    *dgisDay `json:"Sun,omitempty"`
}

func (s *dgisSchedule) day(wd time.Weekday) *dgisDay {
	switch wd {
	case time.Monday:
		return s.Mon
	case time.Tuesday:
		return s.Tue
	case time.Wednesday:
		return s.Wed
	case time.Thursday:
		return s.Thu
	case time.Friday:
		return s.Fri
	case time.Saturday:
		return s.Sat
	default:
		return s.Sun
	}
}

// toPlaces maps provider items onto places. Items without coordinates are
// skipped.
func toPlaces(items []dgisItem, date time.Time) []types.Place {
	out := make([]types.Place, 0, len(items))
	for _, it := range items {
		if it.Point == nil {
			continue
		}
		out = append(out, it.toPlace(date))
	}
	return out
}

func (it dgisItem) toPlace(date time.Time) types.Place {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = unknownName
	}
	description := strings.TrimSpace(it.Description)
	if description == "" {
		description = it.AddressName
	}

	p := types.Place{
		ID:          it.ID,
		Name:        name,
		Lat:         it.Point.Lat,
		Lon:         it.Point.Lon,
		Tags:        it.tags(),
		Description: description,
	}
	if it.Reviews != nil {
		p.Rating = it.Reviews.GeneralRating
		p.ReviewCount = it.Reviews.GeneralReviewCount
	}
	if it.Schedule != nil && !date.IsZero() {
		p.OpeningHours = it.Schedule.hoursOn(date.Weekday())
	}
	return p
}

func (it dgisItem) tags() tags.Set {
	raw := make([]string, 0, len(it.Rubrics))
	for _, r := range it.Rubrics {
		raw = append(raw, r.Name)
	}
	if set := tags.Normalize(raw); len(set) > 0 {
		return set
	}
	if set := tags.Normalize([]string{it.Type}); len(set) > 0 {
		return set
	}
	return tags.Set{tags.POI}
}

// hoursOn returns the opening windows for wd; nil when the schedule has no
// entry for that day. Windows that run past midnight are clipped to the end
// of the day.
func (s *dgisSchedule) hoursOn(wd time.Weekday) []types.OpeningInterval {
	if s.Is24x7 {
		return []types.OpeningInterval{{From: 0, To: 24 * 60}}
	}
	day := s.day(wd)
	if day == nil {
		return nil
	}
	out := make([]types.OpeningInterval, 0, len(day.WorkingHours))
	for _, h := range day.WorkingHours {
		from, err := types.ParseClockTime(h.From)
		if err != nil {
			continue
		}
		to, err := types.ParseClockTime(h.To)
		if err != nil {
			continue
		}
		if to <= from {
			to = 24 * 60
		}
		out = append(out, types.OpeningInterval{From: from, To: to})
	}
	return out
}
