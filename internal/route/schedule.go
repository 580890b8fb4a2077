package route

import (
	"math"
	"sort"
	"time"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

var (
	DefaultDayStart = types.NewClockTime(10, 0)
	DefaultDayEnd   = types.NewClockTime(20, 0)
)

const (
	DefaultMealAfter   = 3*time.Hour + 30*time.Minute
	DefaultMealPadding = 10 * time.Minute
)

// ScheduleOptions configures the schedule builder. Nil and zero values fall
// back to the defaults above and types.PlannerZone; DayStart and DayEnd are
// pointers so that midnight stays expressible.
type ScheduleOptions struct {
	Location    *time.Location
	DayStart    *types.ClockTime
	DayEnd      *types.ClockTime
	MealAfter   time.Duration
	MealPadding time.Duration
}

func (o ScheduleOptions) withDefaults() ScheduleOptions {
	if o.Location == nil {
		o.Location = types.PlannerZone
	}
	if o.DayStart == nil {
		o.DayStart = &DefaultDayStart
	}
	if o.DayEnd == nil {
		o.DayEnd = &DefaultDayEnd
	}
	if o.MealAfter == 0 {
		o.MealAfter = DefaultMealAfter
	}
	if o.MealPadding == 0 {
		o.MealPadding = DefaultMealPadding
	}
	return o
}

// Schedule is the outcome of walking an ordered route through the day.
type Schedule struct {
	Stops        []types.Stop
	TotalMinutes int
	// Dropped counts the places cut off by the end of the day.
	Dropped int
}

// cursor is the running state of the builder.
type cursor struct {
	at     time.Time
	pos    types.GeoPoint
	mealed bool
}

// BuildSchedule walks order from start, assigning arrival and departure
// times. Arrivals wait for the next opening window, the first non-meal stop
// reached after MealAfter gets MealPadding once, and the route is truncated
// at the first stop that would end after DayEnd.
func BuildSchedule(date time.Time, start types.GeoPoint, order []types.Place, opts ScheduleOptions) Schedule {
	opts = opts.withDefaults()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, opts.Location)
	dayStart := at(day, *opts.DayStart)
	dayEnd := at(day, *opts.DayEnd)

	c := cursor{at: dayStart, pos: start}
	out := Schedule{Stops: make([]types.Stop, 0, len(order))}

	for i, place := range order {
		dist := DistanceKm(c.pos, place.Point())
		travel := TravelMinutes(dist)

		arrive := c.at.Add(time.Duration(travel) * time.Minute)
		arrive = alignToOpening(arrive, day, place.OpeningHours)

		if !c.mealed && arrive.Sub(dayStart) >= opts.MealAfter {
			c.mealed = true
			if !IsMeal(place) {
				arrive = arrive.Add(opts.MealPadding)
			}
		}

		visit := VisitMinutes(place)
		leave := arrive.Add(time.Duration(visit) * time.Minute)
		if leave.After(dayEnd) {
			out.Dropped = len(order) - i
			break
		}

		out.Stops = append(out.Stops, types.Stop{
			Name:               place.Name,
			Lat:                place.Lat,
			Lon:                place.Lon,
			Arrive:             arrive.Format(time.RFC3339),
			Leave:              leave.Format(time.RFC3339),
			Tags:               place.Tags,
			Description:        place.Description,
			DistanceKmFromPrev: math.Round(dist*100) / 100,
			TravelMinFromPrev:  travel,
		})
		out.TotalMinutes += travel + visit
		c.at = leave
		c.pos = place.Point()
	}
	return out
}

func at(day time.Time, c types.ClockTime) time.Time {
	return day.Add(time.Duration(c) * time.Minute)
}

// alignToOpening moves arrive forward to the opening of the first window
// that has not closed yet. Missing or degenerate hours mean always open;
// when every window has already closed arrive is returned unchanged.
func alignToOpening(arrive, day time.Time, hours []types.OpeningInterval) time.Time {
	valid := make([]types.OpeningInterval, 0, len(hours))
	for _, h := range hours {
		if h.Valid() {
			valid = append(valid, h)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].From < valid[j].From })

	for _, h := range valid {
		if at(day, h.To).Before(arrive) {
			continue
		}
		if open := at(day, h.From); arrive.Before(open) {
			return open
		}
		return arrive
	}
	return arrive
}
