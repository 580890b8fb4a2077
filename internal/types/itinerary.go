package types

import "github.com/FACorreiaa/go-route-planner/internal/tags"

// Stop is one visit of the planned day. Arrive and Leave are ISO-8601
// timestamps in the planner's fixed zone.
type Stop struct {
	Name               string   `json:"name" validate:"required"`
	Lat                float64  `json:"lat"`
	Lon                float64  `json:"lon"`
	Arrive             string   `json:"arrive" validate:"required"`
	Leave              string   `json:"leave" validate:"required"`
	Tags               tags.Set `json:"tags"`
	Description        string   `json:"description,omitempty"`
	DistanceKmFromPrev float64  `json:"distance_km_from_prev"`
	TravelMinFromPrev  int      `json:"travel_min_from_prev"`
}

// Itinerary is the terminal artifact of one planning request.
type Itinerary struct {
	Stops           []Stop `json:"stops"`
	TotalMinutes    int    `json:"total_minutes"`
	TotalTimeHuman  string `json:"total_time"`
	CalendarPayload string `json:"ics"`
}

// PlanRequest is the public request to build a day route.
type PlanRequest struct {
	City         string    `json:"city,omitempty"`
	Date         string    `json:"date" validate:"required,datetime=2006-01-02"`
	Tags         []string  `json:"tags,omitempty"`
	Budget       string    `json:"budget,omitempty" validate:"omitempty,oneof=low medium high"`
	Pace         string    `json:"pace,omitempty" validate:"omitempty,oneof=relaxed normal fast"`
	UserLocation *GeoPoint `json:"user_location,omitempty"`
	RadiusM      *int      `json:"radius_m,omitempty" validate:"omitempty,gte=100,lte=2000"`
	DayEnd       string    `json:"day_end,omitempty" validate:"omitempty,datetime=15:04"`
}

// PlanResponse is returned by the plan endpoint.
type PlanResponse struct {
	Stops        []Stop `json:"stops"`
	TotalTime    string `json:"total_time"`
	TotalMinutes int    `json:"total_minutes"`
	ICS          string `json:"ics"`
}

// CalendarRequest exports already planned stops as a calendar file.
type CalendarRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Stops       []Stop `json:"stops" validate:"required,dive"`
}

// CalendarMeta carries route-level text for calendar exports.
type CalendarMeta struct {
	Title       string
	Description string
}
