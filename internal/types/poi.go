package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
)

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// ClockTime is a time of day expressed in minutes since midnight.
// 24:00 is accepted as the end of an interval.
type ClockTime int

// NewClockTime builds a ClockTime from hours and minutes.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("clock time %q: expected HH:MM: %w", s, ErrInvalidInput)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("clock time %q: %w", s, ErrInvalidInput)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("clock time %q: %w", s, ErrInvalidInput)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q out of range: %w", s, ErrInvalidInput)
	}
	return NewClockTime(h, m), nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// OpeningInterval is one opening window of a place for a given day.
type OpeningInterval struct {
	From ClockTime `json:"from"`
	To   ClockTime `json:"to"`
}

// Valid reports whether the interval is non-empty and within one day.
func (o OpeningInterval) Valid() bool {
	return o.From >= 0 && o.To <= 24*60 && o.From < o.To
}

// Place is a candidate point of interest. The planner never mutates it.
type Place struct {
	ID           string            `json:"id,omitempty"`
	Name         string            `json:"name"`
	Lat          float64           `json:"lat"`
	Lon          float64           `json:"lon"`
	City         string            `json:"city,omitempty"`
	Tags         tags.Set          `json:"tags"`
	Rating       *float64          `json:"rating,omitempty"`
	ReviewCount  *int              `json:"review_count,omitempty"`
	Description  string            `json:"description,omitempty"`
	OpeningHours []OpeningInterval `json:"opening_hours,omitempty"`
}

// Point returns the coordinate of the place.
func (p Place) Point() GeoPoint {
	return GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// Key identifies a place across sources: the provider ID when present,
// otherwise its coordinates.
func (p Place) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return fmt.Sprintf("%v,%v", p.Lat, p.Lon)
}
