package itinerary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// ErrInvalidTime is returned when a stop carries a timestamp that is not
// ISO-8601.
var ErrInvalidTime = errors.New("invalid time")

const (
	DefaultTitle    = "Маршрут по Ростову"
	DefaultProdID   = "-//go-route-planner//route//EN"
	DefaultUIDHost  = "go-route-planner"
	fallbackDetail  = "Маршрут по городу"
	icsStampLayout  = "20060102T150405Z"
	icsLocalLayout  = "20060102T150405"
	naiveISOLayout  = "2006-01-02T15:04:05"
	naiveISOMinutes = "2006-01-02T15:04"
	crlf            = "\r\n"
)

// uidNamespace scopes the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/FACorreiaa/go-route-planner/events"))

// Encoder renders stops as an iCalendar document in a single fixed zone.
type Encoder struct {
	Location *time.Location
	TZID     string
	ProdID   string
	UIDHost  string
	// Now stamps DTSTAMP. Fixing it makes the output byte-stable.
	Now func() time.Time
}

// NewEncoder returns an Encoder for the planner zone using the wall clock.
func NewEncoder() *Encoder {
	return &Encoder{
		Location: types.PlannerZone,
		TZID:     types.PlannerZoneID,
		ProdID:   DefaultProdID,
		UIDHost:  DefaultUIDHost,
		Now:      time.Now,
	}
}

// Encode renders one VEVENT per stop. Event descriptions fall back from the
// route description to the stop description, its tags, and finally a
// generic placeholder.
func (e *Encoder) Encode(stops []types.Stop, meta types.CalendarMeta) (string, error) {
	title := meta.Title
	if title == "" {
		title = DefaultTitle
	}
	stamp := e.Now().UTC().Format(icsStampLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + e.ProdID,
		"CALSCALE:GREGORIAN",
		"X-WR-CALNAME:" + Escape(title),
		"X-WR-TIMEZONE:" + e.TZID,
		"BEGIN:VTIMEZONE",
		"TZID:" + e.TZID,
		"BEGIN:STANDARD",
		"DTSTART:19700101T000000",
		"TZOFFSETFROM:" + offset(e.Location),
		"TZOFFSETTO:" + offset(e.Location),
		"TZNAME:" + zoneName(e.Location),
		"END:STANDARD",
		"END:VTIMEZONE",
	}

	for i, stop := range stops {
		arrive, err := ParseTime(stop.Arrive, e.Location)
		if err != nil {
			return "", fmt.Errorf("stop %d arrive: %w", i+1, err)
		}
		leave, err := ParseTime(stop.Leave, e.Location)
		if err != nil {
			return "", fmt.Errorf("stop %d leave: %w", i+1, err)
		}
		start := arrive.In(e.Location).Format(icsLocalLayout)
		end := leave.In(e.Location).Format(icsLocalLayout)

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+e.uid(i+1, stop.Name, start, end),
			"DTSTAMP:"+stamp,
			fmt.Sprintf("DTSTART;TZID=%s:%s", e.TZID, start),
			fmt.Sprintf("DTEND;TZID=%s:%s", e.TZID, end),
			"SUMMARY:"+Escape(fmt.Sprintf("%d. %s", i+1, stop.Name)),
			"DESCRIPTION:"+Escape(describe(stop, meta.Description)),
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, crlf) + crlf, nil
}

func (e *Encoder) uid(seq int, name, start, end string) string {
	id := uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%d|%s|%s|%s", seq, name, start, end)))
	return id.String() + "@" + e.UIDHost
}

func describe(stop types.Stop, routeDescription string) string {
	if routeDescription != "" {
		return routeDescription
	}
	if stop.Description != "" {
		return stop.Description
	}
	if len(stop.Tags) > 0 {
		return "Теги: " + strings.Join(stop.Tags.Strings(), ", ")
	}
	return fallbackDetail
}

// ParseTime accepts RFC 3339 timestamps and naive ISO-8601 local times,
// which are read in loc.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{naiveISOLayout, naiveISOMinutes} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// Escape quotes the characters reserved in iCalendar text values.
func Escape(value string) string {
	return escaper.Replace(value)
}

func offset(loc *time.Location) string {
	_, secs := time.Date(1970, 1, 1, 0, 0, 0, 0, loc).Zone()
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d%02d", sign, secs/3600, secs%3600/60)
}

func zoneName(loc *time.Location) string {
	name, _ := time.Date(1970, 1, 1, 0, 0, 0, 0, loc).Zone()
	return name
}
