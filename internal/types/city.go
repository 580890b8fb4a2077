package types

import "time"

// DefaultCity is used when the request names no city or an unknown one.
const DefaultCity = "Ростов-на-Дону"

// CityCenters are the fallback start points keyed by city name.
var CityCenters = map[string]GeoPoint{
	"Ростов-на-Дону": {Lat: 47.222078, Lon: 39.720349},
	"Таганрог":       {Lat: 47.2096, Lon: 38.9358},
	"Азов":           {Lat: 47.1121, Lon: 39.4231},
}

// CityCenter returns the center of city, falling back to DefaultCity.
func CityCenter(city string) GeoPoint {
	if p, ok := CityCenters[city]; ok {
		return p
	}
	return CityCenters[DefaultCity]
}

// PlannerZone is the fixed UTC+3 zone (no daylight saving) all schedules
// and calendar exports use.
var PlannerZone = time.FixedZone("MSK", 3*60*60)

// PlannerZoneID is the TZID written to calendar exports.
const PlannerZoneID = "Europe/Moscow"

// CitySummary describes a city known to the seed catalog.
type CitySummary struct {
	Name   string   `json:"name"`
	Center GeoPoint `json:"center"`
	Places int      `json:"places"`
}
