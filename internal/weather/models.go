package weather

import (
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/geo"
)

// DefaultPlaceName is used when no naming source produced a label.
const DefaultPlaceName = "Your location"

// Capacities of the persisted lists.
const (
	HistoryLimit = 10
	SavedLimit   = 20
)

// PlaceLabel is a human readable place name plus country code (possibly empty).
type PlaceLabel struct {
	Name        string `json:"name"`
	CountryCode string `json:"country"`
}

// Empty reports whether the label carries no usable name.
func (p PlaceLabel) Empty() bool {
	return strings.TrimSpace(p.Name) == ""
}

// DefaultLabel is the label of last resort.
func DefaultLabel() PlaceLabel {
	return PlaceLabel{Name: DefaultPlaceName}
}

// RecordKey identifies a record inside the capped lists.
// Comparison is case-sensitive on both parts.
type RecordKey struct {
	City    string
	Country string
}

// WeatherRecord is the display-ready "current weather" entity.
// Records are built once per fetch and never mutated afterwards.
type WeatherRecord struct {
	City            string   `json:"city"`
	Country         string   `json:"country,omitempty"`
	TemperatureC    float64  `json:"tempC"`
	WindKmh         *float64 `json:"wind,omitempty"`
	HumidityPercent *int     `json:"humidity"`
	ObservedAtMs    int64    `json:"ts"`
	Latitude        float64  `json:"lat"`
	Longitude       float64  `json:"lon"`
}

// Key returns the dedup key of the record.
func (r WeatherRecord) Key() RecordKey {
	return RecordKey{City: r.City, Country: r.Country}
}

// Coordinate returns the (snapped) position the record was fetched for.
func (r WeatherRecord) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Label returns the record's place label.
func (r WeatherRecord) Label() PlaceLabel {
	return PlaceLabel{Name: r.City, CountryCode: r.Country}
}

// ObservedAt returns the observation time in UTC.
func (r WeatherRecord) ObservedAt() time.Time {
	return time.UnixMilli(r.ObservedAtMs).UTC()
}

// ForecastSample is one 3-hour forecast step.
type ForecastSample struct {
	Time            string   `json:"time"`
	TemperatureC    *float64 `json:"tempC"`
	HumidityPercent *int     `json:"humidity"`
	WindKmh         *float64 `json:"wind"`
	Rain3hMm        *float64 `json:"rain3h,omitempty"`
}

// DailyAggregate summarizes all samples sharing a calendar date.
type DailyAggregate struct {
	Date            string   `json:"date"`
	MinC            *float64 `json:"minC"`
	MaxC            *float64 `json:"maxC"`
	PrecipitationMm int      `json:"precipitation"`
}

// ForecastView holds the two projections of a forecast series.
type ForecastView struct {
	Hourly []ForecastSample `json:"hourly"`
	Daily  []DailyAggregate `json:"daily"`
}

// Candidate is a forward or reverse geocoding match.
type Candidate struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	geo.Coordinate
}

// Label returns the candidate as a place label.
func (c Candidate) Label() PlaceLabel {
	return PlaceLabel{Name: c.Name, CountryCode: c.Country}
}

// Address holds the address components of a reverse geocoding answer.
type Address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Suburb       string `json:"suburb"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

// CurrentConditions is the normalized answer of the current-conditions provider.
type CurrentConditions struct {
	TemperatureC    float64
	HumidityPercent *int
	WindSpeedMS     *float64
	Description     string

	// Place name and country as reported by the provider itself.
	Name    string
	Country string
}

// NotificationKind classifies a user-facing notification.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is a message shown to the user.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Theme is the persisted UI theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
