package weather

import (
	"context"

	"github.com/i474232898/weather-dashboard/internal/geo"
)

// CurrentProvider fetches current conditions for a coordinate.
type CurrentProvider interface {
	// HasCredential reports whether the provider API key is configured.
	HasCredential() bool
	Current(ctx context.Context, coord geo.Coordinate) (CurrentConditions, error)
}

// ForecastProvider fetches the raw 3-hour forecast series for a coordinate.
type ForecastProvider interface {
	Forecast(ctx context.Context, coord geo.Coordinate) ([]ForecastSample, error)
}

// Geocoder resolves free text into candidate places.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// NameQuery is the input of a naming resolution.
type NameQuery struct {
	Coordinate geo.Coordinate
	// Preferred is the label carried by a search result, if any.
	Preferred PlaceLabel
	// Reported is the place the current-conditions provider named.
	Reported PlaceLabel
}

// Namer turns a coordinate into a place label. It never fails.
type Namer interface {
	ResolveName(ctx context.Context, q NameQuery) PlaceLabel
}

// OnlineChecker reports network availability.
type OnlineChecker interface {
	Online(ctx context.Context) bool
}

// OnlineFunc adapts a function to OnlineChecker.
type OnlineFunc func(ctx context.Context) bool

func (f OnlineFunc) Online(ctx context.Context) bool { return f(ctx) }

// AlwaysOnline is used when no connectivity probe is configured.
var AlwaysOnline = OnlineFunc(func(context.Context) bool { return true })

// Store is the key/value persistence contract (sqlite, memory).
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
