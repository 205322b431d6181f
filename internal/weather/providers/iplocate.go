package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultIPLocateURL answers ip-api.com style JSON for the caller's address.
const DefaultIPLocateURL = "http://ip-api.com/json/"

// ipAccuracyMeters is the accuracy reported for IP based fixes (city level).
const ipAccuracyMeters = 5000.0

// IPLocator is a geolocation sensor backed by an IP lookup service. It
// answers both attempts the same way; the per-attempt timeout comes from ctx.
type IPLocator struct {
	client *resty.Client
	url    string
}

// NewIPLocator creates the locator.
func NewIPLocator(url, userAgent string) *IPLocator {
	if url == "" {
		url = DefaultIPLocateURL
	}
	return &IPLocator{
		client: resty.New().SetHeader("User-Agent", userAgent),
		url:    url,
	}
}

// CurrentPosition implements weather.Locator.
func (l *IPLocator) CurrentPosition(ctx context.Context, _ weather.PositionOptions) (weather.Position, error) {
	resp, err := l.client.R().SetContext(ctx).Get(l.url)
	if err != nil {
		return weather.Position{}, err
	}
	if resp.StatusCode() != http.StatusOK {
		return weather.Position{}, fmt.Errorf("ip locate: status code %d", resp.StatusCode())
	}

	var payload struct {
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return weather.Position{}, fmt.Errorf("ip locate: decode: %w", err)
	}
	if payload.Status != "success" || payload.Lat == nil || payload.Lon == nil {
		return weather.Position{}, fmt.Errorf("ip locate: lookup failed: %s", payload.Message)
	}

	acc := ipAccuracyMeters
	return weather.Position{
		Coordinate:     geo.Coordinate{Latitude: *payload.Lat, Longitude: *payload.Lon},
		AccuracyMeters: &acc,
	}, nil
}
