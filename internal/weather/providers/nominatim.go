package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultNominatimBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimProvider reverse geocodes coordinates into address components.
type NominatimProvider struct {
	client *resty.Client
}

// NewNominatimProvider creates the provider. Nominatim's usage policy
// requires an identifying User-Agent.
func NewNominatimProvider(baseURL, userAgent string, timeout time.Duration) *NominatimProvider {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &NominatimProvider{client: client}
}

// ReverseAddress implements naming.AddressLookup.
func (p *NominatimProvider) ReverseAddress(ctx context.Context, coord geo.Coordinate) (weather.Address, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":         "jsonv2",
			"lat":            formatCoord(coord.Latitude),
			"lon":            formatCoord(coord.Longitude),
			"zoom":           "14",
			"addressdetails": "1",
		}).
		Get("/reverse")
	if err != nil {
		return weather.Address{}, err
	}
	if resp.StatusCode() != http.StatusOK {
		return weather.Address{}, fmt.Errorf("nominatim: status code %d", resp.StatusCode())
	}

	var payload struct {
		Error   string          `json:"error"`
		Address weather.Address `json:"address"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return weather.Address{}, fmt.Errorf("nominatim: decode: %w", err)
	}
	if payload.Error != "" {
		return weather.Address{}, fmt.Errorf("nominatim: %s", payload.Error)
	}
	return payload.Address, nil
}
