package providers

import (
	"context"
	"errors"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// GoogleReverseProvider reverse geocodes through the Google Geocoding API.
// The geocoder package keeps its key in a package variable, so only one
// key can be active per process.
type GoogleReverseProvider struct{}

// NewGoogleReverseProvider sets the Google API key and returns the provider.
func NewGoogleReverseProvider(apiKey string) *GoogleReverseProvider {
	geocoder.ApiKey = apiKey
	return &GoogleReverseProvider{}
}

// ReverseAddress implements naming.AddressLookup. The library call cannot
// be cancelled; ctx is only checked before it starts.
func (p *GoogleReverseProvider) ReverseAddress(ctx context.Context, coord geo.Coordinate) (weather.Address, error) {
	if err := ctx.Err(); err != nil {
		return weather.Address{}, err
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
	})
	if err != nil {
		return weather.Address{}, err
	}
	if len(addresses) == 0 {
		return weather.Address{}, errors.New("google: no address for coordinate")
	}

	a := addresses[0]
	return weather.Address{
		City:    a.City,
		Town:    a.District,
		Suburb:  a.Neighborhood,
		Country: a.Country,
	}, nil
}
