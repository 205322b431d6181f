package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/units"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

// OpenWeatherProvider talks to OpenWeatherMap: current conditions, the
// 3-hour forecast, and forward/reverse geocoding. All endpoints share the
// API key and one circuit breaker.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates the provider. An empty baseURL selects
// DefaultOpenWeatherBaseURL.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuit("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// HasCredential implements weather.CurrentProvider.
func (p *OpenWeatherProvider) HasCredential() bool {
	return strings.TrimSpace(p.apiKey) != ""
}

func (p *OpenWeatherProvider) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	if !p.HasCredential() {
		return weather.ErrMissingCredential
	}
	values.Set("appid", p.apiKey)

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func coordValues(coord geo.Coordinate) url.Values {
	values := url.Values{}
	values.Set("lat", formatCoord(coord.Latitude))
	values.Set("lon", formatCoord(coord.Longitude))
	return values
}

// Current implements weather.CurrentProvider. A response without a main
// block (including any non-2xx answer) is weather.ErrNoData.
func (p *OpenWeatherProvider) Current(ctx context.Context, coord geo.Coordinate) (weather.CurrentConditions, error) {
	values := coordValues(coord)
	values.Set("units", "metric")

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main *struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
		} `json:"main"`
		Wind *struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := p.getJSON(ctx, "/data/2.5/weather", values, &payload); err != nil {
		if errors.Is(err, errUnexpected) {
			return weather.CurrentConditions{}, fmt.Errorf("%w: %v", weather.ErrNoData, err)
		}
		return weather.CurrentConditions{}, err
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		return weather.CurrentConditions{}, weather.ErrNoData
	}

	cur := weather.CurrentConditions{
		TemperatureC: *payload.Main.Temp,
		Name:         strings.TrimSpace(payload.Name),
		Country:      strings.TrimSpace(payload.Sys.Country),
	}
	if payload.Main.Humidity != nil {
		h := int(units.RoundHalfUp(*payload.Main.Humidity))
		cur.HumidityPercent = &h
	}
	if payload.Wind != nil && payload.Wind.Speed != nil {
		ws := *payload.Wind.Speed
		cur.WindSpeedMS = &ws
	}
	if len(payload.Weather) > 0 {
		cur.Description = payload.Weather[0].Description
	}
	return cur, nil
}

// Forecast implements weather.ForecastProvider. Wind is converted to km/h;
// rounding is left to the aggregator.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, coord geo.Coordinate) ([]weather.ForecastSample, error) {
	values := coordValues(coord)
	values.Set("units", "metric")

	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  *struct {
				Temp     *float64 `json:"temp"`
				Humidity *float64 `json:"humidity"`
			} `json:"main"`
			Wind *struct {
				Speed *float64 `json:"speed"`
			} `json:"wind"`
			Rain *struct {
				ThreeH *float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	if err := p.getJSON(ctx, "/data/2.5/forecast", values, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, it := range payload.List {
		s := weather.ForecastSample{Time: it.DtTxt}
		if it.Main != nil {
			s.TemperatureC = it.Main.Temp
			if it.Main.Humidity != nil {
				h := int(units.RoundHalfUp(*it.Main.Humidity))
				s.HumidityPercent = &h
			}
		}
		if it.Wind != nil && it.Wind.Speed != nil {
			kmh := units.MetersPerSecondToKmh(*it.Wind.Speed)
			s.WindKmh = &kmh
		}
		if it.Rain != nil {
			s.Rain3hMm = it.Rain.ThreeH
		}
		samples = append(samples, s)
	}
	return samples, nil
}

type geoResult struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (g geoResult) candidate() weather.Candidate {
	return weather.Candidate{
		Name:       g.Name,
		State:      g.State,
		Country:    g.Country,
		Coordinate: geo.Coordinate{Latitude: g.Lat, Longitude: g.Lon},
	}
}

func toCandidates(results []geoResult) []weather.Candidate {
	out := make([]weather.Candidate, 0, len(results))
	for _, r := range results {
		out = append(out, r.candidate())
	}
	return out
}

// Geocode implements weather.Geocoder.
func (p *OpenWeatherProvider) Geocode(ctx context.Context, query string, limit int) ([]weather.Candidate, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	var results []geoResult
	if err := p.getJSON(ctx, "/geo/1.0/direct", values, &results); err != nil {
		return nil, err
	}
	return toCandidates(results), nil
}

// ReverseCandidates returns up to limit places near coord.
func (p *OpenWeatherProvider) ReverseCandidates(ctx context.Context, coord geo.Coordinate, limit int) ([]weather.Candidate, error) {
	values := coordValues(coord)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var results []geoResult
	if err := p.getJSON(ctx, "/geo/1.0/reverse", values, &results); err != nil {
		return nil, err
	}
	return toCandidates(results), nil
}
