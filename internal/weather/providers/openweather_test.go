package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func newOpenWeatherServer(t *testing.T, handler http.HandlerFunc) (*OpenWeatherProvider, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL), &hits
}

func TestOpenWeatherCurrent(t *testing.T) {
	p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "48.857", r.URL.Query().Get("lat"))
		assert.Equal(t, "2.352", r.URL.Query().Get("lon"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{
			"name": "Paris",
			"sys": {"country": "FR"},
			"main": {"temp": 21.34, "humidity": 55},
			"wind": {"speed": 3.2},
			"weather": [{"main": "Clear", "description": "clear sky"}]
		}`))
	})

	cur, err := p.Current(context.Background(), geo.Coordinate{Latitude: 48.857, Longitude: 2.352})
	require.NoError(t, err)
	assert.Equal(t, 21.34, cur.TemperatureC)
	require.NotNil(t, cur.HumidityPercent)
	assert.Equal(t, 55, *cur.HumidityPercent)
	require.NotNil(t, cur.WindSpeedMS)
	assert.Equal(t, 3.2, *cur.WindSpeedMS)
	assert.Equal(t, "clear sky", cur.Description)
	assert.Equal(t, "Paris", cur.Name)
	assert.Equal(t, "FR", cur.Country)
}

func TestOpenWeatherCurrentOptionalFields(t *testing.T) {
	p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main": {"temp": -3}}`))
	})

	cur, err := p.Current(context.Background(), geo.Coordinate{})
	require.NoError(t, err)
	assert.Equal(t, -3.0, cur.TemperatureC)
	assert.Nil(t, cur.HumidityPercent)
	assert.Nil(t, cur.WindSpeedMS)
	assert.Empty(t, cur.Description)
	assert.Empty(t, cur.Name)
}

func TestOpenWeatherCurrentNoData(t *testing.T) {
	t.Run("missing main", func(t *testing.T) {
		p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name": "Nowhere"}`))
		})
		_, err := p.Current(context.Background(), geo.Coordinate{})
		assert.ErrorIs(t, err, weather.ErrNoData)
	})

	t.Run("not found status", func(t *testing.T) {
		p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
		})
		_, err := p.Current(context.Background(), geo.Coordinate{})
		assert.ErrorIs(t, err, weather.ErrNoData)
	})
}

func TestOpenWeatherServerErrorIsNotNoData(t *testing.T) {
	p, hits := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := p.Current(context.Background(), geo.Coordinate{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, weather.ErrNoData)
	assert.ErrorIs(t, err, errServerError)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "upstream calls are not retried")
}

func TestOpenWeatherMissingKeySkipsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "  ", srv.URL)
	assert.False(t, p.HasCredential())

	_, err := p.Current(context.Background(), geo.Coordinate{})
	assert.ErrorIs(t, err, weather.ErrMissingCredential)
	_, err = p.Geocode(context.Background(), "Paris", 10)
	assert.ErrorIs(t, err, weather.ErrMissingCredential)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestOpenWeatherForecast(t *testing.T) {
	p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		_, _ = w.Write([]byte(`{"list": [
			{"dt_txt": "2024-05-01 09:00:00", "main": {"temp": 12.34, "humidity": 80}, "wind": {"speed": 2}, "rain": {"3h": 0.4}},
			{"dt_txt": "2024-05-01 12:00:00", "main": {"temp": 15}}
		]}`))
	})

	samples, err := p.Forecast(context.Background(), geo.Coordinate{Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	require.Len(t, samples, 2)

	first := samples[0]
	assert.Equal(t, "2024-05-01 09:00:00", first.Time)
	require.NotNil(t, first.TemperatureC)
	assert.Equal(t, 12.34, *first.TemperatureC)
	require.NotNil(t, first.HumidityPercent)
	assert.Equal(t, 80, *first.HumidityPercent)
	require.NotNil(t, first.WindKmh)
	assert.InDelta(t, 7.2, *first.WindKmh, 1e-9)
	require.NotNil(t, first.Rain3hMm)
	assert.Equal(t, 0.4, *first.Rain3hMm)

	second := samples[1]
	assert.Nil(t, second.WindKmh)
	assert.Nil(t, second.Rain3hMm)
	assert.Nil(t, second.HumidityPercent)
}

func TestOpenWeatherGeocode(t *testing.T) {
	p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "Springfield", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[
			{"name": "Springfield", "state": "Illinois", "country": "US", "lat": 39.8, "lon": -89.6},
			{"name": "Springfield", "state": "Missouri", "country": "US", "lat": 37.2, "lon": -93.3}
		]`))
	})

	got, err := p.Geocode(context.Background(), "Springfield", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Missouri", got[1].State)
	assert.Equal(t, geo.Coordinate{Latitude: 37.2, Longitude: -93.3}, got[1].Coordinate)
}

func TestOpenWeatherReverseCandidates(t *testing.T) {
	p, _ := newOpenWeatherServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/reverse", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := p.ReverseCandidates(context.Background(), geo.Coordinate{Latitude: 1, Longitude: 1}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
