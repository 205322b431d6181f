package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestAggregateForecastDaily(t *testing.T) {
	view := weather.AggregateForecast([]weather.ForecastSample{
		{Time: "2024-01-01 00:00", TemperatureC: ptr(10.0), Rain3hMm: ptr(1.0)},
		{Time: "2024-01-01 03:00", TemperatureC: ptr(15.0), Rain3hMm: ptr(2.0)},
		{Time: "2024-01-02 00:00", TemperatureC: ptr(5.0)},
	})

	require.Len(t, view.Daily, 2)
	assert.Equal(t, weather.DailyAggregate{Date: "2024-01-01", MinC: ptr(10.0), MaxC: ptr(15.0), PrecipitationMm: 3}, view.Daily[0])
	assert.Equal(t, weather.DailyAggregate{Date: "2024-01-02", MinC: ptr(5.0), MaxC: ptr(5.0), PrecipitationMm: 0}, view.Daily[1])
	assert.Len(t, view.Hourly, 3)
}

func TestAggregateForecastKeepsFirstAppearanceOrder(t *testing.T) {
	view := weather.AggregateForecast([]weather.ForecastSample{
		{Time: "2024-01-03 00:00:00", TemperatureC: ptr(1.0)},
		{Time: "2024-01-01 00:00:00", TemperatureC: ptr(2.0)},
		{Time: "2024-01-03 03:00:00", TemperatureC: ptr(3.0)},
	})

	require.Len(t, view.Daily, 2)
	assert.Equal(t, "2024-01-03", view.Daily[0].Date)
	assert.Equal(t, "2024-01-01", view.Daily[1].Date)
	assert.Equal(t, 3.0, *view.Daily[0].MaxC)
}

func TestAggregateForecastMissingValues(t *testing.T) {
	view := weather.AggregateForecast([]weather.ForecastSample{
		{Time: "2024-02-01 00:00:00"},
		{Time: "2024-02-01 03:00:00", Rain3hMm: ptr(0.3)},
		{Time: "2024-02-02 00:00:00"},
		{Time: "2024-02-02 03:00:00", TemperatureC: ptr(-2.26)},
		{Time: "bad"},
	})

	require.Len(t, view.Daily, 2)
	assert.Nil(t, view.Daily[0].MinC)
	assert.Nil(t, view.Daily[0].MaxC)
	assert.Equal(t, 0, view.Daily[0].PrecipitationMm)

	require.NotNil(t, view.Daily[1].MinC)
	assert.Equal(t, -2.3, *view.Daily[1].MinC)
	assert.Equal(t, -2.3, *view.Daily[1].MaxC)

	assert.Len(t, view.Hourly, 5, "malformed timestamps still appear hourly")
}

func TestAggregateForecastRoundsHourly(t *testing.T) {
	view := weather.AggregateForecast([]weather.ForecastSample{
		{Time: "2024-03-01 00:00:00", TemperatureC: ptr(12.34), WindKmh: ptr(7.56), Rain3hMm: ptr(0.25), HumidityPercent: ptr(70)},
	})

	h := view.Hourly[0]
	assert.Equal(t, 12.3, *h.TemperatureC)
	assert.Equal(t, 7.6, *h.WindKmh)
	assert.Equal(t, 0.3, *h.Rain3hMm)
	assert.Equal(t, 70, *h.HumidityPercent)
}

func TestAggregateForecastEmpty(t *testing.T) {
	view := weather.AggregateForecast(nil)
	assert.NotNil(t, view.Hourly)
	assert.NotNil(t, view.Daily)
	assert.Empty(t, view.Hourly)
	assert.Empty(t, view.Daily)
}
