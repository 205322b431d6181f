package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestAcquirePositionFallsBackToLowAccuracy(t *testing.T) {
	loc := &fakeLocator{answers: []locatorAnswer{
		{err: context.DeadlineExceeded},
		{pos: weather.Position{Coordinate: paris}},
	}}

	pos, err := weather.AcquirePosition(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, paris, pos.Coordinate)

	require.Len(t, loc.opts, 2)
	assert.True(t, loc.opts[0].HighAccuracy)
	assert.Equal(t, 10*time.Second, loc.opts[0].Timeout)
	assert.False(t, loc.opts[1].HighAccuracy)
	assert.Equal(t, 15*time.Second, loc.opts[1].Timeout)
}

func TestAcquirePositionStopsAfterFirstFix(t *testing.T) {
	loc := &fakeLocator{answers: []locatorAnswer{{pos: weather.Position{Coordinate: paris}}}}

	_, err := weather.AcquirePosition(context.Background(), loc)
	require.NoError(t, err)
	assert.Len(t, loc.opts, 1)
}

func TestAcquirePositionBothAttemptsFail(t *testing.T) {
	loc := &fakeLocator{answers: []locatorAnswer{
		{err: errors.New("permission denied")},
		{err: errors.New("permission denied")},
	}}

	_, err := weather.AcquirePosition(context.Background(), loc)
	assert.ErrorIs(t, err, weather.ErrSensorFailed)

	_, err = weather.AcquirePosition(context.Background(), nil)
	assert.ErrorIs(t, err, weather.ErrSensorUnavailable)
}

func TestLocateAndFetchWarnsOnPoorAccuracy(t *testing.T) {
	h := newHarness(t, nil)
	loc := &fakeLocator{answers: []locatorAnswer{
		{pos: weather.Position{Coordinate: paris, AccuracyMeters: ptr(2500.4)}},
	}}

	res, err := h.svc.LocateAndFetch(context.Background(), loc)
	require.NoError(t, err)

	assert.Equal(t, "Your location might be off by about 2500 meters.", res.Warning)
	assert.Equal(t, "Paris", res.Record.City)

	notes := h.svc.State().Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, weather.KindSuccess, notes[0].Kind)
	assert.Equal(t, weather.KindInfo, notes[1].Kind)
	assert.Equal(t, res.Warning, notes[1].Message)
}

func TestLocateAndFetchAccurateFixHasNoWarning(t *testing.T) {
	h := newHarness(t, nil)
	loc := weather.StaticLocator{Fix: weather.Position{Coordinate: paris, AccuracyMeters: ptr(30.0)}}

	res, err := h.svc.LocateAndFetch(context.Background(), loc)
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Len(t, h.svc.State().Notifications(), 1)
}

func TestLocateAndFetchUsesConfiguredLocator(t *testing.T) {
	berlin := geo.Coordinate{Latitude: 52.52, Longitude: 13.405}
	h := newHarness(t, func(d *weather.Deps) {
		d.Locator = weather.StaticLocator{Fix: weather.Position{Coordinate: berlin}}
	})

	res, err := h.svc.LocateAndFetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, berlin, res.Position.Coordinate)
	assert.Equal(t, berlin, h.current.lastCoord())
}

func TestLocateAndFetchPreconditions(t *testing.T) {
	t.Run("offline first", func(t *testing.T) {
		h := newHarness(t, func(d *weather.Deps) { d.Online = offline() })
		loc := &fakeLocator{}

		_, err := h.svc.LocateAndFetch(context.Background(), loc)
		assert.ErrorIs(t, err, weather.ErrOffline)
		assert.Equal(t, "You are offline. Location fetch requires internet.", h.lastNotification(t).Message)
		assert.Empty(t, loc.opts)
	})

	t.Run("no sensor", func(t *testing.T) {
		h := newHarness(t, nil)
		h.current.key = false

		_, err := h.svc.LocateAndFetch(context.Background(), nil)
		assert.ErrorIs(t, err, weather.ErrSensorUnavailable)
		assert.Equal(t, "Geolocation is not available.", h.lastNotification(t).Message)
	})

	t.Run("credential after sensor", func(t *testing.T) {
		h := newHarness(t, nil)
		h.current.key = false
		loc := &fakeLocator{}

		_, err := h.svc.LocateAndFetch(context.Background(), loc)
		assert.ErrorIs(t, err, weather.ErrMissingCredential)
		assert.Empty(t, loc.opts)
	})

	t.Run("sensor failure", func(t *testing.T) {
		h := newHarness(t, nil)
		loc := &fakeLocator{answers: []locatorAnswer{
			{err: errors.New("timeout")},
			{err: errors.New("timeout")},
		}}

		_, err := h.svc.LocateAndFetch(context.Background(), loc)
		assert.ErrorIs(t, err, weather.ErrSensorFailed)
		assert.Equal(t, "Unable to access your location.", h.lastNotification(t).Message)
	})
}
