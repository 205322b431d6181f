package weather_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type fakeCurrent struct {
	key   bool
	cond  weather.CurrentConditions
	err   error
	calls int32

	// hook, when set, runs inside Current before it answers.
	hook func(coord geo.Coordinate)

	mu     sync.Mutex
	coords []geo.Coordinate
}

func (f *fakeCurrent) HasCredential() bool { return f.key }

func (f *fakeCurrent) Current(_ context.Context, coord geo.Coordinate) (weather.CurrentConditions, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.coords = append(f.coords, coord)
	f.mu.Unlock()
	if f.hook != nil {
		f.hook(coord)
	}
	return f.cond, f.err
}

func (f *fakeCurrent) lastCoord() geo.Coordinate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coords[len(f.coords)-1]
}

type fakeForecast struct {
	byLat map[float64][]weather.ForecastSample
	err   error
	calls int32
}

func (f *fakeForecast) Forecast(_ context.Context, coord geo.Coordinate) ([]weather.ForecastSample, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.byLat[coord.Latitude], nil
}

type fakeGeocoder struct {
	candidates []weather.Candidate
	err        error
	calls      int32
	lastLimit  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string, limit int) ([]weather.Candidate, error) {
	atomic.AddInt32(&f.calls, 1)
	f.lastLimit = limit
	return f.candidates, f.err
}

type fakeLocator struct {
	// answers are consumed in order, one per attempt.
	answers []locatorAnswer
	opts    []weather.PositionOptions
}

type locatorAnswer struct {
	pos weather.Position
	err error
}

func (f *fakeLocator) CurrentPosition(ctx context.Context, opts weather.PositionOptions) (weather.Position, error) {
	f.opts = append(f.opts, opts)
	if _, ok := ctx.Deadline(); !ok {
		panic("position attempt without deadline")
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a.pos, a.err
}

type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func ptr[T any](v T) *T { return &v }

func offline() weather.OnlineChecker {
	return weather.OnlineFunc(func(context.Context) bool { return false })
}
