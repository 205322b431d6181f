package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/units"
)

// PositionOptions configures one geolocation attempt.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
}

// Attempts made by AcquirePosition, in order.
var (
	HighAccuracyAttempt = PositionOptions{HighAccuracy: true, Timeout: 10 * time.Second}
	LowAccuracyAttempt  = PositionOptions{HighAccuracy: false, Timeout: 15 * time.Second}
)

// Position is a geolocation fix.
type Position struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	// AccuracyMeters is the reported accuracy radius; nil when unknown.
	AccuracyMeters *float64 `json:"accuracy,omitempty"`
}

// Locator is a geolocation sensor.
type Locator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// StaticLocator returns a fix obtained elsewhere, e.g. sent by a browser.
type StaticLocator struct {
	Fix Position
}

func (l StaticLocator) CurrentPosition(ctx context.Context, _ PositionOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return l.Fix, nil
}

// AcquirePosition asks loc for a high accuracy fix and, if that fails,
// retries once with the low accuracy settings. Each attempt is bounded by
// its own timeout.
func AcquirePosition(ctx context.Context, loc Locator) (Position, error) {
	if loc == nil {
		return Position{}, ErrSensorUnavailable
	}

	pos, err := attemptPosition(ctx, loc, HighAccuracyAttempt)
	if err == nil {
		return pos, nil
	}
	log.Printf("DEBUG: high accuracy fix failed, retrying with low accuracy: %v", err)

	pos, err = attemptPosition(ctx, loc, LowAccuracyAttempt)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrSensorFailed, err)
	}
	return pos, nil
}

func attemptPosition(ctx context.Context, loc Locator, opts PositionOptions) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	return loc.CurrentPosition(ctx, opts)
}

// LocateResult is the outcome of LocateAndFetch.
type LocateResult struct {
	Record   WeatherRecord `json:"record"`
	Position Position      `json:"position"`
	// Warning is set when the fix is less accurate than the configured threshold.
	Warning string `json:"warning,omitempty"`
}

// LocateAndFetch acquires a fix from loc (the configured locator when nil)
// and fetches its weather. Poor accuracy only adds a warning.
func (s *Service) LocateAndFetch(ctx context.Context, loc Locator) (LocateResult, error) {
	if loc == nil {
		loc = s.deps.Locator
	}

	if !s.deps.Online.Online(ctx) {
		return LocateResult{}, s.fail(ErrOffline, msgOfflineLocate)
	}
	if loc == nil {
		return LocateResult{}, s.fail(ErrSensorUnavailable, msgSensorUnavailable)
	}
	if s.deps.Current == nil || !s.deps.Current.HasCredential() {
		return LocateResult{}, s.fail(ErrMissingCredential, msgMissingCredential)
	}

	pos, err := AcquirePosition(ctx, loc)
	if err != nil {
		return LocateResult{}, s.fail(err, msgSensorFailed)
	}

	res := LocateResult{Position: pos}
	if pos.AccuracyMeters != nil && *pos.AccuracyMeters > s.deps.AccuracyWarnMeters {
		res.Warning = fmt.Sprintf("Your location might be off by about %.0f meters.", units.RoundHalfUp(*pos.AccuracyMeters))
		s.notify(KindInfo, res.Warning)
	}

	rec, err := s.FetchByCoordinates(ctx, pos.Coordinate, nil)
	if err != nil {
		return res, err
	}
	res.Record = rec
	return res, nil
}
