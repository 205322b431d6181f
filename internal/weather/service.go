package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/units"
)

// GeocodeLimit caps the number of forward geocoding candidates requested.
const GeocodeLimit = 10

// minSuggestQuery is the shortest input that triggers suggestions.
const minSuggestQuery = 2

// Deps are the collaborators of the Service. Forecast, Geocoder, Locator and
// Online may be nil: no forecast views, no text search, no geolocation sensor,
// always online.
type Deps struct {
	Current  CurrentProvider
	Forecast ForecastProvider
	Geocoder Geocoder
	Namer    Namer
	Locator  Locator
	Online   OnlineChecker

	// AccuracyWarnMeters is the fix accuracy above which the user is warned.
	AccuracyWarnMeters float64

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Service orchestrates geocoding, naming, current conditions and the
// background forecast fetch, and owns the dashboard State.
type Service struct {
	deps  Deps
	state *State

	background sync.WaitGroup
}

// SearchResult is the outcome of a text search: either a fetched record or,
// when the query matched several places, the candidates to choose from.
type SearchResult struct {
	Record     *WeatherRecord `json:"record,omitempty"`
	Ambiguous  bool           `json:"ambiguous"`
	Candidates []Candidate    `json:"candidates,omitempty"`
}

// NewService creates a new Service.
func NewService(state *State, deps Deps) *Service {
	if deps.Online == nil {
		deps.Online = AlwaysOnline
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AccuracyWarnMeters <= 0 {
		deps.AccuracyWarnMeters = 1000
	}
	return &Service{
		deps:  deps,
		state: state,
	}
}

// State exposes the dashboard state.
func (s *Service) State() *State {
	return s.state
}

// Wait blocks until all background forecast fetches have finished.
func (s *Service) Wait() {
	s.background.Wait()
}

// FetchByCoordinates fetches current conditions for coord and makes the
// result the displayed record. hint, when it carries a name, is used as the
// label instead of reverse geocoding. A forecast fetch for the same snapped
// coordinate is started in the background and never awaited.
func (s *Service) FetchByCoordinates(ctx context.Context, coord geo.Coordinate, hint *PlaceLabel) (WeatherRecord, error) {
	reqID := uuid.NewString()

	if !s.deps.Online.Online(ctx) {
		return WeatherRecord{}, s.fail(ErrOffline, msgOfflineFetch)
	}
	if s.deps.Current == nil || !s.deps.Current.HasCredential() {
		return WeatherRecord{}, s.fail(ErrMissingCredential, msgMissingCredential)
	}

	gen := s.state.nextGeneration()
	snapped := coord.Snap()
	log.Printf("DEBUG: [%s] fetching current conditions for %s (gen %d)", reqID, snapped, gen)

	cur, err := s.deps.Current.Current(ctx, snapped)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return WeatherRecord{}, s.fail(err, msgNoData)
		}
		return WeatherRecord{}, s.fail(fmt.Errorf("fetch current conditions: %w", err), msgFetchFailed)
	}

	q := NameQuery{
		Coordinate: snapped,
		Reported:   PlaceLabel{Name: cur.Name, CountryCode: cur.Country},
	}
	if hint != nil {
		q.Preferred = *hint
	}
	label := s.resolveName(ctx, q)

	rec := WeatherRecord{
		City:            label.Name,
		Country:         label.CountryCode,
		TemperatureC:    units.Round1(cur.TemperatureC),
		HumidityPercent: cur.HumidityPercent,
		ObservedAtMs:    s.deps.Now().UnixMilli(),
		Latitude:        snapped.Latitude,
		Longitude:       snapped.Longitude,
	}
	if cur.WindSpeedMS != nil {
		w := units.Round1(units.MetersPerSecondToKmh(*cur.WindSpeedMS))
		rec.WindKmh = &w
	}

	if !s.state.publishCurrent(gen, rec) {
		log.Printf("DEBUG: [%s] newer fetch already displayed; %s kept in history only", reqID, rec.City)
	}
	s.startForecast(reqID, gen, snapped)

	msg := fmt.Sprintf("Weather for %s loaded", rec.City)
	if cur.Description != "" {
		msg = fmt.Sprintf("%s in %s", cur.Description, rec.City)
	}
	s.notify(KindSuccess, msg)

	return rec, nil
}

func (s *Service) resolveName(ctx context.Context, q NameQuery) PlaceLabel {
	if s.deps.Namer == nil {
		if !q.Preferred.Empty() {
			return q.Preferred
		}
		if !q.Reported.Empty() {
			return q.Reported
		}
		return DefaultLabel()
	}
	return s.deps.Namer.ResolveName(ctx, q)
}

// startForecast launches the detached forecast fetch. Failures are logged
// and dropped; the previous views stay in place.
func (s *Service) startForecast(reqID string, gen uint64, coord geo.Coordinate) {
	if s.deps.Forecast == nil {
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()

		samples, err := s.deps.Forecast.Forecast(context.Background(), coord)
		if err != nil {
			log.Printf("DEBUG: [%s] background forecast dropped: %v", reqID, err)
			return
		}

		view := AggregateForecast(samples)
		if !s.state.publishForecast(gen, view) {
			log.Printf("DEBUG: [%s] stale forecast for gen %d discarded", reqID, gen)
		}
	}()
}

// SearchByText geocodes query. A single candidate, or one whose name equals
// the query ignoring case, is fetched right away. Several candidates without
// an exact match are exposed as suggestions and nothing is fetched.
func (s *Service) SearchByText(ctx context.Context, query string) (SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SearchResult{}, ErrEmptyQuery
	}

	if !s.deps.Online.Online(ctx) {
		return SearchResult{}, s.fail(ErrOffline, msgOfflineSearch)
	}
	if s.deps.Current == nil || !s.deps.Current.HasCredential() {
		return SearchResult{}, s.fail(ErrMissingCredential, msgMissingCredential)
	}
	if s.deps.Geocoder == nil {
		return SearchResult{}, s.fail(fmt.Errorf("no geocoder configured"), msgSearchFailed)
	}

	candidates, err := s.deps.Geocoder.Geocode(ctx, q, GeocodeLimit)
	if err != nil {
		return SearchResult{}, s.fail(fmt.Errorf("geocode %q: %w", q, err), msgSearchFailed)
	}
	if len(candidates) == 0 {
		return SearchResult{}, s.fail(ErrNotFound, msgNotFound)
	}

	var pick *Candidate
	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, q) {
			pick = &candidates[i]
			break
		}
	}
	if pick == nil && len(candidates) == 1 {
		pick = &candidates[0]
	}

	if pick != nil {
		label := pick.Label()
		rec, err := s.FetchByCoordinates(ctx, pick.Coordinate, &label)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Record: &rec}, nil
	}

	s.state.setSuggestions(candidates)
	s.notify(KindInfo, msgAmbiguous)
	return SearchResult{Ambiguous: true, Candidates: candidates}, nil
}

// Suggest refreshes the suggestion list for partial input. It never fails:
// short input, no connectivity, no credential or a lookup error all yield an
// empty list.
func (s *Service) Suggest(ctx context.Context, query string) []Candidate {
	s.state.setSuggestions(nil)

	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minSuggestQuery {
		return []Candidate{}
	}
	if s.deps.Geocoder == nil || s.deps.Current == nil || !s.deps.Current.HasCredential() || !s.deps.Online.Online(ctx) {
		return []Candidate{}
	}

	candidates, err := s.deps.Geocoder.Geocode(ctx, q, GeocodeLimit)
	if err != nil {
		log.Printf("DEBUG: suggestions for %q dropped: %v", q, err)
		return []Candidate{}
	}
	s.state.setSuggestions(candidates)
	return s.state.Suggestions()
}

// PickSuggestion fetches a candidate chosen from the suggestion list.
func (s *Service) PickSuggestion(ctx context.Context, c Candidate) (WeatherRecord, error) {
	s.state.setSuggestions(nil)
	label := c.Label()
	return s.FetchByCoordinates(ctx, c.Coordinate, &label)
}

// SelectHistory re-runs the search for a history entry's city.
func (s *Service) SelectHistory(ctx context.Context, city string) (SearchResult, error) {
	return s.SearchByText(ctx, city)
}

// SelectSaved fetches a saved location by its stored coordinate and label.
func (s *Service) SelectSaved(ctx context.Context, r WeatherRecord) (WeatherRecord, error) {
	label := r.Label()
	return s.FetchByCoordinates(ctx, r.Coordinate(), &label)
}

// Refresh re-fetches the displayed record's location.
func (s *Service) Refresh(ctx context.Context) (WeatherRecord, error) {
	cur, ok := s.state.Current()
	if !ok {
		return WeatherRecord{}, ErrNoCurrent
	}
	label := cur.Label()
	return s.FetchByCoordinates(ctx, cur.Coordinate(), &label)
}

// SaveCurrent adds the displayed record to the saved locations.
func (s *Service) SaveCurrent() (WeatherRecord, error) {
	cur, ok := s.state.Current()
	if !ok {
		return WeatherRecord{}, ErrNoCurrent
	}
	s.state.insertSaved(cur)
	s.notify(KindSuccess, fmt.Sprintf("%s saved", cur.City))
	return cur, nil
}

// RemoveSaved deletes a saved location. It reports whether an entry matched.
func (s *Service) RemoveSaved(city, country string) bool {
	removed := s.state.removeSaved(RecordKey{City: city, Country: country})
	s.notify(KindInfo, fmt.Sprintf("%s removed", city))
	return removed
}

// ClearHistory empties the search history.
func (s *Service) ClearHistory() {
	s.state.clearHistory()
}

// SetTheme persists the theme preference.
func (s *Service) SetTheme(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidPreference, t)
	}
	s.state.setTheme(t)
	if t == ThemeLight {
		s.notify(KindInfo, "Switched to Light Theme")
	} else {
		s.notify(KindInfo, "Switched to Dark Theme")
	}
	return nil
}

// SetUnit changes the display unit for the session.
func (s *Service) SetUnit(u units.Unit) error {
	if !u.Valid() {
		return fmt.Errorf("%w: unit %q", ErrInvalidPreference, u)
	}
	s.state.setUnit(u)
	if u == units.Celsius {
		s.notify(KindInfo, "Switched to Celsius")
	} else {
		s.notify(KindInfo, "Switched to Fahrenheit")
	}
	return nil
}

// fail turns err into an error notification and returns it unchanged.
func (s *Service) fail(err error, msg string) error {
	log.Printf("ERROR: %s: %v", msg, err)
	s.notify(KindError, msg)
	return err
}

func (s *Service) notify(kind NotificationKind, msg string) {
	s.state.notify(Notification{
		ID:        uuid.NewString(),
		Message:   msg,
		Kind:      kind,
		CreatedAt: s.deps.Now().UTC(),
	})
}
