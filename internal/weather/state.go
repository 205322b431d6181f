package weather

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/units"
)

// Keys of the persisted values.
const (
	KeyTheme   = "weather-theme"
	KeyHistory = "weather-history"
	KeySaved   = "weather-saved"
)

const maxNotifications = 20

// State is the dashboard's application state. Theme, history and saved are
// read from the store once by LoadState and rewritten in full on each change.
// Everything else lives for the session only.
type State struct {
	mu    sync.RWMutex
	store Store

	generation  uint64 // last generation handed out
	currentGen  uint64 // generation of the displayed record
	current     *WeatherRecord
	forecast    ForecastView
	suggestions []Candidate

	history *RecordList
	saved   *RecordList

	theme         Theme
	unit          units.Unit
	notifications []Notification
}

// Snapshot is a consistent copy of the state for rendering.
type Snapshot struct {
	Current       *WeatherRecord   `json:"current"`
	Hourly        []ForecastSample `json:"hourly"`
	Daily         []DailyAggregate `json:"daily"`
	Suggestions   []Candidate      `json:"suggestions"`
	History       []WeatherRecord  `json:"history"`
	Saved         []WeatherRecord  `json:"saved"`
	Theme         Theme            `json:"theme"`
	Unit          units.Unit       `json:"unit"`
	Notification  *Notification    `json:"notification"`
	Notifications []Notification   `json:"notifications"`
}

// LoadState reads the persisted values. Missing or unreadable values start
// empty (theme defaults to light).
func LoadState(store Store) *State {
	s := &State{
		store:       store,
		theme:       ThemeLight,
		unit:        units.Celsius,
		forecast:    ForecastView{Hourly: []ForecastSample{}, Daily: []DailyAggregate{}},
		suggestions: []Candidate{},
	}

	if v, ok := s.read(KeyTheme); ok && Theme(v).Valid() {
		s.theme = Theme(v)
	}
	s.history = NewRecordList(HistoryLimit, s.readRecords(KeyHistory))
	s.saved = NewRecordList(SavedLimit, s.readRecords(KeySaved))
	return s
}

func (s *State) read(key string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	v, ok, err := s.store.Get(key)
	if err != nil {
		log.Printf("WARN: state: reading %s: %v", key, err)
		return "", false
	}
	return v, ok
}

func (s *State) readRecords(key string) []WeatherRecord {
	raw, ok := s.read(key)
	if !ok || raw == "" {
		return nil
	}
	var items []WeatherRecord
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("WARN: state: discarding unreadable %s: %v", key, err)
		return nil
	}
	return items
}

// persist writes a value; the in-memory state stays authoritative for the
// session when the store fails. Callers hold s.mu.
func (s *State) persist(key string, v any) {
	if s.store == nil {
		return
	}
	var raw string
	switch val := v.(type) {
	case string:
		raw = val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			log.Printf("ERROR: state: encoding %s: %v", key, err)
			return
		}
		raw = string(b)
	}
	if err := s.store.Set(key, raw); err != nil {
		log.Printf("WARN: state: writing %s: %v", key, err)
	}
}

// nextGeneration stamps a new fetch.
func (s *State) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// publishCurrent records a fetched record in history and, unless a newer
// fetch already published, makes it the displayed record.
func (s *State) publishCurrent(gen uint64, r WeatherRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Insert(r)
	s.persist(KeyHistory, s.history.Items())

	if gen < s.currentGen {
		return false
	}
	s.currentGen = gen
	rec := r
	s.current = &rec
	return true
}

// publishForecast replaces the forecast views if they belong to the displayed record.
func (s *State) publishForecast(gen uint64, v ForecastView) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.currentGen {
		return false
	}
	s.forecast = v
	return true
}

func (s *State) setSuggestions(c []Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		c = []Candidate{}
	}
	s.suggestions = c
}

func (s *State) notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
}

func (s *State) insertSaved(r WeatherRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved.Insert(r)
	s.persist(KeySaved, s.saved.Items())
}

func (s *State) removeSaved(key RecordKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.saved.Remove(key)
	s.persist(KeySaved, s.saved.Items())
	return removed
}

func (s *State) clearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.persist(KeyHistory, s.history.Items())
}

func (s *State) setTheme(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	s.persist(KeyTheme, string(t))
}

func (s *State) setUnit(u units.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unit = u
}

// Current returns the displayed record, if any.
func (s *State) Current() (WeatherRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return WeatherRecord{}, false
	}
	return *s.current, true
}

// Forecast returns the current forecast views.
func (s *State) Forecast() ForecastView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forecast
}

// History returns the search history, most recent first.
func (s *State) History() []WeatherRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Items()
}

// Saved returns the saved locations, most recent first.
func (s *State) Saved() []WeatherRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Items()
}

// Suggestions returns the selectable candidates of the last lookup.
func (s *State) Suggestions() []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Candidate, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Theme returns the persisted theme.
func (s *State) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Unit returns the display unit.
func (s *State) Unit() units.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

// LastNotification returns the most recent notification.
func (s *State) LastNotification() (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[0], true
}

// Notifications returns recent notifications, newest first.
func (s *State) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Snapshot copies the whole state. Forecast views are trimmed to the rows
// the dashboard shows (24 hourly, 10 daily).
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Hourly:        headSamples(s.forecast.Hourly, 24),
		Daily:         headDaily(s.forecast.Daily, 10),
		Suggestions:   append([]Candidate{}, s.suggestions...),
		History:       s.history.Items(),
		Saved:         s.saved.Items(),
		Theme:         s.theme,
		Unit:          s.unit,
		Notifications: append([]Notification{}, s.notifications...),
	}
	if s.current != nil {
		rec := *s.current
		snap.Current = &rec
	}
	if len(s.notifications) > 0 {
		n := s.notifications[0]
		snap.Notification = &n
	}
	return snap
}

func headSamples(in []ForecastSample, n int) []ForecastSample {
	if len(in) < n {
		n = len(in)
	}
	return append([]ForecastSample{}, in[:n]...)
}

func headDaily(in []DailyAggregate, n int) []DailyAggregate {
	if len(in) < n {
		n = len(in)
	}
	return append([]DailyAggregate{}, in[:n]...)
}
