package weather

import "errors"

var (
	ErrOffline           = errors.New("offline")
	ErrMissingCredential = errors.New("provider credential not configured")
	ErrNotFound          = errors.New("location not found")
	ErrNoData            = errors.New("no usable weather data")
	ErrSensorUnavailable = errors.New("geolocation not available")
	ErrSensorFailed      = errors.New("geolocation failed")

	// ErrEmptyQuery is returned for blank search input; no notification is produced.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrNoCurrent is returned by operations that need a displayed record.
	ErrNoCurrent = errors.New("no current weather")
	// ErrInvalidPreference is returned for unknown theme or unit values.
	ErrInvalidPreference = errors.New("invalid preference")
)

// User-facing messages.
const (
	msgMissingCredential = "Missing OpenWeather API key. Set OPENWEATHER_API_KEY."
	msgOfflineFetch      = "Offline: can't fetch live data"
	msgOfflineSearch     = "You are offline. Only cached data available."
	msgOfflineLocate     = "You are offline. Location fetch requires internet."
	msgNoData            = "No weather data returned"
	msgFetchFailed       = "Error fetching weather"
	msgNotFound          = "Location not found"
	msgSearchFailed      = "Error searching for location"
	msgAmbiguous         = "Multiple matches found. Please pick one from the list."
	msgSensorUnavailable = "Geolocation is not available."
	msgSensorFailed      = "Unable to access your location."
)
