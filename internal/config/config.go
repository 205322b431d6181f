package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the dashboard settings. Values come from the YAML file
// named by WEATHER_CONFIG (optional), then from the environment and .env,
// which win.
type AppConfig struct {
	// OpenWeatherAPIKey is the only provider credential. An empty key is not
	// a startup error; fetches report it to the user instead.
	OpenWeatherAPIKey string `yaml:"openweather_api_key"`
	GoogleAPIKey      string `yaml:"google_geocoder_api_key"`

	Port      string `yaml:"port"`
	StorePath string `yaml:"store_path"`

	// HTTPTimeout bounds each upstream call; 0 means no timeout.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// RefreshInterval is how often the displayed location is re-fetched;
	// 0 disables the scheduler.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	AccuracyWarnMeters float64 `yaml:"accuracy_warn_meters"`
	// OnlineProbeAddr is a host:port dialed to detect connectivity. Empty
	// means always online.
	OnlineProbeAddr string `yaml:"online_probe_addr"`

	OpenWeatherBaseURL string `yaml:"openweather_base_url"`
	NominatimBaseURL   string `yaml:"nominatim_base_url"`
	IPLocateURL        string `yaml:"iplocate_url"`
	UserAgent          string `yaml:"user_agent"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:               "8080",
		StorePath:          "weather.db",
		RefreshInterval:    30 * time.Minute,
		AccuracyWarnMeters: 1000,
		UserAgent:          "weather-dashboard/1.0",
	}
}

// Load reads configuration with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := defaults()

	if path := os.Getenv("WEATHER_CONFIG"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", cfg.OpenWeatherAPIKey)
	cfg.GoogleAPIKey = getenvDefault("GOOGLE_GEOCODER_API_KEY", cfg.GoogleAPIKey)
	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.StorePath = getenvDefault("STORE_PATH", cfg.StorePath)
	cfg.OnlineProbeAddr = getenvDefault("ONLINE_PROBE_ADDR", cfg.OnlineProbeAddr)
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", cfg.OpenWeatherBaseURL)
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", cfg.NominatimBaseURL)
	cfg.IPLocateURL = getenvDefault("IPLOCATE_URL", cfg.IPLocateURL)
	cfg.UserAgent = getenvDefault("USER_AGENT", cfg.UserAgent)
	cfg.AccuracyWarnMeters = getenvFloat("ACCURACY_WARN_METERS", cfg.AccuracyWarnMeters)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAML(path string, cfg *AppConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
		log.Printf("WARN: ignoring invalid %s=%q", key, v)
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
