// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

type AppConfig struct {
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	NewsAPIKey        string `envconfig:"NEWSAPI_API_KEY"`

	CountriesBaseURL   string `envconfig:"COUNTRIES_BASE_URL" default:"https://restcountries.com/v2"`
	OpenWeatherBaseURL string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	NewsAPIBaseURL     string `envconfig:"NEWSAPI_BASE_URL" default:"https://newsapi.org/v2"`
	GoogleNewsBaseURL  string `envconfig:"GOOGLE_NEWS_BASE_URL" default:"https://news.google.com"`

	// DataDir holds one file per domain store.
	DataDir      string `envconfig:"DATA_DIR"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"csv"`

	FetchConcurrency int           `envconfig:"FETCH_CONCURRENCY" default:"8"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	NewsLimit        int           `envconfig:"NEWS_LIMIT" default:"3"`

	WatchlistFile   string        `envconfig:"WATCHLIST_FILE"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m"`

	Port string `envconfig:"PORT" default:"8080"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogFile   string `envconfig:"LOG_FILE"`
}

// DefaultDataDir is where stores live when DATA_DIR is unset.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "location-report")
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("INFO: error loading .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration data, %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *AppConfig) Validate() error {
	switch c.StoreBackend {
	case store.BackendCSV, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q (valid: csv, sqlite, memory)", c.StoreBackend)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.RefreshInterval < time.Minute {
		return fmt.Errorf("REFRESH_INTERVAL must be at least 1m, got %s", c.RefreshInterval)
	}
	if c.NewsLimit < 0 {
		return fmt.Errorf("NEWS_LIMIT must not be negative, got %d", c.NewsLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (valid: text, json)", c.LogFormat)
	}
	return nil
}

// Watchlist is the set of places serve mode keeps collected.
type Watchlist struct {
	Locations []WatchEntry `yaml:"locations"`
}

type WatchEntry struct {
	Capital     string `yaml:"capital"`
	CountryCode string `yaml:"country_code"`
}

// LoadWatchlist parses a YAML watchlist. An empty path yields no keys, which
// callers treat as "every stored country".
func LoadWatchlist(path string) ([]location.Key, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing watchlist %s: %w", path, err)
	}

	keys := make([]location.Key, 0, len(wl.Locations))
	for i, e := range wl.Locations {
		k, err := location.NewKey(e.Capital, e.CountryCode)
		if err != nil {
			return nil, fmt.Errorf("watchlist entry %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
