package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

// CountryCollector bulk-loads the country directory. Once the store holds any
// country the provider is not called again.
type CountryCollector struct {
	mu     sync.Mutex
	store  store.Store[location.Country]
	fetch  CountryFetcher
	logger *slog.Logger
}

func NewCountryCollector(st store.Store[location.Country], f CountryFetcher, logger *slog.Logger) *CountryCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &CountryCollector{store: st, fetch: f, logger: logger.With("domain", store.DomainCountry)}
}

// Collect fills an empty store from the provider and returns every stored country.
func (c *CountryCollector) Collect(ctx context.Context) ([]location.Country, Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.logger.With("run_id", uuid.NewString())

	rows, err := c.store.LoadAll()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("loading country store: %w", err)
	}
	if len(rows) > 0 {
		log.Debug("country store already populated", "countries", len(rows))
		return values(rows), Stats{Requested: len(rows)}, nil
	}

	stats := Stats{Missing: 1}
	countries, err := c.fetch.FetchAll(ctx)
	if err != nil {
		log.Error("country fetch failed", "error", err)
		stats.Failed = 1
		return nil, stats, fmt.Errorf("%w: %v", ErrAllFetchesFailed, err)
	}
	if len(countries) == 0 {
		stats.NotFound = 1
		log.Warn("country provider returned no countries")
		return nil, stats, nil
	}

	seen := make(map[location.Key]struct{}, len(countries))
	batch := make([]store.Row[location.Country], 0, len(countries))
	for _, country := range countries {
		if err := location.Validate(country); err != nil {
			log.Debug("dropping malformed country", "name", country.Name, "error", err)
			stats.Malformed++
			continue
		}
		nk := country.Key().Normalized()
		if _, dup := seen[nk]; dup {
			continue
		}
		seen[nk] = struct{}{}
		batch = append(batch, store.Row[location.Country]{Key: country.Key(), Value: country})
	}
	stats.Requested = len(countries)
	stats.Fetched = len(batch)

	if _, err := c.store.Append(batch); err != nil {
		return nil, stats, fmt.Errorf("appending to country store: %w", err)
	}
	if stats.Malformed > 0 {
		log.Warn("dropped malformed countries", "count", stats.Malformed)
	}
	log.Info("countries collected", "stored", stats.Fetched)

	rows, err = c.store.LoadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("reloading country store: %w", err)
	}
	return values(rows), stats, nil
}

// All returns every stored country without fetching.
func (c *CountryCollector) All() ([]location.Country, error) {
	rows, err := c.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading country store: %w", err)
	}
	return values(rows), nil
}

// Read returns the stored country for key or location.ErrNotFound.
func (c *CountryCollector) Read(key location.Key) (location.Country, error) {
	all, err := c.All()
	if err != nil {
		return location.Country{}, err
	}
	for _, country := range all {
		if country.Key().Matches(key) {
			return country, nil
		}
	}
	return location.Country{}, location.ErrNotFound
}

func values[R any](rows []store.Row[R]) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Value)
	}
	return out
}
