// Package collector makes sure each domain store holds records for the
// requested locations, fetching only what is missing.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

// DefaultConcurrency bounds in-flight fetches when none is configured.
const DefaultConcurrency = 8

// ErrAllFetchesFailed is returned alongside whatever the store already holds
// when at least one key was missing and every fetch for the batch failed.
var ErrAllFetchesFailed = errors.New("every fetch in the batch failed")

// CountryFetcher loads the whole country directory in one call.
type CountryFetcher interface {
	FetchAll(ctx context.Context) ([]location.Country, error)
}

// WeatherFetcher returns nil, nil when the provider has no data for key.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, key location.Key) (*location.Weather, error)
}

// NewsFetcher returns an empty slice when there are no headlines for key.
type NewsFetcher interface {
	FetchNews(ctx context.Context, key location.Key) ([]location.NewsItem, error)
}

// Stats counts what a single collect call did.
type Stats struct {
	Requested int
	Missing   int
	Fetched   int
	NotFound  int
	Failed    int
	Malformed int
}

// keyed is the fetch-what-is-missing loop shared by per-key collectors.
type keyed[R any] struct {
	domain      string
	store       store.Store[R]
	fetch       func(ctx context.Context, key location.Key) ([]R, error)
	concurrency int
	logger      *slog.Logger

	// mu keeps collect calls on one store from overlapping, so a key is
	// never fetched twice for the same store.
	mu sync.Mutex
}

func newKeyed[R any](domain string, st store.Store[R], concurrency int, logger *slog.Logger,
	fetch func(ctx context.Context, key location.Key) ([]R, error)) *keyed[R] {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &keyed[R]{
		domain:      domain,
		store:       st,
		fetch:       fetch,
		concurrency: concurrency,
		logger:      logger.With("domain", domain),
	}
}

// collect fetches the keys the store does not hold, concurrently, appends the
// results in one batch and returns the stored rows for every requested key.
func (k *keyed[R]) collect(ctx context.Context, keys []location.Key) ([]store.Row[R], Stats, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	log := k.logger.With("run_id", uuid.NewString())

	existing, err := k.store.LoadAll()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("loading %s store: %w", k.domain, err)
	}
	have := store.Keys(existing)

	requested := make(map[location.Key]struct{}, len(keys))
	var missing []location.Key
	for _, key := range keys {
		nk := key.Normalized()
		if _, dup := requested[nk]; dup {
			continue
		}
		requested[nk] = struct{}{}
		if _, ok := have[nk]; !ok {
			missing = append(missing, key)
		}
	}

	stats := Stats{Requested: len(requested), Missing: len(missing)}
	log.Debug("collect started", "requested", stats.Requested, "missing", stats.Missing)

	if len(missing) > 0 {
		batch, fs := k.fetchMissing(ctx, log, missing)
		stats.Fetched, stats.NotFound, stats.Failed, stats.Malformed = fs.Fetched, fs.NotFound, fs.Failed, fs.Malformed

		if len(batch) > 0 {
			if _, err := k.store.Append(batch); err != nil {
				return nil, stats, fmt.Errorf("appending to %s store: %w", k.domain, err)
			}
		}
		existing, err = k.store.LoadAll()
		if err != nil {
			return nil, stats, fmt.Errorf("reloading %s store: %w", k.domain, err)
		}
	}

	var out []store.Row[R]
	for _, r := range existing {
		if _, ok := requested[r.Key.Normalized()]; ok {
			out = append(out, r)
		}
	}

	log.Info("collect finished",
		"requested", stats.Requested,
		"missing", stats.Missing,
		"fetched", stats.Fetched,
		"not_found", stats.NotFound,
		"failed", stats.Failed,
		"malformed", stats.Malformed,
	)

	if stats.Missing > 0 && stats.Failed == stats.Missing {
		return out, stats, ErrAllFetchesFailed
	}
	return out, stats, nil
}

// fetchMissing runs one fetch per key with bounded fan-out. A failing key
// never cancels its siblings. Rows come back grouped in key order.
func (k *keyed[R]) fetchMissing(ctx context.Context, log *slog.Logger, missing []location.Key) ([]store.Row[R], Stats) {
	var (
		results                              = make([][]store.Row[R], len(missing))
		fetched, notFound, failed, malformed atomic.Int32
		g                                    errgroup.Group
	)
	g.SetLimit(k.concurrency)

	for i, key := range missing {
		g.Go(func() error {
			values, err := k.fetch(ctx, key)
			if err != nil {
				log.Warn("fetch failed", "key", key.String(), "error", err)
				failed.Add(1)
				return nil
			}
			if len(values) == 0 {
				log.Debug("no data for key", "key", key.String())
				notFound.Add(1)
				return nil
			}

			rows := make([]store.Row[R], 0, len(values))
			for _, v := range values {
				if err := location.Validate(v); err != nil {
					log.Warn("dropping malformed record", "key", key.String(), "error", err)
					malformed.Add(1)
					continue
				}
				rows = append(rows, store.Row[R]{Key: key, Value: v})
			}
			if len(rows) == 0 {
				notFound.Add(1)
				return nil
			}
			results[i] = rows
			fetched.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	var batch []store.Row[R]
	for _, rows := range results {
		batch = append(batch, rows...)
	}
	return batch, Stats{
		Fetched:   int(fetched.Load()),
		NotFound:  int(notFound.Load()),
		Failed:    int(failed.Load()),
		Malformed: int(malformed.Load()),
	}
}

// read returns the stored values for key without fetching.
func (k *keyed[R]) read(key location.Key) ([]R, error) {
	rows, err := k.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s store: %w", k.domain, err)
	}
	values := store.Lookup(rows, key)
	if len(values) == 0 {
		return nil, location.ErrNotFound
	}
	return values, nil
}
