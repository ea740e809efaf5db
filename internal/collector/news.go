package collector

import (
	"context"
	"log/slog"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

// NewsCollector keeps an ordered headline list per location.
type NewsCollector struct {
	k *keyed[location.NewsItem]
}

func NewNewsCollector(st store.Store[location.NewsItem], f NewsFetcher, concurrency int, logger *slog.Logger) *NewsCollector {
	fetch := func(ctx context.Context, key location.Key) ([]location.NewsItem, error) {
		return f.FetchNews(ctx, key)
	}
	return &NewsCollector{k: newKeyed(store.DomainNews, st, concurrency, logger, fetch)}
}

// Collect makes sure the store has headlines for keys and returns them in
// provider order.
func (c *NewsCollector) Collect(ctx context.Context, keys []location.Key) (map[location.Key][]location.NewsItem, Stats, error) {
	rows, stats, err := c.k.collect(ctx, keys)
	out := make(map[location.Key][]location.NewsItem)
	for _, r := range rows {
		out[r.Key] = append(out[r.Key], r.Value)
	}
	return out, stats, err
}

// Read returns the stored headlines for key or location.ErrNotFound.
func (c *NewsCollector) Read(key location.Key) ([]location.NewsItem, error) {
	return c.k.read(key)
}
