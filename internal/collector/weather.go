package collector

import (
	"context"
	"log/slog"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

// WeatherCollector keeps one current-conditions record per location.
type WeatherCollector struct {
	k *keyed[location.Weather]
}

func NewWeatherCollector(st store.Store[location.Weather], f WeatherFetcher, concurrency int, logger *slog.Logger) *WeatherCollector {
	fetch := func(ctx context.Context, key location.Key) ([]location.Weather, error) {
		w, err := f.FetchWeather(ctx, key)
		if err != nil || w == nil {
			return nil, err
		}
		return []location.Weather{*w}, nil
	}
	return &WeatherCollector{k: newKeyed(store.DomainWeather, st, concurrency, logger, fetch)}
}

// Collect makes sure the store has weather for keys and returns what it holds
// for them, keyed by the stored location.
func (c *WeatherCollector) Collect(ctx context.Context, keys []location.Key) (map[location.Key]location.Weather, Stats, error) {
	rows, stats, err := c.k.collect(ctx, keys)
	out := make(map[location.Key]location.Weather, len(rows))
	for _, r := range rows {
		if _, ok := out[r.Key]; !ok {
			out[r.Key] = r.Value
		}
	}
	return out, stats, err
}

// Read returns the stored weather for key or location.ErrNotFound.
func (c *WeatherCollector) Read(key location.Key) (location.Weather, error) {
	values, err := c.k.read(key)
	if err != nil {
		return location.Weather{}, err
	}
	return values[0], nil
}
