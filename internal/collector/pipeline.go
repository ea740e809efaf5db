package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/i474232898/location-report/internal/location"
)

// Summary reports one pipeline run.
type Summary struct {
	Countries int
	Weather   Stats
	News      Stats
}

// Pipeline runs the three collectors in dependency order: countries first,
// then weather and news side by side for the chosen keys.
type Pipeline struct {
	Countries *CountryCollector
	Weather   *WeatherCollector
	News      *NewsCollector
	Logger    *slog.Logger
}

// Run collects countries, then weather and news for keys. With no keys every
// stored country's capital is used.
func (p *Pipeline) Run(ctx context.Context, keys []location.Key) (Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	countries, _, err := p.Countries.Collect(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("collecting countries: %w", err)
	}
	summary := Summary{Countries: len(countries)}

	if len(keys) == 0 {
		keys = make([]location.Key, 0, len(countries))
		for _, c := range countries {
			keys = append(keys, c.Key())
		}
	}
	if len(keys) == 0 {
		logger.Warn("no locations to collect")
		return summary, nil
	}

	var (
		wg                  sync.WaitGroup
		weatherErr, newsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, summary.Weather, weatherErr = p.Weather.Collect(ctx, keys)
	}()
	go func() {
		defer wg.Done()
		_, summary.News, newsErr = p.News.Collect(ctx, keys)
	}()
	wg.Wait()

	if weatherErr != nil {
		weatherErr = fmt.Errorf("collecting weather: %w", weatherErr)
	}
	if newsErr != nil {
		newsErr = fmt.Errorf("collecting news: %w", newsErr)
	}
	return summary, errors.Join(weatherErr, newsErr)
}
