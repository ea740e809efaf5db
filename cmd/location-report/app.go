package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/i474232898/location-report/internal/collector"
	"github.com/i474232898/location-report/internal/config"
	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/logging"
	"github.com/i474232898/location-report/internal/providers"
	"github.com/i474232898/location-report/internal/reader"
	"github.com/i474232898/location-report/internal/store"
)

// app holds everything a command needs, wired from configuration.
type app struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	pipeline *collector.Pipeline
	reader   *reader.Reader
	closers  []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}

	countryStore, err := store.Open[location.Country](cfg.StoreBackend, cfg.DataDir, store.DomainCountry, store.CountryCodec{})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, countryStore)

	weatherStore, err := store.Open[location.Weather](cfg.StoreBackend, cfg.DataDir, store.DomainWeather, store.WeatherCodec{})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, weatherStore)

	newsStore, err := store.Open[location.NewsItem](cfg.StoreBackend, cfg.DataDir, store.DomainNews, store.NewsCodec{})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, newsStore)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var newsSources []providers.NewsSource
	if cfg.NewsAPIKey != "" {
		newsSources = append(newsSources, providers.NewNewsAPIProvider(httpClient, cfg.NewsAPIBaseURL, cfg.NewsAPIKey))
	} else {
		logger.Warn("NEWSAPI_API_KEY not set; using Google News only")
	}
	newsSources = append(newsSources, providers.NewGoogleNewsProvider(httpClient, cfg.GoogleNewsBaseURL))

	countries := collector.NewCountryCollector(countryStore,
		providers.NewCountriesProvider(httpClient, cfg.CountriesBaseURL), logger)
	weather := collector.NewWeatherCollector(weatherStore,
		providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey), cfg.FetchConcurrency, logger)
	news := collector.NewNewsCollector(newsStore,
		providers.NewNewsChain(newsSources...), cfg.FetchConcurrency, logger)

	a.pipeline = &collector.Pipeline{Countries: countries, Weather: weather, News: news, Logger: logger}
	a.reader = reader.New(countries, weather, news)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing store", "error", err)
		}
	}
}
