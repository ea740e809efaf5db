// Package reader joins the country, weather and news stores into a report
// for a free-text place name. It never fetches.
package reader

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/location-report/internal/common"
	"github.com/i474232898/location-report/internal/location"
)

// Countries lists every stored country.
type Countries interface {
	All() ([]location.Country, error)
}

// WeatherSource reads stored weather; absence is location.ErrNotFound.
type WeatherSource interface {
	Read(key location.Key) (location.Weather, error)
}

// NewsSource reads stored headlines; absence is location.ErrNotFound.
type NewsSource interface {
	Read(key location.Key) ([]location.NewsItem, error)
}

type Reader struct {
	countries Countries
	weather   WeatherSource
	news      NewsSource
}

func New(countries Countries, weather WeatherSource, news NewsSource) *Reader {
	return &Reader{countries: countries, weather: weather, news: news}
}

// FindCountry resolves name against capitals first, then country names, then
// alternate spellings. Matching ignores case.
func (r *Reader) FindCountry(name string) (location.Country, error) {
	all, err := r.countries.All()
	if err != nil {
		return location.Country{}, err
	}

	matchers := []func(location.Country) bool{
		func(c location.Country) bool { return common.EqualsAny(name, c.Capital) },
		func(c location.Country) bool { return common.EqualsAny(name, c.Name) },
		func(c location.Country) bool { return common.EqualsAny(name, c.AltSpellings...) },
	}
	for _, match := range matchers {
		for _, c := range all {
			if match(c) {
				return c, nil
			}
		}
	}
	return location.Country{}, location.ErrNotFound
}

// GetWeather returns stored weather for key or location.ErrNotFound.
func (r *Reader) GetWeather(key location.Key) (location.Weather, error) {
	return r.weather.Read(key)
}

// GetNews returns stored headlines for key; no headlines is an empty slice.
func (r *Reader) GetNews(key location.Key) ([]location.NewsItem, error) {
	items, err := r.news.Read(key)
	if errors.Is(err, location.ErrNotFound) {
		return nil, nil
	}
	return items, err
}

// Find builds the report for name. An unresolved name returns
// location.ErrNotFound without touching the weather or news stores.
func (r *Reader) Find(name string) (*location.Report, error) {
	country, err := r.FindCountry(name)
	if err != nil {
		return nil, err
	}
	key := country.Key()

	var (
		g       errgroup.Group
		weather location.Weather
		news    []location.NewsItem
	)
	g.Go(func() error {
		w, err := r.GetWeather(key)
		if err != nil {
			return fmt.Errorf("weather for %s: %w", key, err)
		}
		weather = w
		return nil
	})
	g.Go(func() error {
		items, err := r.GetNews(key)
		if err != nil {
			return fmt.Errorf("news for %s: %w", key, err)
		}
		news = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &location.Report{Location: country, Weather: weather, News: news}, nil
}
