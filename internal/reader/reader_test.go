package reader

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/i474232898/location-report/internal/collector"
	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/store"
)

var london = location.Key{Capital: "London", CountryCode: "GB"}

type spyWeather struct {
	WeatherSource
	calls atomic.Int32
}

func (s *spyWeather) Read(key location.Key) (location.Weather, error) {
	s.calls.Add(1)
	return s.WeatherSource.Read(key)
}

type spyNews struct {
	NewsSource
	calls atomic.Int32
}

func (s *spyNews) Read(key location.Key) ([]location.NewsItem, error) {
	s.calls.Add(1)
	return s.NewsSource.Read(key)
}

func ukCountry() location.Country {
	area := 242900.0
	return location.Country{
		Area:         &area,
		Capital:      "London",
		Latitude:     54,
		Longitude:    -2,
		CountryCode:  "GB",
		AltSpellings: []string{"GB", "UK", "Great Britain"},
		Languages:    []location.Language{{Name: "English", NativeName: "English"}},
		Name:         "United Kingdom of Great Britain and Northern Ireland",
		Population:   67215293,
		Subregion:    "Northern Europe",
		Timezones:    []string{"UTC-08:00", "UTC+00:00"},
	}
}

func norway() location.Country {
	return location.Country{
		Capital:     "Oslo",
		Latitude:    62,
		Longitude:   10,
		CountryCode: "NO",
		Languages:   []location.Language{{Name: "Norwegian", NativeName: "Norsk"}},
		Name:        "Norway",
		Population:  5379475,
		Subregion:   "Northern Europe",
		Timezones:   []string{"UTC+01:00"},
	}
}

type fixture struct {
	reader  *Reader
	weather *spyWeather
	news    *spyNews
}

// newFixture seeds memory stores directly and reads them through collectors.
func newFixture(t *testing.T) fixture {
	t.Helper()

	countries := store.NewMemory[location.Country]()
	weather := store.NewMemory[location.Weather]()
	news := store.NewMemory[location.NewsItem]()

	for _, c := range []location.Country{ukCountry(), norway()} {
		if _, err := countries.Append([]store.Row[location.Country]{{Key: c.Key(), Value: c}}); err != nil {
			t.Fatal(err)
		}
	}
	weather.Append([]store.Row[location.Weather]{
		{Key: london, Value: location.Weather{Temperature: 13.92, Pressure: 1023, Humidity: 54, WindSpeed: 4.63, Description: "scattered clouds"}},
		{Key: norway().Key(), Value: location.Weather{Temperature: -2, Humidity: 80, UTCOffsetSeconds: 3600}},
	})
	news.Append([]store.Row[location.NewsItem]{
		{Key: london, Value: location.NewsItem{Title: "Majority of English councils plan more cuts", Source: "Google News", PublishedAt: "2023-03-07T06:00:00Z"}},
		{Key: london, Value: location.NewsItem{Title: "Second headline"}},
	})

	w := &spyWeather{WeatherSource: collector.NewWeatherCollector(weather, nil, 1, nil)}
	n := &spyNews{NewsSource: collector.NewNewsCollector(news, nil, 1, nil)}
	c := collector.NewCountryCollector(countries, nil, nil)

	return fixture{reader: New(c, w, n), weather: w, news: n}
}

func TestFind(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.reader.Find("London")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	assert.Equal(t, "United Kingdom of Great Britain and Northern Ireland", report.Location.Name)
	assert.Equal(t, "London", report.Location.Capital)
	assert.Equal(t, "GB", report.Location.CountryCode)
	assert.Equal(t, "Northern Europe", report.Location.Subregion)
	assert.NotEqual(t, 0, len(report.Location.Languages))
	assert.NotEqual(t, 0, len(report.Location.Timezones))
	assert.NotEqual(t, 0, len(report.Location.AltSpellings))
	assert.Equal(t, true, *report.Location.Area > 0)
	assert.Equal(t, 0, report.Weather.UTCOffsetSeconds)
	assert.Equal(t, 2, len(report.News))
	assert.Equal(t, "Second headline", report.News[1].Title)
}

func TestFindIgnoresCase(t *testing.T) {
	fx := newFixture(t)

	for _, name := range []string{"london", "  LONDON ", "united kingdom of great britain and northern ireland", "uk"} {
		report, err := fx.reader.Find(name)
		if err != nil {
			t.Fatalf("find %q: %v", name, err)
		}
		assert.Equal(t, true, report.Location.Key().Matches(london))
	}
}

func TestFindWithoutNews(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.reader.Find("Oslo")
	assert.Equal(t, nil, err)
	assert.Equal(t, "Norway", report.Location.Name)
	assert.Equal(t, 3600, report.Weather.UTCOffsetSeconds)
	assert.Equal(t, 0, len(report.News))
}

func TestFindNotFoundShortCircuits(t *testing.T) {
	fx := newFixture(t)

	report, err := fx.reader.Find("nonexistent-place")
	if !errors.Is(err, location.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	assert.Equal(t, true, report == nil)
	assert.Equal(t, int32(0), fx.weather.calls.Load())
	assert.Equal(t, int32(0), fx.news.calls.Load())
}

func TestFindCountry(t *testing.T) {
	fx := newFixture(t)

	c, err := fx.reader.FindCountry("London")
	assert.Equal(t, nil, err)
	assert.Equal(t, "United Kingdom of Great Britain and Northern Ireland", c.Name)

	_, err = fx.reader.FindCountry("test")
	assert.Equal(t, location.ErrNotFound, err)

	_, err = fx.reader.FindCountry("")
	assert.Equal(t, location.ErrNotFound, err)
}

func TestGetWeatherAndNews(t *testing.T) {
	fx := newFixture(t)

	w, err := fx.reader.GetWeather(london)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, w.UTCOffsetSeconds)
	assert.Equal(t, "scattered clouds", w.Description)

	news, err := fx.reader.GetNews(london)
	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(news))

	news, err = fx.reader.GetNews(location.Key{Capital: "Oslo", CountryCode: "NO"})
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(news))

	_, err = fx.reader.GetWeather(location.Key{Capital: "Paris", CountryCode: "FR"})
	assert.Equal(t, location.ErrNotFound, err)
}
