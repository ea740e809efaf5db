package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/location-report/internal/location"
)

// Domain table names.
const (
	DomainCountry = "country"
	DomainWeather = "weather"
	DomainNews    = "news"
)

const listSep = "|"

func joinList(items []string) string { return strings.Join(items, listSep) }

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// CountryCodec stores countries one per row. Languages are kept as a JSON
// array since names can contain any separator.
type CountryCodec struct{}

func (CountryCodec) Columns() []string {
	return []string{
		"name", "area", "latitude", "longitude", "population", "subregion",
		"flag_url", "languages", "alt_spellings", "timezones",
	}
}

func (CountryCodec) Encode(c location.Country) ([]string, error) {
	langs, err := json.Marshal(c.Languages)
	if err != nil {
		return nil, err
	}
	area := ""
	if c.Area != nil {
		area = formatFloat(*c.Area)
	}
	return []string{
		c.Name,
		area,
		formatFloat(c.Latitude),
		formatFloat(c.Longitude),
		strconv.FormatInt(c.Population, 10),
		c.Subregion,
		c.FlagURL,
		string(langs),
		joinList(c.AltSpellings),
		joinList(c.Timezones),
	}, nil
}

func (CountryCodec) Decode(key location.Key, cols []string) (location.Country, error) {
	c := location.Country{
		Capital:      key.Capital,
		CountryCode:  key.CountryCode,
		Name:         cols[0],
		Subregion:    cols[5],
		FlagURL:      cols[6],
		AltSpellings: splitList(cols[8]),
		Timezones:    splitList(cols[9]),
	}

	var err error
	if cols[1] != "" {
		area, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			return c, fmt.Errorf("area: %w", err)
		}
		c.Area = &area
	}
	if c.Latitude, err = strconv.ParseFloat(cols[2], 64); err != nil {
		return c, fmt.Errorf("latitude: %w", err)
	}
	if c.Longitude, err = strconv.ParseFloat(cols[3], 64); err != nil {
		return c, fmt.Errorf("longitude: %w", err)
	}
	if c.Population, err = strconv.ParseInt(cols[4], 10, 64); err != nil {
		return c, fmt.Errorf("population: %w", err)
	}
	if cols[7] != "" {
		if err := json.Unmarshal([]byte(cols[7]), &c.Languages); err != nil {
			return c, fmt.Errorf("languages: %w", err)
		}
	}
	return c, nil
}

// WeatherCodec stores one current-conditions row per key.
type WeatherCodec struct{}

func (WeatherCodec) Columns() []string {
	return []string{"temperature", "pressure", "humidity", "wind_speed", "description", "utc_offset_seconds"}
}

func (WeatherCodec) Encode(w location.Weather) ([]string, error) {
	return []string{
		formatFloat(w.Temperature),
		strconv.Itoa(w.Pressure),
		strconv.Itoa(w.Humidity),
		formatFloat(w.WindSpeed),
		w.Description,
		strconv.Itoa(w.UTCOffsetSeconds),
	}, nil
}

func (WeatherCodec) Decode(_ location.Key, cols []string) (location.Weather, error) {
	var (
		w   location.Weather
		err error
	)
	if w.Temperature, err = strconv.ParseFloat(cols[0], 64); err != nil {
		return w, fmt.Errorf("temperature: %w", err)
	}
	if w.Pressure, err = strconv.Atoi(cols[1]); err != nil {
		return w, fmt.Errorf("pressure: %w", err)
	}
	if w.Humidity, err = strconv.Atoi(cols[2]); err != nil {
		return w, fmt.Errorf("humidity: %w", err)
	}
	if w.WindSpeed, err = strconv.ParseFloat(cols[3], 64); err != nil {
		return w, fmt.Errorf("wind_speed: %w", err)
	}
	w.Description = cols[4]
	if w.UTCOffsetSeconds, err = strconv.Atoi(cols[5]); err != nil {
		return w, fmt.Errorf("utc_offset_seconds: %w", err)
	}
	return w, nil
}

// NewsCodec stores one headline per row; a key's rows keep provider order.
type NewsCodec struct{}

func (NewsCodec) Columns() []string {
	return []string{"title", "url", "source", "published_at"}
}

func (NewsCodec) Encode(n location.NewsItem) ([]string, error) {
	return []string{n.Title, n.URL, n.Source, n.PublishedAt}, nil
}

func (NewsCodec) Decode(_ location.Key, cols []string) (location.NewsItem, error) {
	return location.NewsItem{Title: cols[0], URL: cols[1], Source: cols[2], PublishedAt: cols[3]}, nil
}
