package location

import (
	"fmt"
	"strings"
	"time"
)

// Key identifies a place across every domain store: a capital plus the
// alpha-2 code of its country. Keys are plain values and can be used as map
// keys directly; use Normalized when comparing user input against stored keys.
type Key struct {
	Capital     string `json:"capital" validate:"required"`
	CountryCode string `json:"country_code" validate:"required,len=2"`
}

// NewKey builds a Key and rejects country codes that are not two letters long.
func NewKey(capital, countryCode string) (Key, error) {
	k := Key{Capital: strings.TrimSpace(capital), CountryCode: strings.TrimSpace(countryCode)}
	if err := Validate(k); err != nil {
		return Key{}, err
	}
	return k, nil
}

// String returns a canonical string form used in logs.
func (k Key) String() string {
	return k.Capital + ":" + k.CountryCode
}

// Normalized folds the key so that "london:gb" and "London:GB" compare equal.
func (k Key) Normalized() Key {
	return Key{
		Capital:     strings.ToLower(strings.TrimSpace(k.Capital)),
		CountryCode: strings.ToUpper(strings.TrimSpace(k.CountryCode)),
	}
}

// Matches reports whether two keys refer to the same place, ignoring case.
func (k Key) Matches(other Key) bool {
	return k.Normalized() == other.Normalized()
}

// Language is a spoken language of a country.
type Language struct {
	Name       string `json:"name" validate:"required"`
	NativeName string `json:"native_name"`
}

// Country is the country-directory record. Languages has set semantics:
// duplicates are dropped by UniqueLanguages before the record is stored.
type Country struct {
	Area         *float64   `json:"area,omitempty" validate:"omitempty,gte=0"`
	Capital      string     `json:"capital" validate:"required"`
	Latitude     float64    `json:"latitude" validate:"latitude"`
	Longitude    float64    `json:"longitude" validate:"longitude"`
	CountryCode  string     `json:"country_code" validate:"required,len=2"`
	AltSpellings []string   `json:"alt_spellings"`
	FlagURL      string     `json:"flag_url" validate:"omitempty,url"`
	Languages    []Language `json:"languages" validate:"dive"`
	Name         string     `json:"name" validate:"required"`
	Population   int64      `json:"population" validate:"gte=0"`
	Subregion    string     `json:"subregion"`
	Timezones    []string   `json:"timezones"`
}

// Key returns the location key of the country's capital.
func (c Country) Key() Key {
	return Key{Capital: c.Capital, CountryCode: c.CountryCode}
}

// UniqueLanguages drops repeated languages while keeping first-seen order.
func UniqueLanguages(langs []Language) []Language {
	seen := make(map[Language]struct{}, len(langs))
	out := make([]Language, 0, len(langs))
	for _, l := range langs {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Weather is the current-conditions record for a capital.
type Weather struct {
	Temperature      float64 `json:"temperature"`
	Pressure         int     `json:"pressure" validate:"gte=0"`
	Humidity         int     `json:"humidity" validate:"gte=0,lte=100"`
	WindSpeed        float64 `json:"wind_speed" validate:"gte=0"`
	Description      string  `json:"description"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds" validate:"gte=-50400,lte=50400"`
}

// Zone returns a fixed time zone for the capital's UTC offset.
func (w Weather) Zone() *time.Location {
	return time.FixedZone(FormatOffset(w.UTCOffsetSeconds), w.UTCOffsetSeconds)
}

// FormatOffset renders an offset in seconds as "UTC+03:00".
func FormatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// NewsItem is a single headline. Upstream data quality varies, so every
// field may be empty.
type NewsItem struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Report is the joined view of one place. It is built on demand and never stored.
type Report struct {
	Location Country    `json:"location"`
	Weather  Weather    `json:"weather"`
	News     []NewsItem `json:"news,omitempty"`
}
