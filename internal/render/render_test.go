package render

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/i474232898/location-report/internal/location"
)

func sampleReport() *location.Report {
	area := 242900.0
	return &location.Report{
		Location: location.Country{
			Area:        &area,
			Capital:     "London",
			Latitude:    54,
			Longitude:   -2,
			CountryCode: "GB",
			Languages:   []location.Language{{Name: "English", NativeName: "English"}},
			Name:        "United Kingdom",
			Population:  67215293,
			Subregion:   "Northern Europe",
		},
		Weather: location.Weather{Temperature: 13.92, Pressure: 1023, Humidity: 54, WindSpeed: 4.63, Description: "scattered clouds", UTCOffsetSeconds: 3600},
		News: []location.NewsItem{
			{Title: "First", URL: "https://example.com/1", Source: "BBC", PublishedAt: "2023-03-07T06:00:00Z"},
			{Title: "Second"},
			{Title: "Third"},
			{Title: "Fourth"},
		},
	}
}

func fixedRenderer(limit int) *Renderer {
	r := New(limit)
	r.Now = func() time.Time { return time.Date(2026, 10, 15, 11, 30, 0, 0, time.UTC) }
	return r
}

func TestRender(t *testing.T) {
	out := fixedRenderer(3).Render(sampleReport())

	for _, want := range []string{
		"Country:", "Capital:", "Weather:", "News:",
		"United Kingdom",
		"67.215.293 people",
		"English (English)",
		"UTC+01:00",
		"12:30 (15.10.2026)",
		"54°, -2°",
		"13.92 °C",
		"scattered clouds",
		"First",
		"Third",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fourth") {
		t.Error("news beyond the limit should not be rendered")
	}
}

func TestRenderNotFound(t *testing.T) {
	out := fixedRenderer(3).Render(nil)
	assert.Equal(t, true, strings.Contains(out, NotFoundMessage))
}

func TestRenderWithoutNews(t *testing.T) {
	report := sampleReport()
	report.News = nil
	report.Location.Area = nil

	out := fixedRenderer(3).Render(report)
	assert.Equal(t, true, strings.Contains(out, "News:"))
	assert.Equal(t, true, strings.Contains(out, "n/a"))
}

func TestFormatPopulation(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1.000",
		28875:      "28.875",
		67215293:   "67.215.293",
		1402112000: "1.402.112.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPopulation(in))
	}
}
