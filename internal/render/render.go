// Package render formats a location report as text tables.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/i474232898/location-report/internal/location"
)

const (
	labelWidth = 30
	valueWidth = 70
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Width(labelWidth).Padding(0, 1)
	valueStyle   = lipgloss.NewStyle().Width(valueWidth).Padding(0, 1)
	missingStyle = lipgloss.NewStyle().Italic(true)
)

// NotFoundMessage is printed when a name does not resolve to a place.
const NotFoundMessage = "Location not found."

// Renderer turns a report into the four-section text output.
type Renderer struct {
	// NewsLimit caps how many headlines are shown. Zero shows all.
	NewsLimit int
	// Now is the clock used for the capital's local time.
	Now func() time.Time
}

func New(newsLimit int) *Renderer {
	return &Renderer{NewsLimit: newsLimit, Now: time.Now}
}

// Render returns the report text. A nil report renders NotFoundMessage.
func (r *Renderer) Render(report *location.Report) string {
	if report == nil {
		return missingStyle.Render(NotFoundMessage) + "\n"
	}

	var b strings.Builder
	section(&b, "Country", r.countryRows(report.Location))
	section(&b, "Capital", r.capitalRows(report))
	section(&b, "Weather", weatherRows(report.Weather))
	section(&b, "News", r.newsRows(report.News))
	return b.String()
}

func section(b *strings.Builder, title string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Field", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return valueStyle
			}
		})

	b.WriteString(sectionStyle.Render(title + ":"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
}

func (r *Renderer) countryRows(c location.Country) [][]string {
	area := "n/a"
	if c.Area != nil {
		area = strconv.FormatFloat(*c.Area, 'f', -1, 64) + " km²"
	}
	return [][]string{
		{"Country", c.Name},
		{"Area", area},
		{"Subregion", c.Subregion},
		{"Languages", FormatLanguages(c.Languages)},
		{"Population", FormatPopulation(c.Population) + " people"},
	}
}

func (r *Renderer) capitalRows(report *location.Report) [][]string {
	c, w := report.Location, report.Weather
	now := r.Now().In(w.Zone())
	return [][]string{
		{"Capital", c.Capital},
		{"Coordinates", fmt.Sprintf("%s°, %s°", formatCoord(c.Latitude), formatCoord(c.Longitude))},
		{"Time zone", location.FormatOffset(w.UTCOffsetSeconds)},
		{"Local time", now.Format("15:04 (02.01.2006)")},
	}
}

func weatherRows(w location.Weather) [][]string {
	return [][]string{
		{"Temperature", fmt.Sprintf("%s °C", formatCoord(w.Temperature))},
		{"Description", w.Description},
		{"Humidity", fmt.Sprintf("%d %%", w.Humidity)},
		{"Pressure", fmt.Sprintf("%d hPa", w.Pressure)},
		{"Wind speed", fmt.Sprintf("%s m/s", formatCoord(w.WindSpeed))},
	}
}

func (r *Renderer) newsRows(items []location.NewsItem) [][]string {
	if r.NewsLimit > 0 && len(items) > r.NewsLimit {
		items = items[:r.NewsLimit]
	}
	rows := make([][]string, 0, len(items)*4)
	for _, n := range items {
		rows = append(rows,
			[]string{"Title", orDash(n.Title)},
			[]string{"Link", orDash(n.URL)},
			[]string{"Source", orDash(n.Source)},
			[]string{"Published", orDash(n.PublishedAt)},
		)
	}
	return rows
}

// FormatLanguages renders languages as "English (English), Welsh (Cymraeg)".
func FormatLanguages(langs []location.Language) string {
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		if l.NativeName == "" {
			parts = append(parts, l.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", l.Name, l.NativeName))
	}
	return strings.Join(parts, ", ")
}

// FormatPopulation groups digits with dots: 67215293 -> "67.215.293".
func FormatPopulation(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
