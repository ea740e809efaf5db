package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/location-report/internal/location"
)

type stubReader struct {
	report *location.Report
	news   []location.NewsItem
	err    error
}

func (s *stubReader) Find(name string) (*location.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	if name != s.report.Location.Capital {
		return nil, location.ErrNotFound
	}
	return s.report, nil
}

func (s *stubReader) GetWeather(key location.Key) (location.Weather, error) {
	if !key.Matches(s.report.Location.Key()) {
		return location.Weather{}, location.ErrNotFound
	}
	return s.report.Weather, nil
}

func (s *stubReader) GetNews(location.Key) ([]location.NewsItem, error) {
	return s.news, nil
}

func newApp(r Reader) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, r)
	return app
}

func london() *stubReader {
	return &stubReader{report: &location.Report{
		Location: location.Country{Capital: "London", CountryCode: "GB", Name: "United Kingdom"},
		Weather:  location.Weather{Temperature: 13.92, Humidity: 54},
	}}
}

func do(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestReportEndpoint(t *testing.T) {
	app := newApp(london())

	resp := do(t, app, "/api/v1/report?name=London")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var got location.Report
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Location.Name != "United Kingdom" || got.Weather.Humidity != 54 {
		t.Fatalf("unexpected report %+v", got)
	}

	if resp := do(t, app, "/api/v1/report?name=Atlantis"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	if resp := do(t, app, "/api/v1/report"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestReportEndpointInternalError(t *testing.T) {
	r := london()
	r.err = errors.New("disk on fire")

	if resp := do(t, newApp(r), "/api/v1/report?name=London"); resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
}

// TestLocationQueryValidation verifies capital and a two-letter country are required.
func TestLocationQueryValidation(t *testing.T) {
	app := newApp(london())

	for _, target := range []string{
		"/api/v1/weather?capital=London",
		"/api/v1/weather?capital=London&country=GBR",
		"/api/v1/news?country=GB",
	} {
		if resp := do(t, app, target); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestWeatherAndNewsEndpoints(t *testing.T) {
	app := newApp(london())

	if resp := do(t, app, "/api/v1/weather?capital=london&country=gb"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if resp := do(t, app, "/api/v1/weather?capital=Paris&country=FR"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp := do(t, app, "/api/v1/news?capital=London&country=GB")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var body struct {
		News []location.NewsItem `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.News == nil || len(body.News) != 0 {
		t.Fatalf("expected empty news list, got %v", body.News)
	}
}
