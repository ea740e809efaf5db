package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/location-report/internal/location"
)

// OpenWeatherProvider reads current conditions from OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: DefaultBackoff},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchWeather returns current conditions for the capital in key, or nil
// when the provider does not know the city.
func (p *OpenWeatherProvider) FetchWeather(ctx context.Context, key location.Key) (*location.Weather, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", fmt.Sprintf("%s,%s", key.Capital, strings.ToLower(key.CountryCode)))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/weather?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s fetch %s: %w", p.name, key, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Timezone int `json:"timezone"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s decode %s: %w", p.name, key, err)
	}

	w := &location.Weather{
		Temperature:      payload.Main.Temp,
		Pressure:         int(math.Round(payload.Main.Pressure)),
		Humidity:         int(math.Round(payload.Main.Humidity)),
		WindSpeed:        payload.Wind.Speed,
		UTCOffsetSeconds: payload.Timezone,
	}
	if len(payload.Weather) > 0 {
		w.Description = payload.Weather[0].Description
	}
	return w, nil
}
