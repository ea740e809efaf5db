package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/location-report/internal/location"
)

// countryFields limits the payload to what Country needs.
const countryFields = "name,capital,alpha2Code,altSpellings,subregion,population,latlng,area,timezones,flag,languages"

// CountriesProvider reads the country directory from a REST Countries v2 compatible API.
type CountriesProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewCountriesProvider(client *http.Client, baseURL string) *CountriesProvider {
	return &CountriesProvider{
		name:    "restcountries",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: DefaultBackoff},
		circuit: newBreaker("restcountries"),
	}
}

func (p *CountriesProvider) Name() string {
	return p.name
}

type countryPayload struct {
	Name         string    `json:"name"`
	Capital      string    `json:"capital"`
	Alpha2Code   string    `json:"alpha2Code"`
	AltSpellings []string  `json:"altSpellings"`
	Subregion    string    `json:"subregion"`
	Population   int64     `json:"population"`
	LatLng       []float64 `json:"latlng"`
	Area         *float64  `json:"area"`
	Timezones    []string  `json:"timezones"`
	Flag         string    `json:"flag"`
	Languages    []struct {
		Name       string `json:"name"`
		NativeName string `json:"nativeName"`
	} `json:"languages"`
}

func (c countryPayload) toCountry() location.Country {
	out := location.Country{
		Area:         c.Area,
		Capital:      c.Capital,
		CountryCode:  c.Alpha2Code,
		AltSpellings: c.AltSpellings,
		FlagURL:      c.Flag,
		Name:         c.Name,
		Population:   c.Population,
		Subregion:    c.Subregion,
		Timezones:    c.Timezones,
	}
	if len(c.LatLng) == 2 {
		out.Latitude, out.Longitude = c.LatLng[0], c.LatLng[1]
	}
	langs := make([]location.Language, 0, len(c.Languages))
	for _, l := range c.Languages {
		langs = append(langs, location.Language{Name: l.Name, NativeName: l.NativeName})
	}
	out.Languages = location.UniqueLanguages(langs)
	return out
}

// FetchAll returns the whole country list in provider order. Records are not
// validated here.
func (p *CountriesProvider) FetchAll(ctx context.Context) ([]location.Country, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("fields", countryFields)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/all?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s fetch: %w", p.name, err)
	}
	defer resp.Body.Close()

	var payload []countryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s decode: %w", p.name, err)
	}

	countries := make([]location.Country, 0, len(payload))
	for _, c := range payload {
		countries = append(countries, c.toCountry())
	}
	return countries, nil
}
