package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/location-report/internal/location"
)

// maxHeadlines caps how many items a news source returns for one country.
const maxHeadlines = 20

// NewsAPIProvider reads top headlines per country from newsapi.org.
type NewsAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNewsAPIProvider(client *http.Client, baseURL, apiKey string) *NewsAPIProvider {
	return &NewsAPIProvider{
		name:    "newsapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: DefaultBackoff},
		circuit: newBreaker("newsapi"),
	}
}

func (p *NewsAPIProvider) Name() string {
	return p.name
}

// FetchNews returns headlines for the country in key, or nil when there are none.
func (p *NewsAPIProvider) FetchNews(ctx context.Context, key location.Key) ([]location.NewsItem, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("newsapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("country", strings.ToLower(key.CountryCode))
		values.Set("pageSize", strconv.Itoa(maxHeadlines))
		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/top-headlines?%s", p.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Api-Key", p.apiKey)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s fetch %s: %w", p.name, key, err)
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s decode %s: %w", p.name, key, err)
	}
	if raw.Status != "" && raw.Status != "ok" {
		return nil, fmt.Errorf("%s %s: %s", p.name, raw.Code, raw.Message)
	}
	if len(raw.Articles) == 0 {
		return nil, nil
	}

	items := make([]location.NewsItem, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		items = append(items, location.NewsItem{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return items, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
