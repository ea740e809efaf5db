package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/i474232898/location-report/internal/location"
)

const googleNewsSource = "Google News"

// GoogleNewsProvider reads the per-country top stories RSS feed. It needs no
// API key and covers countries NewsAPI does not.
type GoogleNewsProvider struct {
	baseURL string
	parser  *gofeed.Parser
}

func NewGoogleNewsProvider(client *http.Client, baseURL string) *GoogleNewsProvider {
	parser := gofeed.NewParser()
	parser.Client = client
	return &GoogleNewsProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		parser:  parser,
	}
}

func (p *GoogleNewsProvider) Name() string {
	return "googlenews"
}

func (p *GoogleNewsProvider) feedURL(countryCode string) string {
	cc := strings.ToUpper(countryCode)
	values := url.Values{}
	values.Set("hl", "en-"+cc)
	values.Set("gl", cc)
	values.Set("ceid", cc+":en")
	return fmt.Sprintf("%s/rss?%s", p.baseURL, values.Encode())
}

// FetchNews returns the feed items for the country in key, newest first as
// published by the feed.
func (p *GoogleNewsProvider) FetchNews(ctx context.Context, key location.Key) ([]location.NewsItem, error) {
	feed, err := p.parser.ParseURLWithContext(p.feedURL(key.CountryCode), ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("googlenews fetch %s: %w", key, err)
	}
	if len(feed.Items) == 0 {
		return nil, nil
	}

	n := min(len(feed.Items), maxHeadlines)
	items := make([]location.NewsItem, 0, n)
	for _, it := range feed.Items[:n] {
		item := location.NewsItem{
			Title:  it.Title,
			URL:    it.Link,
			Source: googleNewsSource,
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed.UTC().Format(time.RFC3339)
		} else {
			item.PublishedAt = it.Published
		}
		items = append(items, item)
	}
	return items, nil
}
