package providers

import (
	"context"
	"errors"

	"github.com/i474232898/location-report/internal/location"
)

// NewsSource is a single headline provider.
type NewsSource interface {
	Name() string
	FetchNews(ctx context.Context, key location.Key) ([]location.NewsItem, error)
}

// NewsChain asks each source in turn and returns the first non-empty answer.
// It reports an error only when every source failed; a clean "nothing" from
// any source makes the overall result not-found.
type NewsChain struct {
	sources []NewsSource
}

func NewNewsChain(sources ...NewsSource) *NewsChain {
	return &NewsChain{sources: sources}
}

func (c *NewsChain) Name() string {
	return "news-chain"
}

func (c *NewsChain) FetchNews(ctx context.Context, key location.Key) ([]location.NewsItem, error) {
	var (
		errs     []error
		answered bool
	)
	for _, s := range c.sources {
		items, err := s.FetchNews(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
		answered = true
	}
	if answered || len(errs) == 0 {
		return nil, nil
	}
	return nil, errors.Join(errs...)
}
