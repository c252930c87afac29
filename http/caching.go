package http

import (
	"context"
	"net/http"
	"time"

	"github.com/newsfold/gazeta"
)

// Ensure CachingFetcher implements gazeta.Fetcher at compile time.
var _ gazeta.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher decorates a Fetcher with a response cache: reads check
// the cache first, and successful responses are written back after the
// fetch. Cached entries replay as 200 responses.
type CachingFetcher struct {
	fetcher gazeta.Fetcher
	cache   gazeta.Cache
	now     func() time.Time
}

// NewCachingFetcher wraps fetcher with cache.
func NewCachingFetcher(fetcher gazeta.Fetcher, cache gazeta.Cache) *CachingFetcher {
	return &CachingFetcher{
		fetcher: fetcher,
		cache:   cache,
		now:     time.Now,
	}
}

// Fetch returns the cached response for url when one exists, fetching
// and caching otherwise. Only 2xx responses are written back; a failed
// cache write never fails the fetch.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*gazeta.Response, error) {
	// Any cache read failure counts as a miss; the network is the
	// fallback either way.
	if entry, err := f.cache.Get(ctx, url); err == nil {
		return &gazeta.Response{
			URL:         url,
			FinalURL:    url,
			StatusCode:  http.StatusOK,
			Body:        entry.Body,
			ContentType: entry.ContentType,
		}, nil
	}

	resp, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.Success() {
		_ = f.cache.Set(ctx, &gazeta.CacheEntry{
			URL:         url,
			Body:        resp.Body,
			ContentType: resp.ContentType,
			FetchedAt:   f.now().UTC(),
		})
	}
	return resp, nil
}
