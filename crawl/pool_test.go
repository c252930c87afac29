package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/crawl"
	"github.com/newsfold/gazeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingFetcher serves every URL with the same page and reports how
// many fetches ran in total and how many overlapped.
func trackingFetcher() (*mock.Fetcher, func() (total, peak int)) {
	var (
		mu       sync.Mutex
		total    int
		inFlight int
		peak     int
	)

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*gazeta.Response, error) {
			mu.Lock()
			total++
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()

			return &gazeta.Response{
				URL:         url,
				FinalURL:    url,
				StatusCode:  200,
				Body:        []byte("<html><body><p>storm news</p></body></html>"),
				ContentType: "text/html; charset=utf-8",
			}, nil
		},
	}

	stats := func() (int, int) {
		mu.Lock()
		defer mu.Unlock()
		return total, peak
	}
	return fetcher, stats
}

// poolSource builds a source whose home page links to n dated articles.
func poolSource(t *testing.T, fetcher gazeta.Fetcher, host string, n int) *crawl.Source {
	t.Helper()

	links := make([]gazeta.Link, 0, n)
	for i := 0; i < n; i++ {
		links = append(links, gazeta.Link{
			URL: fmt.Sprintf("https://%s/2024/02/%02d/storm-report.html", host, i+1),
		})
	}

	config, err := gazeta.NewConfig()
	require.NoError(t, err)

	source := &crawl.Source{
		URL: "https://" + host,
		Client: &gazeta.Client{
			Config:  config,
			Fetcher: fetcher,
			Extractor: &mock.Extractor{
				ExtractFn: func(html, pageURL string) (*gazeta.Extraction, error) {
					return &gazeta.Extraction{Title: "Storm Update"}, nil
				},
			},
		},
		Links: &mock.LinkExtractor{
			LinksFn: func(html, baseURL string) ([]gazeta.Link, error) {
				return links, nil
			},
			FeedLinksFn: func(html, baseURL string) ([]gazeta.FeedRef, error) {
				return nil, nil
			},
		},
		FeedReader: &mock.FeedReader{
			ItemsFn: func(ctx context.Context, feedURL string) ([]gazeta.FeedItem, error) {
				return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no feed at %s", feedURL)
			},
		},
	}
	require.NoError(t, source.Build(context.Background()))
	require.Equal(t, n, source.Size())
	return source
}

func TestPool(t *testing.T) {
	t.Parallel()

	t.Run("processes every article with bounded concurrency", func(t *testing.T) {
		t.Parallel()

		fetcher, stats := trackingFetcher()
		source := poolSource(t, fetcher, "pool.example.com", 6)

		pool := crawl.NewPool()
		pool.Set(source, 2)
		pool.Run(context.Background())
		require.NoError(t, pool.Join())

		for _, article := range source.Articles() {
			assert.True(t, article.Downloaded(), article.URL)
			assert.Equal(t, gazeta.Parsed, article.ParseState(), article.URL)
			assert.Equal(t, "Storm Update", article.Title)
		}

		total, peak := stats()
		// One home fetch during the build plus one per article.
		assert.Equal(t, 7, total)
		assert.LessOrEqual(t, peak, 2)
	})

	t.Run("drains multiple sources concurrently", func(t *testing.T) {
		t.Parallel()

		fetcher, stats := trackingFetcher()
		first := poolSource(t, fetcher, "pool-a.example.com", 3)
		second := poolSource(t, fetcher, "pool-b.example.com", 3)

		pool := crawl.NewPool()
		pool.Set(first, 1)
		pool.Set(second, 1)
		pool.Run(context.Background())
		require.NoError(t, pool.Join())

		for _, article := range append(first.Articles(), second.Articles()...) {
			assert.True(t, article.Downloaded(), article.URL)
			assert.Equal(t, gazeta.Parsed, article.ParseState(), article.URL)
		}

		total, _ := stats()
		assert.Equal(t, 8, total)
	})

	t.Run("falls back to configured threads", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := trackingFetcher()
		source := poolSource(t, fetcher, "pool.example.com", 3)

		pool := crawl.NewPool()
		pool.Set(source, 0)
		pool.Run(context.Background())
		require.NoError(t, pool.Join())

		for _, article := range source.Articles() {
			assert.True(t, article.Downloaded(), article.URL)
		}
	})

	t.Run("join without run returns nil", func(t *testing.T) {
		t.Parallel()

		pool := crawl.NewPool()
		assert.NoError(t, pool.Join())
	})

	t.Run("canceled context stops processing", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := trackingFetcher()
		source := poolSource(t, fetcher, "pool.example.com", 4)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pool := crawl.NewPool()
		pool.Set(source, 2)
		pool.Run(ctx)
		require.NoError(t, pool.Join())

		for _, article := range source.Articles() {
			assert.Equal(t, gazeta.DownloadNotStarted, article.DownloadState(), article.URL)
		}
	})

	t.Run("paces workers through the domain limiter", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := trackingFetcher()
		source := poolSource(t, fetcher, "pool.example.com", 3)

		pool := crawl.NewPool(crawl.WithDomainLimiter(crawl.NewDomainLimiter(50)))
		pool.Set(source, 3)

		start := time.Now()
		pool.Run(context.Background())
		require.NoError(t, pool.Join())

		// Three articles on one domain at 50 rps take two 20ms waits.
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

		for _, article := range source.Articles() {
			assert.True(t, article.Downloaded(), article.URL)
		}
	})
}
