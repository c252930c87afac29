package crawl_test

import (
	"context"
	"testing"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/bloom"
	"github.com/newsfold/gazeta/crawl"
	"github.com/newsfold/gazeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSource wires a Source against a small fake news site.
//
// daily.example.com serves a home page, a /world section and a sibling
// sports.example.com subdomain; /sports is advertised but returns 404.
// A feed lives at the common /feed location and another is advertised
// on the home page. One article URL appears both in a feed and on the
// home page to exercise deduplication.
func fixtureSource(t *testing.T, seen *bloom.SeenSet, opts ...gazeta.ConfigOption) *crawl.Source {
	t.Helper()

	pages := map[string]string{
		"https://daily.example.com":       "<html>home</html>",
		"https://daily.example.com/world": "<html>world</html>",
		"https://sports.example.com":      "<html>sports site</html>",
	}

	linksByPage := map[string][]gazeta.Link{
		"https://daily.example.com": {
			{URL: "https://daily.example.com/world", Text: "World"},
			{URL: "https://daily.example.com/sports", Text: "Sports"},
			{URL: "https://sports.example.com", Text: "Sports site"},
			{URL: "https://daily.example.com/about", Text: "About"},
			{URL: "https://m.example.com", Text: "Mobile"},
			{URL: "https://daily.example.com/2024/01/15/storm-hits-coast.html", Text: "Storm hits coast"},
			{URL: "https://other-site.com/world", Text: "Elsewhere"},
		},
		"https://daily.example.com/world": {
			{URL: "https://daily.example.com/2024/01/16/flood-waters-rise.html", Text: "Flood waters rise"},
			{URL: "https://daily.example.com/world", Text: "World"},
		},
		"https://sports.example.com": {
			{URL: "https://sports.example.com/2024/01/17/big-game-recap.html", Text: "Big game recap"},
		},
	}

	feedRefsByPage := map[string][]gazeta.FeedRef{
		"https://daily.example.com": {
			{URL: "https://daily.example.com/rss/news.xml", Title: "Daily Example News"},
		},
	}

	feedItems := map[string][]gazeta.FeedItem{
		"https://daily.example.com/feed": {
			{Title: "Feed Only Story", URL: "https://daily.example.com/2024/01/18/feed-only-story.html"},
		},
		"https://daily.example.com/rss/news.xml": {
			{Title: "Storm Hits Coast", URL: "https://daily.example.com/2024/01/15/storm-hits-coast.html"},
		},
	}

	config, err := gazeta.NewConfig(opts...)
	require.NoError(t, err)

	return &crawl.Source{
		URL:  "https://daily.example.com",
		Seen: seen,
		Client: &gazeta.Client{
			Config: config,
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (*gazeta.Response, error) {
					html, ok := pages[url]
					if !ok {
						return &gazeta.Response{URL: url, FinalURL: url, StatusCode: 404, ContentType: "text/html"}, nil
					}
					return &gazeta.Response{
						URL:         url,
						FinalURL:    url,
						StatusCode:  200,
						Body:        []byte(html),
						ContentType: "text/html; charset=utf-8",
					}, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html, pageURL string) (*gazeta.Extraction, error) {
					return &gazeta.Extraction{MetaDescription: "Regional news from the Daily Example."}, nil
				},
			},
		},
		Links: &mock.LinkExtractor{
			LinksFn: func(html, baseURL string) ([]gazeta.Link, error) {
				return linksByPage[baseURL], nil
			},
			FeedLinksFn: func(html, baseURL string) ([]gazeta.FeedRef, error) {
				return feedRefsByPage[baseURL], nil
			},
		},
		FeedReader: &mock.FeedReader{
			ItemsFn: func(ctx context.Context, feedURL string) ([]gazeta.FeedItem, error) {
				items, ok := feedItems[feedURL]
				if !ok {
					return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no feed at %s", feedURL)
				}
				return items, nil
			},
		},
	}
}

func articleURLs(source *crawl.Source) []string {
	urls := make([]string, 0, source.Size())
	for _, article := range source.Articles() {
		urls = append(urls, article.URL)
	}
	return urls
}

func TestSource_Build(t *testing.T) {
	t.Parallel()

	t.Run("discovers categories feeds and articles", func(t *testing.T) {
		t.Parallel()

		source := fixtureSource(t, nil)
		require.NoError(t, source.Build(context.Background()))

		assert.Equal(t, "daily.example.com", source.Domain)
		assert.Equal(t, "example", source.Brand)
		assert.Equal(t, "Regional news from the Daily Example.", source.Description)

		assert.Equal(t, []string{
			"https://daily.example.com",
			"https://daily.example.com/sports",
			"https://daily.example.com/world",
			"https://sports.example.com",
		}, source.Categories)

		assert.Equal(t, []string{
			"https://daily.example.com/feed",
			"https://daily.example.com/rss/news.xml",
		}, source.Feeds)

		assert.Equal(t, []string{
			"https://daily.example.com/2024/01/15/storm-hits-coast.html",
			"https://daily.example.com/2024/01/16/flood-waters-rise.html",
			"https://daily.example.com/2024/01/18/feed-only-story.html",
			"https://sports.example.com/2024/01/17/big-game-recap.html",
		}, articleURLs(source))
		assert.Equal(t, 4, source.Size())
	})

	t.Run("normalizes the source url", func(t *testing.T) {
		t.Parallel()

		source := fixtureSource(t, nil)
		source.URL = "HTTPS://DAILY.EXAMPLE.COM?ref=twitter"
		require.NoError(t, source.Build(context.Background()))

		assert.Equal(t, "https://daily.example.com", source.URL)
		assert.Equal(t, "daily.example.com", source.Domain)
	})

	t.Run("requires collaborators", func(t *testing.T) {
		t.Parallel()

		source := &crawl.Source{URL: "https://daily.example.com"}

		err := source.Build(context.Background())
		require.Error(t, err)
		assert.Equal(t, gazeta.EINVALID, gazeta.ErrorCode(err))
	})

	t.Run("fails when the home page is unreachable", func(t *testing.T) {
		t.Parallel()

		source := fixtureSource(t, nil)
		source.URL = "https://gone.example.com"

		err := source.Build(context.Background())
		require.Error(t, err)
		assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
	})

	t.Run("memoizes articles across builds", func(t *testing.T) {
		t.Parallel()

		seen := bloom.NewSeenSet(1000, 0.01)

		source := fixtureSource(t, seen)
		require.NoError(t, source.Build(context.Background()))
		require.Equal(t, 4, source.Size())

		require.NoError(t, source.Build(context.Background()))
		assert.Equal(t, 0, source.Size())
	})

	t.Run("seen set is ignored when memoization is off", func(t *testing.T) {
		t.Parallel()

		seen := bloom.NewSeenSet(1000, 0.01)

		source := fixtureSource(t, seen, gazeta.WithMemoizeArticles(false))
		require.NoError(t, source.Build(context.Background()))
		require.Equal(t, 4, source.Size())

		require.NoError(t, source.Build(context.Background()))
		assert.Equal(t, 4, source.Size())
	})

	t.Run("rebuild discovers the same categories", func(t *testing.T) {
		t.Parallel()

		source := fixtureSource(t, nil)
		require.NoError(t, source.Build(context.Background()))
		categories := source.Categories
		feeds := source.Feeds

		require.NoError(t, source.Build(context.Background()))
		assert.Equal(t, categories, source.Categories)
		assert.Equal(t, feeds, source.Feeds)
	})

	t.Run("caps generated articles", func(t *testing.T) {
		t.Parallel()

		source := fixtureSource(t, nil)
		source.MaxArticles = 2
		require.NoError(t, source.Build(context.Background()))

		assert.Equal(t, []string{
			"https://daily.example.com/2024/01/15/storm-hits-coast.html",
			"https://daily.example.com/2024/01/16/flood-waters-rise.html",
		}, articleURLs(source))
	})
}
