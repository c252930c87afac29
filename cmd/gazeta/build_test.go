package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/newsfold/gazeta"
	main "github.com/newsfold/gazeta/cmd/gazeta"
	"github.com/newsfold/gazeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHomeURL  = "https://daily.example.com"
	testWorldURL = "https://daily.example.com/world"
	testFeedURL  = "https://daily.example.com/feed"
	testStormURL = "https://daily.example.com/2024/01/15/storm-hits-coast.html"
	testGameURL  = "https://daily.example.com/2024/01/16/game-recap.html"
)

// siteFetcher serves the mock site: section pages succeed, everything
// else fails with a transport error.
func siteFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*gazeta.Response, error) {
			body, ok := pages[url]
			if !ok {
				return nil, gazeta.Errorf(gazeta.EINTERNAL, "connection refused: %s", url)
			}
			return &gazeta.Response{URL: url, StatusCode: 200, Body: []byte(body)}, nil
		},
	}
}

// siteLinks returns the anchors for each mock page keyed by page URL.
func siteLinks(anchors map[string][]gazeta.Link) *mock.LinkExtractor {
	return &mock.LinkExtractor{
		LinksFn: func(_, baseURL string) ([]gazeta.Link, error) {
			return anchors[baseURL], nil
		},
		FeedLinksFn: func(_, _ string) ([]gazeta.FeedRef, error) {
			return nil, nil
		},
	}
}

// siteFeeds serves feed items for the given feed URL and rejects every
// other candidate.
func siteFeeds(feedURL string, items []gazeta.FeedItem) *mock.FeedReader {
	return &mock.FeedReader{
		ItemsFn: func(_ context.Context, candidate string) ([]gazeta.FeedItem, error) {
			if candidate == feedURL {
				return items, nil
			}
			return nil, gazeta.Errorf(gazeta.ENOTFOUND, "feed %s: not a feed", candidate)
		},
	}
}

func TestBuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds and saves the discovered source", func(t *testing.T) {
		t.Parallel()

		cfg, err := gazeta.NewConfig()
		require.NoError(t, err)

		client := &gazeta.Client{
			Config:  cfg,
			Fetcher: siteFetcher(map[string]string{testHomeURL: "<html>home</html>", testWorldURL: "<html>world</html>"}),
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*gazeta.Extraction, error) {
					return &gazeta.Extraction{MetaDescription: "Daily coverage from the coast"}, nil
				},
			},
		}

		var saved *gazeta.SourceRecord
		sources := &mock.SourceStore{
			SaveSourceFn: func(_ context.Context, rec *gazeta.SourceRecord) error {
				saved = rec
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Client: client,
			Links: siteLinks(map[string][]gazeta.Link{
				testHomeURL:  {{URL: testWorldURL}, {URL: testStormURL}},
				testWorldURL: {{URL: testGameURL}},
			}),
			Feeds:   siteFeeds(testFeedURL, []gazeta.FeedItem{{Title: "Storm Hits Coast", URL: testStormURL}}),
			Sources: sources,
		}

		cmd := &main.BuildCmd{URL: testHomeURL}

		err = cmd.Run(deps)

		require.NoError(t, err)

		require.NotNil(t, saved)
		assert.Equal(t, testHomeURL, saved.URL)
		assert.Equal(t, "daily.example.com", saved.Domain)
		assert.Equal(t, "example", saved.Brand)
		assert.Equal(t, "Daily coverage from the coast", saved.Description)
		assert.Equal(t, []string{testHomeURL, testWorldURL}, saved.Categories)
		assert.Equal(t, []string{testFeedURL}, saved.Feeds)

		output := stdout.String()
		assert.Contains(t, output, "Built https://daily.example.com")
		assert.Contains(t, output, "articles:    2")
		assert.Empty(t, stderr.String())
	})

	t.Run("returns the build error when the home page is unreachable", func(t *testing.T) {
		t.Parallel()

		cfg, err := gazeta.NewConfig()
		require.NoError(t, err)

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Client: &gazeta.Client{Config: cfg, Fetcher: siteFetcher(nil)},
			Links:  siteLinks(nil),
			Feeds:  siteFeeds("", nil),
		}

		cmd := &main.BuildCmd{URL: testHomeURL}

		err = cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns the save error", func(t *testing.T) {
		t.Parallel()

		cfg, err := gazeta.NewConfig()
		require.NoError(t, err)

		saveErr := gazeta.Errorf(gazeta.EINTERNAL, "disk full")
		sources := &mock.SourceStore{
			SaveSourceFn: func(_ context.Context, _ *gazeta.SourceRecord) error {
				return saveErr
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Client: &gazeta.Client{
				Config:  cfg,
				Fetcher: siteFetcher(map[string]string{testHomeURL: "<html>home</html>"}),
				Extractor: &mock.Extractor{
					ExtractFn: func(_, _ string) (*gazeta.Extraction, error) {
						return &gazeta.Extraction{}, nil
					},
				},
			},
			Links:   siteLinks(nil),
			Feeds:   siteFeeds("", nil),
			Sources: sources,
		}

		cmd := &main.BuildCmd{URL: testHomeURL}

		err = cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, saveErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
