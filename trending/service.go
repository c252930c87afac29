// Package trending looks up what the world is reading: hot search
// terms from the Google Trends feed and a curated list of popular news
// sites. Lookups go through an explicit Service with an injected feed
// reader, so transports and fixtures swap cleanly.
package trending

import (
	"context"
	"net/url"

	"github.com/newsfold/gazeta"
)

// DefaultFeedURL is the Google Trends RSS endpoint.
const DefaultFeedURL = "https://trends.google.com/trending/rss"

// DefaultGeo scopes the trends feed when no region is configured.
const DefaultGeo = "US"

// popularSources are well-known news domains, the built-in answer to
// "give me sites worth crawling".
var popularSources = []string{
	"abcnews.go.com",
	"aljazeera.com",
	"apnews.com",
	"arstechnica.com",
	"axios.com",
	"bbc.co.uk",
	"bloomberg.com",
	"cbsnews.com",
	"cnbc.com",
	"cnn.com",
	"economist.com",
	"engadget.com",
	"foxnews.com",
	"ft.com",
	"latimes.com",
	"nbcnews.com",
	"newyorker.com",
	"npr.org",
	"nytimes.com",
	"politico.com",
	"reuters.com",
	"techcrunch.com",
	"theatlantic.com",
	"theguardian.com",
	"theverge.com",
	"time.com",
	"usatoday.com",
	"washingtonpost.com",
	"wired.com",
	"wsj.com",
}

// Service answers trending-topic and popular-source lookups.
type Service struct {
	feeds   gazeta.FeedReader
	feedURL string
	geo     string
}

// Option configures a Service.
type Option func(*Service)

// WithFeedURL overrides the trends feed endpoint.
func WithFeedURL(feedURL string) Option {
	return func(s *Service) {
		s.feedURL = feedURL
	}
}

// WithGeo sets the region the trends feed is scoped to, "US" by
// default. Empty disables the geo parameter.
func WithGeo(geo string) Option {
	return func(s *Service) {
		s.geo = geo
	}
}

// NewService creates a Service reading trends through feeds.
func NewService(feeds gazeta.FeedReader, opts ...Option) (*Service, error) {
	if feeds == nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "trending service needs a feed reader")
	}
	s := &Service{
		feeds:   feeds,
		feedURL: DefaultFeedURL,
		geo:     DefaultGeo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hot returns the currently trending search terms, hottest first.
func (s *Service) Hot(ctx context.Context) ([]string, error) {
	items, err := s.feeds.Items(ctx, s.trendsURL())
	if err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		terms = append(terms, item.Title)
	}
	return terms, nil
}

// PopularURLs returns the curated list of popular news source URLs,
// alphabetical by domain. The slice is the caller's to keep.
func (s *Service) PopularURLs() []string {
	urls := make([]string, len(popularSources))
	for i, host := range popularSources {
		urls[i] = "https://" + host
	}
	return urls
}

func (s *Service) trendsURL() string {
	if s.geo == "" {
		return s.feedURL
	}
	return s.feedURL + "?geo=" + url.QueryEscape(s.geo)
}
