package mock

import "github.com/newsfold/gazeta"

var _ gazeta.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of gazeta.LinkExtractor.
type LinkExtractor struct {
	LinksFn     func(html, baseURL string) ([]gazeta.Link, error)
	FeedLinksFn func(html, baseURL string) ([]gazeta.FeedRef, error)
}

func (l *LinkExtractor) Links(html, baseURL string) ([]gazeta.Link, error) {
	return l.LinksFn(html, baseURL)
}

func (l *LinkExtractor) FeedLinks(html, baseURL string) ([]gazeta.FeedRef, error) {
	return l.FeedLinksFn(html, baseURL)
}
