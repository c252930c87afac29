package gazeta

import "context"

// FeedItem is one entry of a syndication feed.
type FeedItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FeedReader fetches and parses syndication feeds.
type FeedReader interface {
	// Items returns the entries of the feed at feedURL in feed order.
	// Returns ENOTFOUND if the URL does not serve a recognizable feed.
	Items(ctx context.Context, feedURL string) ([]FeedItem, error)
}
