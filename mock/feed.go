package mock

import (
	"context"

	"github.com/newsfold/gazeta"
)

var _ gazeta.FeedReader = (*FeedReader)(nil)

// FeedReader is a mock implementation of gazeta.FeedReader.
type FeedReader struct {
	ItemsFn func(ctx context.Context, feedURL string) ([]gazeta.FeedItem, error)
}

func (r *FeedReader) Items(ctx context.Context, feedURL string) ([]gazeta.FeedItem, error) {
	return r.ItemsFn(ctx, feedURL)
}
