// Package mock provides function-field mock implementations of the
// gazeta interfaces for use in tests.
package mock

import (
	"context"

	"github.com/newsfold/gazeta"
)

var _ gazeta.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gazeta.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*gazeta.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*gazeta.Response, error) {
	return f.FetchFn(ctx, url)
}
