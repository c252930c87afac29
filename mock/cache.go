package mock

import (
	"context"

	"github.com/newsfold/gazeta"
)

var _ gazeta.Cache = (*Cache)(nil)

// Cache is a mock implementation of gazeta.Cache.
type Cache struct {
	GetFn   func(ctx context.Context, url string) (*gazeta.CacheEntry, error)
	SetFn   func(ctx context.Context, entry *gazeta.CacheEntry) error
	ClearFn func(ctx context.Context) error
}

func (c *Cache) Get(ctx context.Context, url string) (*gazeta.CacheEntry, error) {
	return c.GetFn(ctx, url)
}

func (c *Cache) Set(ctx context.Context, entry *gazeta.CacheEntry) error {
	return c.SetFn(ctx, entry)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.ClearFn(ctx)
}
