package gazeta

import (
	"context"
	"time"
)

// CacheEntry is a cached download keyed by URL.
type CacheEntry struct {
	URL         string    `json:"url"`
	Body        []byte    `json:"-"`
	ContentType string    `json:"contentType"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Cache stores downloaded responses between runs so repeated builds of
// the same source skip the network.
type Cache interface {
	// Get retrieves the entry for url.
	// Returns ENOTFOUND if no entry exists.
	Get(ctx context.Context, url string) (*CacheEntry, error)

	// Set stores an entry, replacing any previous one for the same URL.
	Set(ctx context.Context, entry *CacheEntry) error

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
