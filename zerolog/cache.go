package zerolog

import (
	"context"
	"time"

	"github.com/newsfold/gazeta"
	"github.com/rs/zerolog"
)

// Ensure LoggingCache implements gazeta.Cache at compile time.
var _ gazeta.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with hit and miss logging. Cache traffic
// runs twice per memoized fetch, so it logs at debug level.
type LoggingCache struct {
	next   gazeta.Cache
	logger zerolog.Logger
}

// NewLoggingCache creates a LoggingCache.
func NewLoggingCache(next gazeta.Cache, logger zerolog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs whether it hit.
func (c *LoggingCache) Get(ctx context.Context, url string) (entry *gazeta.CacheEntry, err error) {
	defer func(begin time.Time) {
		c.logger.Debug().
			Str("url", url).
			Bool("hit", err == nil).
			Dur("duration", time.Since(begin)).
			Msg("cache get")
	}(time.Now())
	return c.next.Get(ctx, url)
}

// Set delegates to the wrapped cache and logs the write.
func (c *LoggingCache) Set(ctx context.Context, entry *gazeta.CacheEntry) (err error) {
	defer func(begin time.Time) {
		event := c.logger.Debug().Dur("duration", time.Since(begin))
		if entry != nil {
			event = event.Str("url", entry.URL).Int("bytes", len(entry.Body))
		}
		event.Err(err).Msg("cache set")
	}(time.Now())
	return c.next.Set(ctx, entry)
}

// Clear delegates to the wrapped cache and logs the sweep.
func (c *LoggingCache) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug().
			Dur("duration", time.Since(begin)).
			Err(err).
			Msg("cache clear")
	}(time.Now())
	return c.next.Clear(ctx)
}
