// Package zerolog provides logging decorators for the pipeline
// collaborators. Each decorator wraps an implementation and reports
// operations on an injected logger, so call sites opt into logging by
// composition.
package zerolog

import (
	"context"
	"time"

	"github.com/newsfold/gazeta"
	"github.com/rs/zerolog"
)

// Ensure LoggingFetcher implements gazeta.Fetcher at compile time.
var _ gazeta.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   gazeta.Fetcher
	logger zerolog.Logger
}

// NewLoggingFetcher creates a LoggingFetcher.
func NewLoggingFetcher(next gazeta.Fetcher, logger zerolog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *gazeta.Response, err error) {
	defer func(begin time.Time) {
		event := f.logger.Info().
			Str("url", url).
			Dur("duration", time.Since(begin))
		if resp != nil {
			event = event.Int("status", resp.StatusCode).Int("bytes", len(resp.Body))
		}
		event.Err(err).Msg("fetch")
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
