package http

import (
	"context"
	"time"

	"github.com/newsfold/gazeta"
)

// Ensure RetryFetcher implements gazeta.Fetcher at compile time.
var _ gazeta.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays applied between fetch
// attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher decorates a Fetcher with exponential backoff. Only
// transport errors are retried; a response with any status code,
// including 404 or 500, counts as an answer and is returned as is.
type RetryFetcher struct {
	fetcher gazeta.Fetcher
	delays  []time.Duration
}

// NewRetryFetcher wraps fetcher with one retry per delay. Nil delays
// mean DefaultRetryDelays.
func NewRetryFetcher(fetcher gazeta.Fetcher, delays []time.Duration) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{fetcher: fetcher, delays: delays}
}

// Fetch attempts the fetch up to len(delays)+1 times, sleeping between
// attempts. Cancelling the context ends the wait early.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*gazeta.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		resp, err := f.fetcher.Fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == len(f.delays) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
	return nil, lastErr
}
