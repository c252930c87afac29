package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/newsfold/gazeta/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("separate domains proceed independently", func(t *testing.T) {
		t.Parallel()

		// One request per 1000 seconds: a second request to the same
		// domain would block essentially forever.
		limiter := crawl.NewDomainLimiter(0.001)

		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "c.example.com"))
	})

	t.Run("same domain is paced", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(50)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		// 50 rps means the second request waits about 20ms.
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "slow.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "slow.example.com"))
	})
}
