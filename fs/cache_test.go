package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(url, body string, fetchedAt time.Time) *gazeta.CacheEntry {
	return &gazeta.CacheEntry{
		URL:         url,
		Body:        []byte(body),
		ContentType: "text/html; charset=utf-8",
		FetchedAt:   fetchedAt,
	}
}

// cacheFiles counts the metadata files currently on disk.
func cacheFiles(t *testing.T, dir string) int {
	t.Helper()
	metas, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	return len(metas)
}

func TestCache_RoundTrip(t *testing.T) {
	t.Parallel()

	cache, err := fs.NewCache(t.TempDir())
	require.NoError(t, err)

	fetchedAt := time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC)
	in := entry("https://example.com/a", "<html>hello</html>", fetchedAt)
	require.NoError(t, cache.Set(context.Background(), in))

	got, err := cache.Get(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.URL)
	assert.Equal(t, "<html>hello</html>", string(got.Body))
	assert.Equal(t, "text/html; charset=utf-8", got.ContentType)
	assert.True(t, fetchedAt.Equal(got.FetchedAt))
}

func TestCache_MissingEntry(t *testing.T) {
	t.Parallel()

	cache, err := fs.NewCache(t.TempDir())
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "https://example.com/nope")
	assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
}

func TestCache_OverwriteReplacesEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := fs.NewCache(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, entry("https://example.com/a", "old", time.Now().UTC())))
	require.NoError(t, cache.Set(ctx, entry("https://example.com/a", "new", time.Now().UTC())))

	got, err := cache.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got.Body))
	assert.Equal(t, 1, cacheFiles(t, dir), "same URL should reuse its files")
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	first, err := fs.NewCache(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, entry("https://example.com/a", "kept", time.Now().UTC())))

	second, err := fs.NewCache(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got.Body))
}

func TestCache_PruneEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := fs.NewCache(dir, fs.WithMaxEntries(2))
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Set(ctx, entry("https://example.com/oldest", "1", base)))
	require.NoError(t, cache.Set(ctx, entry("https://example.com/middle", "2", base.Add(time.Hour))))
	require.NoError(t, cache.Set(ctx, entry("https://example.com/newest", "3", base.Add(2*time.Hour))))

	_, err = cache.Get(ctx, "https://example.com/oldest")
	assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err), "oldest entry should be evicted")

	for _, url := range []string{"https://example.com/middle", "https://example.com/newest"} {
		_, err := cache.Get(ctx, url)
		assert.NoError(t, err, url)
	}
	assert.Equal(t, 2, cacheFiles(t, dir))
}

func TestCache_ClearRemovesEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := fs.NewCache(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, entry("https://example.com/a", "1", time.Now().UTC())))
	require.NoError(t, cache.Set(ctx, entry("https://example.com/b", "2", time.Now().UTC())))

	// Unrelated files in the cache directory survive a clear.
	stray := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(stray, []byte("not a cache file"), 0644))

	require.NoError(t, cache.Clear(ctx))

	_, err = cache.Get(ctx, "https://example.com/a")
	assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
	assert.Equal(t, 0, cacheFiles(t, dir))
	_, err = os.Stat(stray)
	assert.NoError(t, err)
}

func TestNewCache_RejectsNonPositiveCap(t *testing.T) {
	t.Parallel()

	_, err := fs.NewCache(t.TempDir(), fs.WithMaxEntries(0))
	assert.Equal(t, gazeta.EINVALID, gazeta.ErrorCode(err))
}
