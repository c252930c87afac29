// Package fs provides file-based persistence: a download cache that
// memoizes fetches between runs and a Markdown exporter for extracted
// articles.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/newsfold/gazeta"
)

const (
	metaExt = ".json"
	bodyExt = ".body"
)

// Ensure Cache implements gazeta.Cache at compile time.
var _ gazeta.Cache = (*Cache)(nil)

// Cache stores fetched responses on disk, one body + metadata file pair
// per URL. File stems are xxhash digests of the URL, so the cache needs
// no index and survives across processes.
type Cache struct {
	dir        string
	maxEntries int

	mu sync.Mutex // guards writes and pruning
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxEntries caps how many responses the cache retains. Past the
// cap, entries with the oldest fetch times are removed first.
// Defaults to gazeta.DefaultMaxFileMemo.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

// NewCache creates a Cache rooted at dir, creating the directory if
// needed.
func NewCache(dir string, opts ...CacheOption) (*Cache, error) {
	c := &Cache{dir: dir, maxEntries: gazeta.DefaultMaxFileMemo}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxEntries < 1 {
		return nil, gazeta.Errorf(gazeta.EINVALID, "cache cap must be positive, got %d", c.maxEntries)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves the entry for url. Missing, partial and unreadable
// entries all report ENOTFOUND so callers fall through to the network.
func (c *Cache) Get(ctx context.Context, url string) (*gazeta.CacheEntry, error) {
	stem := filepath.Join(c.dir, entryKey(url))

	raw, err := os.ReadFile(stem + metaExt)
	if err != nil {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no cache entry for %s", url)
	}
	var entry gazeta.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no cache entry for %s", url)
	}
	// A hash collision shows up as somebody else's URL in the metadata.
	if entry.URL != url {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no cache entry for %s", url)
	}

	body, err := os.ReadFile(stem + bodyExt)
	if err != nil {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "no cache entry for %s", url)
	}
	entry.Body = body
	return &entry, nil
}

// Set stores entry, replacing any previous entry for the same URL, then
// prunes the cache down to its cap.
func (c *Cache) Set(ctx context.Context, entry *gazeta.CacheEntry) error {
	meta, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stem := filepath.Join(c.dir, entryKey(entry.URL))
	// Body first, metadata last: an entry without metadata is invisible.
	if err := writeFileAtomic(stem+bodyExt, entry.Body); err != nil {
		return err
	}
	if err := writeFileAtomic(stem+metaExt, meta); err != nil {
		return err
	}
	return c.prune()
}

// Clear removes every cache entry. Files the cache did not create are
// left alone.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, metaExt) && !strings.HasSuffix(name, bodyExt) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// prune removes the oldest entries until the cache is within its cap.
// Age is the stored fetch time, with the file name as a tiebreak;
// unreadable metadata sorts first.
func (c *Cache) prune() error {
	metas, err := filepath.Glob(filepath.Join(c.dir, "*"+metaExt))
	if err != nil {
		return err
	}
	excess := len(metas) - c.maxEntries
	if excess <= 0 {
		return nil
	}

	type aged struct {
		path      string
		fetchedAt time.Time
	}
	entries := make([]aged, 0, len(metas))
	for _, path := range metas {
		var entry gazeta.CacheEntry
		if raw, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(raw, &entry)
		}
		entries = append(entries, aged{path: path, fetchedAt: entry.FetchedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].fetchedAt.Equal(entries[j].fetchedAt) {
			return entries[i].fetchedAt.Before(entries[j].fetchedAt)
		}
		return entries[i].path < entries[j].path
	})

	for i := 0; i < excess; i++ {
		stem := strings.TrimSuffix(entries[i].path, metaExt)
		if err := os.Remove(entries[i].path); err != nil {
			return err
		}
		_ = os.Remove(stem + bodyExt)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place, so concurrent readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// entryKey derives the file stem for a URL.
func entryKey(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}
