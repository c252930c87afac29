package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/newsfold/gazeta"
	main "github.com/newsfold/gazeta/cmd/gazeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMain returns a Main wired to throwaway storage so end-to-end
// runs never touch the user's home directory.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "gazeta.db")
	m.CacheDir = filepath.Join(dir, "cache")
	m.SeenPath = filepath.Join(dir, "seen.bloom")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires a command", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("rejects an unknown command", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("popular prints the source catalog end to end", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"popular"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://apnews.com")

		// The run opened real storage at the test locations.
		_, err = os.Stat(m.DBPath)
		require.NoError(t, err)
	})

	t.Run("cache clear works end to end", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"cache", "clear"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Download cache cleared")
	})

	t.Run("rejects a config file with unknown keys", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		path := filepath.Join(t.TempDir(), "gazeta.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0644))

		err := m.Run(context.Background(), []string{"popular", "--config", path}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, gazeta.EINVALID, gazeta.ErrorCode(err))
	})

	t.Run("article with an invalid url fails without fetching", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"article", "not-a-url"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, gazeta.EINVALID, gazeta.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
