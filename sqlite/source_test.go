package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSourceRecord(url string) *gazeta.SourceRecord {
	return &gazeta.SourceRecord{
		URL:         url,
		Domain:      "daily.example.com",
		Brand:       "example",
		Description: "Regional news from the Daily Example.",
		Categories:  []string{"https://daily.example.com/sports", "https://daily.example.com/world"},
		Feeds:       []string{"https://daily.example.com/feed"},
	}
}

func TestSourceService_SaveSource(t *testing.T) {
	t.Parallel()

	t.Run("saves and round-trips the discovered fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		rec := testSourceRecord("https://daily.example.com")
		require.NoError(t, svc.SaveSource(ctx, rec))

		assert.NotEmpty(t, rec.ID, "ID should be generated")
		assert.False(t, rec.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, rec.UpdatedAt.IsZero(), "UpdatedAt should be set")

		found, err := svc.FindSourceByURL(ctx, rec.URL)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
		assert.Equal(t, rec.URL, found.URL)
		assert.Equal(t, rec.Domain, found.Domain)
		assert.Equal(t, rec.Brand, found.Brand)
		assert.Equal(t, rec.Description, found.Description)
		assert.Equal(t, rec.Categories, found.Categories)
		assert.Equal(t, rec.Feeds, found.Feeds)
		assert.WithinDuration(t, rec.CreatedAt, found.CreatedAt, time.Second)
		assert.WithinDuration(t, rec.UpdatedAt, found.UpdatedAt, time.Second)
	})

	t.Run("returns error for invalid source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		err := svc.SaveSource(context.Background(), &gazeta.SourceRecord{})
		require.Error(t, err)
		assert.Equal(t, gazeta.EINVALID, gazeta.ErrorCode(err))
	})

	t.Run("refreshes an existing source without losing identity", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		first := testSourceRecord("https://daily.example.com")
		require.NoError(t, svc.SaveSource(ctx, first))

		second := testSourceRecord("https://daily.example.com")
		second.Description = "Now with a weather desk."
		second.Categories = append(second.Categories, "https://daily.example.com/weather")
		require.NoError(t, svc.SaveSource(ctx, second))

		found, err := svc.FindSourceByURL(ctx, first.URL)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID, "refresh should keep the original ID")
		assert.WithinDuration(t, first.CreatedAt, found.CreatedAt, time.Second)
		assert.Equal(t, "Now with a weather desk.", found.Description)
		assert.Len(t, found.Categories, 3)
		assert.True(t, found.UpdatedAt.After(found.CreatedAt) || found.UpdatedAt.Equal(found.CreatedAt))

		all, err := svc.FindSources(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("empty categories and feeds round-trip as nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		rec := testSourceRecord("https://quiet.example.com")
		rec.Categories = nil
		rec.Feeds = nil
		require.NoError(t, svc.SaveSource(ctx, rec))

		found, err := svc.FindSourceByURL(ctx, rec.URL)
		require.NoError(t, err)
		assert.Nil(t, found.Categories)
		assert.Nil(t, found.Feeds)
	})
}

func TestSourceService_FindSourceByURL(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing url", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		_, err := svc.FindSourceByURL(context.Background(), "https://gone.example.com")
		require.Error(t, err)
		assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
	})
}

func TestSourceService_FindSources(t *testing.T) {
	t.Parallel()

	t.Run("returns sources alphabetical by url", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		for _, url := range []string{
			"https://sports.example.com",
			"https://daily.example.com",
			"https://metro.example.com",
		} {
			rec := testSourceRecord(url)
			require.NoError(t, svc.SaveSource(ctx, rec))
		}

		recs, err := svc.FindSources(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "https://daily.example.com", recs[0].URL)
		assert.Equal(t, "https://metro.example.com", recs[1].URL)
		assert.Equal(t, "https://sports.example.com", recs[2].URL)
	})

	t.Run("returns empty result for empty database", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		recs, err := svc.FindSources(context.Background())
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestSourceService_DeleteSource(t *testing.T) {
	t.Parallel()

	t.Run("removes the record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		rec := testSourceRecord("https://daily.example.com")
		require.NoError(t, svc.SaveSource(ctx, rec))
		require.NoError(t, svc.DeleteSource(ctx, rec.URL))

		_, err := svc.FindSourceByURL(ctx, rec.URL)
		require.Error(t, err)
		assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing url", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		err := svc.DeleteSource(context.Background(), "https://gone.example.com")
		require.Error(t, err)
		assert.Equal(t, gazeta.ENOTFOUND, gazeta.ErrorCode(err))
	})
}
