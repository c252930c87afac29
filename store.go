package gazeta

import (
	"context"
	"time"
)

// ArticleRecord is the persisted form of a processed article.
type ArticleRecord struct {
	ID          string     `json:"id"`
	SourceURL   string     `json:"sourceUrl"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	PublishDate *time.Time `json:"publishDate"`
	Text        string     `json:"text"`
	Summary     string     `json:"summary"`
	Keywords    []string   `json:"keywords"`
	TopImage    string     `json:"topImage"`
	Language    string     `json:"language"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ArticleRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "article record URL required")
	}
	return nil
}

// ArticleStore persists processed articles.
type ArticleStore interface {
	// SaveArticle inserts or replaces the record for its URL.
	SaveArticle(ctx context.Context, rec *ArticleRecord) error

	// FindArticleByURL retrieves a record by exact URL.
	// Returns ENOTFOUND if no record exists.
	FindArticleByURL(ctx context.Context, url string) (*ArticleRecord, error)

	// FindArticles retrieves records matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*ArticleRecord, error)

	// DeleteArticlesBySource removes all records for a source URL.
	DeleteArticlesBySource(ctx context.Context, sourceURL string) error
}

// ArticleFilter restricts FindArticles results.
type ArticleFilter struct {
	SourceURL *string `json:"sourceUrl"`
	Language  *string `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceRecord is the persisted form of a built source.
type SourceRecord struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Domain      string    `json:"domain"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Categories  []string  `json:"categories"`
	Feeds       []string  `json:"feeds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *SourceRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "source record URL required")
	}
	return nil
}

// SourceStore persists built sources.
type SourceStore interface {
	// SaveSource inserts the record or refreshes the existing one for
	// its URL, preserving identity and creation time.
	SaveSource(ctx context.Context, rec *SourceRecord) error

	// FindSourceByURL retrieves a record by exact URL.
	// Returns ENOTFOUND if no record exists.
	FindSourceByURL(ctx context.Context, url string) (*SourceRecord, error)

	// FindSources retrieves all records, alphabetical by URL.
	FindSources(ctx context.Context) ([]*SourceRecord, error)

	// DeleteSource removes the record for a URL.
	// Returns ENOTFOUND if no record exists.
	DeleteSource(ctx context.Context, url string) error
}
