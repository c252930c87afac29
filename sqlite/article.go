package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsfold/gazeta"
)

// Compile-time interface verification.
var _ gazeta.ArticleStore = (*ArticleService)(nil)

// ArticleService implements gazeta.ArticleStore using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// SaveArticle inserts the record, replacing any previous record for the
// same URL. A missing ID or FetchedAt is filled in.
func (s *ArticleService) SaveArticle(ctx context.Context, rec *gazeta.ArticleRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	authors, err := encodeStrings(rec.Authors)
	if err != nil {
		return err
	}
	keywords, err := encodeStrings(rec.Keywords)
	if err != nil {
		return err
	}
	var publishDate *string
	if rec.PublishDate != nil {
		formatted := rec.PublishDate.UTC().Format(time.RFC3339)
		publishDate = &formatted
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_url, url, title, authors, publish_date, text, summary, keywords, top_image, language, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			id = excluded.id,
			source_url = excluded.source_url,
			title = excluded.title,
			authors = excluded.authors,
			publish_date = excluded.publish_date,
			text = excluded.text,
			summary = excluded.summary,
			keywords = excluded.keywords,
			top_image = excluded.top_image,
			language = excluded.language,
			fetched_at = excluded.fetched_at
	`, rec.ID, rec.SourceURL, rec.URL, rec.Title, authors, publishDate, rec.Text,
		rec.Summary, keywords, rec.TopImage, rec.Language, rec.FetchedAt.Format(time.RFC3339))

	return err
}

// FindArticleByURL retrieves an article record by exact URL.
func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*gazeta.ArticleRecord, error) {
	var rec gazeta.ArticleRecord
	var authors, keywords, fetchedAt string
	var publishDate sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, url, title, authors, publish_date, text, summary, keywords, top_image, language, fetched_at
		FROM articles
		WHERE url = ?
	`, url).Scan(&rec.ID, &rec.SourceURL, &rec.URL, &rec.Title, &authors, &publishDate,
		&rec.Text, &rec.Summary, &keywords, &rec.TopImage, &rec.Language, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	if rec.Authors, err = decodeStrings(authors, "authors"); err != nil {
		return nil, err
	}
	if rec.Keywords, err = decodeStrings(keywords, "keywords"); err != nil {
		return nil, err
	}
	if publishDate.Valid {
		t, err := parseRFC3339(publishDate.String, "publish_date")
		if err != nil {
			return nil, err
		}
		rec.PublishDate = &t
	}
	if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindArticles retrieves article records matching the filter, newest
// first with URL as the tiebreak.
func (s *ArticleService) FindArticles(ctx context.Context, filter gazeta.ArticleFilter) ([]*gazeta.ArticleRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, url, title, authors, publish_date, text, summary, keywords, top_image, language, fetched_at FROM articles WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY fetched_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*gazeta.ArticleRecord
	for rows.Next() {
		var rec gazeta.ArticleRecord
		var authors, keywords, fetchedAt string
		var publishDate sql.NullString

		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.URL, &rec.Title, &authors, &publishDate,
			&rec.Text, &rec.Summary, &keywords, &rec.TopImage, &rec.Language, &fetchedAt); err != nil {
			return nil, err
		}

		if rec.Authors, err = decodeStrings(authors, "authors"); err != nil {
			return nil, err
		}
		if rec.Keywords, err = decodeStrings(keywords, "keywords"); err != nil {
			return nil, err
		}
		if publishDate.Valid {
			t, err := parseRFC3339(publishDate.String, "publish_date")
			if err != nil {
				return nil, err
			}
			rec.PublishDate = &t
		}
		if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// DeleteArticlesBySource removes all article records for a source URL.
func (s *ArticleService) DeleteArticlesBySource(ctx context.Context, sourceURL string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE source_url = ?", sourceURL)
	return err
}
