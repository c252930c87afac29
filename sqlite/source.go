package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/newsfold/gazeta"
)

// Compile-time interface verification.
var _ gazeta.SourceStore = (*SourceService)(nil)

// SourceService implements gazeta.SourceStore using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// SaveSource inserts the record or refreshes the stored one for its
// URL. The first save fixes ID and CreatedAt; later saves update the
// discovered fields and UpdatedAt.
func (s *SourceService) SaveSource(ctx context.Context, rec *gazeta.SourceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	categories, err := encodeStrings(rec.Categories)
	if err != nil {
		return err
	}
	feeds, err := encodeStrings(rec.Feeds)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (id, url, domain, brand, description, categories, feeds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			domain = excluded.domain,
			brand = excluded.brand,
			description = excluded.description,
			categories = excluded.categories,
			feeds = excluded.feeds,
			updated_at = excluded.updated_at
	`, rec.ID, rec.URL, rec.Domain, rec.Brand, rec.Description, categories, feeds,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSourceByURL retrieves a source record by exact URL.
func (s *SourceService) FindSourceByURL(ctx context.Context, url string) (*gazeta.SourceRecord, error) {
	var rec gazeta.SourceRecord
	var categories, feeds, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, domain, brand, description, categories, feeds, created_at, updated_at
		FROM sources
		WHERE url = ?
	`, url).Scan(&rec.ID, &rec.URL, &rec.Domain, &rec.Brand, &rec.Description,
		&categories, &feeds, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}

	if rec.Categories, err = decodeStrings(categories, "categories"); err != nil {
		return nil, err
	}
	if rec.Feeds, err = decodeStrings(feeds, "feeds"); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindSources retrieves all source records, alphabetical by URL.
func (s *SourceService) FindSources(ctx context.Context) ([]*gazeta.SourceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, domain, brand, description, categories, feeds, created_at, updated_at
		FROM sources
		ORDER BY url ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*gazeta.SourceRecord
	for rows.Next() {
		var rec gazeta.SourceRecord
		var categories, feeds, createdAt, updatedAt string

		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Domain, &rec.Brand, &rec.Description,
			&categories, &feeds, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if rec.Categories, err = decodeStrings(categories, "categories"); err != nil {
			return nil, err
		}
		if rec.Feeds, err = decodeStrings(feeds, "feeds"); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// DeleteSource permanently removes the record for a URL.
func (s *SourceService) DeleteSource(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return gazeta.Errorf(gazeta.ENOTFOUND, "source not found")
	}

	return nil
}
