package mock

import (
	"context"

	"github.com/newsfold/gazeta"
)

var _ gazeta.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of gazeta.ArticleStore.
type ArticleStore struct {
	SaveArticleFn            func(ctx context.Context, rec *gazeta.ArticleRecord) error
	FindArticleByURLFn       func(ctx context.Context, url string) (*gazeta.ArticleRecord, error)
	FindArticlesFn           func(ctx context.Context, filter gazeta.ArticleFilter) ([]*gazeta.ArticleRecord, error)
	DeleteArticlesBySourceFn func(ctx context.Context, sourceURL string) error
}

func (s *ArticleStore) SaveArticle(ctx context.Context, rec *gazeta.ArticleRecord) error {
	return s.SaveArticleFn(ctx, rec)
}

func (s *ArticleStore) FindArticleByURL(ctx context.Context, url string) (*gazeta.ArticleRecord, error) {
	return s.FindArticleByURLFn(ctx, url)
}

func (s *ArticleStore) FindArticles(ctx context.Context, filter gazeta.ArticleFilter) ([]*gazeta.ArticleRecord, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleStore) DeleteArticlesBySource(ctx context.Context, sourceURL string) error {
	return s.DeleteArticlesBySourceFn(ctx, sourceURL)
}

var _ gazeta.SourceStore = (*SourceStore)(nil)

// SourceStore is a mock implementation of gazeta.SourceStore.
type SourceStore struct {
	SaveSourceFn      func(ctx context.Context, rec *gazeta.SourceRecord) error
	FindSourceByURLFn func(ctx context.Context, url string) (*gazeta.SourceRecord, error)
	FindSourcesFn     func(ctx context.Context) ([]*gazeta.SourceRecord, error)
	DeleteSourceFn    func(ctx context.Context, url string) error
}

func (s *SourceStore) SaveSource(ctx context.Context, rec *gazeta.SourceRecord) error {
	return s.SaveSourceFn(ctx, rec)
}

func (s *SourceStore) FindSourceByURL(ctx context.Context, url string) (*gazeta.SourceRecord, error) {
	return s.FindSourceByURLFn(ctx, url)
}

func (s *SourceStore) FindSources(ctx context.Context) ([]*gazeta.SourceRecord, error) {
	return s.FindSourcesFn(ctx)
}

func (s *SourceStore) DeleteSource(ctx context.Context, url string) error {
	return s.DeleteSourceFn(ctx, url)
}
