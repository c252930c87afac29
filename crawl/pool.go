package crawl

import (
	"context"
	"net/url"

	"github.com/newsfold/gazeta"
	"golang.org/x/sync/errgroup"
)

// Pool batch-processes the articles of several sources. Every source
// gets its own worker group capped at its thread count, so one slow
// site cannot starve the rest. Transport failures stay on the articles
// themselves; Join only returns errors that stop the whole run, such as
// context cancellation.
type Pool struct {
	limiter *DomainLimiter
	entries []poolEntry
	group   *errgroup.Group
}

type poolEntry struct {
	source  *Source
	threads int
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithDomainLimiter paces every worker through the given limiter.
func WithDomainLimiter(limiter *DomainLimiter) PoolOption {
	return func(p *Pool) {
		p.limiter = limiter
	}
}

// NewPool creates an empty Pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Set queues a built source for processing with the given number of
// worker threads. Threads below one fall back to the source
// configuration's NumberThreads.
func (p *Pool) Set(source *Source, threads int) {
	if threads < 1 {
		threads = source.Client.Config.NumberThreads
	}
	if threads < 1 {
		threads = 1
	}
	p.entries = append(p.entries, poolEntry{source: source, threads: threads})
}

// Run starts downloading and parsing every queued source's articles and
// returns immediately. Join blocks until the work drains.
func (p *Pool) Run(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	p.group = g

	for i := 0; i < len(p.entries); i++ {
		entry := p.entries[i]
		g.Go(func() error {
			return p.drainSource(gctx, entry.source, entry.threads)
		})
	}
}

// Join waits for every worker started by Run.
func (p *Pool) Join() error {
	if p.group == nil {
		return nil
	}
	return p.group.Wait()
}

// drainSource pulls the source's articles off a shared queue with up to
// threads workers, running Download then Parse on each.
func (p *Pool) drainSource(ctx context.Context, source *Source, threads int) error {
	queue := NewQueue(source.Articles())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for {
		article, ok := queue.Pop()
		if !ok {
			break
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return p.processArticle(gctx, article)
		})
	}
	return g.Wait()
}

// processArticle runs one article through download and parse. A failed
// download leaves the article degraded rather than failing the batch.
func (p *Pool) processArticle(ctx context.Context, article *gazeta.Article) error {
	if p.limiter != nil {
		if u, err := url.Parse(article.URL); err == nil {
			if err := p.limiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}
	}
	if err := article.Download(ctx, nil); err != nil {
		return err
	}
	return article.Parse()
}
