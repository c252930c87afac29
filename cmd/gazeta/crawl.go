package main

import (
	"fmt"
	"os"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/bloom"
	"github.com/newsfold/gazeta/crawl"
)

// seenFalsePositiveRate trades a small chance of skipping a fresh
// article for a compact cross-run memo file.
const seenFalsePositiveRate = 0.01

// configOptions translates the command's flags into configuration
// overrides.
func (c *CrawlCmd) configOptions() []gazeta.ConfigOption {
	var opts []gazeta.ConfigOption
	if c.Fresh {
		opts = append(opts, gazeta.WithMemoizeArticles(false))
	}
	return opts
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if len(urls) == 0 {
		stored, err := deps.Sources.FindSources(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
			return err
		}
		for _, rec := range stored {
			urls = append(urls, rec.URL)
		}
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources stored. Use 'gazeta build <url>' to register one.")
		return nil
	}

	var sources []*crawl.Source
	for _, u := range urls {
		source := &crawl.Source{
			URL:         u,
			Client:      deps.Client,
			Links:       deps.Links,
			FeedReader:  deps.Feeds,
			Seen:        deps.Seen,
			MaxArticles: c.MaxArticles,
		}
		if err := source.Build(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", u, gazeta.ErrorMessage(err))
			continue
		}
		if err := deps.Sources.SaveSource(deps.Ctx, sourceRecord(source)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Built %s: %d articles\n", source.URL, source.Size())
		sources = append(sources, source)
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no sources could be built")
		return gazeta.Errorf(gazeta.ENOTFOUND, "no sources could be built")
	}

	pool := crawl.NewPool(crawl.WithDomainLimiter(crawl.NewDomainLimiter(c.RPS)))
	for _, source := range sources {
		pool.Set(source, c.Threads)
	}
	pool.Run(deps.Ctx)
	if err := pool.Join(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	// The pool stops at parsing; keywords and summaries are computed
	// here so only downloaded articles pay for them.
	var saved, failed int
	for _, source := range sources {
		for _, article := range source.Articles() {
			if !article.Downloaded() {
				failed++
				continue
			}
			if err := article.NLP(); err != nil {
				failed++
				continue
			}
			if err := deps.Articles.SaveArticle(deps.Ctx, articleRecord(source.URL, article)); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
				return err
			}
			saved++
		}
	}

	if deps.Seen != nil && deps.SeenPath != "" {
		if err := saveSeenSet(deps.SeenPath, deps.Seen); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: could not save the crawl memo: %v\n", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d articles from %d sources (%d failed)\n", saved, len(sources), failed)

	return nil
}

// articleRecord converts a processed article into its stored form. The
// store fills ID and FetchedAt.
func articleRecord(sourceURL string, article *gazeta.Article) *gazeta.ArticleRecord {
	rec := &gazeta.ArticleRecord{
		SourceURL:   sourceURL,
		URL:         article.URL,
		Title:       article.Title,
		Authors:     article.Authors,
		PublishDate: article.PublishDate,
		Text:        article.Text,
		Summary:     article.Summary,
		TopImage:    article.TopImage,
		Language:    article.Language(),
	}
	for _, kw := range article.Keywords {
		rec.Keywords = append(rec.Keywords, kw.Word)
	}
	return rec
}

// loadSeenSet restores the cross-run article memo, starting fresh when
// no usable memo file exists.
func loadSeenSet(path string, capacity int) *bloom.SeenSet {
	seen := bloom.NewSeenSet(uint(capacity), seenFalsePositiveRate)
	f, err := os.Open(path)
	if err != nil {
		return seen
	}
	defer f.Close()
	if _, err := seen.ReadFrom(f); err != nil {
		return bloom.NewSeenSet(uint(capacity), seenFalsePositiveRate)
	}
	return seen
}

// saveSeenSet persists the memo for the next run.
func saveSeenSet(path string, seen *bloom.SeenSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := seen.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
