// Package crawl turns a news site into articles. A Source discovers the
// site's sections and feeds and generates candidate articles from them;
// a Pool batch-processes the articles of many sources with per-source
// worker caps and per-domain pacing.
package crawl

import (
	"context"
	"net/url"
	"sort"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/bloom"
)

// DefaultMaxArticles caps how many articles one build generates.
const DefaultMaxArticles = 5000

// commonFeedPaths are probed on every site root during feed discovery.
var commonFeedPaths = []string{"/feed", "/feeds", "/rss"}

// Source is one news site. Build fetches the home page, discovers
// section fronts and syndication feeds, and generates the articles they
// point at. The zero fields below URL are collaborator slots; the
// remaining exported fields are populated by Build.
type Source struct {
	// URL is the site's home page. Build normalizes it in place.
	URL string

	// Client supplies the pipeline collaborators wired into every
	// generated article.
	Client *gazeta.Client

	// Links extracts anchors and advertised feeds from fetched pages.
	Links gazeta.LinkExtractor

	// FeedReader verifies and reads candidate feeds.
	FeedReader gazeta.FeedReader

	// Seen drops article URLs remembered from earlier builds. Only
	// consulted when the configuration enables MemoizeArticles; nil
	// disables memoization outright.
	Seen *bloom.SeenSet

	// MaxArticles caps generation. Zero means DefaultMaxArticles.
	MaxArticles int

	// Fields below are populated by Build.

	// Domain is the host of URL.
	Domain string

	// Brand is the registered-domain label, "cnn" for edition.cnn.com.
	Brand string

	// Description is the home page's meta description.
	Description string

	// Categories are the discovered section fronts, sorted. The home
	// page itself is always among them.
	Categories []string

	// Feeds are the verified feed URLs, sorted.
	Feeds []string

	articles []*gazeta.Article
}

// Build runs the full source pipeline: download the home page, discover
// categories and feeds, and generate articles. A home page that cannot
// be fetched fails the build; unreachable categories and feeds are
// skipped silently.
func (s *Source) Build(ctx context.Context) error {
	if s.Client == nil || s.Links == nil || s.FeedReader == nil {
		return gazeta.Errorf(gazeta.EINVALID, "source needs a client, a link extractor and a feed reader")
	}

	normalized, err := gazeta.NormalizeURL(s.URL)
	if err != nil {
		return err
	}
	s.URL = normalized
	home, err := url.Parse(normalized)
	if err != nil {
		return gazeta.Errorf(gazeta.EINVALID, "source url %q", s.URL)
	}
	s.Domain = home.Host
	s.Brand = brandLabel(home.Host)

	homeHTML, err := s.fetchPage(ctx, s.URL)
	if err != nil {
		return err
	}

	// Extraction misses on the home page are not build failures.
	if ext, err := s.Client.Extractor.Extract(homeHTML, s.URL); err == nil {
		s.Description = ext.MetaDescription
	}

	links, err := s.Links.Links(homeHTML, s.URL)
	if err != nil {
		links = nil
	}
	s.Categories = CategoryURLs(s.URL, links)

	pages := s.downloadCategories(ctx, homeHTML)
	items := s.discoverFeeds(ctx, home, pages)
	s.generateArticles(pages, items)
	return nil
}

// Articles returns the articles generated by the last Build, wired and
// ready for Download and Parse.
func (s *Source) Articles() []*gazeta.Article {
	return s.articles
}

// Size returns how many articles the last Build generated.
func (s *Source) Size() int {
	return len(s.articles)
}

// fetchPage downloads and decodes one page.
func (s *Source) fetchPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.Client.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if !resp.Success() {
		return "", gazeta.Errorf(gazeta.ENOTFOUND, "page %s: HTTP %d", pageURL, resp.StatusCode)
	}
	if s.Client.Decoder != nil {
		return s.Client.Decoder.Decode(resp.Body, resp.ContentType), nil
	}
	return string(resp.Body), nil
}

// downloadCategories fetches every discovered category page, keyed by
// category URL. The home page is reused, not refetched.
func (s *Source) downloadCategories(ctx context.Context, homeHTML string) map[string]string {
	pages := make(map[string]string, len(s.Categories))
	pages[s.URL] = homeHTML

	for _, category := range s.Categories {
		if category == s.URL {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		html, err := s.fetchPage(ctx, category)
		if err != nil {
			continue
		}
		pages[category] = html
	}
	return pages
}

// discoverFeeds probes the common feed locations and every feed
// advertised by a category page, keeps the candidates that parse as
// feeds with at least one entry, and returns the collected entries.
func (s *Source) discoverFeeds(ctx context.Context, home *url.URL, pages map[string]string) []gazeta.FeedItem {
	var candidates []string
	seen := make(map[string]bool)
	consider := func(feedURL string) {
		if feedURL == "" || seen[feedURL] {
			return
		}
		seen[feedURL] = true
		candidates = append(candidates, feedURL)
	}

	root := home.Scheme + "://" + home.Host
	for _, path := range commonFeedPaths {
		consider(root + path)
	}
	for _, pageURL := range sortedKeys(pages) {
		refs, err := s.Links.FeedLinks(pages[pageURL], pageURL)
		if err != nil {
			continue
		}
		for _, ref := range refs {
			consider(ref.URL)
		}
	}

	var items []gazeta.FeedItem
	s.Feeds = nil
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		found, err := s.FeedReader.Items(ctx, candidate)
		if err != nil || len(found) == 0 {
			continue
		}
		s.Feeds = append(s.Feeds, candidate)
		items = append(items, found...)
	}
	sort.Strings(s.Feeds)
	return items
}

// generateArticles collects article URLs from feed entries and category
// page anchors, filters them through the URL heuristic, and constructs
// the surviving articles. URLs are sorted before construction so that
// rebuilding from identical pages yields an identical article list.
func (s *Source) generateArticles(pages map[string]string, items []gazeta.FeedItem) {
	collected := make(map[string]bool)
	var urls []string
	consider := func(raw string) {
		normalized, err := gazeta.NormalizeURL(raw)
		if err != nil || collected[normalized] {
			return
		}
		if !ValidArticleURL(normalized) {
			return
		}
		collected[normalized] = true
		urls = append(urls, normalized)
	}

	for _, item := range items {
		consider(item.URL)
	}
	for _, pageURL := range sortedKeys(pages) {
		links, err := s.Links.Links(pages[pageURL], pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			consider(link.URL)
		}
	}
	sort.Strings(urls)

	if s.Client.Config.MemoizeArticles && s.Seen != nil {
		fresh := urls[:0]
		for _, u := range urls {
			if s.Seen.Remember(u) {
				fresh = append(fresh, u)
			}
		}
		urls = fresh
	}

	max := s.MaxArticles
	if max <= 0 {
		max = DefaultMaxArticles
	}
	if len(urls) > max {
		urls = urls[:max]
	}

	s.articles = nil
	for _, u := range urls {
		article, err := s.Client.NewArticle(u)
		if err != nil {
			continue
		}
		s.articles = append(s.articles, article)
	}
}

func sortedKeys(pages map[string]string) []string {
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
