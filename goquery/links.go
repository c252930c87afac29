package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/newsfold/gazeta"
)

// LinkExtractor implements gazeta.LinkExtractor over anchor and
// alternate-link queries. Classification of the returned links is the
// crawler's job; this layer only resolves, filters and deduplicates.
type LinkExtractor struct{}

var _ gazeta.LinkExtractor = (*LinkExtractor)(nil)

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Links returns the document's anchors in document order, resolved
// against baseURL. Duplicates, same-page references and non-HTTP schemes
// are dropped. Cross-host links are kept: category pages legitimately
// live on sibling subdomains.
func (l *LinkExtractor) Links(html, baseURL string) ([]gazeta.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "parse html: %v", err)
	}

	seen := make(map[string]bool)
	var links []gazeta.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveLink(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, gazeta.Link{
			URL:  resolved,
			Text: collapseSpace(sel.Text()),
		})
	})
	return links, nil
}

// FeedLinks returns syndication feeds advertised through rel=alternate
// links with an RSS or Atom type.
func (l *LinkExtractor) FeedLinks(html, baseURL string) ([]gazeta.FeedRef, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "parse html: %v", err)
	}

	seen := make(map[string]bool)
	var feeds []gazeta.FeedRef
	doc.Find(`link[rel="alternate"]`).Each(func(_ int, sel *goquery.Selection) {
		typ := strings.ToLower(sel.AttrOr("type", ""))
		if !strings.Contains(typ, "rss") && !strings.Contains(typ, "atom") && !strings.Contains(typ, "xml") {
			return
		}
		resolved := absoluteURL(base, sel.AttrOr("href", ""))
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		feeds = append(feeds, gazeta.FeedRef{
			URL:   resolved,
			Title: collapseSpace(sel.AttrOr("title", "")),
		})
	})
	return feeds, nil
}

// resolveLink resolves href against base with the fragment stripped, and
// returns "" for links that resolve back to the base page itself.
func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink reports whether href carries a scheme that can never be
// an article link.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
