// Package goquery implements the content extraction engine: document
// metadata, article fields and body text pulled out of news-site HTML
// with CSS selector queries over parsed trees.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/newsfold/gazeta"
)

// Extractor implements gazeta.Extractor. Metadata and fields are read
// from the document as served; body extraction works on a separately
// parsed, cleaned copy so chrome removal never eats metadata carriers.
type Extractor struct {
	cfg   gazeta.Config
	sizer gazeta.ImageSizer
}

var _ gazeta.Extractor = (*Extractor)(nil)

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithImageSizer lets top-image scoring measure images whose markup
// declares no dimensions. The sizer is consulted only when the
// configuration allows fetching images.
func WithImageSizer(sizer gazeta.ImageSizer) ExtractorOption {
	return func(e *Extractor) {
		e.sizer = sizer
	}
}

// NewExtractor creates an Extractor tuned by cfg.
func NewExtractor(cfg gazeta.Config, opts ...ExtractorOption) *Extractor {
	e := &Extractor{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML twice, cleans one copy, and pulls every field
// the document yields. Extraction misses are zero values, not errors.
func (e *Extractor) Extract(rawHTML, pageURL string) (*gazeta.Extraction, error) {
	ext := &gazeta.Extraction{Meta: gazeta.MetaNamespace{}}
	if strings.TrimSpace(rawHTML) == "" {
		return ext, nil
	}

	var base *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
			base = u
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "parse html: %v", err)
	}
	cleaned, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "parse html: %v", err)
	}
	Clean(cleaned)

	meta := extractMeta(doc, base)
	ext.Meta = meta.tree
	ext.MetaLang = meta.lang
	ext.MetaDescription = meta.description
	ext.MetaKeywords = meta.keywords
	ext.CanonicalLink = meta.canonical

	ext.Title = extractTitle(doc, meta.tree.Leaf("og", "title"))
	ext.Authors = extractAuthors(doc)
	ext.PublishDate = extractPublishDate(doc, pageURL)
	ext.Images = extractImages(doc, base)
	ext.Movies = extractMovies(doc, base)

	body := e.extractBody(cleaned)
	ext.Text = body.text
	if e.cfg.KeepArticleHTML {
		ext.ArticleHTML = renderNode(body.node)
	}
	ext.TopImage = e.extractTopImage(meta.image, cleaned, body.node, base)

	return ext, nil
}

// absoluteURL resolves ref against base and returns the result, or ""
// when ref does not parse or does not end up on an http(s) URL. A nil
// base keeps already-absolute refs and rejects relative ones.
func absoluteURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// collapseSpace trims s and collapses internal whitespace runs to one
// space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
