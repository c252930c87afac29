package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/newsfold/gazeta"
)

// documentMeta carries everything read from the document head. It is
// always built from the raw tree, before any cleaning.
type documentMeta struct {
	tree        gazeta.MetaNamespace
	lang        string
	description string
	keywords    []string
	canonical   string
	image       string
}

// langPrefixRE accepts a two-letter language prefix, so "en", "en-US"
// and "en_GB" all resolve to "en".
var langPrefixRE = regexp.MustCompile(`^[a-zA-Z]{2}`)

func extractMeta(doc *goquery.Document, base *url.URL) documentMeta {
	m := documentMeta{tree: gazeta.MetaNamespace{}}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key := sel.AttrOr("property", "")
		if key == "" {
			key = sel.AttrOr("name", "")
		}
		if key == "" {
			key = sel.AttrOr("itemprop", "")
		}
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		if key == "" || content == "" {
			return
		}
		m.tree.Insert(key, content)
	})

	m.lang = metaLanguage(doc, m.tree)

	m.description = metaValue(doc, `meta[name="description"]`)
	if m.description == "" {
		m.description = m.tree.Leaf("og", "description")
	}

	if kw := metaValue(doc, `meta[name="keywords"]`); kw != "" {
		for _, part := range strings.Split(kw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				m.keywords = append(m.keywords, part)
			}
		}
	}

	m.canonical = canonicalLink(doc, m.tree, base)
	m.image = declaredImage(doc, m.tree, base)

	return m
}

func metaValue(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

// metaLanguage resolves the declared document language: the html lang
// attribute wins, then http-equiv content-language, then og:locale.
// Only a leading two-letter code counts.
func metaLanguage(doc *goquery.Document, tree gazeta.MetaNamespace) string {
	candidates := []string{
		doc.Find("html").First().AttrOr("lang", ""),
		metaValue(doc, `meta[http-equiv="content-language"]`),
		metaValue(doc, `meta[name="lang"]`),
		tree.Leaf("og", "locale"),
	}
	for _, c := range candidates {
		if m := langPrefixRE.FindString(strings.TrimSpace(c)); m != "" {
			return strings.ToLower(m)
		}
	}
	return ""
}

// canonicalLink prefers link[rel=canonical] over og:url. Relative values
// are resolved against base; an unresolvable value is kept as declared.
func canonicalLink(doc *goquery.Document, tree gazeta.MetaNamespace, base *url.URL) string {
	href := strings.TrimSpace(doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""))
	if href == "" {
		href = tree.Leaf("og", "url")
	}
	if href == "" {
		return ""
	}
	if resolved := absoluteURL(base, href); resolved != "" {
		return resolved
	}
	return href
}

// declaredImage is the socially declared lead image: og:image, then
// twitter:image, then link[rel=image_src].
func declaredImage(doc *goquery.Document, tree gazeta.MetaNamespace, base *url.URL) string {
	img := tree.Leaf("og", "image")
	if img == "" {
		img = tree.Leaf("twitter", "image")
	}
	if img == "" {
		img = tree.Leaf("twitter", "image", "src")
	}
	if img == "" {
		img = strings.TrimSpace(doc.Find(`link[rel="image_src"]`).First().AttrOr("href", ""))
	}
	return absoluteURL(base, img)
}
