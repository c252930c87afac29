package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"golang.org/x/net/html"
)

// titleSeparators are tried in order when splitting a site-name suffix
// off a title candidate.
var titleSeparators = []string{" | ", " - ", " » ", " : ", "|", "»"}

// extractTitle picks the headline from the title tag, h1 elements and
// og:title. A candidate matching og:title wins outright; otherwise the
// title tag is used with its site-name suffix split off.
func extractTitle(doc *goquery.Document, ogTitle string) string {
	var candidates []string
	if t := collapseSpace(doc.Find("title").First().Text()); t != "" {
		candidates = append(candidates, t)
	}
	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		if t := collapseSpace(sel.Text()); t != "" {
			candidates = append(candidates, t)
		}
	})

	og := collapseSpace(ogTitle)
	if og != "" {
		for _, c := range candidates {
			if strings.EqualFold(c, og) {
				return c
			}
		}
		for _, c := range candidates {
			if t := splitTitle(c); strings.EqualFold(t, og) {
				return t
			}
		}
		for _, c := range candidates {
			if containsFold(c, og) {
				return og
			}
		}
	}
	if len(candidates) == 0 {
		return og
	}
	return splitTitle(candidates[0])
}

// splitTitle drops a site-name segment around the first separator
// present, keeping the longest segment. The split only sticks when the
// kept segment retains at least half the original word count, which
// protects short titles from over-trimming.
func splitTitle(title string) string {
	for _, sep := range titleSeparators {
		if !strings.Contains(title, sep) {
			continue
		}
		best := ""
		for _, part := range strings.Split(title, sep) {
			if len(strings.Fields(part)) > len(strings.Fields(best)) {
				best = part
			}
		}
		if len(strings.Fields(best))*2 >= len(strings.Fields(title)) {
			return collapseSpace(best)
		}
		return title
	}
	return title
}

// Byline markup varies wildly; the attribute/value cross product below
// covers meta tags, rel links, microdata and byline-classed elements.
var (
	authorAttrs = []string{"name", "rel", "itemprop", "class", "id"}
	authorVals  = []string{"author", "byline", "byl", "dc.creator"}

	bylinePrefixRE = regexp.MustCompile(`(?i)^(by|from)[:\s]+`)
	digitRE        = regexp.MustCompile(`\d`)

	honorifics = []string{"Dr.", "Dr", "Mr.", "Mr", "Mrs.", "Mrs", "Ms.", "Ms", "Prof.", "Prof", "Sir", "Rev.", "Rev"}
)

// extractAuthors collects bylined names in document order, deduplicated
// case-insensitively with first-seen casing kept.
func extractAuthors(doc *goquery.Document) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(raw string) {
		for _, name := range parseByline(raw) {
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
		}
	}

	doc.Find(`meta[property="article:author"]`).Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("content", ""))
	})
	for _, attr := range authorAttrs {
		for _, val := range authorVals {
			doc.Find(`[` + attr + `="` + val + `"]`).Each(func(_ int, sel *goquery.Selection) {
				if goquery.NodeName(sel) == "meta" {
					add(sel.AttrOr("content", ""))
					return
				}
				add(sel.Text())
			})
		}
	}
	return out
}

// parseByline splits a byline like "By Dana Ford and Tom Watkins, CNN"
// into candidate names. Connectives become commas, honorific prefixes are
// stripped, and a candidate is kept when it reads like a personal name:
// two to four words, no digits, each word starting with a letter.
func parseByline(raw string) []string {
	raw = collapseSpace(raw)
	if raw == "" {
		return nil
	}
	raw = bylinePrefixRE.ReplaceAllString(raw, "")
	for _, sep := range []string{" and ", " And ", " AND ", " & ", "&", ";", "|", "/"} {
		raw = strings.ReplaceAll(raw, sep, ",")
	}

	var names []string
	for _, part := range strings.Split(raw, ",") {
		part = collapseSpace(strings.Trim(part, " .,"))
		part = stripHonorific(part)
		if isPersonName(part) {
			names = append(names, part)
		}
	}
	return names
}

func stripHonorific(s string) string {
	for _, h := range honorifics {
		if strings.HasPrefix(s, h+" ") {
			return strings.TrimSpace(strings.TrimPrefix(s, h+" "))
		}
	}
	return s
}

func isPersonName(s string) bool {
	if s == "" || digitRE.MatchString(s) {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// publishDateSelectors are tried in order; the first value dateparse
// accepts wins. Meta tags outrank the URL path pattern.
var publishDateSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[property="rnews:datePublished"]`, "content"},
	{`meta[property="og:published_time"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`meta[name="OriginalPublicationDate"]`, "content"},
	{`meta[name="article_date_original"]`, "content"},
	{`meta[name="publication_date"]`, "content"},
	{`meta[name="publish_date"]`, "content"},
	{`meta[name="sailthru.date"]`, "content"},
	{`meta[name="PublishDate"]`, "content"},
	{`meta[name="pubdate"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`time[datetime]`, "datetime"},
}

// urlDateRE matches /YYYY/MM/DD/ style path segments, with - accepted
// as the inner separator.
var urlDateRE = regexp.MustCompile(`/((?:19|20)\d{2})[/-]([01]?\d)[/-]([0-3]?\d)(?:/|$)`)

// extractPublishDate resolves the publication timestamp from date meta
// tags first, then from a date-shaped segment of the page URL. Absent or
// unparsable values yield nil.
func extractPublishDate(doc *goquery.Document, pageURL string) *time.Time {
	for _, s := range publishDateSelectors {
		val := strings.TrimSpace(doc.Find(s.selector).First().AttrOr(s.attr, ""))
		if val == "" {
			continue
		}
		if t, err := dateparse.ParseAny(val); err == nil {
			return &t
		}
	}
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			if m := urlDateRE.FindStringSubmatch(u.Path); m != nil {
				year, _ := strconv.Atoi(m[1])
				month, _ := strconv.Atoi(m[2])
				day, _ := strconv.Atoi(m[3])
				if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
					t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
					return &t
				}
			}
		}
	}
	return nil
}

// minImagePixels is the side below which a sized image is treated as an
// icon or tracking pixel.
const minImagePixels = 50

// adHostRE rejects lead-image candidates served from ad networks.
var adHostRE = regexp.MustCompile(`(?i)doubleclick\.net|googlesyndication|adsystem|adserver|2mdn\.net|moatads|scorecardresearch|quantserve`)

// extractImages collects content image URLs in document order. Images
// whose declared dimensions mark them as pixels or icons are skipped;
// unsized images pass.
func extractImages(doc *goquery.Document, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data-src", "")
		}
		resolved := absoluteURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		if w, h := imgDimensions(sel); tooSmall(w, h) {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	})
	return out
}

// videoHostRE matches known video providers; embeds from anywhere else
// are not treated as article movies.
var videoHostRE = regexp.MustCompile(`(?i)youtube\.com|youtu\.be|vimeo\.com|dailymotion\.com`)

// extractMovies collects embedded video URLs in document order.
func extractMovies(doc *goquery.Document, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	doc.Find("iframe[src], video[src], video source[src], object[data]").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data", "")
		}
		resolved := absoluteURL(base, src)
		if resolved == "" || seen[resolved] || !videoHostRE.MatchString(resolved) {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	})
	return out
}

// extractTopImage picks the lead image. A socially declared image wins
// outright; otherwise img candidates inside the article body are scored
// by pixel area, ties broken by document order. Unsized candidates score
// zero but stay eligible, and the sizer, when present and allowed to
// fetch, fills in missing dimensions.
func (e *Extractor) extractTopImage(declared string, doc *goquery.Document, bodyNode *html.Node, base *url.URL) string {
	if declared != "" {
		return declared
	}

	region := doc.Selection
	if bodyNode != nil {
		if sel := doc.FindNodes(bodyNode); len(sel.Nodes) > 0 {
			region = sel
		}
	}

	best := ""
	bestArea := -1
	region.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data-src", "")
		}
		resolved := absoluteURL(base, src)
		if resolved == "" || adHostRE.MatchString(resolved) {
			return
		}
		w, h := imgDimensions(sel)
		if w == 0 && h == 0 && e.sizer != nil && e.cfg.FetchImages {
			w, h, _ = e.sizer.Size(resolved)
		}
		if tooSmall(w, h) {
			return
		}
		if area := w * h; area > bestArea {
			bestArea = area
			best = resolved
		}
	})
	return best
}

func imgDimensions(sel *goquery.Selection) (w, h int) {
	return dimensionAttr(sel, "width"), dimensionAttr(sel, "height")
}

func tooSmall(w, h int) bool {
	if w == 1 && h == 1 {
		return true
	}
	return (w > 0 && w < minImagePixels) || (h > 0 && h < minImagePixels)
}

func dimensionAttr(sel *goquery.Selection, name string) int {
	v := strings.TrimSpace(sel.AttrOr(name, ""))
	v = strings.TrimSuffix(v, "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
