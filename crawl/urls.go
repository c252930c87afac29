package crawl

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/newsfold/gazeta"
	"golang.org/x/net/publicsuffix"
)

// articleDateRE spots a publication date in a URL path, such as
// /2013/11/27/ or /2013/nov/27 or -2013-11-27.
var articleDateRE = regexp.MustCompile(`[./\-_]?(19|20)\d{2}[./\-_]?(([0-3]?\d[./\-_])|([a-zA-Z]{3,5}[./\-_]))([0-3]?\d[./\-]?)?`)

// pageExtensions are file extensions an article page may carry. Any
// other extension marks a media or download URL.
var pageExtensions = map[string]bool{
	"html": true, "htm": true, "md": true, "rst": true, "aspx": true,
	"jsp": true, "rhtml": true, "cgi": true, "xhtml": true, "jhtml": true,
	"asp": true, "shtml": true, "php": true,
}

// articleSegments are path segments that mark a URL as editorial
// content even without a date or slug.
var articleSegments = map[string]bool{
	"story": true, "article": true, "feature": true, "featured": true,
	"slides": true, "slideshow": true, "gallery": true, "news": true,
	"video": true, "media": true, "v": true, "radio": true, "press": true,
}

// nonArticleSegments are path segments (or subdomains) that mark site
// utility pages, never articles.
var nonArticleSegments = map[string]bool{
	"careers": true, "contact": true, "about": true, "faq": true,
	"terms": true, "privacy": true, "advert": true, "advertise": true,
	"preferences": true, "feedback": true, "info": true, "browse": true,
	"howto": true, "account": true, "subscribe": true, "donate": true,
	"shop": true, "admin": true,
}

// badBrands are registered domains that host link shorteners, trackers
// and storefronts rather than news.
var badBrands = map[string]bool{
	"amazon": true, "doubleclick": true, "twitter": true, "facebook": true,
}

// categoryStopwords disqualify a link from being a section front when
// any of them appears in its path segment or subdomain.
var categoryStopwords = []string{
	"about", "help", "privacy", "legal", "feedback", "sitemap", "profile",
	"account", "mobile", "facebook", "myspace", "twitter", "linkedin",
	"bebo", "friendster", "stumbleupon", "youtube", "vimeo", "store",
	"mail", "preferences", "maps", "password", "imgur", "flickr",
	"search", "subscription", "itunes", "siteindex", "events", "stop",
	"jobs", "careers", "newsletter", "subscribe", "academy", "shopping",
	"purchase", "site-map", "donate", "contribute", "login", "register",
	"masthead", "reprints", "faq", "terms",
}

// ValidArticleURL guesses from shape alone whether a URL points at a
// news article. A date in the path or a long dashed slug is a strong
// yes; utility segments, media extensions and shallow paths are a no.
func ValidArticleURL(rawURL string) bool {
	// Shortest plausible article URL: http://x.co/a-b-c.
	if len(rawURL) < 11 {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || !strings.HasPrefix(u.Path, "/") {
		return false
	}

	chunks := pathChunks(u.Path)

	// Media and download extensions disqualify outright; page
	// extensions come off so the slug itself can be judged.
	if len(chunks) > 0 {
		last := chunks[len(chunks)-1]
		if ext := fileExtension(last); ext != "" {
			if !pageExtensions[ext] {
				return false
			}
			chunks[len(chunks)-1] = strings.TrimSuffix(last, "."+ext)
		}
	}

	// Index pages carry no signal of their own.
	filtered := chunks[:0]
	for _, chunk := range chunks {
		if !strings.EqualFold(chunk, "index") {
			filtered = append(filtered, chunk)
		}
	}
	chunks = filtered

	brand := brandLabel(u.Host)
	if badBrands[brand] {
		return false
	}

	// A heavily dashed or underscored slug reads as a headline, unless
	// the "slug" is just the site's own name repeated.
	if len(chunks) > 0 {
		slug := strings.ToLower(chunks[len(chunks)-1])
		dashes := strings.Count(slug, "-")
		unders := strings.Count(slug, "_")
		if dashes > 4 || unders > 4 {
			sep := "-"
			if unders > dashes {
				sep = "_"
			}
			if !containsWord(strings.Split(slug, sep), brand) {
				return true
			}
		}
	}

	// Articles live at least two levels deep.
	if len(chunks) <= 1 {
		return false
	}

	for _, chunk := range chunks {
		if nonArticleSegments[strings.ToLower(chunk)] {
			return false
		}
	}
	if nonArticleSegments[subdomainOf(u.Host)] {
		return false
	}

	if articleDateRE.MatchString(u.Path) {
		return true
	}

	for _, chunk := range chunks {
		if articleSegments[strings.ToLower(chunk)] {
			return true
		}
	}
	return false
}

// CategoryURLs picks the links that look like section fronts of the
// site at sourceURL: sibling subdomains of the same brand and
// single-segment paths, minus known utility pages. The source itself is
// always included. The result is sorted and deduplicated, so rebuilding
// a source from the same page yields identical categories.
func CategoryURLs(sourceURL string, links []gazeta.Link) []string {
	src, err := url.Parse(sourceURL)
	if err != nil {
		return nil
	}
	brand := brandLabel(src.Host)

	seen := make(map[string]bool)
	var categories []string
	add := func(candidate string) {
		normalized, err := gazeta.NormalizeURL(candidate)
		if err != nil || seen[normalized] {
			return
		}
		seen[normalized] = true
		categories = append(categories, normalized)
	}

	add(sourceURL)

	for _, link := range links {
		u, err := url.Parse(link.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}

		if !strings.EqualFold(u.Host, src.Host) {
			// A sibling subdomain of the same brand is a section
			// (world.example.com next to example.com). Mobile mirrors
			// and utility subdomains are not.
			if brandLabel(u.Host) != brand {
				continue
			}
			sub := subdomainOf(u.Host)
			if sub == "m" || sub == "i" || sub == "mobile" || utilityName(sub) {
				continue
			}
			add(u.Scheme + "://" + strings.ToLower(u.Host))
			continue
		}

		chunks := pathChunks(u.Path)
		if len(chunks) == 2 && strings.EqualFold(chunks[1], "index.html") {
			chunks = chunks[:1]
		}
		if len(chunks) != 1 {
			continue
		}
		segment := strings.ToLower(strings.TrimSuffix(chunks[0], ".html"))
		// Section names are short; anything longer is a page slug.
		if segment == "" || len(segment) > 13 || utilityName(segment) {
			continue
		}
		add(u.Scheme + "://" + strings.ToLower(u.Host) + "/" + chunks[0])
	}

	sort.Strings(categories)
	return categories
}

// brandLabel returns the registered-domain label of a host:
// "cnn" for edition.cnn.com, "bbc" for www.bbc.co.uk.
func brandLabel(host string) string {
	host = normalizeHost(host)
	registered, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registered = host
	}
	label, _, _ := strings.Cut(registered, ".")
	return label
}

// subdomainOf returns the subdomain part of a host, empty when the host
// is the registered domain itself.
func subdomainOf(host string) string {
	host = normalizeHost(host)
	registered, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil || len(registered) >= len(host) {
		return ""
	}
	return strings.TrimSuffix(host[:len(host)-len(registered)], ".")
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	return host
}

func pathChunks(path string) []string {
	var chunks []string
	for _, chunk := range strings.Split(path, "/") {
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// fileExtension returns the extension of a path segment, or "" when the
// segment has none. Extensions longer than five characters are treated
// as part of the name, not a file type.
func fileExtension(segment string) string {
	idx := strings.LastIndex(segment, ".")
	if idx < 0 || idx == len(segment)-1 {
		return ""
	}
	ext := strings.ToLower(segment[idx+1:])
	if len(ext) > 5 {
		return ""
	}
	for i := 0; i < len(ext); i++ {
		c := ext[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}

func containsWord(words []string, want string) bool {
	for _, w := range words {
		if w == want {
			return true
		}
	}
	return false
}

func utilityName(name string) bool {
	if name == "" {
		return false
	}
	for _, w := range categoryStopwords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}
