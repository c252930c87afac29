package gazeta

// Link is an anchor discovered in a page.
type Link struct {
	// URL is the link target resolved to an absolute URL.
	URL string

	// Text is the anchor text, whitespace-collapsed.
	Text string
}

// FeedRef is a syndication feed advertised by a page.
type FeedRef struct {
	// URL is the feed location resolved to an absolute URL.
	URL string

	// Title is the advertised feed title, if any.
	Title string
}

// LinkExtractor pulls links out of HTML documents.
type LinkExtractor interface {
	// Links returns the document's anchors in document order, resolved
	// against baseURL, deduplicated, with same-page fragments dropped.
	Links(html, baseURL string) ([]Link, error)

	// FeedLinks returns feeds advertised through rel="alternate" links.
	FeedLinks(html, baseURL string) ([]FeedRef, error)
}
