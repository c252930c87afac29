package gazeta

import "time"

// Extraction holds everything pulled out of a single HTML document.
type Extraction struct {
	// Title is the cleaned headline.
	Title string

	// Authors are the bylined author names, in document order.
	Authors []string

	// PublishDate is the publication timestamp, or nil when none was
	// found in metadata or the URL.
	PublishDate *time.Time

	// Text is the main body text, blocks joined by newlines.
	Text string

	// ArticleHTML is the cleaned HTML subtree the body text came from.
	// Populated only when the configuration keeps article HTML.
	ArticleHTML string

	// TopImage is the best candidate for the article's lead image.
	TopImage string

	// Images are all plausible content image URLs, in document order.
	Images []string

	// Movies are embedded video URLs, in document order.
	Movies []string

	// Meta is the full metadata tree built from the document head.
	Meta MetaNamespace

	// MetaLang is the two-letter document language, if declared.
	MetaLang string

	// MetaDescription is the description meta value.
	MetaDescription string

	// MetaKeywords are the values of the keywords meta tag.
	MetaKeywords []string

	// CanonicalLink is the canonical URL, if declared.
	CanonicalLink string
}

// Extractor turns an HTML document into an Extraction. Implementations
// must be pure: the same html and pageURL always produce the same result,
// with no network access.
type Extractor interface {
	// Extract processes raw HTML. The pageURL resolves relative links
	// and serves as a date hint; it may be empty.
	Extract(html, pageURL string) (*Extraction, error)
}

// ImageSizer reports the pixel dimensions of an image. Extraction runs
// without a context, so implementations bound their own requests. An
// extractor carrying a sizer trades strict purity for better lead-image
// picks on markup that omits dimensions.
type ImageSizer interface {
	Size(imageURL string) (width, height int, err error)
}
