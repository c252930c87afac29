package gazeta

// Converter renders article HTML as Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, typically the article body
	// kept by an Extraction, into Markdown.
	Convert(html string) (string, error)
}
