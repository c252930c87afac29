package mock

import "github.com/newsfold/gazeta"

var _ gazeta.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of gazeta.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*gazeta.Extraction, error)
}

func (e *Extractor) Extract(html, pageURL string) (*gazeta.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
