package mock

import "github.com/newsfold/gazeta"

var _ gazeta.NLP = (*NLP)(nil)

// NLP is a mock implementation of gazeta.NLP.
type NLP struct {
	ProcessFn func(text, title, lang string) (*gazeta.NLPResult, error)
}

func (n *NLP) Process(text, title, lang string) (*gazeta.NLPResult, error) {
	return n.ProcessFn(text, title, lang)
}

var _ gazeta.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of gazeta.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) string
}

func (d *LanguageDetector) Detect(text string) string {
	return d.DetectFn(text)
}
