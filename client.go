package gazeta

import "context"

// Client bundles the pipeline collaborators so call sites construct
// ready-to-run articles in one step instead of wiring five options per
// article.
type Client struct {
	Config    Config
	Fetcher   Fetcher
	Decoder   Decoder
	Extractor Extractor
	NLP       NLP
	Detector  LanguageDetector
}

// NewArticle constructs an article wired with the client's collaborators.
func (c *Client) NewArticle(rawURL string) (*Article, error) {
	return NewArticle(rawURL,
		WithConfig(c.Config),
		WithFetcher(c.Fetcher),
		WithDecoder(c.Decoder),
		WithExtractor(c.Extractor),
		WithNLP(c.NLP),
		WithDetector(c.Detector),
	)
}

// Process runs the full pipeline for one URL: download, parse, nlp.
// A failed download is not an error here; the returned article carries
// the failure and all-empty fields.
func (c *Client) Process(ctx context.Context, rawURL string) (*Article, error) {
	a, err := c.NewArticle(rawURL)
	if err != nil {
		return nil, err
	}
	if err := a.Download(ctx, nil); err != nil {
		return nil, err
	}
	if err := a.Parse(); err != nil {
		return nil, err
	}
	if err := a.NLP(); err != nil {
		return nil, err
	}
	return a, nil
}

// Fulltext extracts body text straight from raw HTML, bypassing the
// article lifecycle. The pageURL may be empty.
func (c *Client) Fulltext(html, pageURL string) (string, error) {
	if c.Extractor == nil {
		return "", Errorf(EINVALID, "client has no extractor")
	}
	ext, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return "", err
	}
	return ext.Text, nil
}
