package gazeta

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// DownloadState tells whether a download was attempted for an article.
type DownloadState int

// Download states. A failed attempt still counts as attempted; the
// failure itself is recorded on the article.
const (
	DownloadNotStarted DownloadState = iota
	DownloadAttempted
)

// ParseState tells whether an article's document has been parsed.
type ParseState int

// Parse states.
const (
	NotParsed ParseState = iota
	Parsed
)

// NLPState tells whether the NLP stage has run.
type NLPState int

// NLP states.
const (
	NLPNotRun NLPState = iota
	NLPRun
)

// Article is the processing unit for one URL. It moves strictly forward
// through download, parse and nlp; stages called out of order fail with
// ELIFECYCLE. An article is single-use: to reprocess a URL, construct a
// new one.
type Article struct {
	// URL is the canonical article location (see NormalizeURL).
	URL string `json:"url"`

	// OriginalURL is the location exactly as given to NewArticle.
	OriginalURL string `json:"originalUrl"`

	// HTML is the decoded document. It stays empty until download and
	// remains empty when the download failed.
	HTML string `json:"-"`

	// Fields below are populated by Parse.

	Title           string        `json:"title"`
	Authors         []string      `json:"authors"`
	PublishDate     *time.Time    `json:"publishDate"`
	Text            string        `json:"text"`
	ArticleHTML     string        `json:"articleHtml,omitempty"`
	TopImage        string        `json:"topImage"`
	Images          []string      `json:"images"`
	Movies          []string      `json:"movies"`
	Meta            MetaNamespace `json:"meta"`
	MetaLang        string        `json:"metaLang"`
	MetaDescription string        `json:"metaDescription"`
	MetaKeywords    []string      `json:"metaKeywords"`
	CanonicalLink   string        `json:"canonicalLink"`

	// Fields below are populated by NLP.

	Keywords []Keyword `json:"keywords"`
	Summary  string    `json:"summary"`

	config    Config
	fetcher   Fetcher
	decoder   Decoder
	extractor Extractor
	nlp       NLP
	detector  LanguageDetector

	downloadState DownloadState
	parseState    ParseState
	nlpState      NLPState
	downloadErr   error
	finalURL      string
}

// ArticleOption configures an Article at construction time.
type ArticleOption func(*Article)

// WithConfig replaces the default configuration. The article keeps its
// own copy, so later changes by the caller have no effect.
func WithConfig(cfg Config) ArticleOption {
	return func(a *Article) {
		a.config = cfg
	}
}

// WithFetcher sets the transport used when Download is called without a
// pre-fetched response.
func WithFetcher(f Fetcher) ArticleOption {
	return func(a *Article) {
		a.fetcher = f
	}
}

// WithDecoder sets the charset decoder applied to downloaded bytes.
// Without one, invalid UTF-8 is substituted byte-wise.
func WithDecoder(d Decoder) ArticleOption {
	return func(a *Article) {
		a.decoder = d
	}
}

// WithExtractor sets the extraction engine run by Parse.
func WithExtractor(e Extractor) ArticleOption {
	return func(a *Article) {
		a.extractor = e
	}
}

// WithNLP sets the engine run by the NLP stage.
func WithNLP(n NLP) ArticleOption {
	return func(a *Article) {
		a.nlp = n
	}
}

// WithDetector sets the language detector consulted when the
// configuration asks for automatic language resolution.
func WithDetector(d LanguageDetector) ArticleOption {
	return func(a *Article) {
		a.detector = d
	}
}

// NewArticle constructs an article for rawURL. The URL is validated and
// normalized; a malformed URL fails with EINVALID.
func NewArticle(rawURL string, opts ...ArticleOption) (*Article, error) {
	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	a := &Article{
		URL:         norm,
		OriginalURL: rawURL,
		config:      cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.config.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Config returns the article's configuration snapshot.
func (a *Article) Config() Config { return a.config }

// DownloadState returns the download stage state.
func (a *Article) DownloadState() DownloadState { return a.downloadState }

// ParseState returns the parse stage state.
func (a *Article) ParseState() ParseState { return a.parseState }

// NLPState returns the nlp stage state.
func (a *Article) NLPState() NLPState { return a.nlpState }

// DownloadError returns the failure recorded by Download, or nil when the
// download succeeded or was never attempted.
func (a *Article) DownloadError() error { return a.downloadErr }

// Downloaded reports whether a download attempt produced a document.
func (a *Article) Downloaded() bool {
	return a.downloadState == DownloadAttempted && a.downloadErr == nil
}

// FinalURL returns the post-redirect location when known, else the
// canonical URL. Relative links resolve against it.
func (a *Article) FinalURL() string {
	if a.finalURL != "" {
		return a.finalURL
	}
	return a.URL
}

// Download fetches the article document. A nil resp fetches over the
// article's transport; a non-nil resp substitutes captured or mocked
// content without touching the network. Transport and HTTP failures are
// recorded on the article rather than returned, so batch crawls tolerate
// partial failure; the article still advances to the attempted state with
// an empty document.
func (a *Article) Download(ctx context.Context, resp *Response) error {
	if a.downloadState != DownloadNotStarted {
		return Errorf(ELIFECYCLE, "article %s already downloaded", a.URL)
	}
	if resp == nil {
		if a.fetcher == nil {
			return Errorf(EINVALID, "article %s has no fetcher and no pre-fetched response", a.URL)
		}
		fetchCtx := ctx
		if a.config.RequestTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
			defer cancel()
		}
		r, err := a.fetcher.Fetch(fetchCtx, a.URL)
		if err != nil {
			a.downloadErr = err
			a.downloadState = DownloadAttempted
			return nil
		}
		resp = r
	}
	a.downloadState = DownloadAttempted
	if !resp.Success() {
		a.downloadErr = Errorf(EINTERNAL, "download %s: unexpected status %d", a.URL, resp.StatusCode)
		return nil
	}
	if resp.FinalURL != "" {
		a.finalURL = resp.FinalURL
	}
	a.HTML = a.decodeBody(resp.Body, resp.ContentType)
	return nil
}

func (a *Article) decodeBody(body []byte, contentType string) string {
	if a.decoder != nil {
		return a.decoder.Decode(body, contentType)
	}
	return strings.ToValidUTF8(string(body), string(utf8.RuneError))
}

// Parse runs the extraction engine over the downloaded document and fills
// the article's extracted fields. It requires a prior download attempt; a
// failed download parses to all-empty fields rather than erroring, and an
// engine failure on pathological markup degrades the same way.
func (a *Article) Parse() error {
	if a.downloadState == DownloadNotStarted {
		return Errorf(ELIFECYCLE, "article %s must be downloaded before parse", a.URL)
	}
	if a.parseState != NotParsed {
		return Errorf(ELIFECYCLE, "article %s already parsed", a.URL)
	}
	if a.HTML != "" {
		if a.extractor == nil {
			return Errorf(EINVALID, "article %s has no extractor", a.URL)
		}
		if ext, err := a.extractor.Extract(a.HTML, a.FinalURL()); err == nil && ext != nil {
			a.applyExtraction(ext)
		}
	}
	a.parseState = Parsed
	return nil
}

func (a *Article) applyExtraction(ext *Extraction) {
	a.Title = ext.Title
	a.Authors = append([]string(nil), ext.Authors...)
	a.PublishDate = ext.PublishDate
	a.Text = ext.Text
	if a.config.KeepArticleHTML {
		a.ArticleHTML = ext.ArticleHTML
	}
	a.TopImage = ext.TopImage
	a.Images = append([]string(nil), ext.Images...)
	a.Movies = append([]string(nil), ext.Movies...)
	a.Meta = ext.Meta
	a.MetaLang = ext.MetaLang
	a.MetaDescription = ext.MetaDescription
	a.MetaKeywords = append([]string(nil), ext.MetaKeywords...)
	a.CanonicalLink = ext.CanonicalLink
}

// NLP scores keywords and builds the summary from the parsed text. It
// requires a completed parse, even when the download produced nothing.
// An article with no text and no title advances with empty results.
func (a *Article) NLP() error {
	if a.parseState != Parsed {
		return Errorf(ELIFECYCLE, "article %s must be parsed before nlp", a.URL)
	}
	if a.nlpState != NLPNotRun {
		return Errorf(ELIFECYCLE, "article %s nlp already ran", a.URL)
	}
	if a.Text != "" || a.Title != "" {
		if a.nlp == nil {
			return Errorf(EINVALID, "article %s has no nlp engine", a.URL)
		}
		if res, err := a.nlp.Process(a.Text, a.Title, a.Language()); err == nil && res != nil {
			a.Keywords = append([]Keyword(nil), res.Keywords...)
			a.Summary = res.Summary
		}
	}
	a.nlpState = NLPRun
	return nil
}

// Language resolves the language the NLP stage uses: document metadata
// when the configuration allows it, then the configured code, then the
// detector for automatic mode, then English.
func (a *Article) Language() string {
	if a.config.UseMetaLanguage && a.MetaLang != "" {
		return a.MetaLang
	}
	if a.config.Language != LanguageAuto {
		return a.config.Language
	}
	if a.detector != nil {
		if lang := a.detector.Detect(a.Text); lang != "" {
			return lang
		}
	}
	return DefaultLanguage
}

// HasFullText reports whether the extracted body clears the configured
// word floor. Word counting here is whitespace-based; it is a coarse
// signal, not the NLP tokenizer.
func (a *Article) HasFullText() bool {
	return len(strings.Fields(a.Text)) >= a.config.MinWordCount
}
