package gazeta

import (
	"net/url"
	"regexp"
	"time"
)

// Configuration defaults. Every default can be overridden with a
// ConfigOption at construction time.
const (
	DefaultLanguage       = "en"
	DefaultMaxFileMemo    = 20000
	DefaultNumberThreads  = 10
	DefaultRequestTimeout = 7 * time.Second
	DefaultMinWordCount   = 300
	DefaultMinBlockWords  = 6
	DefaultDecayFactor    = 0.6
	DefaultTopNKeywords   = 10
	DefaultTopKSentences  = 5
)

// LanguageAuto requests per-article language resolution from document
// metadata or, failing that, from the text itself.
const LanguageAuto = "auto"

var languageCodeRE = regexp.MustCompile(`^[a-z]{2}$`)

// Config carries the knobs shared by the whole extraction pipeline.
// It is constructed with NewConfig, validated eagerly, and treated as a
// read-only snapshot afterwards: articles and sources copy it by value,
// so later mutation by the caller has no effect on work in flight.
type Config struct {
	// Language is a two-letter ISO 639-1 code, or LanguageAuto to resolve
	// the language per article.
	Language string

	// UseMetaLanguage allows document metadata (html lang attribute,
	// content-language, og:locale) to override Language. It is forced to
	// false when Language is set explicitly to a concrete code.
	UseMetaLanguage bool

	// MemoizeArticles makes repeated source builds skip article URLs seen
	// in earlier builds of the same process.
	MemoizeArticles bool

	// MaxFileMemo caps the number of responses retained by the on-disk
	// download cache.
	MaxFileMemo int

	// FetchImages allows image bytes to be fetched when attribute-based
	// top image scoring is inconclusive.
	FetchImages bool

	// NumberThreads is the per-source download concurrency.
	NumberThreads int

	// RequestTimeout bounds a single download attempt.
	RequestTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Proxy is an optional proxy URL applied to the HTTP transport.
	Proxy string

	// KeepArticleHTML retains the cleaned HTML subtree of the article
	// body alongside its text.
	KeepArticleHTML bool

	// MinWordCount is the word floor under which an extracted body is
	// not considered full article text.
	MinWordCount int

	// MinBlockWords is the word floor under which a text block is
	// dropped as boilerplate during body assembly.
	MinBlockWords int

	// DecayFactor attenuates a text block's score per ancestor level
	// when scores propagate up the DOM.
	DecayFactor float64

	// TopNKeywords is the number of keywords kept by the NLP stage.
	TopNKeywords int

	// TopKSentences is the number of sentences kept in the summary.
	TopKSentences int

	languageSet bool
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithLanguage sets the pipeline language to a two-letter ISO 639-1 code
// or LanguageAuto. Setting a concrete code forces UseMetaLanguage off.
func WithLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.Language = lang
		c.languageSet = lang != LanguageAuto
	}
}

// WithUseMetaLanguage toggles language resolution from document metadata.
func WithUseMetaLanguage(enabled bool) ConfigOption {
	return func(c *Config) {
		c.UseMetaLanguage = enabled
	}
}

// WithMemoizeArticles toggles cross-build article memoization.
func WithMemoizeArticles(enabled bool) ConfigOption {
	return func(c *Config) {
		c.MemoizeArticles = enabled
	}
}

// WithMaxFileMemo caps the on-disk download cache size.
func WithMaxFileMemo(n int) ConfigOption {
	return func(c *Config) {
		c.MaxFileMemo = n
	}
}

// WithFetchImages toggles fetching image bytes for top image scoring.
func WithFetchImages(enabled bool) ConfigOption {
	return func(c *Config) {
		c.FetchImages = enabled
	}
}

// WithNumberThreads sets the per-source download concurrency.
func WithNumberThreads(n int) ConfigOption {
	return func(c *Config) {
		c.NumberThreads = n
	}
}

// WithRequestTimeout bounds a single download attempt.
func WithRequestTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithProxy routes downloads through the given proxy URL.
func WithProxy(proxyURL string) ConfigOption {
	return func(c *Config) {
		c.Proxy = proxyURL
	}
}

// WithKeepArticleHTML retains the cleaned article body HTML after parse.
func WithKeepArticleHTML(enabled bool) ConfigOption {
	return func(c *Config) {
		c.KeepArticleHTML = enabled
	}
}

// WithMinWordCount sets the full-text word floor.
func WithMinWordCount(n int) ConfigOption {
	return func(c *Config) {
		c.MinWordCount = n
	}
}

// WithMinBlockWords sets the boilerplate word floor for body assembly.
func WithMinBlockWords(n int) ConfigOption {
	return func(c *Config) {
		c.MinBlockWords = n
	}
}

// WithDecayFactor sets the per-level score decay for body extraction.
func WithDecayFactor(f float64) ConfigOption {
	return func(c *Config) {
		c.DecayFactor = f
	}
}

// WithTopNKeywords sets how many keywords the NLP stage keeps.
func WithTopNKeywords(n int) ConfigOption {
	return func(c *Config) {
		c.TopNKeywords = n
	}
}

// WithTopKSentences sets how many sentences the summary keeps.
func WithTopKSentences(k int) ConfigOption {
	return func(c *Config) {
		c.TopKSentences = k
	}
}

// NewConfig returns a validated Config. Defaults follow the package
// documentation; any invalid override fails construction with EINVALID
// rather than surfacing later mid-crawl.
func NewConfig(opts ...ConfigOption) (Config, error) {
	c := Config{
		Language:        DefaultLanguage,
		UseMetaLanguage: true,
		MemoizeArticles: true,
		MaxFileMemo:     DefaultMaxFileMemo,
		FetchImages:     true,
		NumberThreads:   DefaultNumberThreads,
		RequestTimeout:  DefaultRequestTimeout,
		UserAgent:       "gazeta/" + Version,
		MinWordCount:    DefaultMinWordCount,
		MinBlockWords:   DefaultMinBlockWords,
		DecayFactor:     DefaultDecayFactor,
		TopNKeywords:    DefaultTopNKeywords,
		TopKSentences:   DefaultTopKSentences,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.languageSet {
		c.UseMetaLanguage = false
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	if c.Language != LanguageAuto && !languageCodeRE.MatchString(c.Language) {
		return Errorf(EINVALID, "language must be a two-letter ISO 639-1 code or %q, got %q", LanguageAuto, c.Language)
	}
	if c.MaxFileMemo < 1 {
		return Errorf(EINVALID, "max file memo must be positive, got %d", c.MaxFileMemo)
	}
	if c.NumberThreads < 1 {
		return Errorf(EINVALID, "number of threads must be positive, got %d", c.NumberThreads)
	}
	if c.RequestTimeout <= 0 {
		return Errorf(EINVALID, "request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.UserAgent == "" {
		return Errorf(EINVALID, "user agent required")
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Errorf(EINVALID, "proxy must be an absolute URL, got %q", c.Proxy)
		}
	}
	if c.MinWordCount < 0 {
		return Errorf(EINVALID, "min word count must not be negative, got %d", c.MinWordCount)
	}
	if c.MinBlockWords < 1 {
		return Errorf(EINVALID, "min block words must be positive, got %d", c.MinBlockWords)
	}
	if c.DecayFactor <= 0 || c.DecayFactor > 1 {
		return Errorf(EINVALID, "decay factor must be in (0, 1], got %g", c.DecayFactor)
	}
	if c.TopNKeywords < 1 {
		return Errorf(EINVALID, "top N keywords must be positive, got %d", c.TopNKeywords)
	}
	if c.TopKSentences < 1 {
		return Errorf(EINVALID, "top K sentences must be positive, got %d", c.TopKSentences)
	}
	return nil
}
