package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newsfold/gazeta"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the pipeline configuration keys a YAML file may
// set. Pointer fields distinguish an absent key from an explicit zero
// value.
type FileConfig struct {
	Language        string  `yaml:"language"`
	UseMetaLanguage *bool   `yaml:"use_meta_language"`
	MemoizeArticles *bool   `yaml:"memoize_articles"`
	MaxFileMemo     int     `yaml:"max_file_memo"`
	FetchImages     *bool   `yaml:"fetch_images"`
	NumberThreads   int     `yaml:"number_threads"`
	RequestTimeout  string  `yaml:"request_timeout"`
	UserAgent       string  `yaml:"user_agent"`
	Proxy           string  `yaml:"proxy"`
	KeepArticleHTML *bool   `yaml:"keep_article_html"`
	MinWordCount    *int    `yaml:"min_word_count"`
	MinBlockWords   int     `yaml:"min_block_words"`
	DecayFactor     float64 `yaml:"decay_factor"`
	TopNKeywords    int     `yaml:"top_n_keywords"`
	TopKSentences   int     `yaml:"top_k_sentences"`
}

// LoadFileConfig reads a YAML configuration file. Unknown keys are
// rejected so a typo fails at startup instead of silently falling back
// to a default.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, gazeta.Errorf(gazeta.EINVALID, "config file %s: %v", path, err)
	}
	return fc, nil
}

// Options converts the file values into configuration options. Command
// flags are applied after these, so they win on conflict.
func (fc FileConfig) Options() ([]gazeta.ConfigOption, error) {
	var opts []gazeta.ConfigOption
	if fc.Language != "" {
		opts = append(opts, gazeta.WithLanguage(fc.Language))
	}
	if fc.UseMetaLanguage != nil {
		opts = append(opts, gazeta.WithUseMetaLanguage(*fc.UseMetaLanguage))
	}
	if fc.MemoizeArticles != nil {
		opts = append(opts, gazeta.WithMemoizeArticles(*fc.MemoizeArticles))
	}
	if fc.MaxFileMemo > 0 {
		opts = append(opts, gazeta.WithMaxFileMemo(fc.MaxFileMemo))
	}
	if fc.FetchImages != nil {
		opts = append(opts, gazeta.WithFetchImages(*fc.FetchImages))
	}
	if fc.NumberThreads > 0 {
		opts = append(opts, gazeta.WithNumberThreads(fc.NumberThreads))
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return nil, gazeta.Errorf(gazeta.EINVALID, "request_timeout: %v", err)
		}
		opts = append(opts, gazeta.WithRequestTimeout(d))
	}
	if fc.UserAgent != "" {
		opts = append(opts, gazeta.WithUserAgent(fc.UserAgent))
	}
	if fc.Proxy != "" {
		opts = append(opts, gazeta.WithProxy(fc.Proxy))
	}
	if fc.KeepArticleHTML != nil {
		opts = append(opts, gazeta.WithKeepArticleHTML(*fc.KeepArticleHTML))
	}
	if fc.MinWordCount != nil {
		opts = append(opts, gazeta.WithMinWordCount(*fc.MinWordCount))
	}
	if fc.MinBlockWords > 0 {
		opts = append(opts, gazeta.WithMinBlockWords(fc.MinBlockWords))
	}
	if fc.DecayFactor > 0 {
		opts = append(opts, gazeta.WithDecayFactor(fc.DecayFactor))
	}
	if fc.TopNKeywords > 0 {
		opts = append(opts, gazeta.WithTopNKeywords(fc.TopNKeywords))
	}
	if fc.TopKSentences > 0 {
		opts = append(opts, gazeta.WithTopKSentences(fc.TopKSentences))
	}
	return opts, nil
}

// fileConfigOptions loads the optional configuration file named on the
// command line. No file means library defaults.
func fileConfigOptions(path string) ([]gazeta.ConfigOption, error) {
	if path == "" {
		return nil, nil
	}
	fc, err := LoadFileConfig(path)
	if err != nil {
		return nil, err
	}
	return fc.Options()
}
