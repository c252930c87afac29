package main

import (
	"context"
	"io"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/bloom"
	"github.com/newsfold/gazeta/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Client    *gazeta.Client
	Links     gazeta.LinkExtractor
	Feeds     gazeta.FeedReader
	Cache     gazeta.Cache
	Converter gazeta.Converter
	Articles  gazeta.ArticleStore
	Sources   gazeta.SourceStore

	// Seen is the cross-run article memo, loaded for the crawl command
	// and written back to SeenPath after a successful run.
	Seen     *bloom.SeenSet
	SeenPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Log fetch and cache activity to stderr"`

	Article ArticleCmd `cmd:"" help:"Download, parse and summarize a single article"`
	Build   BuildCmd   `cmd:"" help:"Discover a news site's categories, feeds and articles"`
	Crawl   CrawlCmd   `cmd:"" help:"Build sources and download their articles into the store"`
	Hot     HotCmd     `cmd:"" help:"Show currently trending search terms"`
	Popular PopularCmd `cmd:"" help:"Show well-known news source URLs"`
	Cache   CacheCmd   `cmd:"" help:"Manage the download cache"`
}

// ArticleCmd is the "article" subcommand.
type ArticleCmd struct {
	URL      string `arg:"" help:"Article URL"`
	Language string `short:"l" help:"Two-letter language code, or 'auto' to detect"`
	Format   string `short:"f" default:"text" enum:"text,markdown,json" help:"Output format (text, markdown, json)"`
	Out      string `short:"o" type:"path" help:"Write a Markdown file under this directory instead of printing"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	URL         string `arg:"" help:"News site home page URL"`
	MaxArticles int    `help:"Cap the number of articles one build generates"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs        []string `arg:"" optional:"" help:"News site home pages (default: every stored source)"`
	Threads     int      `short:"t" help:"Download workers per source (default: configured thread count)"`
	MaxArticles int      `help:"Cap the number of articles generated per source"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain"`
	Fresh       bool     `help:"Ignore article URLs remembered from earlier crawls"`
}

// HotCmd is the "hot" subcommand.
type HotCmd struct {
	Geo string `default:"US" help:"Two-letter country code for trends"`
}

// PopularCmd is the "popular" subcommand.
type PopularCmd struct{}

// CacheCmd is the "cache" subcommand.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Delete every cached download"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}
