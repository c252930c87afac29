package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/charset"
	"github.com/newsfold/gazeta/fs"
	"github.com/newsfold/gazeta/goquery"
	"github.com/newsfold/gazeta/htmltomarkdown"
	gazetahttp "github.com/newsfold/gazeta/http"
	"github.com/newsfold/gazeta/nlp"
	"github.com/newsfold/gazeta/sqlite"
	"github.com/newsfold/gazeta/whatlanggo"
	gazetazerolog "github.com/newsfold/gazeta/zerolog"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage locations. Set before calling Run().
	DBPath   string
	CacheDir string
	SeenPath string

	// SQLite database used by the store implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleStore gazeta.ArticleStore
	SourceStore  gazeta.SourceStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		CacheDir: defaultCacheDir(),
		SeenPath: filepath.Join(stateDir(), "seen.bloom"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gazeta"),
		kong.Description("News article extraction and site crawling"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gazeta --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Assemble the pipeline configuration: file values first, command
	// flags on top.
	opts, err := fileConfigOptions(cli.Config)
	if err != nil {
		return err
	}
	switch cmd {
	case "article":
		opts = append(opts, cli.Article.configOptions()...)
	case "crawl":
		opts = append(opts, cli.Crawl.configOptions()...)
	}
	cfg, err := gazeta.NewConfig(opts...)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if cli.Verbose {
		logger = zerolog.New(stderr).With().Timestamp().Logger()
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GAZETA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ArticleStore = sqlite.NewArticleService(m.DB)
	m.SourceStore = sqlite.NewSourceService(m.DB)
	deps.DB = m.DB
	deps.Articles = m.ArticleStore
	deps.Sources = m.SourceStore

	cache, err := fs.NewCache(m.CacheDir, fs.WithMaxEntries(cfg.MaxFileMemo))
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set GAZETA_CACHE to use a different cache directory\n")
		return fmt.Errorf("failed to open download cache at %q: %w", m.CacheDir, err)
	}
	deps.Cache = gazetazerolog.NewLoggingCache(cache, logger)

	fetcher, err := newFetcher(cfg, deps.Cache, logger)
	if err != nil {
		return err
	}

	deps.Client = &gazeta.Client{
		Config:    cfg,
		Fetcher:   fetcher,
		Decoder:   charset.NewDecoder(),
		Extractor: goquery.NewExtractor(cfg, goquery.WithImageSizer(gazetahttp.NewImageSizer())),
		NLP:       nlp.NewEngine(cfg),
		Detector:  whatlanggo.NewDetector(),
	}
	deps.Links = goquery.NewLinkExtractor()
	deps.Feeds = gazetahttp.NewFeedReader(fetcher)
	deps.Converter = htmltomarkdown.NewConverter()

	// The crawl command carries the memo across runs; other commands
	// leave it nil so exploratory builds never consume it.
	if cmd == "crawl" && cfg.MemoizeArticles {
		deps.Seen = loadSeenSet(m.SeenPath, cfg.MaxFileMemo)
		deps.SeenPath = m.SeenPath
	}

	return kongCtx.Run(deps)
}

// newFetcher layers the transport: retries closest to the network, the
// response cache above them, logging outermost.
func newFetcher(cfg gazeta.Config, cache gazeta.Cache, logger zerolog.Logger) (gazeta.Fetcher, error) {
	fopts := []gazetahttp.Option{
		gazetahttp.WithTimeout(cfg.RequestTimeout),
		gazetahttp.WithUserAgent(cfg.UserAgent),
	}
	if cfg.Proxy != "" {
		fopts = append(fopts, gazetahttp.WithProxy(cfg.Proxy))
	}
	base, err := gazetahttp.NewFetcher(fopts...)
	if err != nil {
		return nil, err
	}

	var fetcher gazeta.Fetcher = gazetahttp.NewRetryFetcher(base, nil)
	fetcher = gazetahttp.NewCachingFetcher(fetcher, cache)
	return gazetazerolog.NewLoggingFetcher(fetcher, logger), nil
}

func defaultDBPath() string {
	if path := os.Getenv("GAZETA_DB"); path != "" {
		return path
	}
	return filepath.Join(stateDir(), "gazeta.db")
}

func defaultCacheDir() string {
	if dir := os.Getenv("GAZETA_CACHE"); dir != "" {
		return dir
	}
	return filepath.Join(stateDir(), "cache")
}

// stateDir is where the CLI keeps its database, download cache and
// crawl memo.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gazeta"
	}
	dir := filepath.Join(home, ".gazeta")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
