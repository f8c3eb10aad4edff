package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/gemini"
	"github.com/fwojciec/pagedigest/goquery"
	"github.com/fwojciec/pagedigest/htmltomarkdown"
	pdhttp "github.com/fwojciec/pagedigest/http"
	"github.com/fwojciec/pagedigest/nlp"
	"github.com/fwojciec/pagedigest/rod"
	"github.com/fwojciec/pagedigest/scrape"
	pdslog "github.com/fwojciec/pagedigest/slog"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// GeminiAPIKey enables the model tiers of keyword and entity extraction.
	// Empty means heuristics only.
	GeminiAPIKey string

	// Sources holds the structured-source endpoints. Set before calling Run().
	Sources scrape.Sources

	// Pause is the delay after every processed URL.
	Pause time.Duration

	// Fetcher and Renderer replace the HTTP session and the browser when
	// set. Used for end-to-end testing.
	Fetcher  pagedigest.Fetcher
	Renderer pagedigest.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Sources:      scrape.DefaultSources(),
		Pause:        scrape.DefaultPause,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagedigest"),
		kong.Description("Scrape web pages and known trade sources into analyzed JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	urls := cli.URLs
	if len(urls) == 0 {
		urls = cfg.Sources
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to scrape: pass --urls or list them under sources in the config")
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the HTTP session and the browser
	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []pdhttp.Option{
			pdhttp.WithTimeout(cli.Timeout),
			pdhttp.WithRateLimit(cli.Rate),
			pdhttp.WithLogger(logger),
		}
		if cfg.UserAgent != "" {
			opts = append(opts, pdhttp.WithUserAgent(cfg.UserAgent))
		}
		httpFetcher := pdhttp.NewFetcher(opts...)
		defer httpFetcher.Close()
		fetcher = httpFetcher
	}

	renderer := m.Renderer
	if renderer == nil {
		var opts []rod.Option
		if cfg.UserAgent != "" {
			opts = append(opts, rod.WithUserAgent(cfg.UserAgent))
		}
		if cfg.BrowserBin != "" {
			opts = append(opts, rod.WithBrowserOptions(rod.WithBinPath(cfg.BrowserBin)))
		}
		rodRenderer := rod.NewRenderer(opts...)
		defer rodRenderer.Close()
		renderer = rodRenderer
	}

	fetcher = pdslog.NewLoggingFetcher(fetcher, logger)
	renderer = pdslog.NewLoggingRenderer(renderer, logger)

	// Model tiers are optional; without a key the heuristics run alone
	pipeline := &nlp.Pipeline{}
	if m.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  m.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		pipeline.Keywords = &nlp.KeywordChain{Primary: gemini.NewKeywordExtractor(client), Logger: logger}
		pipeline.Entities = &nlp.EntityChain{Model: gemini.NewEntityExtractor(client), Logger: logger}
	}

	scraper := &scrape.Scraper{
		Adapters:  scrape.NewRegistry(scrape.DefaultAdapters(fetcher, renderer, m.Sources)...),
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Tables:    htmltomarkdown.NewConverter(),
		Analyzer:  pipeline,
		Pause:     m.Pause,
		Logger:    logger,
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressFailed:
			fmt.Fprintf(stderr, "  skip %s: %v\n", event.URL, event.Error)
		case scrape.ProgressFinished:
			fmt.Fprintf(stderr, "  Scraped %d of %d URLs\n", event.Completed, event.Total)
		}
	}

	result := scraper.ScrapeAll(ctx, urls, progress)

	if cli.Out == "" {
		return writeResult(stdout, result)
	}

	f, err := os.Create(cli.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeResult(f, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeResult writes the batch as indented JSON with Unicode and HTML
// characters left as they are.
func writeResult(w io.Writer, result *pagedigest.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
