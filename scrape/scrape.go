// Package scrape orchestrates scraping: it routes each URL to a structured
// source adapter or the generic extraction path, runs the analysis pipeline
// and collects per-URL results and failures.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
	"github.com/fwojciec/pagedigest/goquery"
	"github.com/fwojciec/pagedigest/nlp"
)

// DefaultPause is the delay after every processed URL.
const DefaultPause = 250 * time.Millisecond

// MinMainTextLength is the length below which the generic path discards the
// selected container and uses the text of the whole cleaned document.
const MinMainTextLength = 300

// Scraper turns URLs into analyzed page results.
type Scraper struct {
	Adapters  pagedigest.AdapterRegistry
	Fetcher   pagedigest.Fetcher
	Extractor pagedigest.ContentExtractor
	Tables    pagedigest.TableRenderer
	Analyzer  *nlp.Pipeline
	Pause     time.Duration
	Logger    *slog.Logger
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeOne runs every stage for a single URL. Either all stages succeed or
// an error is returned; no partial result is produced.
func (s *Scraper) ScrapeOne(ctx context.Context, url string) (result *pagedigest.PageResult, err error) {
	adapter, ok := s.Adapters.Lookup(url)

	if s.Logger != nil {
		defer func(begin time.Time) {
			name := "generic"
			if ok {
				name = adapter.Name
			}
			s.Logger.Info("scrape",
				"url", url,
				"adapter", name,
				"duration", time.Since(begin),
				"err", err,
			)
		}(time.Now())
	}

	if ok {
		return s.scrapeAdapter(ctx, url, adapter)
	}
	return s.scrapeGeneric(ctx, url)
}

func (s *Scraper) scrapeAdapter(ctx context.Context, url string, adapter *pagedigest.Adapter) (*pagedigest.PageResult, error) {
	items, err := adapter.Announcements(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.Tables.RenderTable(items)
	if err != nil {
		return nil, fmt.Errorf("%s: render table: %w", adapter.Name, err)
	}
	text := clean.Normalize(table)

	links := make([]string, 0, len(items))
	for _, item := range items {
		links = append(links, item.Link)
	}

	analysis := s.analyzer().Analyze(ctx, text, true)
	return &pagedigest.PageResult{
		URL:            url,
		Title:          adapter.Label,
		MainText:       text,
		Summary:        analysis.Summary,
		KeyPoints:      analysis.KeyPoints,
		Entities:       analysis.Entities,
		Keywords:       analysis.Keywords,
		ExtractedLinks: pagedigest.DedupeLinks(links, goquery.DefaultLinkLimit),
		Announcements:  items,
	}, nil
}

func (s *Scraper) scrapeGeneric(ctx context.Context, url string) (*pagedigest.PageResult, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	content, err := s.Extractor.Extract(html, url)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	text := content.Text
	if utf8.RuneCountInString(text) < MinMainTextLength {
		text = content.DocumentText
	}

	analysis := s.analyzer().Analyze(ctx, text, false)
	return &pagedigest.PageResult{
		URL:            url,
		Title:          content.Title,
		MainText:       text,
		Summary:        analysis.Summary,
		KeyPoints:      analysis.KeyPoints,
		Entities:       analysis.Entities,
		Keywords:       analysis.Keywords,
		ExtractedLinks: content.Links,
		Announcements:  []pagedigest.Announcement{},
	}, nil
}

// ScrapeAll processes urls sequentially, pausing after each one. A failing
// URL is recorded in Errors and never aborts the batch. Once ctx is done
// the remaining URLs are recorded as failed. The progress callback, if
// provided, receives events as the batch proceeds.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) *pagedigest.BatchResult {
	res := &pagedigest.BatchResult{
		Results: []*pagedigest.PageResult{},
		Errors:  []pagedigest.BatchError{},
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			for _, rest := range urls[i:] {
				res.Errors = append(res.Errors, pagedigest.BatchError{URL: rest, Error: err.Error()})
			}
			break
		}

		result, err := s.scrapeIsolated(ctx, url)
		if err != nil {
			res.Errors = append(res.Errors, pagedigest.BatchError{URL: url, Error: err.Error()})
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(urls), URL: url, Error: err})
			}
		} else {
			res.Results = append(res.Results, result)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: len(urls), URL: url})
			}
		}

		s.pause(ctx)
	}

	res.Count = len(res.Results)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: res.Count, Total: len(urls)})
	}

	return res
}

// scrapeIsolated runs ScrapeOne, turning a panic into an error so one bad
// page cannot take down the batch.
func (s *Scraper) scrapeIsolated(ctx context.Context, url string) (result *pagedigest.PageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, pagedigest.Errorf(pagedigest.EINTERNAL, "panic while scraping %s: %v", url, r)
		}
	}()
	return s.ScrapeOne(ctx, url)
}

func (s *Scraper) analyzer() *nlp.Pipeline {
	if s.Analyzer == nil {
		return &nlp.Pipeline{}
	}
	return s.Analyzer
}

// pause waits for the configured delay or until ctx is done.
func (s *Scraper) pause(ctx context.Context) {
	if s.Pause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.Pause):
	}
}
