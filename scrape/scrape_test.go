package scrape_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/goquery"
	"github.com/fwojciec/pagedigest/htmltomarkdown"
	"github.com/fwojciec/pagedigest/mock"
	"github.com/fwojciec/pagedigest/nlp"
	"github.com/fwojciec/pagedigest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func article(body string) string {
	return `<html><head><title>Trade Notice</title></head><body><nav>Menu</nav><article>` + body + `</article></body></html>`
}

func longText() string {
	return strings.Repeat("Tariff schedules were updated for imported steel products. ", 10)
}

func newScraper(fetcher pagedigest.Fetcher, adapters ...pagedigest.Adapter) *scrape.Scraper {
	return &scrape.Scraper{
		Adapters:  scrape.NewRegistry(adapters...),
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Tables:    htmltomarkdown.NewConverter(),
		Analyzer:  &nlp.Pipeline{},
	}
}

func TestScraper_ScrapeOne(t *testing.T) {
	t.Parallel()

	t.Run("analyzes generic pages", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return article(`<p>` + longText() + `</p><a href="/rates">Rates</a>`), nil
			},
		}

		res, err := newScraper(fetcher).ScrapeOne(context.Background(), "https://example.com/news/")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/news/", res.URL)
		assert.Equal(t, "Trade Notice", res.Title)
		assert.True(t, strings.HasPrefix(res.MainText, strings.TrimSpace(longText())))
		assert.True(t, strings.HasSuffix(res.MainText, "Rates"))
		assert.Contains(t, res.Keywords, "tariff")
		assert.NotEmpty(t, res.Summary)
		assert.Equal(t, []string{"https://example.com/rates"}, res.ExtractedLinks)
		assert.NotNil(t, res.Announcements)
		assert.Empty(t, res.Announcements)
	})

	t.Run("uses whole document text when main text is short", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return `<html><body><div class="sidebar">Sidebar facts</div><p>Short body.</p></body></html>`, nil
			},
		}

		res, err := newScraper(fetcher).ScrapeOne(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Sidebar facts Short body.", res.MainText)
	})

	t.Run("returns an empty result for a blank page", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "", nil },
		}

		res, err := newScraper(fetcher).ScrapeOne(context.Background(), "https://example.com/blank")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/blank", res.URL)
		assert.Empty(t, res.Title)
		assert.Empty(t, res.MainText)
		assert.Empty(t, res.Summary)
		assert.Empty(t, res.ExtractedLinks)
	})

	t.Run("routes matching URLs to adapters", func(t *testing.T) {
		t.Parallel()

		adapter := pagedigest.Adapter{
			Name:  "feed",
			Label: "Example Feed",
			Match: matchPrefix("https://feed.example.com"),
			Fetch: func(context.Context) (string, error) { return "raw", nil },
			Parse: func(raw string) ([]pagedigest.Announcement, error) {
				return []pagedigest.Announcement{
					{Date: "Oct 1 2025", Title: "Steel Tariff Notice", Link: "https://feed.example.com/1"},
					{Date: "Oct 2 2025", Title: "Aluminum Tariff Notice", Link: "https://feed.example.com/2"},
					{Date: "Oct 3 2025", Title: "Repeat", Link: "https://feed.example.com/1"},
				}, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Fatal("generic fetch should not be used")
				return "", nil
			},
		}

		res, err := newScraper(fetcher, adapter).ScrapeOne(context.Background(), "https://feed.example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Example Feed", res.Title)
		assert.Len(t, res.Announcements, 3)
		assert.Contains(t, res.MainText, "Steel Tariff Notice")
		assert.Contains(t, res.MainText, "Date")
		assert.NotContains(t, res.MainText, "\n")
		assert.Equal(t, []string{"https://feed.example.com/1", "https://feed.example.com/2"}, res.ExtractedLinks)
		assert.Empty(t, res.Entities.People)
	})

	t.Run("fails without partial result", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", pagedigest.Errorf(pagedigest.ENOTFOUND, "HTTP 404 for https://example.com/missing")
			},
		}

		res, err := newScraper(fetcher).ScrapeOne(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, pagedigest.ENOTFOUND, pagedigest.ErrorCode(err))
	})

	t.Run("logs each page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return article(longText()), nil },
		}
		s := newScraper(fetcher)
		s.Logger = slog.New(slog.NewTextHandler(&buf, nil))

		_, err := s.ScrapeOne(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "msg=scrape")
		assert.Contains(t, buf.String(), "adapter=generic")
		assert.Contains(t, buf.String(), "url=https://example.com/a")
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("isolates failures", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/2" {
					return "", errors.New("connection reset")
				}
				return article(longText()), nil
			},
		}

		res := newScraper(fetcher).ScrapeAll(context.Background(), []string{
			"https://example.com/1",
			"https://example.com/2",
			"https://example.com/3",
		}, nil)

		assert.Equal(t, 2, res.Count)
		require.Len(t, res.Results, 2)
		assert.Equal(t, "https://example.com/1", res.Results[0].URL)
		assert.Equal(t, "https://example.com/3", res.Results[1].URL)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "https://example.com/2", res.Errors[0].URL)
		assert.Contains(t, res.Errors[0].Error, "connection reset")
	})

	t.Run("recovers from panics", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/bad" {
					panic("boom")
				}
				return article(longText()), nil
			},
		}

		res := newScraper(fetcher).ScrapeAll(context.Background(), []string{"https://example.com/bad", "https://example.com/ok"}, nil)

		assert.Equal(t, 1, res.Count)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Error, "boom")
	})

	t.Run("records remaining URLs after cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				cancel()
				return article(longText()), nil
			},
		}

		res := newScraper(fetcher).ScrapeAll(ctx, []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}, nil)

		assert.Equal(t, 1, res.Count)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, "https://example.com/2", res.Errors[0].URL)
		assert.Equal(t, "https://example.com/3", res.Errors[1].URL)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/2" {
					return "", errors.New("timeout")
				}
				return article(longText()), nil
			},
		}

		var events []scrape.ProgressType
		newScraper(fetcher).ScrapeAll(context.Background(), []string{"https://example.com/1", "https://example.com/2"}, func(e scrape.ProgressEvent) {
			events = append(events, e.Type)
		})

		assert.Equal(t, []scrape.ProgressType{
			scrape.ProgressStarted,
			scrape.ProgressCompleted,
			scrape.ProgressFailed,
			scrape.ProgressFinished,
		}, events)
	})

	t.Run("returns empty lists for no URLs", func(t *testing.T) {
		t.Parallel()

		res := newScraper(nil).ScrapeAll(context.Background(), nil, nil)

		assert.Equal(t, 0, res.Count)
		assert.NotNil(t, res.Results)
		assert.NotNil(t, res.Errors)
	})
}
