// Package http provides an HTTP-based implementation of pagedigest.Fetcher
// for sources that don't require JavaScript rendering, plus the client for
// the Federal Register search API.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// DefaultFetchTimeout is the default timeout for a single HTTP attempt.
const DefaultFetchTimeout = 45 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/122.0.0.0 Safari/537.36"

// AcceptLanguage is sent with every request.
const AcceptLanguage = "en-US,en;q=0.9"

// Ensure Fetcher implements pagedigest.Fetcher at compile time.
var _ pagedigest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using HTTP GET requests.
// Unlike rod.Renderer, this does not execute JavaScript.
//
// A Fetcher holds one http.Client and is meant to be shared by every
// source for the lifetime of a run.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	retryDelays []time.Duration
	limiter     *hostLimiter
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each HTTP attempt.
// Defaults to DefaultFetchTimeout (45s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRetryDelays sets the waits between attempts. The number of delays is
// the number of retries. Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithRateLimit limits requests to rps per host, retries included.
// Non-positive values disable limiting, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = newHostLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// WithLogger sets the logger that reports retries.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the content at rawURL decoded to UTF-8.
// Responses with status 429, 500, 502, 503 or 504 and transport errors are
// retried; other non-2xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "invalid URL %q", rawURL)
	}

	return withRetry(ctx, f.retryDelays, func(attempt int, err error) {
		if f.logger != nil {
			f.logger.Warn("retrying fetch", "url", rawURL, "attempt", attempt, "err", err)
		}
	}, func() (string, bool, error) {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", false, err
		}
		return f.fetchOnce(ctx, rawURL)
	})
}

// fetchOnce performs a single GET request. The boolean result reports
// whether a failed attempt may be retried.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, pagedigest.Errorf(pagedigest.EINVALID, "invalid request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", AcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		code := pagedigest.EUNAVAILABLE
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			code = pagedigest.ENOTFOUND
		}
		return "", retryableStatus(resp.StatusCode), pagedigest.Errorf(code, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ctx.Err() == nil, err
	}

	text, err := clean.Decode(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}

	return text, false, nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
