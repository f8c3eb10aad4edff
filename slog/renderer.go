package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure LoggingRenderer implements pagedigest.Renderer.
var _ pagedigest.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   pagedigest.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next pagedigest.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs the URL, the awaited selector and whether a search was
// submitted, then delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, url string, opts pagedigest.RenderOptions) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", url,
			"wait_for", opts.WaitFor,
			"search", opts.Search != nil,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url, opts)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
