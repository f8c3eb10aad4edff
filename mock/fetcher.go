package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var _ pagedigest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagedigest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ pagedigest.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of pagedigest.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string, opts pagedigest.RenderOptions) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string, opts pagedigest.RenderOptions) (string, error) {
	return r.RenderFn(ctx, url, opts)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
