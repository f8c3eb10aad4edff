package pagedigest

import "context"

// Fetcher retrieves raw content from URLs over plain HTTP.
// Implementations own the HTTP session: headers, timeouts, retry and backoff.
type Fetcher interface {
	// Fetch returns the response body of a GET request decoded to UTF-8.
	// Non-2xx responses are returned as errors.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Renderer retrieves HTML after the page's JavaScript has run.
type Renderer interface {
	// Render navigates to url, performs the optional search, waits for
	// opts.WaitFor to appear and returns the rendered document.
	// Returns EUNAVAILABLE when no browser can be started.
	Render(ctx context.Context, url string, opts RenderOptions) (string, error)

	// Close releases browser resources.
	Close() error
}

// RenderOptions controls what Render waits for before capturing HTML.
type RenderOptions struct {
	// WaitFor is a CSS selector that must match before the HTML is captured.
	// Empty means capture as soon as the page has loaded.
	WaitFor string

	// Search, when set, is submitted through the page's form after loading.
	Search *FormSearch
}

// FormSearch describes a client-side search form interaction.
type FormSearch struct {
	// Label is the visible label of the text input to fill.
	// When no input carries the label, the first text input is used.
	Label string

	// Query is typed into the input.
	Query string

	// Submit is a case-insensitive pattern matched against the text of the
	// button that applies the search.
	Submit string
}
