// Package rod renders JavaScript-driven pages with a headless Chrome
// browser controlled through go-rod.
package rod

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds one Render call including the wait for the
// requested selector.
const DefaultRenderTimeout = 60 * time.Second

// Ensure Renderer implements pagedigest.Renderer at compile time.
var _ pagedigest.Renderer = (*Renderer)(nil)

var errRendererClosed = errors.New("renderer closed")

// Renderer implements pagedigest.Renderer. The browser is launched on the
// first Render call; a failed launch is remembered and every later call
// reports EUNAVAILABLE without retrying.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	timeout     time.Duration
	userAgent   string
	browserOpts []BrowserOption

	once      sync.Once
	browser   *Browser
	launchErr error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout sets the timeout of a single Render call.
// Defaults to DefaultRenderTimeout (60s) if not specified.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithUserAgent sets the user agent reported by rendered pages.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithBrowserOptions passes options to the browser launched on first use.
func WithBrowserOptions(opts ...BrowserOption) Option {
	return func(r *Renderer) {
		r.browserOpts = append(r.browserOpts, opts...)
	}
}

// NewRenderer creates a Renderer. No browser is started until the first
// call to Render.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// launch returns the shared browser, starting it on first use.
func (r *Renderer) launch() (*Browser, error) {
	r.once.Do(func() {
		r.browser, r.launchErr = LaunchBrowser(r.browserOpts...)
	})
	if r.launchErr != nil {
		return nil, pagedigest.Errorf(pagedigest.EUNAVAILABLE, "headless browser unavailable: %v", r.launchErr)
	}
	return r.browser, nil
}

// Render navigates to url, performs the optional form search, waits for
// opts.WaitFor and returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string, opts pagedigest.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := r.launch()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.NewPage(ctx)
	if err != nil {
		return "", err
	}
	defer page.Close()

	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s to load: %w", url, err)
	}

	if opts.Search != nil {
		if err := submitSearch(page, opts.Search); err != nil {
			return "", err
		}
	}

	if opts.WaitFor != "" {
		if _, err := page.Element(opts.WaitFor); err != nil {
			return "", fmt.Errorf("waiting for %q: %w", opts.WaitFor, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered HTML: %w", err)
	}

	return html, nil
}

// submitSearch fills the labelled text input, falling back to the first
// text input, and clicks the button whose text matches s.Submit.
func submitSearch(page *rod.Page, s *pagedigest.FormSearch) error {
	input, err := searchInput(page, s.Label)
	if err != nil {
		return err
	}

	if err := input.SelectAllText(); err != nil {
		return fmt.Errorf("selecting search input text: %w", err)
	}
	if err := input.Input(s.Query); err != nil {
		return fmt.Errorf("typing search query: %w", err)
	}

	btn, err := page.ElementR("button", caseInsensitive(s.Submit))
	if err != nil {
		return fmt.Errorf("finding %q button: %w", s.Submit, err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking %q button: %w", s.Submit, err)
	}

	return nil
}

// searchInput returns the input associated with the label, or the first
// text input on the page.
func searchInput(page *rod.Page, label string) (*rod.Element, error) {
	if label != "" {
		has, el, err := page.HasR("label", caseInsensitive(label))
		if err == nil && has {
			if id, err := el.Attribute("for"); err == nil && id != nil && *id != "" {
				has, input, err := page.Has(fmt.Sprintf("[id=%q]", *id))
				if err == nil && has {
					return input, nil
				}
			}
		}
	}

	input, err := page.Element("input[type='text']")
	if err != nil {
		return nil, fmt.Errorf("finding search input: %w", err)
	}
	return input, nil
}

// caseInsensitive turns a literal into a JavaScript regular expression
// literal matching it regardless of case.
func caseInsensitive(s string) string {
	return "/" + regexp.QuoteMeta(s) + "/i"
}

// Close shuts down the browser if one was started. Render calls after
// Close report EUNAVAILABLE.
func (r *Renderer) Close() error {
	r.once.Do(func() {
		r.launchErr = errRendererClosed
	})
	if r.browser == nil {
		return nil
	}
	return r.browser.Close()
}
