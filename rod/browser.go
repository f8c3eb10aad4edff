package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Browser is one headless Chrome process shared by every render of a run.
type Browser struct {
	mu       sync.Mutex
	rod      *rod.Browser
	launcher *launcher.Launcher
}

// BrowserOption configures how the browser process is launched.
type BrowserOption func(*browserConfig)

type browserConfig struct {
	binPath string
}

// WithBinPath sets the Chrome or Chromium executable to launch.
// When empty, rod looks up a local installation or downloads one.
func WithBinPath(path string) BrowserOption {
	return func(c *browserConfig) {
		c.binPath = path
	}
}

// LaunchBrowser starts a headless browser and connects to it.
// Close must be called to stop the process.
func LaunchBrowser(opts ...BrowserOption) (*Browser, error) {
	var cfg browserConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-renderer-backgrounding").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)
	if cfg.binPath != "" {
		l = l.Bin(cfg.binPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Browser{rod: b, launcher: l}, nil
}

// NewPage opens a blank page with automation fingerprints masked. The page
// is bound to ctx and must be closed by the caller.
func (b *Browser) NewPage(ctx context.Context) (*rod.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rod == nil {
		return nil, errRendererClosed
	}

	page, err := stealth.Page(b.rod)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return page.Context(ctx), nil
}

// Close stops the browser process. Later calls are no-ops.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.rod != nil {
		err = b.rod.Close()
		b.rod = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// PID returns the process ID of the browser launcher, or 0 once closed.
func (b *Browser) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
