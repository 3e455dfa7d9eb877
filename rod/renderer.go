// Package rod renders contact listing pages with Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/stagger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements stagger.PageRenderer at compile time.
var _ stagger.PageRenderer = (*Renderer)(nil)

// DefaultStepTimeout bounds the lookup of each element to click.
const DefaultStepTimeout = 10 * time.Second

// Viewport dimensions used for every page so element placement is stable.
const (
	ViewportWidth  = 1920
	ViewportHeight = 1080
)

// LogFunc is the signature for a progress logging function.
type LogFunc func(format string, args ...any)

// Renderer drives a Chrome browser through the UI steps of a selector table.
type Renderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	table    stagger.SelectorTable

	controlURL  string
	headless    bool
	stepTimeout time.Duration
	logf        LogFunc

	mu     sync.Mutex
	closed atomic.Bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithControlURL attaches to a running browser's DevTools endpoint instead
// of launching one. Accepts ws:// URLs or host:port.
func WithControlURL(u string) RendererOption {
	return func(r *Renderer) {
		r.controlURL = u
	}
}

// WithHeadless controls whether a launched browser is headless.
// Defaults to true. Ignored with WithControlURL.
func WithHeadless(headless bool) RendererOption {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithStepTimeout sets how long to wait for each click target to appear.
// Defaults to DefaultStepTimeout.
func WithStepTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.stepTimeout = d
	}
}

// WithLogFunc sets a function receiving operator-facing progress lines.
func WithLogFunc(fn LogFunc) RendererOption {
	return func(r *Renderer) {
		r.logf = fn
	}
}

// NewRenderer connects to or launches a browser for the given table.
// Close must be called when the Renderer is no longer needed.
//
// Returns EUNAVAILABLE if the browser cannot be reached or launched.
func NewRenderer(table stagger.SelectorTable, opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		table:       table,
		headless:    true,
		stepTimeout: DefaultStepTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	browser, lnchr, err := connect(r.controlURL, r.headless)
	if err != nil {
		return nil, err
	}
	r.browser = browser
	r.launcher = lnchr
	return r, nil
}

// Render navigates to url, clicks every configured step in order, waits
// for the settle delay and returns the rendered HTML. A click target that
// does not appear within the step timeout fails the render with EINVALID.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if r.closed.Load() {
		return "", stagger.Errorf(stagger.EINVALID, "renderer closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             ViewportWidth,
		Height:            ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return "", fmt.Errorf("setting viewport: %w", err)
	}

	r.log("Navigating to website")
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", url, err)
	}

	for i, xpath := range r.table.Clicks {
		r.log("Clicking step %d of %d", i+1, len(r.table.Clicks))
		if err := r.click(ctx, page, xpath); err != nil {
			return "", err
		}
	}

	if r.table.Settle > 0 {
		r.log("Waiting %s...", r.table.Settle)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.table.Settle):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	return html, nil
}

func (r *Renderer) click(ctx context.Context, page *rod.Page, xpath string) error {
	el, err := page.Timeout(r.stepTimeout).ElementX(xpath)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return stagger.Errorf(stagger.EINVALID, "page element %q not found: %v", xpath, err)
	}
	if err := el.CancelTimeout().Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking %q: %w", xpath, err)
	}
	return nil
}

func (r *Renderer) log(format string, args ...any) {
	if r.logf != nil {
		r.logf(format, args...)
	}
}

// Close releases browser resources. A launched browser is killed; an
// attached one is left running. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.launcher != nil {
		err = r.browser.Close()
		r.launcher.Kill()
		r.launcher = nil
	}
	r.browser = nil
	return err
}

// LauncherPID returns the process ID of the launched browser, or 0 when
// attached to an existing one. It exists for tests verifying cleanup.
func (r *Renderer) LauncherPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.launcher == nil {
		return 0
	}
	return r.launcher.PID()
}
