package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultSettle is how long a rendered page is given to build its form after
// the body is ready.
const DefaultSettle = 3 * time.Second

// SessionOptions configures a Chrome session.
type SessionOptions struct {
	// Timeout bounds each Render and Replay call.
	Timeout  time.Duration
	Settle   time.Duration
	Headless bool
	Logger   *slog.Logger
}

// DefaultSessionOptions returns headless defaults.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{Timeout: DefaultTimeout, Settle: DefaultSettle, Headless: true}
}

// Session is one Chrome tab kept open between rendering a page and replaying
// the fill into it. Requires Chrome/Chromium to be installed on the system.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   SessionOptions
	logger *slog.Logger
}

// Open starts Chrome. Close releases it.
func Open(ctx context.Context, opts SessionOptions) (*Session, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelTab()
		cancelAlloc()
	}
	// Run with no actions starts the browser so launch failures surface here.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, &Error{Message: "failed to start Chrome", Cause: err}
	}
	return &Session{ctx: tabCtx, cancel: cancel, opts: opts, logger: logger}, nil
}

// Render navigates to url, waits for the page to settle and returns its HTML.
func (s *Session) Render(url string) (*Page, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	s.logger.Debug("rendering page", "url", url)
	var html, location string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(s.opts.Settle),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	s.logger.Debug("rendered page", "url", location, "bytes", len(html))
	return &Page{URL: location, HTML: html, StatusCode: 200, Rendered: true}, nil
}

// Replay applies actions to the current page and returns how many controls
// were found and written.
func (s *Session) Replay(actions []Action) (int, error) {
	if len(actions) == 0 {
		return 0, nil
	}
	payload, err := json.Marshal(actions)
	if err != nil {
		return 0, fmt.Errorf("marshal replay actions: %w", err)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	var applied int
	script := fmt.Sprintf("(%s)(%s)", replayScript, payload)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &applied)); err != nil {
		return 0, &Error{Message: "replay failed", Cause: err}
	}
	if applied < len(actions) {
		s.logger.Warn("some fills could not be replayed", "planned", len(actions), "applied", applied)
	}
	return applied, nil
}

// Close shuts the tab and the browser.
func (s *Session) Close() {
	s.cancel()
}
