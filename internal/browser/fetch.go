// Package browser gets application pages into the engine and the engine's
// fills back out: static pages over HTTP, script-built pages through a
// headless Chrome session that can also replay a fill into the live page.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/engine"
)

// DefaultTimeout is the default HTTP request and render timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SpeedyApply/1.0)"

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 10 << 20

// Page is the HTML of an application page.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	// Rendered is true when the HTML came from Chrome rather than HTTP.
	Rendered bool
}

// Document parses the page for scanning.
func (p *Page) Document() (*dom.Document, error) {
	return dom.Parse(p.HTML, p.URL)
}

// Error represents an error while loading a page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("browser error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures HTTP fetching.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the fetch defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch retrieves a page over HTTP without running its scripts.
func Fetch(ctx context.Context, urlStr string, opts *Options) (*Page, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         resp.Request.URL.String(),
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// NeedsRender reports whether a served page has no fillable controls, which
// is what single-page apps that build their forms in script look like before
// rendering.
func NeedsRender(doc *dom.Document) bool {
	return len(engine.CollectCandidates(doc)) == 0
}
