package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnexpectedStatus is returned when the source page responds with a
// non-200 status. A fetch error aborts the region's run.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Fetcher retrieves source pages over HTTP.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because client configuration
// (timeouts, transport) should be consistent across regions, and an
// injected client makes tests trivial with httptest.
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// userAgent identifies beamcat in HTTP requests. A descriptive
	// User-Agent lets page operators identify scraper traffic.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from an unexpectedly large page.
	maxBodySize int64

	// timeout is the per-request timeout.
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// New creates a Fetcher with the given HTTP client.
// Passing nil uses http.DefaultClient.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:      client,
		userAgent:   "beamcat/1.0 (+https://github.com/xastools/beamcat)",
		maxBodySize: 5 * 1024 * 1024, // 5MB, plenty for the largest region page
		timeout:     60 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves the page at the given URL and returns it as a UTF-8
// string. Non-200 responses and transport errors are returned as-is;
// the caller decides whether to abort the run.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %d: %w", url, resp.StatusCode, ErrUnexpectedStatus)
	}

	reader := decodeCharset(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	return string(body), nil
}

// decodeCharset wraps the body reader with a charset decoder when the
// Content-Type declares a non-UTF-8 encoding. Unknown or missing
// charsets pass the body through unchanged; the pages are UTF-8 or
// convertible, and a garbled byte is better than an aborted run here.
func decodeCharset(body io.Reader, contentType string) io.Reader {
	if contentType == "" {
		return body
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}

	name := strings.ToLower(params["charset"])
	if name == "" || name == "utf-8" || name == "utf8" {
		return body
	}

	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return body
	}

	return transform.NewReader(body, enc.NewDecoder())
}
