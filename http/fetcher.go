// Package http implements the transport layer: the HTTP fetcher with
// its options, the cache-aware fetcher decorator, feed reading and
// image sizing.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/newsfold/gazeta"
)

// DefaultMaxBodySize caps how much of a response body a Fetcher reads.
const DefaultMaxBodySize = 10 << 20 // 10 MiB

// Ensure Fetcher implements gazeta.Fetcher at compile time.
var _ gazeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw responses over HTTP. HTTP-level failures are
// reported through the Response status code, not as errors, so batch
// processing can record them per article. Transport failures are errors.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	proxy     string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds a single request.
// Defaults to gazeta.DefaultRequestTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxy = proxyURL
	}
}

// WithMaxBodySize caps the number of response bytes read.
// Defaults to DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates an HTTP Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   gazeta.DefaultRequestTimeout,
		userAgent: "gazeta/" + gazeta.Version,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.proxy != "" {
		u, err := url.Parse(f.proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, gazeta.Errorf(gazeta.EINVALID, "proxy must be an absolute URL, got %q", f.proxy)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f, nil
}

// Fetch performs a GET against rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*gazeta.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, gazeta.Errorf(gazeta.EINVALID, "create request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBody {
		return nil, gazeta.Errorf(gazeta.EINVALID, "response body exceeds %d bytes for %s", f.maxBody, rawURL)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &gazeta.Response{
		URL:         rawURL,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header.Clone(),
	}, nil
}
