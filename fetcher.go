package gazeta

import (
	"context"
	"net/http"
)

// Response is the outcome of a single download attempt. The body is kept
// as raw bytes; character decoding happens later so that cached responses
// round-trip without loss.
type Response struct {
	// URL is the requested URL.
	URL string `json:"url"`

	// FinalURL is the URL after redirects. Empty when unknown, in which
	// case URL stands in for it.
	FinalURL string `json:"finalUrl"`

	// StatusCode is the HTTP status code.
	StatusCode int `json:"statusCode"`

	// Body is the raw, undecoded response body.
	Body []byte `json:"body"`

	// ContentType is the Content-Type header value, if any.
	ContentType string `json:"contentType"`

	// Header carries the remaining response headers.
	Header http.Header `json:"header,omitempty"`
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Fetcher retrieves raw responses from URLs.
type Fetcher interface {
	// Fetch performs a GET against url. Transport failures return an
	// error; HTTP-level failures return a Response carrying the status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}
