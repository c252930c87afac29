package http

import (
	"context"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/newsfold/gazeta"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSizerTimeout bounds one dimension probe. Extraction runs
// without a context, so the sizer owns its deadline.
const DefaultSizerTimeout = 5 * time.Second

// maxImageHeader is how many bytes of an image the sizer reads. Every
// supported format declares its dimensions well inside this window.
const maxImageHeader = 512 << 10

// Ensure ImageSizer implements gazeta.ImageSizer at compile time.
var _ gazeta.ImageSizer = (*ImageSizer)(nil)

// ImageSizer reports image dimensions by fetching just enough bytes to
// decode the header. JPEG, PNG, GIF, WebP, BMP and TIFF are recognized.
type ImageSizer struct {
	client  *http.Client
	timeout time.Duration
}

// SizerOption configures an ImageSizer.
type SizerOption func(*ImageSizer)

// WithSizerTimeout bounds a single probe.
// Defaults to DefaultSizerTimeout.
func WithSizerTimeout(d time.Duration) SizerOption {
	return func(s *ImageSizer) {
		s.timeout = d
	}
}

// NewImageSizer creates an ImageSizer.
func NewImageSizer(opts ...SizerOption) *ImageSizer {
	s := &ImageSizer{timeout: DefaultSizerTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Size fetches imageURL and decodes the image header.
func (s *ImageSizer) Size(imageURL string) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return 0, 0, gazeta.Errorf(gazeta.EINVALID, "create request: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, gazeta.Errorf(gazeta.ENOTFOUND, "image %s: HTTP %d", imageURL, resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxImageHeader))
	if err != nil {
		return 0, 0, gazeta.Errorf(gazeta.EINVALID, "image %s: %v", imageURL, err)
	}
	return cfg.Width, cfg.Height, nil
}
