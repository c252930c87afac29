// Package charset decodes raw response bytes into UTF-8 text. It tries
// the declared charset first, then statistical sniffing, and finally
// substitutes invalid bytes, so decoding never fails.
package charset

import (
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"github.com/newsfold/gazeta"
	"golang.org/x/net/html/charset"
)

// Ensure Decoder implements gazeta.Decoder at compile time.
var _ gazeta.Decoder = (*Decoder)(nil)

// Decoder converts response bodies to UTF-8. It is stateless and safe
// for concurrent use.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode interprets body using contentType as a hint. The declared
// charset (Content-Type parameter, BOM, or meta tag) wins when present;
// otherwise the body is sniffed. The result is always valid UTF-8.
func (d *Decoder) Decode(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	if e, _, certain := charset.DetermineEncoding(body, contentType); certain {
		if out, err := e.NewDecoder().Bytes(body); err == nil {
			return sanitize(out)
		}
	}
	if res, err := chardet.NewHtmlDetector().DetectBest(body); err == nil {
		if e, _ := charset.Lookup(res.Charset); e != nil {
			if out, err := e.NewDecoder().Bytes(body); err == nil {
				return sanitize(out)
			}
		}
	}
	return sanitize(body)
}

func sanitize(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
