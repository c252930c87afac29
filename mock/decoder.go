package mock

import "github.com/newsfold/gazeta"

var _ gazeta.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of gazeta.Decoder.
type Decoder struct {
	DecodeFn func(body []byte, contentType string) string
}

func (d *Decoder) Decode(body []byte, contentType string) string {
	return d.DecodeFn(body, contentType)
}
