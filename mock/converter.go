package mock

import "github.com/newsfold/gazeta"

var _ gazeta.Converter = (*Converter)(nil)

// Converter is a mock implementation of gazeta.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
