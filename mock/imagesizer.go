package mock

import "github.com/newsfold/gazeta"

var _ gazeta.ImageSizer = (*ImageSizer)(nil)

// ImageSizer is a mock implementation of gazeta.ImageSizer.
type ImageSizer struct {
	SizeFn func(imageURL string) (int, int, error)
}

func (s *ImageSizer) Size(imageURL string) (int, int, error) {
	return s.SizeFn(imageURL)
}
