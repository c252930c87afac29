// Package bloom tracks seen article URLs for crawl memoization.
package bloom

import (
	"io"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenSet remembers article URLs across source builds using a Bloom
// filter. Membership answers may rarely be wrong in one direction: a
// URL never remembered can test as seen (false positive), a remembered
// URL never tests as new. For memoization that trade is the right one,
// since the worst case is skipping an article, never re-crawling one.
//
// A SeenSet is not safe for concurrent use; callers serialize access.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet sizes a SeenSet for n expected URLs at the given false
// positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Remember marks url as seen. It reports whether the URL was new.
func (s *SeenSet) Remember(url string) bool {
	return !s.f.TestAndAddString(url)
}

// Seen reports whether url has been remembered before.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// Count approximates how many distinct URLs have been remembered.
func (s *SeenSet) Count() uint {
	return uint(s.f.ApproximatedSize())
}

// WriteTo serializes the set so it can be restored in a later run.
func (s *SeenSet) WriteTo(w io.Writer) (int64, error) {
	return s.f.WriteTo(w)
}

// ReadFrom replaces the set's contents with a previously serialized set.
func (s *SeenSet) ReadFrom(r io.Reader) (int64, error) {
	return s.f.ReadFrom(r)
}
