// Package whatlanggo provides trigram-based language detection for the
// pipeline's auto language mode.
package whatlanggo

import (
	"strings"
	"unicode/utf8"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/newsfold/gazeta"
)

// minDetectRunes is the text length floor under which trigram detection
// is too noisy to trust.
const minDetectRunes = 40

var _ gazeta.LanguageDetector = (*Detector)(nil)

// Detector implements gazeta.LanguageDetector on whatlanggo's trigram
// profiles. It is stateless and safe for concurrent use.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the two-letter code of the dominant language, or ""
// when the text is too short or the detection is not reliable.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minDetectRunes {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
