package nlp

import (
	"embed"
	"sort"
	"strings"
	"sync"
)

//go:embed stopwords/*.txt
var stopwordFiles embed.FS

// StopwordSet is an immutable set of low-information words for one
// language. The zero value is an empty set.
type StopwordSet struct {
	words map[string]struct{}
}

// Has reports whether word is a stopword. Lookup is exact; callers are
// expected to case-fold tokens first.
func (s StopwordSet) Has(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s StopwordSet) Len() int { return len(s.words) }

var (
	stopwordMu   sync.RWMutex
	stopwordSets = map[string]StopwordSet{}
)

// StopwordsFor resolves the stopword set for a two-letter ISO 639-1
// language code. Unknown or empty codes resolve to the English set, so
// scoring degrades rather than fails on exotic languages. Sets are
// parsed from the embedded word lists once and shared afterwards.
func StopwordsFor(lang string) StopwordSet {
	code := normalizeLang(lang)

	stopwordMu.RLock()
	set, ok := stopwordSets[code]
	stopwordMu.RUnlock()
	if ok {
		return set
	}

	stopwordMu.Lock()
	defer stopwordMu.Unlock()
	if set, ok := stopwordSets[code]; ok {
		return set
	}
	set, ok = loadStopwords(code)
	if !ok {
		if code == "en" {
			// Missing English list would be a packaging bug; degrade to
			// an empty set rather than panic mid-crawl.
			set = StopwordSet{}
		} else {
			set = StopwordsFor("en")
		}
	}
	stopwordSets[code] = set
	return set
}

// Languages returns the language codes with a bundled stopword list,
// sorted alphabetically.
func Languages() []string {
	entries, err := stopwordFiles.ReadDir("stopwords")
	if err != nil {
		return nil
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		code := strings.TrimSuffix(strings.TrimPrefix(name, "stopwords-"), ".txt")
		if len(code) == 2 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func normalizeLang(lang string) string {
	code := strings.ToLower(strings.TrimSpace(lang))
	// Accept region-qualified codes like en-US or zh_CN.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if len(code) != 2 {
		return "en"
	}
	return code
}

func loadStopwords(code string) (StopwordSet, bool) {
	data, err := stopwordFiles.ReadFile("stopwords/stopwords-" + code + ".txt")
	if err != nil {
		return StopwordSet{}, false
	}
	words := make(map[string]struct{})
	for _, w := range strings.Fields(string(data)) {
		words[strings.ToLower(w)] = struct{}{}
	}
	return StopwordSet{words: words}, true
}
