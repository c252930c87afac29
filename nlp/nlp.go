// Package nlp provides the deterministic keyword and summary engine run
// as the last stage of the article pipeline. Tokenization and sentence
// splitting follow Unicode segmentation (UAX #29), so the same rules
// apply across languages; stopword lists per language are bundled with
// the package.
package nlp

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/newsfold/gazeta"
)

// titleBoost multiplies the score of tokens that also appear in the
// headline.
const titleBoost = 1.5

// minTokenRunes drops one-character tokens, which carry no signal.
const minTokenRunes = 2

// Ensure Engine implements gazeta.NLP at compile time.
var _ gazeta.NLP = (*Engine)(nil)

// Engine scores keywords and selects summary sentences. It is stateless
// and safe for concurrent use; identical inputs always produce identical
// output, byte for byte.
type Engine struct {
	topN int
	topK int
}

// NewEngine creates an Engine with the configuration's keyword and
// summary limits.
func NewEngine(cfg gazeta.Config) *Engine {
	return &Engine{
		topN: cfg.TopNKeywords,
		topK: cfg.TopKSentences,
	}
}

// Process analyzes text and returns keywords and an extractive summary.
// The title boosts matching keyword scores and lang selects the stopword
// set; unknown languages fall back to English stopwords.
func (e *Engine) Process(text, title, lang string) (*gazeta.NLPResult, error) {
	sw := StopwordsFor(lang)

	tokens := Tokenize(text, sw)
	scores := scoreTokens(tokens, Tokenize(title, sw))

	return &gazeta.NLPResult{
		Keywords: topKeywords(scores, e.topN),
		Summary:  e.summarize(text, sw, scores),
	}, nil
}

// Tokenize splits text into case-folded word tokens, dropping stopwords,
// tokens shorter than two runes, and tokens without a letter or digit.
func Tokenize(text string, sw StopwordSet) []string {
	var tokens []string
	iter := words.FromString(text)
	for iter.Next() {
		tok := strings.ToLower(strings.TrimSpace(iter.Value()))
		if utf8.RuneCountInString(tok) < minTokenRunes {
			continue
		}
		if !strings.ContainsFunc(tok, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			continue
		}
		if sw.Has(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// scoreTokens computes per-token scores: frequency over total kept
// tokens, boosted when the token also occurs in the title.
func scoreTokens(tokens, titleTokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	inTitle := make(map[string]bool, len(titleTokens))
	for _, t := range titleTokens {
		inTitle[t] = true
	}
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	total := float64(len(tokens))
	scores := make(map[string]float64, len(freq))
	for tok, n := range freq {
		score := float64(n) / total
		if inTitle[tok] {
			score *= titleBoost
		}
		scores[tok] = score
	}
	return scores
}

// topKeywords ranks scores descending, breaking exact ties alphabetically
// so repeated runs agree, and keeps the first n.
func topKeywords(scores map[string]float64, n int) []gazeta.Keyword {
	if len(scores) == 0 || n <= 0 {
		return nil
	}
	kws := make([]gazeta.Keyword, 0, len(scores))
	for tok, score := range scores {
		kws = append(kws, gazeta.Keyword{Word: tok, Score: score})
	}
	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Score != kws[j].Score {
			return kws[i].Score > kws[j].Score
		}
		return kws[i].Word < kws[j].Word
	})
	if len(kws) > n {
		kws = kws[:n]
	}
	return kws
}

type scoredSentence struct {
	position int
	text     string
	score    float64
}

// summarize picks the highest scoring sentences and joins them in
// original document order, so the summary reads like the source.
func (e *Engine) summarize(text string, sw StopwordSet, scores map[string]float64) string {
	if text == "" || len(scores) == 0 || e.topK <= 0 {
		return ""
	}

	var cands []scoredSentence
	pos := 0
	iter := sentences.FromString(text)
	for iter.Next() {
		sent := strings.TrimSpace(iter.Value())
		if sent == "" {
			continue
		}
		toks := Tokenize(sent, sw)
		if len(toks) == 0 {
			pos++
			continue
		}
		var sum float64
		for _, tok := range toks {
			sum += scores[tok]
		}
		cands = append(cands, scoredSentence{
			position: pos,
			text:     sent,
			// Dividing by length keeps long sentences from winning on
			// bulk alone.
			score: sum / float64(len(toks)),
		})
		pos++
	}
	if len(cands) == 0 {
		return ""
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].position < cands[j].position
	})
	if len(cands) > e.topK {
		cands = cands[:e.topK]
	}
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].position < cands[j].position
	})

	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = c.text
	}
	return strings.Join(parts, "\n")
}
