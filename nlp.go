package gazeta

// Keyword is a scored keyword from the NLP stage.
type Keyword struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// NLPResult holds the output of the NLP stage.
type NLPResult struct {
	// Keywords are the top keywords, highest score first. Ties break
	// alphabetically so repeated runs agree.
	Keywords []Keyword `json:"keywords"`

	// Summary is the extractive summary, sentences joined by newlines in
	// document order.
	Summary string `json:"summary"`
}

// NLP scores keywords and builds an extractive summary. Implementations
// must be deterministic: the same inputs always produce the same result.
type NLP interface {
	// Process analyzes body text. The title boosts keyword scores and
	// lang selects the stopword set; an unknown lang falls back to
	// English.
	Process(text, title, lang string) (*NLPResult, error)
}

// LanguageDetector guesses the language of a text.
type LanguageDetector interface {
	// Detect returns a two-letter ISO 639-1 code, or "" when the text is
	// too thin to call.
	Detect(text string) string
}
