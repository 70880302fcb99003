package ingest

import (
	"strings"
	"unicode"

	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

// Tokenizer splits raw text into cleaned word tokens: alphabetic runs only,
// stopwords removed. Tokens keep their original casing; consumers that need
// case-insensitive counts fold on read.
type Tokenizer struct {
	stops *stoplist.Registry
}

// NewTokenizer creates a tokenizer backed by the given stoplist registry.
func NewTokenizer(stops *stoplist.Registry) *Tokenizer {
	if stops == nil {
		stops = stoplist.Builtin()
	}
	return &Tokenizer{stops: stops}
}

// Tokenize cleans text using the stopword list for lang. The second return
// value reports whether lang itself had a list; false means the fallback
// language's list was used.
func (t *Tokenizer) Tokenize(text, lang string) ([]string, bool) {
	stops, exact := t.stops.ForLanguage(lang)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		if !stops.Contains(word) {
			tokens = append(tokens, word)
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens, exact
}
