// Package nlp wraps the external NLP toolkit behind narrow capability
// interfaces so the analyzer never depends on a specific toolkit's types or
// failure modes.
package nlp

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// TaggedToken is one token with its part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger assigns part-of-speech tags to a token sequence.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// Segmenter splits raw, untokenized text into sentence and word counts.
// The word list is returned so callers can feed it to a Syllabifier.
type Segmenter interface {
	Segment(text string) (sentences int, words []string, err error)
}

// Syllabifier counts syllables in a single word for a given language code.
type Syllabifier interface {
	Count(word, lang string) int
}

// Prose adapts jdkato/prose as both Tagger and Segmenter. Each call builds
// its own prose document, so a single Prose value is safe for concurrent use.
type Prose struct{}

// NewProse creates the prose-backed toolkit adapter.
func NewProse() *Prose { return &Prose{} }

// Tag implements Tagger over an already-cleaned token sequence.
func (p *Prose) Tag(tokens []string) ([]TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	proseTokens := doc.Tokens()
	out := make([]TaggedToken, 0, len(proseTokens))
	for _, tok := range proseTokens {
		out = append(out, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return out, nil
}

// Segment implements Segmenter on raw text. Words are tokens that contain at
// least one letter or digit, so punctuation tokens don't inflate the count.
func (p *Prose) Segment(text string) (int, []string, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return 0, nil, err
	}

	var words []string
	for _, tok := range doc.Tokens() {
		if isWordLike(tok.Text) {
			words = append(words, tok.Text)
		}
	}
	return len(doc.Sentences()), words, nil
}

func isWordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
