package analyze

import (
	"fmt"
	"strings"
)

// Pair is an unordered token pair in canonical form (A <= B), so the same
// two tokens always produce the same key regardless of encounter order.
type Pair struct {
	A, B string
}

// NewPair canonicalizes a token pair.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// MarshalText encodes the pair as "A B". Tokens are letter runs and never
// contain spaces, so the encoding is unambiguous. This lets a map[Pair]int
// serialize as a JSON object.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.A + " " + p.B), nil
}

// UnmarshalText decodes the "A B" form.
func (p *Pair) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), " ", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed pair key %q", text)
	}
	*p = NewPair(parts[0], parts[1])
	return nil
}

// NGramCount is one n-gram (tokens joined by a single space) with its
// occurrence count.
type NGramCount struct {
	Gram  string
	Count int
}

// Collocation is a bigram ranked by pointwise mutual information.
type Collocation struct {
	A, B string
	PMI  float64
}

// Bundle is the full per-entity metric set. The same shape serves single
// documents, language groups and the whole corpus.
type Bundle struct {
	// Diversity is the case-folded unique/total token ratio, 0 when empty.
	Diversity float64

	// POSFrequency counts part-of-speech tags over the raw-cased tokens.
	POSFrequency map[string]int

	// NGramFrequency maps each order k (1..N) to its n-grams sorted by
	// descending count, ties broken by first occurrence.
	NGramFrequency map[int][]NGramCount

	// Collocations holds the top bigrams by PMI, descending.
	Collocations []Collocation

	// CoOccurrence counts unordered token pairs inside sliding windows.
	CoOccurrence map[Pair]int

	// WordLengths histograms token length in runes over raw tokens.
	WordLengths map[int]int

	// Readability is the Flesch Reading Ease score, 0 when the text has no
	// sentences or no words.
	Readability float64

	// Sentences, Words and Syllables are the readability inputs. Groups sum
	// them and recompute the score instead of averaging member scores.
	Sentences int
	Words     int
	Syllables int
}
