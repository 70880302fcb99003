// Package analyze computes the per-document metric bundle from a cleaned
// token sequence. Every metric degrades to its defined zero/empty value on
// degenerate input; Analyze never fails.
package analyze

import (
	"sort"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/nlp"
	"github.com/cognicore/lexis/pkg/lexis/pmi"
)

// Defaults for the configurable metric parameters.
const (
	DefaultMaxNGram        = 3
	DefaultWindow          = 2
	DefaultTopCollocations = 10

	// MinWindow is the smallest usable co-occurrence window: a window of
	// one token contains no pairs.
	MinWindow = 2
)

// Options are the analyzer's plain metric parameters.
type Options struct {
	MaxNGram        int // highest n-gram order, 1..N
	Window          int // co-occurrence window size
	TopCollocations int // collocations kept per bundle
}

// DefaultOptions returns the stock parameters.
func DefaultOptions() Options {
	return Options{
		MaxNGram:        DefaultMaxNGram,
		Window:          DefaultWindow,
		TopCollocations: DefaultTopCollocations,
	}
}

func (o Options) clamped() Options {
	if o.MaxNGram < 1 {
		o.MaxNGram = DefaultMaxNGram
	}
	if o.Window < MinWindow {
		o.Window = DefaultWindow
	}
	if o.TopCollocations < 1 {
		o.TopCollocations = DefaultTopCollocations
	}
	return o
}

// Analyzer turns token sequences into metric bundles. It holds no per-call
// state, so one Analyzer is safe for concurrent use as long as its toolkit
// collaborators are.
type Analyzer struct {
	tagger    nlp.Tagger
	segmenter nlp.Segmenter
	syllables nlp.Syllabifier
	calc      *pmi.Calculator
	opts      Options
	log       *diag.Logger
}

// New creates an analyzer over the given toolkit collaborators.
func New(tagger nlp.Tagger, segmenter nlp.Segmenter, syllables nlp.Syllabifier, opts Options, log *diag.Logger) *Analyzer {
	if log == nil {
		log = diag.Discard()
	}
	return &Analyzer{
		tagger:    tagger,
		segmenter: segmenter,
		syllables: syllables,
		calc:      pmi.NewCalculator(1.0),
		opts:      opts.clamped(),
		log:       log,
	}
}

// Analyze computes the full bundle for one document. tokens is the cleaned
// raw-cased sequence; text is the original untokenized text used only for
// readability; lang parameterizes the syllabifier.
func (a *Analyzer) Analyze(tokens []string, text, lang string) Bundle {
	folded := foldTokens(tokens)

	bundle := Bundle{
		Diversity:      Diversity(tokens),
		POSFrequency:   a.posFrequency(tokens),
		NGramFrequency: NGrams(folded, a.opts.MaxNGram),
		Collocations:   a.Collocations(folded),
		CoOccurrence:   CoOccurrence(tokens, a.opts.Window),
		WordLengths:    WordLengths(tokens),
	}

	bundle.Sentences, bundle.Words, bundle.Syllables = a.readabilityInputs(text, lang)
	bundle.Readability = FleschReadingEase(bundle.Sentences, bundle.Words, bundle.Syllables)
	return bundle
}

// Diversity is the case-folded type-token ratio: distinct/total, 0 for an
// empty sequence.
func Diversity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[strings.ToLower(tok)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(tokens))
}

// NGrams counts overlapping n-grams of every order 1..maxN over the given
// (already case-folded) sequence. Each order is sorted by descending count;
// ties keep first-occurrence order.
func NGrams(folded []string, maxN int) map[int][]NGramCount {
	out := make(map[int][]NGramCount, maxN)
	for k := 1; k <= maxN; k++ {
		var c counter
		for i := 0; i+k <= len(folded); i++ {
			c.add(strings.Join(folded[i:i+k], " "))
		}
		out[k] = c.ranked(0)
	}
	return out
}

// Collocations ranks adjacent bigrams of the (case-folded) sequence by PMI,
// descending, keeping the configured top K. Sequences shorter than two
// tokens have none.
func (a *Analyzer) Collocations(folded []string) []Collocation {
	if len(folded) < 2 {
		return nil
	}

	unigrams := make(map[string]int, len(folded))
	for _, tok := range folded {
		unigrams[tok]++
	}

	var bigrams counter
	for i := 0; i+1 < len(folded); i++ {
		bigrams.add(folded[i] + " " + folded[i+1])
	}

	total := int64(len(folded))
	type scored struct {
		a, b  string
		pmi   float64
		order int
	}
	ranked := make([]scored, 0, len(bigrams.order))
	for idx, gram := range bigrams.order {
		parts := strings.SplitN(gram, " ", 2)
		ranked = append(ranked, scored{
			a:     parts[0],
			b:     parts[1],
			pmi:   a.calc.Score(int64(bigrams.counts[gram]), int64(unigrams[parts[0]]), int64(unigrams[parts[1]]), total),
			order: idx,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].pmi == ranked[j].pmi {
			return ranked[i].order < ranked[j].order
		}
		return ranked[i].pmi > ranked[j].pmi
	})
	if len(ranked) > a.opts.TopCollocations {
		ranked = ranked[:a.opts.TopCollocations]
	}

	out := make([]Collocation, len(ranked))
	for i, r := range ranked {
		out[i] = Collocation{A: r.a, B: r.b, PMI: r.pmi}
	}
	return out
}

// CoOccurrence slides a window of the given size over the raw token
// sequence and counts every unordered pair inside each window.
func CoOccurrence(tokens []string, window int) map[Pair]int {
	out := make(map[Pair]int)
	if window < MinWindow || len(tokens) < window {
		return out
	}
	for i := 0; i+window <= len(tokens); i++ {
		span := tokens[i : i+window]
		for j := 0; j < len(span); j++ {
			for k := j + 1; k < len(span); k++ {
				out[NewPair(span[j], span[k])]++
			}
		}
	}
	return out
}

// WordLengths histograms the rune length of each raw token.
func WordLengths(tokens []string) map[int]int {
	out := make(map[int]int)
	for _, tok := range tokens {
		out[len([]rune(tok))]++
	}
	return out
}

// FleschReadingEase computes 206.835 - 1.015*(words/sentences) -
// 84.6*(syllables/words), defined as 0 when sentences or words is zero.
func FleschReadingEase(sentences, words, syllables int) float64 {
	if sentences == 0 || words == 0 {
		return 0
	}
	wordsPerSentence := float64(words) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(words)
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

func (a *Analyzer) posFrequency(tokens []string) map[string]int {
	out := make(map[string]int)
	if len(tokens) == 0 || a.tagger == nil {
		return out
	}
	tagged, err := a.tagger.Tag(tokens)
	if err != nil {
		a.log.Errorf("pos tagging: %v", err)
		return out
	}
	for _, tok := range tagged {
		out[tok.Tag]++
	}
	return out
}

func (a *Analyzer) readabilityInputs(text, lang string) (int, int, int) {
	if a.segmenter == nil || strings.TrimSpace(text) == "" {
		return 0, 0, 0
	}
	sentences, words, err := a.segmenter.Segment(text)
	if err != nil {
		a.log.Errorf("sentence segmentation: %v", err)
		return 0, 0, 0
	}

	syllables := 0
	if a.syllables != nil {
		for _, w := range words {
			syllables += a.syllables.Count(w, lang)
		}
	}
	return sentences, len(words), syllables
}

func foldTokens(tokens []string) []string {
	folded := make([]string, len(tokens))
	for i, tok := range tokens {
		folded[i] = strings.ToLower(tok)
	}
	return folded
}

// counter tallies string keys while remembering first-insertion order, the
// tie-break order for rankings.
type counter struct {
	counts map[string]int
	order  []string
}

func (c *counter) add(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns entries by descending count, ties in first-seen order.
// limit <= 0 means unlimited.
func (c *counter) ranked(limit int) []NGramCount {
	out := make([]NGramCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, NGramCount{Gram: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
