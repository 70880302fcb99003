// Package aggregate maintains the per-language groups and the corpus-wide
// group. Count-based fields merge commutatively, so ingest order never
// changes final values; ratio metrics (diversity, readability) are
// recomputed from pooled data at read time, never averaged from member
// documents.
package aggregate

import (
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/pmi"
)

// CorpusKey identifies the group spanning all documents.
const CorpusKey = "corpus"

// Aggregator accumulates documents into language groups plus one corpus
// group. Each group carries its own mutex, so parallel ingestion workers
// only contend when they touch the same language; the pooled update and the
// document counter increment happen under one lock acquisition.
type Aggregator struct {
	mu     sync.RWMutex
	groups map[string]*group
	corpus *group
	docs   []ingest.Document

	calc *pmi.Calculator
	topK int
}

// New creates an empty aggregator. opts supplies the collocation count used
// when group bundles are recomputed.
func New(opts analyze.Options) *Aggregator {
	topK := opts.TopCollocations
	if topK < 1 {
		topK = analyze.DefaultTopCollocations
	}
	return &Aggregator{
		groups: make(map[string]*group),
		corpus: newGroup(CorpusKey),
		calc:   pmi.NewCalculator(1.0),
		topK:   topK,
	}
}

// AddDocument pools doc's tokens and metrics into its language group and
// into the corpus group.
func (a *Aggregator) AddDocument(doc ingest.Document) {
	g := a.groupFor(doc.Language)
	g.absorb(doc)
	a.corpus.absorb(doc)

	a.mu.Lock()
	a.docs = append(a.docs, doc)
	a.mu.Unlock()
}

// LanguageBundle recomputes and returns the bundle for one language group.
func (a *Aggregator) LanguageBundle(code string) (analyze.Bundle, bool) {
	a.mu.RLock()
	g, ok := a.groups[code]
	a.mu.RUnlock()
	if !ok {
		return analyze.Bundle{}, false
	}
	return g.bundle(a.calc, a.topK), true
}

// CorpusBundle recomputes and returns the corpus-wide bundle.
func (a *Aggregator) CorpusBundle() analyze.Bundle {
	return a.corpus.bundle(a.calc, a.topK)
}

// Languages lists the group codes seen so far, sorted.
func (a *Aggregator) Languages() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.groups))
	for code := range a.groups {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// DocumentCount returns the number of documents pooled into a group, or the
// corpus total for CorpusKey.
func (a *Aggregator) DocumentCount(code string) int {
	if code == CorpusKey {
		a.corpus.mu.Lock()
		defer a.corpus.mu.Unlock()
		return a.corpus.docs
	}
	a.mu.RLock()
	g, ok := a.groups[code]
	a.mu.RUnlock()
	if !ok {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.docs
}

// Result is the finalized output of a whole run.
type Result struct {
	Documents   []ingest.Document
	PerLanguage map[string]analyze.Bundle
	Corpus      analyze.Bundle
}

// Finalize returns every per-document bundle alongside the recomputed
// per-language and corpus bundles.
func (a *Aggregator) Finalize() Result {
	a.mu.RLock()
	docs := make([]ingest.Document, len(a.docs))
	copy(docs, a.docs)
	codes := make([]string, 0, len(a.groups))
	for code := range a.groups {
		codes = append(codes, code)
	}
	a.mu.RUnlock()

	perLanguage := make(map[string]analyze.Bundle, len(codes))
	for _, code := range codes {
		if b, ok := a.LanguageBundle(code); ok {
			perLanguage[code] = b
		}
	}
	return Result{
		Documents:   docs,
		PerLanguage: perLanguage,
		Corpus:      a.CorpusBundle(),
	}
}

func (a *Aggregator) groupFor(code string) *group {
	a.mu.RLock()
	g, ok := a.groups[code]
	a.mu.RUnlock()
	if ok {
		return g
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if g, ok := a.groups[code]; ok {
		return g
	}
	g = newGroup(code)
	a.groups[code] = g
	return g
}

// group is one aggregation scope: a language or the whole corpus.
type group struct {
	mu   sync.Mutex
	code string

	docIDs      []string
	docs        int
	totalTokens int
	typeCounts  map[string]int // case-folded token -> pooled count

	pos     map[string]int
	ngrams  map[int]*mergedCounts
	coocc   map[analyze.Pair]int
	wordLen map[int]int

	sentences int
	words     int
	syllables int
}

func newGroup(code string) *group {
	return &group{
		code:       code,
		typeCounts: make(map[string]int),
		pos:        make(map[string]int),
		ngrams:     make(map[int]*mergedCounts),
		coocc:      make(map[analyze.Pair]int),
		wordLen:    make(map[int]int),
	}
}

// absorb pools one document. The whole update, counter increment included,
// runs under the group lock so readers never observe a half-added document.
func (g *group) absorb(doc ingest.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.docIDs = append(g.docIDs, doc.ID)
	g.docs++

	g.totalTokens += len(doc.Tokens)
	for _, tok := range doc.Tokens {
		g.typeCounts[strings.ToLower(tok)]++
	}

	for tag, n := range doc.Metrics.POSFrequency {
		g.pos[tag] += n
	}
	// Merge per-document n-gram counts rather than re-windowing the pooled
	// sequence: windows must never span document boundaries, which is what
	// keeps this merge commutative.
	for order, grams := range doc.Metrics.NGramFrequency {
		mc, ok := g.ngrams[order]
		if !ok {
			mc = &mergedCounts{counts: make(map[string]int)}
			g.ngrams[order] = mc
		}
		for _, gram := range grams {
			mc.add(gram.Gram, gram.Count)
		}
	}
	for pair, n := range doc.Metrics.CoOccurrence {
		g.coocc[pair] += n
	}
	for length, n := range doc.Metrics.WordLengths {
		g.wordLen[length] += n
	}

	g.sentences += doc.Metrics.Sentences
	g.words += doc.Metrics.Words
	g.syllables += doc.Metrics.Syllables
}

// bundle recomputes the group's metric bundle from pooled state.
func (g *group) bundle(calc *pmi.Calculator, topK int) analyze.Bundle {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := analyze.Bundle{
		POSFrequency:   copyMap(g.pos),
		NGramFrequency: make(map[int][]analyze.NGramCount, len(g.ngrams)),
		CoOccurrence:   make(map[analyze.Pair]int, len(g.coocc)),
		WordLengths:    copyMap(g.wordLen),
		Sentences:      g.sentences,
		Words:          g.words,
		Syllables:      g.syllables,
	}
	for pair, n := range g.coocc {
		b.CoOccurrence[pair] = n
	}
	for order, mc := range g.ngrams {
		b.NGramFrequency[order] = mc.ranked()
	}

	// Ratio metrics come from the pooled data, not from member averages.
	if g.totalTokens > 0 {
		b.Diversity = float64(len(g.typeCounts)) / float64(g.totalTokens)
	}
	b.Readability = analyze.FleschReadingEase(g.sentences, g.words, g.syllables)
	b.Collocations = g.collocations(calc, topK)
	return b
}

// collocations re-ranks the pooled bigram counts by PMI over pooled
// unigram counts.
func (g *group) collocations(calc *pmi.Calculator, topK int) []analyze.Collocation {
	unigrams, okU := g.ngrams[1]
	bigrams, okB := g.ngrams[2]
	if !okU || !okB || len(bigrams.order) == 0 || g.totalTokens < 2 {
		return nil
	}

	type scored struct {
		a, b  string
		pmi   float64
		order int
	}
	ranked := make([]scored, 0, len(bigrams.order))
	for idx, gram := range bigrams.order {
		parts := strings.SplitN(gram, " ", 2)
		if len(parts) != 2 {
			continue
		}
		ranked = append(ranked, scored{
			a:     parts[0],
			b:     parts[1],
			pmi:   calc.Score(int64(bigrams.counts[gram]), int64(unigrams.counts[parts[0]]), int64(unigrams.counts[parts[1]]), int64(g.totalTokens)),
			order: idx,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].pmi == ranked[j].pmi {
			return ranked[i].order < ranked[j].order
		}
		return ranked[i].pmi > ranked[j].pmi
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]analyze.Collocation, len(ranked))
	for i, r := range ranked {
		out[i] = analyze.Collocation{A: r.a, B: r.b, PMI: r.pmi}
	}
	return out
}

// mergedCounts accumulates counts while remembering first-insertion order
// for deterministic tie-breaking.
type mergedCounts struct {
	counts map[string]int
	order  []string
}

func (m *mergedCounts) add(key string, n int) {
	if _, ok := m.counts[key]; !ok {
		m.order = append(m.order, key)
	}
	m.counts[key] += n
}

func (m *mergedCounts) ranked() []analyze.NGramCount {
	out := make([]analyze.NGramCount, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, analyze.NGramCount{Gram: key, Count: m.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func copyMap[K comparable](in map[K]int) map[K]int {
	out := make(map[K]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
