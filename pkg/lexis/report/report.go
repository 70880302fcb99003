// Package report turns finalized metric bundles into artifact files: chart
// data as JSON plus one corpus-wide CSV. It emits data, not images; drawing
// happens downstream. A failed artifact is logged and skipped, never
// propagated into the analysis results.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Kind names one artifact family.
type Kind string

const (
	KindNGram        Kind = "ngram"
	KindWordCloud    Kind = "wordcloud"
	KindCoOccurrence Kind = "cooccurrence"
	KindDiversity    Kind = "diversity"
	KindPOS          Kind = "pos"
	KindWordLength   Kind = "wordlength"
	KindReadability  Kind = "readability"
)

// NGramKind returns the artifact kind for one n-gram order, so each order
// lands in its own file.
func NGramKind(order int) Kind {
	return Kind(fmt.Sprintf("%s%d", KindNGram, order))
}

var knownKinds = map[Kind]struct{}{
	KindWordCloud:    {},
	KindCoOccurrence: {},
	KindDiversity:    {},
	KindPOS:          {},
	KindWordLength:   {},
	KindReadability:  {},
}

// validKind accepts the fixed kinds plus the per-order n-gram family.
func validKind(kind Kind) bool {
	if _, ok := knownKinds[kind]; ok {
		return true
	}
	suffix, found := strings.CutPrefix(string(kind), string(KindNGram))
	if !found || suffix == "" {
		return false
	}
	order, err := strconv.Atoi(suffix)
	return err == nil && order >= 1
}

// Renderer writes one artifact for a scope key (document id, language code
// or the corpus key).
type Renderer interface {
	Render(key string, kind Kind, data any) error
}

// FileRenderer writes each artifact as an indented JSON file named
// <key>_<kind>.json under Dir.
type FileRenderer struct {
	Dir string
}

// NewFileRenderer creates the output directory and returns a renderer
// writing into it.
func NewFileRenderer(dir string) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir %s: %w", dir, err)
	}
	return &FileRenderer{Dir: dir}, nil
}

// Render marshals data and writes it under the renderer's directory. Kinds
// outside the artifact families are rejected so a typo never lands as a
// stray file.
func (f *FileRenderer) Render(key string, kind Kind, data any) error {
	if !validKind(kind) {
		return fmt.Errorf("%w: artifact kind %q", internalerr.ErrUnknownKind, kind)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s artifact for %s: %w", kind, key, err)
	}
	path := filepath.Join(f.Dir, sanitize(key)+"_"+string(kind)+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}

// Chart data shapes. Slices are sorted so repeated runs produce identical
// bytes.

type NGramChart struct {
	Order   int                  `json:"order"`
	Entries []analyze.NGramCount `json:"entries"`
}

type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

type Network struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

type ReadabilityChart struct {
	Score     float64 `json:"score"`
	Sentences int     `json:"sentences"`
	Words     int     `json:"words"`
	Syllables int     `json:"syllables"`
}

// RenderBundle emits every artifact family for one bundle. Failures are
// logged to log and swallowed; rendering one artifact never blocks the rest.
func RenderBundle(r Renderer, log *diag.Logger, key string, b analyze.Bundle) {
	if log == nil {
		log = diag.Discard()
	}
	emit := func(kind Kind, data any) {
		if err := r.Render(key, kind, data); err != nil {
			log.Errorf("render %s/%s: %v", key, kind, err)
		}
	}

	orders := make([]int, 0, len(b.NGramFrequency))
	for order := range b.NGramFrequency {
		orders = append(orders, order)
	}
	sort.Ints(orders)
	for _, order := range orders {
		emit(NGramKind(order), NGramChart{Order: order, Entries: b.NGramFrequency[order]})
	}

	emit(KindWordCloud, wordCloud(b))
	emit(KindCoOccurrence, network(b.CoOccurrence))
	emit(KindDiversity, map[string]float64{"diversity": b.Diversity})
	emit(KindPOS, countEntries(b.POSFrequency))
	emit(KindWordLength, lengthEntries(b.WordLengths))
	emit(KindReadability, ReadabilityChart{
		Score:     b.Readability,
		Sentences: b.Sentences,
		Words:     b.Words,
		Syllables: b.Syllables,
	})
}

// wordCloud reuses the ranked unigram list as cloud weights.
func wordCloud(b analyze.Bundle) []CountEntry {
	unigrams := b.NGramFrequency[1]
	out := make([]CountEntry, len(unigrams))
	for i, g := range unigrams {
		out[i] = CountEntry{Label: g.Gram, Count: g.Count}
	}
	return out
}

func network(pairs map[analyze.Pair]int) Network {
	nodeSet := make(map[string]struct{})
	edges := make([]Edge, 0, len(pairs))
	for pair, weight := range pairs {
		nodeSet[pair.A] = struct{}{}
		nodeSet[pair.B] = struct{}{}
		edges = append(edges, Edge{Source: pair.A, Target: pair.B, Weight: weight})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	nodes := make([]string, 0, len(nodeSet))
	for node := range nodeSet {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return Network{Nodes: nodes, Edges: edges}
}

func countEntries(counts map[string]int) []CountEntry {
	out := make([]CountEntry, 0, len(counts))
	for label, n := range counts {
		out = append(out, CountEntry{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func lengthEntries(hist map[int]int) []CountEntry {
	lengths := make([]int, 0, len(hist))
	for length := range hist {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)

	out := make([]CountEntry, len(lengths))
	for i, length := range lengths {
		out[i] = CountEntry{Label: strconv.Itoa(length), Count: hist[length]}
	}
	return out
}

// csvHeader is the column layout of the aggregate CSV, one row per document.
var csvHeader = []string{
	"id", "source_file", "language", "tokens",
	"diversity", "pos_summary", "network_summary",
	"readability", "sentences", "words", "syllables",
}

// posSummary condenses a tag frequency map into its top entries, count
// descending with ties broken by tag, as "NN:4 VB:2".
func posSummary(counts map[string]int) string {
	entries := countEntries(counts)
	if len(entries) > 3 {
		entries = entries[:3]
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Label + ":" + strconv.Itoa(e.Count)
	}
	return strings.Join(parts, " ")
}

// networkSummary condenses a co-occurrence map into node/edge counts and the
// heaviest pair, as "nodes=3 edges=2 top=cat+sat:2".
func networkSummary(pairs map[analyze.Pair]int) string {
	if len(pairs) == 0 {
		return ""
	}
	net := network(pairs)

	top := net.Edges[0]
	for _, e := range net.Edges[1:] {
		if e.Weight > top.Weight {
			top = e
		}
	}
	return fmt.Sprintf("nodes=%d edges=%d top=%s+%s:%d",
		len(net.Nodes), len(net.Edges), top.Source, top.Target, top.Weight)
}

// WriteCorpusCSV writes the per-document summary table to path.
func WriteCorpusCSV(path string, docs []ingest.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, doc := range docs {
		row := []string{
			doc.ID,
			doc.SourceFile,
			doc.Language,
			strconv.Itoa(len(doc.Tokens)),
			strconv.FormatFloat(doc.Metrics.Diversity, 'f', 6, 64),
			posSummary(doc.Metrics.POSFrequency),
			networkSummary(doc.Metrics.CoOccurrence),
			strconv.FormatFloat(doc.Metrics.Readability, 'f', 3, 64),
			strconv.Itoa(doc.Metrics.Sentences),
			strconv.Itoa(doc.Metrics.Words),
			strconv.Itoa(doc.Metrics.Syllables),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", doc.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
