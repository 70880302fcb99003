// Package lexis is the corpus analysis engine facade. It wires ingestion,
// per-document analysis, aggregation, reporting and persistence into a
// single Run call.
package lexis

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/aggregate"
	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/detect"
	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/extract"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/nlp"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

// Lexis is the analysis engine facade.
type Lexis struct {
	controller *ingest.Controller
	opts       analyze.Options
	renderer   report.Renderer
	csvPath    string
	store      store.Store
	log        *diag.Logger
}

// Options configures a Lexis instance. Zero-value collaborators get the
// bundled defaults.
type Options struct {
	// Config supplies metric parameters and worker count. Zero value means
	// config.Default().
	Config config.Config

	// Registry overrides the default extractor set.
	Registry *extract.Registry

	// Detector overrides the default trigram language detector.
	Detector detect.Detector

	// Stoplists overrides the built-in stopword registry.
	Stoplists *stoplist.Registry

	// Renderer receives report artifacts. Nil disables reporting.
	Renderer report.Renderer

	// CSVPath receives the per-document summary table. Empty disables it.
	CSVPath string

	// Store persists documents and bundles. Nil disables persistence.
	Store store.Store

	// Log is the diagnostic sink. Nil discards.
	Log *diag.Logger
}

// New creates a Lexis instance with the given dependencies.
func New(opts Options) *Lexis {
	cfg := opts.Config
	if cfg.Validate() != nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = diag.Discard()
	}
	registry := opts.Registry
	if registry == nil {
		registry = defaultRegistry(cfg.Extensions)
	}
	detector := opts.Detector
	if detector == nil {
		detector = detect.NewTrigram()
	}
	stops := opts.Stoplists
	if stops == nil {
		stops = stoplist.Builtin()
	}

	prose := nlp.NewProse()
	analyzerOpts := cfg.AnalyzeOptions()
	analyzer := analyze.New(prose, prose, nlp.NewVowelCluster(), analyzerOpts, log)

	return &Lexis{
		controller: &ingest.Controller{
			Registry:  registry,
			Detector:  detector,
			Tokenizer: ingest.NewTokenizer(stops),
			Analyzer:  analyzer,
			Log:       log,
			Workers:   cfg.Workers,
		},
		opts:     analyzerOpts,
		renderer: opts.Renderer,
		csvPath:  opts.CSVPath,
		store:    opts.Store,
		log:      log,
	}
}

// Close releases the store, if any.
func (l *Lexis) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// Summary is the outcome of one Run.
type Summary struct {
	Ingested    int
	Skipped     int
	Languages   []string
	Corpus      analyze.Bundle
	PerLanguage map[string]analyze.Bundle
	Diagnostics int
}

// Run ingests root, aggregates per language and corpus-wide, renders the
// configured reports and persists results. Only an invalid root returns an
// error; per-file, render and persistence failures are logged and survived.
func (l *Lexis) Run(ctx context.Context, root string) (*Summary, error) {
	batch, err := l.controller.Run(ctx, root)
	if err != nil {
		return nil, err
	}

	agg := aggregate.New(l.opts)
	for _, doc := range batch.Documents {
		agg.AddDocument(doc)
	}
	result := agg.Finalize()

	l.render(result)
	l.persist(ctx, result)

	return &Summary{
		Ingested:    batch.Ingested,
		Skipped:     batch.Skipped,
		Languages:   agg.Languages(),
		Corpus:      result.Corpus,
		PerLanguage: result.PerLanguage,
		Diagnostics: int(l.log.Entries()),
	}, nil
}

func (l *Lexis) render(result aggregate.Result) {
	if l.renderer != nil {
		for _, doc := range result.Documents {
			report.RenderBundle(l.renderer, l.log, doc.ID, doc.Metrics)
		}
		for lang, bundle := range result.PerLanguage {
			report.RenderBundle(l.renderer, l.log, lang, bundle)
		}
		report.RenderBundle(l.renderer, l.log, aggregate.CorpusKey, result.Corpus)
	}

	if l.csvPath != "" {
		if err := report.WriteCorpusCSV(l.csvPath, result.Documents); err != nil {
			l.log.Errorf("write summary csv: %v", err)
		}
	}
}

func (l *Lexis) persist(ctx context.Context, result aggregate.Result) {
	if l.store == nil {
		return
	}
	for _, doc := range result.Documents {
		rec := store.Doc{
			ID:         doc.ID,
			SourceFile: doc.SourceFile,
			Language:   doc.Language,
			Tokens:     doc.Tokens,
		}
		if err := l.store.SaveDocument(ctx, rec); err != nil {
			l.log.Errorf("persist document %s: %v", doc.ID, err)
			continue
		}
		scope := store.Scope{Kind: store.ScopeDocument, Key: doc.ID}
		if err := l.store.SaveBundle(ctx, scope, doc.Metrics); err != nil {
			l.log.Errorf("persist bundle for %s: %v", doc.ID, err)
		}
	}
	for lang, bundle := range result.PerLanguage {
		scope := store.Scope{Kind: store.ScopeLanguage, Key: lang}
		if err := l.store.SaveBundle(ctx, scope, bundle); err != nil {
			l.log.Errorf("persist %s bundle: %v", lang, err)
		}
	}
	if err := l.store.SaveBundle(ctx, store.CorpusScope(), result.Corpus); err != nil {
		l.log.Errorf("persist corpus bundle: %v", err)
	}
}

// defaultRegistry narrows the bundled extractor set to the configured
// extensions. An empty list keeps everything.
func defaultRegistry(extensions []string) *extract.Registry {
	full := extract.Default()
	if len(extensions) == 0 {
		return full
	}
	narrowed := extract.NewRegistry()
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if full.Recognized("x" + ext) {
			narrowed.Register(ext, full)
		}
	}
	return narrowed
}

// LoadStoplists layers configured per-language stopword files over the
// built-in registry.
func LoadStoplists(cfg config.Config) (*stoplist.Registry, error) {
	registry := stoplist.NewRegistry(cfg.FallbackLanguage)
	for _, set := range stoplist.Builtin().Sets() {
		registry.Add(set)
	}
	for lang, path := range cfg.Stoplists {
		sl, err := config.LoadStoplist(path)
		if err != nil {
			return nil, fmt.Errorf("stoplist for %s: %w", lang, err)
		}
		registry.Add(stoplist.NewSet(lang, sl.Terms))
	}
	return registry, nil
}
