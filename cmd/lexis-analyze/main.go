package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cognicore/lexis/pkg/lexis"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/store"
	"github.com/cognicore/lexis/pkg/lexis/store/sqlite"
)

func main() {
	var (
		input   = flag.String("input", "", "Document file or corpus directory (required)")
		cfgPath = flag.String("config", "", "Optional: YAML config file")
		out     = flag.String("out", "", "Report output directory (default: config results_dir)")
		db      = flag.String("db", "", "Optional: SQLite database path")
		ngram   = flag.Int("ngram", 0, "Override: highest n-gram order")
		window  = flag.Int("window", 0, "Override: co-occurrence window size")
		topk    = flag.Int("topk", 0, "Override: collocations kept per scope")
		workers = flag.Int("workers", 0, "Override: parallel ingestion workers")
		logPath = flag.String("log", "", "Diagnostic log file (default: stderr)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *ngram > 0 {
		cfg.MaxNGram = *ngram
	}
	if *window > 0 {
		cfg.Window = *window
	}
	if *topk > 0 {
		cfg.TopCollocations = *topk
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *out != "" {
		cfg.ResultsDir = *out
	}
	if *db != "" {
		cfg.DBPath = *db
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	diagSink := os.Stderr
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		diagSink = f
	}
	diagLog := diag.New(diagSink)

	stops, err := lexis.LoadStoplists(cfg)
	if err != nil {
		log.Fatalf("load stoplists: %v", err)
	}

	renderer, err := report.NewFileRenderer(cfg.ResultsDir)
	if err != nil {
		log.Fatalf("prepare results dir: %v", err)
	}

	ctx := context.Background()

	var st store.Store
	if cfg.DBPath != "" {
		st, err = sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
	}

	engine := lexis.New(lexis.Options{
		Config:    cfg,
		Stoplists: stops,
		Renderer:  renderer,
		CSVPath:   filepath.Join(cfg.ResultsDir, "corpus_summary.csv"),
		Store:     st,
		Log:       diagLog,
	})
	defer engine.Close()

	summary, err := engine.Run(ctx, *input)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	fmt.Printf("ingested %d document(s), skipped %d\n", summary.Ingested, summary.Skipped)
	for _, lang := range summary.Languages {
		b := summary.PerLanguage[lang]
		fmt.Printf("  %-8s diversity=%.4f readability=%.2f words=%d\n",
			lang, b.Diversity, b.Readability, b.Words)
	}
	fmt.Printf("corpus: diversity=%.4f readability=%.2f words=%d\n",
		summary.Corpus.Diversity, summary.Corpus.Readability, summary.Corpus.Words)
	if summary.Diagnostics > 0 {
		fmt.Printf("%d diagnostic(s) logged\n", summary.Diagnostics)
	}
	fmt.Printf("reports written to %s\n", cfg.ResultsDir)
}
