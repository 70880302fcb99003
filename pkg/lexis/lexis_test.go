package lexis

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
	"github.com/cognicore/lexis/pkg/lexis/store"
	"github.com/cognicore/lexis/pkg/lexis/store/memstore"
)

// fixedDetector pins every document to one language so tiny test corpora
// don't depend on trigram reliability.
type fixedDetector struct{ lang string }

func (d fixedDetector) Detect(text string) string { return d.lang }

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunEndToEnd(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "The glacier retreated slowly. Meltwater carved new channels.",
		"b.txt": "Sediment layers record each season of retreat.",
	})
	outDir := t.TempDir()
	csvPath := filepath.Join(outDir, "summary.csv")

	renderer, err := report.NewFileRenderer(outDir)
	if err != nil {
		t.Fatal(err)
	}
	mem := memstore.New()

	l := New(Options{
		Config:   config.Default(),
		Detector: fixedDetector{lang: "en"},
		Renderer: renderer,
		CSVPath:  csvPath,
		Store:    mem,
		Log:      diag.Discard(),
	})
	defer l.Close()

	summary, err := l.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Ingested != 2 || summary.Skipped != 0 {
		t.Fatalf("ingested=%d skipped=%d, want 2, 0", summary.Ingested, summary.Skipped)
	}
	if len(summary.Languages) != 1 || summary.Languages[0] != "en" {
		t.Errorf("languages = %v, want [en]", summary.Languages)
	}
	if summary.Corpus.Diversity == 0 || summary.Corpus.Readability == 0 {
		t.Errorf("corpus bundle incomplete: %+v", summary.Corpus)
	}

	// Artifacts, CSV and persisted bundles all exist.
	if _, err := os.Stat(csvPath); err != nil {
		t.Errorf("summary csv missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "corpus_readability.json")); err != nil {
		t.Errorf("corpus artifact missing: %v", err)
	}
	bundles, err := mem.BundlesByScope(context.Background(), store.ScopeLanguage)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := bundles["en"]; !ok {
		t.Error("en bundle not persisted")
	}
	docs, err := mem.BundlesByScope(context.Background(), store.ScopeDocument)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Errorf("persisted %d document bundles, want 2", len(docs))
	}
}

func TestRunInvalidRootPropagates(t *testing.T) {
	l := New(Options{Detector: fixedDetector{lang: "en"}})
	defer l.Close()

	_, err := l.Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRunWithoutOptionalCollaborators(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"only.txt": "Plain words without any sink attached."})

	l := New(Options{Detector: fixedDetector{lang: "en"}})
	defer l.Close()

	summary, err := l.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Ingested != 1 {
		t.Errorf("ingested = %d, want 1", summary.Ingested)
	}
}

func TestRunRenderFailureSurvived(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"doc.txt": "Render sinks can fail without sinking the run."})

	var buf bytes.Buffer
	log := diag.New(&buf)
	l := New(Options{
		Detector: fixedDetector{lang: "en"},
		Renderer: rejectingRenderer{},
		Log:      log,
	})
	defer l.Close()

	summary, err := l.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Ingested != 1 {
		t.Errorf("ingested = %d, want 1", summary.Ingested)
	}
	if summary.Diagnostics == 0 {
		t.Error("render failures should be logged")
	}
}

type rejectingRenderer struct{}

func (rejectingRenderer) Render(key string, kind report.Kind, data any) error {
	return errors.New("sink rejected artifact")
}

func TestLoadStoplists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "de.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - der\n  - und\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Stoplists = map[string]string{"de": path}

	registry, err := LoadStoplists(cfg)
	if err != nil {
		t.Fatalf("LoadStoplists: %v", err)
	}
	set, exact := registry.ForLanguage("de")
	if !exact {
		t.Fatal("de list should be registered")
	}
	if !set.Contains("der") || !set.Contains("und") {
		t.Error("configured terms missing from de list")
	}
	// Every builtin language survives layering, not just a hardcoded few.
	for _, builtin := range stoplist.Builtin().Sets() {
		if _, exact := registry.ForLanguage(builtin.Language()); !exact {
			t.Errorf("built-in %s list lost during layering", builtin.Language())
		}
	}
}

func TestLoadStoplistsMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Stoplists = map[string]string{"fr": filepath.Join(t.TempDir(), "absent.yaml")}

	if _, err := LoadStoplists(cfg); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
