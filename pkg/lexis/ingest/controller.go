package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/detect"
	"github.com/cognicore/lexis/pkg/lexis/diag"
	"github.com/cognicore/lexis/pkg/lexis/extract"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// DefaultExtractTimeout bounds a single file's extraction. PDF parsing can
// hang on malformed input; a hung file becomes a skip, not a stuck batch.
const DefaultExtractTimeout = 2 * time.Minute

// Controller walks an input path and runs the per-file pipeline:
// extract → detect → tokenize → analyze. A failing file is skipped and
// logged; it never aborts the batch.
type Controller struct {
	Registry  *extract.Registry
	Detector  detect.Detector
	Tokenizer *Tokenizer
	Analyzer  *analyze.Analyzer
	Log       *diag.Logger

	// Workers > 1 enables bounded parallel per-file processing. All
	// collaborators above must then be safe for concurrent use, which the
	// bundled implementations are.
	Workers int

	// ExtractTimeout overrides DefaultExtractTimeout when positive.
	ExtractTimeout time.Duration

	ids *idGen
}

// Batch is the outcome of one Run.
type Batch struct {
	Documents  []Document
	ByLanguage map[string][]Document
	Ingested   int
	Skipped    int
}

// Run ingests root, which names either one document file or a directory
// scanned (non-recursively) for recognized extensions. The only error it
// returns is an invalid root input; everything else is per-file recovery.
func (c *Controller) Run(ctx context.Context, root string) (*Batch, error) {
	candidates, err := c.enumerate(root)
	if err != nil {
		return nil, err
	}
	if c.ids == nil {
		c.ids = newIDGen()
	}

	results := make([]*Document, len(candidates))
	if c.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.Workers)
		for i, path := range candidates {
			i, path := i, path
			if gctx.Err() != nil {
				break // stop enumerating; in-flight files finish
			}
			g.Go(func() error {
				results[i] = c.processFile(gctx, path)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, path := range candidates {
			if ctx.Err() != nil {
				break
			}
			results[i] = c.processFile(ctx, path)
		}
	}

	batch := &Batch{ByLanguage: make(map[string][]Document)}
	for _, doc := range results {
		if doc == nil {
			batch.Skipped++
			continue
		}
		batch.Documents = append(batch.Documents, *doc)
		batch.ByLanguage[doc.Language] = append(batch.ByLanguage[doc.Language], *doc)
		batch.Ingested++
	}
	return batch, nil
}

// enumerate resolves root into an ordered candidate list. Directory entries
// are sorted by name so repeated runs visit files in the same order.
func (c *Controller) enumerate(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidInput, root, err)
	}

	if !info.IsDir() {
		if !c.Registry.Recognized(root) {
			return nil, fmt.Errorf("%w: %s has no recognized extension", internalerr.ErrInvalidInput, root)
		}
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidInput, root, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if c.Registry.Recognized(path) {
			candidates = append(candidates, path)
		}
	}
	sort.Strings(candidates)
	return candidates, nil
}

// processFile runs one file through the pipeline. A nil return means the
// file was skipped; the cause has already been logged.
func (c *Controller) processFile(ctx context.Context, path string) *Document {
	timeout := c.ExtractTimeout
	if timeout <= 0 {
		timeout = DefaultExtractTimeout
	}
	extractor := &extract.WithTimeout{Inner: c.Registry, Timeout: timeout}

	text, err := extractor.Extract(ctx, path)
	if err != nil {
		c.Log.Errorf("extract %s: %v", path, err)
		return nil
	}

	lang := c.Detector.Detect(text)
	if lang == detect.Unknown {
		c.Log.Warnf("detect %s: language unknown, pooling into %q group", path, detect.Unknown)
	}

	tokens, exact := c.Tokenizer.Tokenize(text, lang)
	if !exact && lang != detect.Unknown {
		c.Log.Warnf("filter %s: no stoplist for %q, using fallback", path, lang)
	}

	return &Document{
		ID:         c.ids.next(),
		SourceFile: filepath.Base(path),
		Language:   lang,
		Tokens:     tokens,
		Metrics:    c.Analyzer.Analyze(tokens, text, lang),
	}
}
