package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Extractor turns one input file into raw text. Implementations wrap a
// specific document format library so callers never see its error types.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Extractor)}
}

// Default returns a registry handling .pdf, .txt, .html and .htm files.
func Default() *Registry {
	r := NewRegistry()
	r.Register(".pdf", &PDF{})
	r.Register(".txt", &Plain{})
	r.Register(".html", &HTML{})
	r.Register(".htm", &HTML{})
	return r
}

// Register maps an extension (with leading dot) to an extractor.
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Recognized reports whether the registry can handle path.
func (r *Registry) Recognized(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract dispatches to the extractor registered for path's extension.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("no extractor for %q", filepath.Ext(path))
	}
	return e.Extract(ctx, path)
}

// WithTimeout bounds each extraction. Malformed PDFs can hang the parser,
// so the controller wraps its extractor with this by default.
type WithTimeout struct {
	Inner   Extractor
	Timeout time.Duration
}

// Extract runs the inner extractor, abandoning it after the timeout.
func (w *WithTimeout) Extract(ctx context.Context, path string) (string, error) {
	if w.Timeout <= 0 {
		return w.Inner.Extract(ctx, path)
	}

	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := w.Inner.Extract(ctx, path)
		ch <- result{text: text, err: err}
	}()

	select {
	case res := <-ch:
		return res.text, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("extract %s: %w", path, ctx.Err())
	}
}
