// Package memstore is an in-memory store.Store for tests and short-lived
// runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

// Store implements store.Store with maps. Values are copied on write and
// read, so callers never share state with the store.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]store.Doc
	bundles map[store.Scope]analyze.Bundle
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		docs:    make(map[string]store.Doc),
		bundles: make(map[store.Scope]analyze.Bundle),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveDocument inserts or replaces a document record.
func (s *Store) SaveDocument(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("%w: document without id", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDocument returns a document by id.
func (s *Store) GetDocument(ctx context.Context, id string) (store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), nil
	}
	return store.Doc{}, fmt.Errorf("%w: document %s", internalerr.ErrNotFound, id)
}

// SaveBundle inserts or replaces the bundle for a scope.
func (s *Store) SaveBundle(ctx context.Context, scope store.Scope, b analyze.Bundle) error {
	if scope.Kind == "" || scope.Key == "" {
		return fmt.Errorf("%w: incomplete scope %+v", internalerr.ErrInvalidInput, scope)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[scope] = copyBundle(b)
	return nil
}

// BundlesByScope returns every stored bundle of one kind, keyed by scope key.
func (s *Store) BundlesByScope(ctx context.Context, kind store.ScopeKind) (map[string]analyze.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]analyze.Bundle)
	for scope, b := range s.bundles {
		if scope.Kind == kind {
			out[scope.Key] = copyBundle(b)
		}
	}
	return out, nil
}

// Languages lists the distinct languages of stored documents, sorted.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, doc := range s.docs {
		seen[doc.Language] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out, nil
}

func copyDoc(d store.Doc) store.Doc {
	out := d
	out.Tokens = append([]string(nil), d.Tokens...)
	return out
}

func copyBundle(b analyze.Bundle) analyze.Bundle {
	out := b
	out.POSFrequency = copyIntMap(b.POSFrequency)
	out.WordLengths = copyIntMap(b.WordLengths)
	if b.NGramFrequency != nil {
		out.NGramFrequency = make(map[int][]analyze.NGramCount, len(b.NGramFrequency))
		for order, grams := range b.NGramFrequency {
			out.NGramFrequency[order] = append([]analyze.NGramCount(nil), grams...)
		}
	}
	if b.CoOccurrence != nil {
		out.CoOccurrence = make(map[analyze.Pair]int, len(b.CoOccurrence))
		for pair, n := range b.CoOccurrence {
			out.CoOccurrence[pair] = n
		}
	}
	out.Collocations = append([]analyze.Collocation(nil), b.Collocations...)
	return out
}

func copyIntMap[K comparable](in map[K]int) map[K]int {
	if in == nil {
		return nil
	}
	out := make(map[K]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
