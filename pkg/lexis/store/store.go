// Package store defines persistence for ingested documents and finalized
// metric bundles.
package store

import (
	"context"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
)

// ScopeKind names the aggregation level a bundle belongs to.
type ScopeKind string

const (
	ScopeDocument ScopeKind = "document"
	ScopeLanguage ScopeKind = "language"
	ScopeCorpus   ScopeKind = "corpus"
)

// Scope identifies one bundle: a document id, a language code, or the
// corpus. The corpus scope uses a fixed key since there is only one.
type Scope struct {
	Kind ScopeKind
	Key  string
}

// CorpusScope is the single corpus-wide scope.
func CorpusScope() Scope { return Scope{Kind: ScopeCorpus, Key: "corpus"} }

// Doc is a persisted document record. Metrics are stored separately under
// the document's scope.
type Doc struct {
	ID         string
	SourceFile string
	Language   string
	Tokens     []string
}

// Store persists documents and bundles.
type Store interface {
	Close() error

	SaveDocument(ctx context.Context, d Doc) error
	GetDocument(ctx context.Context, id string) (Doc, error)

	SaveBundle(ctx context.Context, scope Scope, b analyze.Bundle) error
	BundlesByScope(ctx context.Context, kind ScopeKind) (map[string]analyze.Bundle, error)

	// Languages lists the distinct language codes of stored documents,
	// sorted.
	Languages(ctx context.Context) ([]string, error)
}
