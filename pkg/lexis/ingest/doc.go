package ingest

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
)

// Document is one successfully ingested input file. The token sequence is
// raw-cased and immutable once the document is built; metrics that need
// case-folding fold on read.
type Document struct {
	ID         string
	SourceFile string
	Language   string
	Tokens     []string
	Metrics    analyze.Bundle
}

// idGen issues monotonic ULIDs. Safe for concurrent use.
type idGen struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDGen() *idGen {
	return &idGen{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *idGen) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
