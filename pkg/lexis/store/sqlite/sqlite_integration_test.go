package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexis.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDocumentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := store.Doc{
		ID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		SourceFile: "paper.pdf",
		Language:   "en",
		Tokens:     []string{"Corpus", "linguistics", "corpus"},
	}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("got %+v, want %+v", got, doc)
	}
}

func TestDocumentUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := store.Doc{ID: "d1", SourceFile: "v1.txt", Language: "en", Tokens: []string{"one"}}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}
	doc.SourceFile = "v2.txt"
	doc.Tokens = []string{"one", "two"}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.SourceFile != "v2.txt" || len(got.Tokens) != 2 {
		t.Errorf("got %+v, want updated record", got)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetDocument(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBundleRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bundle := analyze.Bundle{
		Diversity: 0.75,
		POSFrequency: map[string]int{
			"NN": 4,
			"VB": 2,
		},
		NGramFrequency: map[int][]analyze.NGramCount{
			1: {{Gram: "corpus", Count: 3}, {Gram: "study", Count: 1}},
			2: {{Gram: "corpus study", Count: 1}},
		},
		Collocations: []analyze.Collocation{{A: "corpus", B: "study", PMI: 1.5}},
		CoOccurrence: map[analyze.Pair]int{
			analyze.NewPair("corpus", "study"): 2,
		},
		WordLengths: map[int]int{6: 3, 5: 1},
		Readability: 58.4,
		Sentences:   3,
		Words:       12,
		Syllables:   20,
	}

	scope := store.Scope{Kind: store.ScopeLanguage, Key: "en"}
	if err := s.SaveBundle(ctx, scope, bundle); err != nil {
		t.Fatalf("SaveBundle: %v", err)
	}

	got, err := s.BundlesByScope(ctx, store.ScopeLanguage)
	if err != nil {
		t.Fatalf("BundlesByScope: %v", err)
	}
	if !reflect.DeepEqual(got["en"], bundle) {
		t.Errorf("round-tripped bundle differs:\ngot  %+v\nwant %+v", got["en"], bundle)
	}
}

func TestBundlesByScopeFiltersKind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveBundle(ctx, store.Scope{Kind: store.ScopeDocument, Key: "d1"}, analyze.Bundle{Words: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBundle(ctx, store.CorpusScope(), analyze.Bundle{Words: 2}); err != nil {
		t.Fatal(err)
	}

	docs, err := s.BundlesByScope(ctx, store.ScopeDocument)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs["d1"].Words != 1 {
		t.Errorf("document bundles = %+v", docs)
	}

	corpus, err := s.BundlesByScope(ctx, store.ScopeCorpus)
	if err != nil {
		t.Fatal(err)
	}
	if len(corpus) != 1 || corpus["corpus"].Words != 2 {
		t.Errorf("corpus bundles = %+v", corpus)
	}
}

func TestLanguages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, d := range []store.Doc{
		{ID: "d1", SourceFile: "a.txt", Language: "es"},
		{ID: "d2", SourceFile: "b.txt", Language: "en"},
		{ID: "d3", SourceFile: "c.txt", Language: "en"},
		{ID: "d4", SourceFile: "d.txt", Language: "unknown"},
	} {
		if err := s.SaveDocument(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	langs, err := s.Languages(ctx)
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	want := []string{"en", "es", "unknown"}
	if !reflect.DeepEqual(langs, want) {
		t.Errorf("languages = %v, want %v", langs, want)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDocument(ctx, store.Doc{ID: "d1", SourceFile: "a.txt", Language: "en"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.GetDocument(ctx, "d1"); err != nil {
		t.Errorf("document lost across reopen: %v", err)
	}
}
