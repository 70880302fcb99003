package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

func TestTokenizeLetterRuns(t *testing.T) {
	tok := NewTokenizer(stoplist.NewRegistry("en"))

	got, _ := tok.Tokenize("Re-analysis of 3 corpora, v2!", "en")
	want := []string{"Re", "analysis", "of", "corpora", "v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestTokenizeKeepsCase(t *testing.T) {
	tok := NewTokenizer(stoplist.NewRegistry("en"))

	got, _ := tok.Tokenize("Berlin berlin BERLIN", "en")
	want := []string{"Berlin", "berlin", "BERLIN"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestTokenizeStopwordsRemoved(t *testing.T) {
	tok := NewTokenizer(stoplist.Builtin())

	got, exact := tok.Tokenize("The cat sat on the mat", "en")
	want := []string{"cat", "sat", "mat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
	if !exact {
		t.Error("english should match its own stoplist")
	}
}

func TestTokenizeFallbackStoplist(t *testing.T) {
	tok := NewTokenizer(stoplist.Builtin())

	// No German list bundled; the English fallback applies and the caller
	// is told about it.
	got, exact := tok.Tokenize("die Katze und the dog", "de")
	if exact {
		t.Error("german lookup should report fallback")
	}
	want := []string{"die", "Katze", "und", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer(stoplist.Builtin())

	if got, _ := tok.Tokenize("", "en"); len(got) != 0 {
		t.Errorf("tokens = %v, want none", got)
	}
	if got, _ := tok.Tokenize("123 456 !!", "en"); len(got) != 0 {
		t.Errorf("tokens over non-letters = %v, want none", got)
	}
}

func TestTokenizeUnicodeLetters(t *testing.T) {
	tok := NewTokenizer(stoplist.NewRegistry("en"))

	got, _ := tok.Tokenize("el niño über café", "en")
	want := []string{"el", "niño", "über", "café"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}
