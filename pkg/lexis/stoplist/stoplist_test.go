package stoplist

import "testing"

func TestSetCaseInsensitive(t *testing.T) {
	s := NewSet("en", []string{"The", "and "})

	for _, w := range []string{"the", "THE", "The", "and"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
	if s.Contains("cat") {
		t.Error("Contains(cat) = true, want false")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (blank and duplicate-cased entries collapse)", s.Len())
	}
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry("en")
	r.Add(NewSet("en", []string{"the"}))
	r.Add(NewSet("es", []string{"el"}))

	set, exact := r.ForLanguage("es")
	if !exact || set.Language() != "es" {
		t.Errorf("ForLanguage(es) = (%s, %v), want (es, true)", set.Language(), exact)
	}

	// No German list configured: fall back to English rather than failing.
	set, exact = r.ForLanguage("de")
	if exact {
		t.Error("ForLanguage(de) reported an exact match")
	}
	if !set.Contains("the") {
		t.Error("fallback set should be the English list")
	}
}

func TestRegistryEmptyFallback(t *testing.T) {
	r := NewRegistry("en")

	set, exact := r.ForLanguage("fr")
	if exact {
		t.Error("empty registry reported exact match")
	}
	if set == nil || set.Len() != 0 {
		t.Error("empty registry should return an empty set, not nil")
	}
}

func TestRegistrySets(t *testing.T) {
	r := NewRegistry("en")
	r.Add(NewSet("es", []string{"el"}))
	r.Add(NewSet("de", []string{"der"}))
	r.Add(NewSet("en", []string{"the"}))

	sets := r.Sets()
	if len(sets) != 3 {
		t.Fatalf("Sets() returned %d sets, want 3", len(sets))
	}
	want := []string{"de", "en", "es"}
	for i, set := range sets {
		if set.Language() != want[i] {
			t.Errorf("Sets()[%d] = %s, want %s", i, set.Language(), want[i])
		}
	}
}

func TestBuiltinLists(t *testing.T) {
	r := Builtin()

	en, _ := r.ForLanguage("en")
	if !en.Contains("the") || !en.Contains("and") {
		t.Error("builtin English list missing core entries")
	}
	es, exact := r.ForLanguage("es")
	if !exact || !es.Contains("el") || !es.Contains("que") {
		t.Error("builtin Spanish list missing core entries")
	}
}
