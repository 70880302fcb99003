package nlp

import "testing"

func TestVowelClusterEnglish(t *testing.T) {
	v := NewVowelCluster()

	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"reading", 2},
		{"syllable", 3},
		{"make", 1},  // silent e
		{"table", 2}, // -le keeps its syllable
		{"free", 1},
		{"a", 1},
		{"rhythm", 1}, // no clusters at all, clamps to 1
	}
	for _, tc := range cases {
		if got := v.Count(tc.word, "en"); got != tc.want {
			t.Errorf("Count(%q, en) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestVowelClusterSpanishAccents(t *testing.T) {
	v := NewVowelCluster()

	if got := v.Count("análisis", "es"); got != 4 {
		t.Errorf("Count(análisis, es) = %d, want 4", got)
	}
	if got := v.Count("café", "es"); got != 2 {
		t.Errorf("Count(café, es) = %d, want 2", got)
	}
}

func TestVowelClusterNonLetters(t *testing.T) {
	v := NewVowelCluster()

	if got := v.Count("", "en"); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
}
