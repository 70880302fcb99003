package nlp

import (
	"strings"
	"unicode"
)

// VowelCluster counts syllables by counting runs of vowels, with a silent-e
// adjustment for English. It is a heuristic, not a dictionary; for the
// Flesch formula the aggregate error over a document is small.
type VowelCluster struct{}

// NewVowelCluster creates the heuristic syllabifier.
func NewVowelCluster() *VowelCluster { return &VowelCluster{} }

// Count implements Syllabifier. Every word counts as at least one syllable.
func (v *VowelCluster) Count(word, lang string) int {
	word = strings.ToLower(word)
	vowels := vowelSet(lang)

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	// English orthography: trailing silent e ("make", "time") closes the
	// final cluster rather than opening a new one.
	if lang == "en" && count > 1 && strings.HasSuffix(word, "e") &&
		!strings.HasSuffix(word, "le") && !strings.HasSuffix(word, "ee") {
		count--
	}

	if count < 1 && hasLetter(word) {
		count = 1
	}
	return count
}

func vowelSet(lang string) string {
	switch lang {
	case "es", "it", "pt":
		return "aeiouáéíóúü"
	case "fr":
		return "aeiouyàâéèêëîïôùûü"
	case "de":
		return "aeiouyäöü"
	default:
		return "aeiouy"
	}
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
