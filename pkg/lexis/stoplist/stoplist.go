package stoplist

import (
	"sort"
	"strings"
)

// Set holds the stopwords for one language.
type Set struct {
	lang  string
	words map[string]struct{}
}

// NewSet creates a stopword set for a language code.
func NewSet(lang string, words []string) *Set {
	set := &Set{
		lang:  lang,
		words: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set.words[w] = struct{}{}
	}
	return set
}

// Language returns the language code this set belongs to.
func (s *Set) Language() string { return s.lang }

// Contains reports whether word is a stopword. Matching is case-insensitive.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of stopwords in the set.
func (s *Set) Len() int { return len(s.words) }

// Registry maps language codes to stopword sets. Lookups for a language
// without a set fall back to the default language instead of failing the
// document.
type Registry struct {
	sets     map[string]*Set
	fallback string
}

// NewRegistry creates an empty registry with the given fallback language.
func NewRegistry(fallback string) *Registry {
	if fallback == "" {
		fallback = "en"
	}
	return &Registry{
		sets:     make(map[string]*Set),
		fallback: fallback,
	}
}

// Add registers a set under its language code, replacing any existing one.
func (r *Registry) Add(set *Set) {
	if set == nil || set.lang == "" {
		return
	}
	r.sets[set.lang] = set
}

// Fallback returns the registry's fallback language code.
func (r *Registry) Fallback() string { return r.fallback }

// Sets returns the registered sets in language-code order.
func (r *Registry) Sets() []*Set {
	codes := make([]string, 0, len(r.sets))
	for code := range r.sets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]*Set, len(codes))
	for i, code := range codes {
		out[i] = r.sets[code]
	}
	return out
}

// ForLanguage returns the set for code. The second return value reports
// whether the requested language itself had a set; when false the fallback
// set is returned (possibly empty).
func (r *Registry) ForLanguage(code string) (*Set, bool) {
	if set, ok := r.sets[code]; ok {
		return set, true
	}
	if set, ok := r.sets[r.fallback]; ok {
		return set, false
	}
	return NewSet(r.fallback, nil), false
}

// Builtin returns a registry preloaded with the bundled English and Spanish
// lists, falling back to English.
func Builtin() *Registry {
	r := NewRegistry("en")
	r.Add(NewSet("en", englishStops))
	r.Add(NewSet("es", spanishStops))
	return r
}

var englishStops = []string{
	"a", "about", "above", "after", "again", "all", "am", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has",
	"have", "having", "he", "her", "here", "hers", "him", "his", "how", "i",
	"if", "in", "into", "is", "it", "its", "just", "me", "more", "most", "my",
	"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
	"other", "our", "ours", "out", "over", "own", "same", "she", "should",
	"so", "some", "such", "than", "that", "the", "their", "theirs", "them",
	"then", "there", "these", "they", "this", "those", "through", "to", "too",
	"under", "until", "up", "very", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "whom", "why", "will", "with", "you",
	"your", "yours",
}

var spanishStops = []string{
	"a", "al", "algo", "ante", "antes", "como", "con", "contra", "cual",
	"cuando", "de", "del", "desde", "donde", "durante", "e", "el", "ella",
	"ellas", "ellos", "en", "entre", "era", "es", "esa", "ese", "eso", "esta",
	"este", "esto", "fue", "ha", "han", "hasta", "hay", "la", "las", "le",
	"les", "lo", "los", "mas", "me", "mi", "muy", "nada", "ni", "no", "nos",
	"o", "otra", "otro", "para", "pero", "por", "porque", "que", "se", "sin",
	"sobre", "son", "su", "sus", "también", "te", "tiene", "todo", "tras",
	"un", "una", "uno", "unos", "y", "ya", "yo",
}
