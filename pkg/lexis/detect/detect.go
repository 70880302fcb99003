package detect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Unknown is the language code assigned when detection fails. Documents
// tagged Unknown are still ingested; they pool into their own group.
const Unknown = "unknown"

// Detector assigns a language code to raw text.
type Detector interface {
	Detect(text string) string
}

// Trigram detects languages with whatlanggo's trigram profiles and reports
// ISO 639-1 codes where one exists. It is stateless and safe for concurrent
// use.
type Trigram struct{}

// NewTrigram creates a trigram-profile detector.
func NewTrigram() *Trigram { return &Trigram{} }

// Detect returns the language code for text, or Unknown when the text is
// empty or the detection is unreliable.
func (d *Trigram) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return Unknown
	}

	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return Unknown
	}
	if short, ok := iso1[code]; ok {
		return short
	}
	return code
}

// iso1 maps the ISO 639-3 codes whatlanggo reports to the two-letter codes
// the stoplist registry and the original corpus layout use.
var iso1 = map[string]string{
	"ara": "ar",
	"ben": "bn",
	"cmn": "zh",
	"deu": "de",
	"eng": "en",
	"fra": "fr",
	"hin": "hi",
	"ita": "it",
	"jpn": "ja",
	"kor": "ko",
	"nld": "nl",
	"pol": "pl",
	"por": "pt",
	"rus": "ru",
	"spa": "es",
	"swe": "sv",
	"tur": "tr",
	"ukr": "uk",
	"vie": "vi",
}
