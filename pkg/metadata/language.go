package metadata

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Undetermined is returned by a LanguageDetector that cannot decide.
const Undetermined = "und"

// LanguageDetector identifies the language of a text.
type LanguageDetector interface {
	// Detect returns a lower-case ISO-639-1 code or Undetermined.
	Detect(text string) string
}

// LinguaDetector detects languages with lingua-go.
// The underlying detector is built on first use.
type LinguaDetector struct {
	languages   []lingua.Language
	minDistance float64

	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLinguaDetector creates a detector limited to languages. Fewer than two
// languages means every supported language.
func NewLinguaDetector(languages ...lingua.Language) *LinguaDetector {
	return &LinguaDetector{languages: languages}
}

// WithMinimumRelativeDistance makes the detector report Undetermined when
// the top candidates are closer than distance (0 to 0.99).
func (d *LinguaDetector) WithMinimumRelativeDistance(distance float64) *LinguaDetector {
	d.minDistance = distance
	return d
}

func (d *LinguaDetector) build() {
	builder := lingua.NewLanguageDetectorBuilder()
	var b lingua.LanguageDetectorBuilder
	if len(d.languages) > 1 {
		b = builder.FromLanguages(d.languages...)
	} else {
		b = builder.FromAllLanguages()
	}
	if d.minDistance > 0 {
		b = b.WithMinimumRelativeDistance(d.minDistance)
	}
	d.detector = b.Build()
}

// Detect implements LanguageDetector.
func (d *LinguaDetector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Undetermined
	}
	d.once.Do(d.build)

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Undetermined
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
