// Package metadata derives descriptive metadata from cleaned article text:
// word count, reading time, key phrases, topics, language, content type and
// a quality score.
//
// The values come from lightweight heuristics, not from a language model.
// Topics are the key phrases.
package metadata

import (
	"math"
	"strings"

	"github.com/jmylchreest/distill/pkg/content"
)

// Extractor defaults.
const (
	DefaultLanguage      = "zh"
	DefaultMaxKeyPhrases = 5
	DefaultConfidence    = 0.85
)

// Extractor computes ContentMetadata.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	estimator       ReadingTimeEstimator
	detector        LanguageDetector
	defaultLanguage string
	maxKeyPhrases   int
	confidence      float64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithEstimator sets the reading-time estimator.
func WithEstimator(e ReadingTimeEstimator) Option {
	return func(x *Extractor) {
		if e != nil {
			x.estimator = e
		}
	}
}

// WithDetector sets the language detector used when DetectLanguage is requested.
func WithDetector(d LanguageDetector) Option {
	return func(x *Extractor) {
		x.detector = d
	}
}

// WithDefaultLanguage sets the language reported when detection is not
// requested or is inconclusive.
func WithDefaultLanguage(lang string) Option {
	return func(x *Extractor) {
		x.defaultLanguage = lang
	}
}

// WithMaxKeyPhrases sets how many key phrases are reported.
func WithMaxKeyPhrases(n int) Option {
	return func(x *Extractor) {
		if n >= 0 {
			x.maxKeyPhrases = n
		}
	}
}

// New creates an Extractor. Without options it uses a 200 words-per-minute
// estimator, a lingua-go detector and "zh" as the default language.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		estimator:       WordsPerMinute(DefaultWordsPerMinute),
		detector:        NewLinguaDetector(),
		defaultLanguage: DefaultLanguage,
		maxKeyPhrases:   DefaultMaxKeyPhrases,
		confidence:      DefaultConfidence,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract computes the metadata of text.
func (x *Extractor) Extract(text string, opts content.ProcessingOptions) content.ContentMetadata {
	phrases := KeyPhrases(text, x.maxKeyPhrases)
	topics := make([]string, len(phrases))
	copy(topics, phrases)

	confidence := x.confidence
	quality := Quality(text)

	return content.ContentMetadata{
		WordCount:   len(strings.Fields(text)),
		ReadingTime: int(math.Ceil(x.estimator.Estimate(text).Minutes)),
		KeyPhrases:  phrases,
		Language:    x.language(text, opts),
		MainTopics:  topics,
		ContentType: Classify(text),
		Confidence:  &confidence,
		Quality:     &quality,
	}
}

func (x *Extractor) language(text string, opts content.ProcessingOptions) string {
	if !opts.DetectLanguage || x.detector == nil {
		return x.defaultLanguage
	}
	if lang := x.detector.Detect(text); lang != "" && lang != Undetermined {
		return lang
	}
	return x.defaultLanguage
}
