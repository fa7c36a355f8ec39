// Package content defines the data contracts shared by the processing
// pipeline: caller options in, processed content and metadata out.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidOptions is returned when ProcessingOptions fail validation.
var ErrInvalidOptions = errors.New("invalid processing options")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProcessingOptions are caller-supplied flags consumed by rule conditions,
// rule transforms and the metadata extractor.
type ProcessingOptions struct {
	// RemoveImages drops <img> elements during cleaning.
	RemoveImages bool `json:"removeImages,omitempty" yaml:"removeImages,omitempty"`

	// ExtractLinks appends each anchor's href after the anchor text.
	ExtractLinks bool `json:"extractLinks,omitempty" yaml:"extractLinks,omitempty"`

	// DetectLanguage asks the metadata extractor to run language detection.
	DetectLanguage bool `json:"detectLanguage,omitempty" yaml:"detectLanguage,omitempty"`

	// ExtractTopics requests topic extraction. Topics are always produced by
	// the heuristic extractor; the flag is kept for callers that record intent.
	ExtractTopics bool `json:"extractTopics,omitempty" yaml:"extractTopics,omitempty"`

	// MaxLength truncates the cleaned text to this many characters (0 = unlimited).
	MaxLength int `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"gte=0"`
}

// Validate checks the option constraints.
func (o ProcessingOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// ContentType is the heuristic classification bucket of a text.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeNews    ContentType = "news"
	TypeBlog    ContentType = "blog"
	TypeOther   ContentType = "other"
)

// ContentMetadata holds the values derived from cleaned text.
type ContentMetadata struct {
	WordCount   int         `json:"wordCount" yaml:"wordCount"`
	ReadingTime int         `json:"readingTime" yaml:"readingTime"` // minutes, rounded up
	KeyPhrases  []string    `json:"keyPhrases" yaml:"keyPhrases"`
	Language    string      `json:"language,omitempty" yaml:"language,omitempty"`
	MainTopics  []string    `json:"mainTopics" yaml:"mainTopics"`
	ContentType ContentType `json:"contentType" yaml:"contentType"`
	Confidence  *float64    `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Quality     *float64    `json:"quality,omitempty" yaml:"quality,omitempty"`
}

// ProcessedContent is the output record of one pipeline run.
type ProcessedContent struct {
	ID              string          `json:"id" yaml:"id"`
	OriginalContent string          `json:"originalContent" yaml:"originalContent"`
	CleanContent    string          `json:"cleanContent" yaml:"cleanContent"`
	ExtractedText   string          `json:"extractedText" yaml:"extractedText"`
	Metadata        ContentMetadata `json:"metadata" yaml:"metadata"`
	ProcessingDate  time.Time       `json:"processingDate" yaml:"processingDate"`
}

// Result is the envelope returned by the top-level entry point.
// Callers check Success instead of relying on errors.
type Result struct {
	Success        bool              `json:"success" yaml:"success"`
	Content        *ProcessedContent `json:"content,omitempty" yaml:"content,omitempty"`
	Error          string            `json:"error,omitempty" yaml:"error,omitempty"`
	ProcessingTime time.Duration     `json:"-" yaml:"-"`

	// Err is the underlying error for failed results, usable with errors.Is.
	Err error `json:"-" yaml:"-"`
}

// ProcessingTimeMs returns the elapsed processing time in milliseconds.
func (r Result) ProcessingTimeMs() int64 {
	return r.ProcessingTime.Milliseconds()
}

// MarshalJSON renders ProcessingTime as milliseconds.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		ProcessingTime int64 `json:"processingTime"`
	}{plain(r), r.ProcessingTimeMs()})
}

// MarshalYAML renders ProcessingTime as milliseconds.
func (r Result) MarshalYAML() (any, error) {
	type plain Result
	return struct {
		plain          `yaml:",inline"`
		ProcessingTime int64 `yaml:"processingTime"`
	}{plain(r), r.ProcessingTimeMs()}, nil
}
