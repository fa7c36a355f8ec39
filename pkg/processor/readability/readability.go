// Package readability provides a main-content extraction stage based on
// Mozilla's Readability algorithm. It drops navigation, sidebars and other
// page chrome before the markup cleaner runs.
package readability

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Name is the configuration name of the readability stage.
const Name = "readability"

// Output formats.
const (
	OutputHTML = "html"
	OutputText = "text"
)

// Config configures the readability stage.
type Config struct {
	// Output is "html" (default, for chaining) or "text".
	Output string `json:"output" yaml:"output" validate:"oneof=html text"`

	// MaxElemsToParse limits the number of nodes to parse (0 = no limit).
	MaxElemsToParse int `json:"maxElemsToParse" yaml:"maxElemsToParse" validate:"gte=0"`

	// NTopCandidates is the number of top candidates to consider (0 = library default).
	NTopCandidates int `json:"nTopCandidates" yaml:"nTopCandidates" validate:"gte=0"`

	// CharThreshold is the minimum character count for valid content (0 = library default).
	CharThreshold int `json:"charThreshold" yaml:"charThreshold" validate:"gte=0"`

	// KeepClasses preserves CSS classes on elements.
	KeepClasses bool `json:"keepClasses" yaml:"keepClasses"`

	// BaseURL resolves relative links. Empty keeps them relative.
	BaseURL string `json:"baseURL" yaml:"baseURL" validate:"omitempty,url"`

	// Indent pretty-prints HTML output.
	Indent bool `json:"indent" yaml:"indent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{Output: OutputHTML}
}

// Extractor extracts the main article content.
// It implements the processor.Processor interface.
type Extractor struct {
	cfg     Config
	baseURL *url.URL
	parser  readability.Parser
}

// New creates a new Extractor. If config is nil, DefaultConfig() is used.
func New(config *Config) (*Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}

	parser := readability.NewParser()
	if config.MaxElemsToParse > 0 {
		parser.MaxElemsToParse = config.MaxElemsToParse
	}
	if config.NTopCandidates > 0 {
		parser.NTopCandidates = config.NTopCandidates
	}
	if config.CharThreshold > 0 {
		parser.CharThresholds = config.CharThreshold
	}
	parser.KeepClasses = config.KeepClasses

	e := &Extractor{cfg: *config, parser: parser}
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		e.baseURL = u
	}
	return e, nil
}

// Name returns the stage name.
func (e *Extractor) Name() string {
	return Name
}

// Process extracts the main content. When nothing readable is found the input
// is returned unchanged.
func (e *Extractor) Process(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	article, err := e.parser.Parse(strings.NewReader(content), e.baseURL)
	if err != nil {
		return "", fmt.Errorf("readability parse failed: %w", err)
	}
	if article.Node == nil {
		return content, nil
	}

	var buf bytes.Buffer
	if e.cfg.Output == OutputText {
		if err := article.RenderText(&buf); err != nil || buf.Len() == 0 {
			return content, nil
		}
		return buf.String(), nil
	}

	if err := article.RenderHTML(&buf); err != nil {
		buf.Reset()
		if err := html.Render(&buf, article.Node); err != nil {
			return content, nil
		}
	}
	if buf.Len() == 0 {
		return content, nil
	}
	if e.cfg.Indent {
		return gohtml.Format(buf.String()), nil
	}
	return buf.String(), nil
}
