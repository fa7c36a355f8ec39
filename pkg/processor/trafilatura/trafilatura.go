//go:build trafilatura

package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Extractor extracts the main content of a page.
// It implements the processor.Processor interface.
type Extractor struct {
	opts   trafilatura.Options
	output string
}

// New creates a new Extractor. If config is nil, DefaultConfig() is used.
func New(config *Config) *Extractor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Extractor{
		opts: trafilatura.Options{
			ExcludeComments: !config.IncludeComments,
			ExcludeTables:   !config.IncludeTables,
			IncludeLinks:    config.IncludeLinks,
			IncludeImages:   config.IncludeImages,
			EnableFallback:  config.Fallback,
		},
		output: config.Output,
	}
}

// Process extracts the main content. When nothing is extracted the input is
// returned unchanged.
func (e *Extractor) Process(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	result, err := trafilatura.Extract(strings.NewReader(content), e.opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return content, nil
	}

	if e.output == OutputText || result.ContentNode == nil {
		if result.ContentText == "" {
			return content, nil
		}
		return result.ContentText, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return result.ContentText, nil
	}
	return gohtml.Format(buf.String()), nil
}

// Name returns the stage name.
func (e *Extractor) Name() string {
	return Name
}

// IsAvailable reports whether trafilatura is compiled in.
func (e *Extractor) IsAvailable() bool {
	return true
}
