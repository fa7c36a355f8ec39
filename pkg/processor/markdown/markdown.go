// Package markdown provides an HTML to Markdown conversion stage.
// Markdown keeps headings, lists and tables readable once markup is gone.
package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Name is the configuration name of the markdown stage.
const Name = "markdown"

// Config configures the markdown stage.
type Config struct {
	// Tables enables GitHub-style table conversion.
	Tables bool `json:"tables" yaml:"tables"`

	// MaxBlankLines caps consecutive blank lines in the output.
	MaxBlankLines int `json:"maxBlankLines" yaml:"maxBlankLines" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{Tables: true, MaxBlankLines: 1}
}

// Converter converts HTML to Markdown.
// It implements the processor.Processor interface.
type Converter struct {
	conv          *converter.Converter
	maxBlankLines int
}

// New creates a new Converter. If config is nil, DefaultConfig() is used.
func New(config *Config) *Converter {
	if config == nil {
		config = DefaultConfig()
	}
	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if config.Tables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	return &Converter{
		conv:          converter.NewConverter(converter.WithPlugins(plugins...)),
		maxBlankLines: config.MaxBlankLines,
	}
}

// Name returns the stage name.
func (c *Converter) Name() string {
	return Name
}

// Process converts HTML to Markdown. Empty input yields empty output.
func (c *Converter) Process(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	md, err := c.conv.ConvertString(content)
	if err != nil {
		return "", err
	}
	return limitBlankLines(md, c.maxBlankLines), nil
}

// limitBlankLines collapses runs of blank lines to at most limit and trims the
// result.
func limitBlankLines(s string, limit int) string {
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank <= limit {
				result = append(result, "")
			}
			continue
		}
		blank = 0
		result = append(result, line)
	}
	return strings.TrimSpace(strings.Join(result, "\n"))
}
