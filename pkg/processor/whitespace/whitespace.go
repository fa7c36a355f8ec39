// Package whitespace provides the whitespace normalization stage.
package whitespace

import (
	"regexp"
	"strconv"
	"strings"
)

// Name is the configuration name of the whitespace stage.
const Name = "whitespace"

// DefaultMaxConsecutiveNewlines is used when MaxConsecutiveNewlines is 0.
const DefaultMaxConsecutiveNewlines = 2

// Config defines the configuration options for the whitespace normalizer.
type Config struct {
	// NormalizeIndentation trims every line after collapsing.
	NormalizeIndentation bool `json:"normalizeIndentation" yaml:"normalizeIndentation"`

	// MaxConsecutiveNewlines caps newline runs (0 = DefaultMaxConsecutiveNewlines).
	MaxConsecutiveNewlines int `json:"maxConsecutiveNewlines" yaml:"maxConsecutiveNewlines" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{MaxConsecutiveNewlines: DefaultMaxConsecutiveNewlines}
}

// whitespaceRun matches ASCII whitespace, vertical tab, Unicode space
// separators, line/paragraph separators and the BOM.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// Normalizer collapses whitespace runs.
// It implements the processor.Processor interface.
type Normalizer struct {
	indentation bool
	newlines    *regexp.Regexp
	maxNewlines string
}

// New creates a new Normalizer with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Normalizer {
	if config == nil {
		config = DefaultConfig()
	}
	limit := config.MaxConsecutiveNewlines
	if limit <= 0 {
		limit = DefaultMaxConsecutiveNewlines
	}
	return &Normalizer{
		indentation: config.NormalizeIndentation,
		newlines:    regexp.MustCompile(`\n{` + strconv.Itoa(limit+1) + `,}`),
		maxNewlines: strings.Repeat("\n", limit),
	}
}

// Name returns the stage name.
func (n *Normalizer) Name() string {
	return Name
}

// Process normalizes whitespace. The steps always run in this order:
// collapse runs, cap newline runs, then trim lines when configured.
// After the first step no newline remains, so the later steps only trim the
// outer edges of the single resulting line.
func (n *Normalizer) Process(content string) (string, error) {
	out := Collapse(content)
	out = n.newlines.ReplaceAllLiteralString(out, n.maxNewlines)
	if n.indentation {
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}
		out = strings.Join(lines, "\n")
	}
	return out, nil
}

// Collapse replaces every maximal whitespace run with one ASCII space.
func Collapse(s string) string {
	return whitespaceRun.ReplaceAllLiteralString(s, " ")
}
