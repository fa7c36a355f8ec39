// Package trafilatura provides a boilerplate-removal stage backed by
// go-trafilatura. The real implementation is compiled in with
// -tags trafilatura; otherwise the stage reports ErrNotAvailable.
package trafilatura

import "errors"

// Name is the configuration name of the trafilatura stage.
const Name = "trafilatura"

// ErrNotAvailable is returned when trafilatura is used but not compiled in.
var ErrNotAvailable = errors.New("trafilatura not available: build with -tags trafilatura to enable")

// Output formats.
const (
	OutputHTML = "html"
	OutputText = "text"
)

// Config configures the trafilatura stage.
type Config struct {
	// Output is "html" (default, for chaining) or "text".
	Output string `json:"output" yaml:"output" validate:"oneof=html text"`

	IncludeComments bool `json:"includeComments" yaml:"includeComments"`
	IncludeTables   bool `json:"includeTables" yaml:"includeTables"`
	IncludeLinks    bool `json:"includeLinks" yaml:"includeLinks"`
	IncludeImages   bool `json:"includeImages" yaml:"includeImages"`

	// Fallback runs the readability/dom-distiller fallbacks when the main
	// extractor finds too little.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// DefaultConfig excludes comments and includes everything else.
func DefaultConfig() *Config {
	return &Config{
		Output:        OutputHTML,
		IncludeTables: true,
		IncludeLinks:  true,
		IncludeImages: true,
		Fallback:      true,
	}
}
