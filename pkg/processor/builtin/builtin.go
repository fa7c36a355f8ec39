// Package builtin registers every built-in stage under its configuration name.
package builtin

import (
	"github.com/jmylchreest/distill/pkg/processor"
	"github.com/jmylchreest/distill/pkg/processor/charconv"
	"github.com/jmylchreest/distill/pkg/processor/codeblock"
	"github.com/jmylchreest/distill/pkg/processor/formula"
	"github.com/jmylchreest/distill/pkg/processor/markdown"
	"github.com/jmylchreest/distill/pkg/processor/markup"
	"github.com/jmylchreest/distill/pkg/processor/readability"
	"github.com/jmylchreest/distill/pkg/processor/trafilatura"
	"github.com/jmylchreest/distill/pkg/processor/whitespace"
)

// Description is a short human-readable summary for each stage name.
var Description = map[string]string{
	markup.Name:      "remove deny-listed elements and flatten everything not allow-listed",
	whitespace.Name:  "collapse whitespace runs to a single space",
	charconv.Name:    "full-width to half-width, quote and CJK punctuation normalization",
	codeblock.Name:   "replace code blocks with a language and purpose description",
	formula.Name:     "replace LaTeX and MathML spans with readable descriptions",
	readability.Name: "extract the main article content (Readability)",
	markdown.Name:    "convert HTML to Markdown",
	trafilatura.Name: "extract the main content with trafilatura (build tag)",
}

// NewRegistry returns a fresh registry holding every built-in stage.
func NewRegistry() *processor.Registry {
	r := processor.NewRegistry()
	Register(r)
	return r
}

// Register adds the built-in stages to r.
func Register(r *processor.Registry) {
	r.Register(markup.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := markup.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		return markup.New(cfg), nil
	})

	r.Register(whitespace.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := whitespace.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		return whitespace.New(cfg), nil
	})

	r.Register(charconv.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := charconv.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		return charconv.New(cfg), nil
	})

	r.Register(codeblock.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := codeblock.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		s, err := codeblock.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	r.Register(formula.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := formula.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		s, err := formula.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	r.Register(readability.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := readability.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		e, err := readability.New(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	})

	r.Register(markdown.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := markdown.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		return markdown.New(cfg), nil
	})

	r.Register(trafilatura.Name, func(sc processor.StageConfig) (processor.Processor, error) {
		cfg := trafilatura.DefaultConfig()
		if err := sc.Decode(cfg); err != nil {
			return nil, err
		}
		return trafilatura.New(cfg), nil
	})
}

// DefaultPipeline is the stage order used when no pipeline file is given.
func DefaultPipeline() processor.PipelineConfig {
	return processor.PipelineConfig{
		{Name: codeblock.Name, Enabled: true, Options: map[string]any{"removeCode": true}},
		{Name: formula.Name, Enabled: true},
		{Name: markup.Name, Enabled: true},
		{Name: charconv.Name, Enabled: true},
		{Name: whitespace.Name, Enabled: true},
	}
}
