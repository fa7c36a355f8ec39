package distill

import (
	"log/slog"
	"runtime"

	"github.com/jmylchreest/distill/pkg/metadata"
	"github.com/jmylchreest/distill/pkg/processor"
	"github.com/jmylchreest/distill/pkg/rules"
)

// Config holds all Service configuration.
type Config struct {
	// Chain cleans content when set. Otherwise Engine is used.
	Chain processor.Processor

	// Engine cleans content when no Chain is set (default: rules.NewDefaultEngine).
	Engine *rules.Engine

	// Extractor derives metadata from the extracted text.
	Extractor *metadata.Extractor

	// Concurrency bounds ProcessBatch (default: GOMAXPROCS).
	Concurrency int

	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Option configures a Service.
type Option func(*Config)

// WithChain cleans content with a processor chain instead of the rule engine.
func WithChain(p processor.Processor) Option {
	return func(c *Config) {
		c.Chain = p
	}
}

// WithRuleEngine sets the rule engine used for cleaning.
func WithRuleEngine(e *rules.Engine) Option {
	return func(c *Config) {
		c.Engine = e
	}
}

// WithExtractor sets the metadata extractor.
func WithExtractor(x *metadata.Extractor) Option {
	return func(c *Config) {
		c.Extractor = x
	}
}

// WithConcurrency sets how many items ProcessBatch handles at once.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
