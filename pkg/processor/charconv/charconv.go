// Package charconv provides the character normalization stage: full-width to
// half-width conversion, quote unification and CJK punctuation mapping.
package charconv

import (
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Name is the configuration name of the character normalizer stage.
const Name = "characterConverter"

// Config toggles the individual transforms. They run in field order.
type Config struct {
	ConvertFullWidthToHalfWidth bool `json:"convertFullWidthToHalfWidth" yaml:"convertFullWidthToHalfWidth"`
	NormalizeQuotes             bool `json:"normalizeQuotes" yaml:"normalizeQuotes"`
	NormalizePunctuation        bool `json:"normalizePunctuation" yaml:"normalizePunctuation"`
}

// DefaultConfig enables every transform.
func DefaultConfig() *Config {
	return &Config{
		ConvertFullWidthToHalfWidth: true,
		NormalizeQuotes:             true,
		NormalizePunctuation:        true,
	}
}

var (
	halfWidth   = runes.Map(halfWidthRune)
	quotes      = runes.Map(tableRune(QuoteTable))
	punctuation = runes.Map(tableRune(PunctuationTable))
)

// Converter applies the enabled transforms.
// It implements the processor.Processor interface.
type Converter struct {
	transformers []transform.Transformer
}

// New creates a new Converter with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Converter {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Converter{}
	if config.ConvertFullWidthToHalfWidth {
		c.transformers = append(c.transformers, halfWidth)
	}
	if config.NormalizeQuotes {
		c.transformers = append(c.transformers, quotes)
	}
	if config.NormalizePunctuation {
		c.transformers = append(c.transformers, punctuation)
	}
	return c
}

// Name returns the stage name.
func (c *Converter) Name() string {
	return Name
}

// Process applies the enabled transforms in order.
// Input that is not valid UTF-8 is returned unchanged.
func (c *Converter) Process(content string) (string, error) {
	if !utf8.ValidString(content) {
		return content, nil
	}
	for _, t := range c.transformers {
		out, _, err := transform.String(t, content)
		if err != nil {
			return "", err
		}
		content = out
	}
	return content, nil
}

// ToHalfWidth converts full-width characters to their ASCII forms.
func ToHalfWidth(s string) string {
	return apply(halfWidth, s)
}

// NormalizeQuotes replaces curly quotes with ASCII quotes.
func NormalizeQuotes(s string) string {
	return apply(quotes, s)
}

// NormalizePunctuation replaces every CJK punctuation mark in
// PunctuationTable with its ASCII form.
func NormalizePunctuation(s string) string {
	return apply(punctuation, s)
}

func apply(t transform.Transformer, s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func halfWidthRune(r rune) rune {
	if r == IdeographicSpace {
		return ' '
	}
	if mapped, ok := FullWidthTable[r]; ok {
		return mapped
	}
	if r >= FullWidthFirst && r <= FullWidthLast {
		return r - FullWidthOffset
	}
	return r
}

func tableRune(table map[rune]rune) func(rune) rune {
	return func(r rune) rune {
		if mapped, ok := table[r]; ok {
			return mapped
		}
		return r
	}
}
