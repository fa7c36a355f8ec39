// Package formula provides the formula summarizer stage. It replaces LaTeX
// and MathML spans with short readable descriptions.
package formula

// Default patterns. Both are compiled with Go's RE2 syntax.
const (
	DefaultLatexPattern  = `(?s)\\\(.*?\\\)|\\\[.*?\\\]`
	DefaultMathMLPattern = `(?s)<math(?:\s[^>]*)?>.*?</math>`
	DefaultGenericLabel  = "数学公式"
)

// NamedFormula maps a canonical formula, matched by substring, to a label.
type NamedFormula struct {
	Pattern string `json:"pattern" yaml:"pattern" validate:"required"`
	Label   string `json:"label" yaml:"label" validate:"required"`
}

// DefaultFormulas returns the canonical formulas checked before simplifying.
// Order matters: the first contained pattern wins.
func DefaultFormulas() []NamedFormula {
	return []NamedFormula{
		{Pattern: `\frac{-b \pm \sqrt{b^2-4ac}}{2a}`, Label: "二次方程求根公式"},
		{Pattern: `E=mc^2`, Label: "质能方程 E=mc²"},
		{Pattern: `\sum_{i=1}^n`, Label: "求和公式"},
		{Pattern: `\int_a^b`, Label: "定积分"},
		{Pattern: `\lim_{x \to \infty}`, Label: "极限"},
		{Pattern: `\frac{d}{dx}`, Label: "导数"},
		{Pattern: `\prod_{i=1}^n`, Label: "连乘"},
	}
}

// Config defines the configuration options for the formula summarizer.
type Config struct {
	ProcessLatex  bool `json:"processLatex" yaml:"processLatex"`
	ProcessMathML bool `json:"processMathML" yaml:"processMathML"`

	// LatexPattern matches a whole LaTeX span including its delimiters.
	LatexPattern string `json:"latexPattern" yaml:"latexPattern" validate:"required_if=ProcessLatex true"`

	// MathMLPattern matches a whole <math> element.
	MathMLPattern string `json:"mathmlPattern" yaml:"mathmlPattern" validate:"required_if=ProcessMathML true"`

	CommonFormulas []NamedFormula `json:"commonFormulas" yaml:"commonFormulas" validate:"dive"`

	// GenericLabel prefixes simplified formulas: "[<label>: <formula>]".
	GenericLabel string `json:"genericLabel" yaml:"genericLabel" validate:"required"`
}

// DefaultConfig returns the default configuration with both formats enabled.
func DefaultConfig() *Config {
	return &Config{
		ProcessLatex:   true,
		ProcessMathML:  true,
		LatexPattern:   DefaultLatexPattern,
		MathMLPattern:  DefaultMathMLPattern,
		CommonFormulas: DefaultFormulas(),
		GenericLabel:   DefaultGenericLabel,
	}
}
