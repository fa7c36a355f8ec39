package formula

import (
	"fmt"
	"regexp"
	"strings"
)

// Name is the configuration name of the formula stage.
const Name = "formula"

var (
	delimiters = regexp.MustCompile(`\\\(|\\\)|\\\[|\\\]`)
	fraction   = regexp.MustCompile(`\\frac\{([^}]*)\}\{([^}]*)\}`)
	superBrace = regexp.MustCompile(`\^\{([^}]*)\}`)
	subBrace   = regexp.MustCompile(`_\{([^}]*)\}`)
	sqrt       = regexp.MustCompile(`\\sqrt\{([^}]*)\}`)
	tags       = regexp.MustCompile(`<[^>]+>`)
	spaces     = regexp.MustCompile(`\s+`)
	equation   = regexp.MustCompile(`(\w+)\s*=\s*(\w+)`)
	arithmetic = regexp.MustCompile(`(\d+)\s*([+\-*/])\s*(\d+)`)
)

// symbols are replaced everywhere, after the structural simplifications.
var symbols = strings.NewReplacer(
	`\infty`, "∞",
	`\pi`, "π",
	`\sum`, "Σ",
	`\int`, "∫",
	`\pm`, "±",
)

// Summarizer replaces formula spans with bracketed descriptions.
// It implements the processor.Processor interface.
type Summarizer struct {
	latex    *regexp.Regexp
	mathml   *regexp.Regexp
	formulas []NamedFormula
	label    string
}

// New compiles the configured patterns.
// If config is nil, DefaultConfig() is used.
func New(config *Config) (*Summarizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Summarizer{
		formulas: append([]NamedFormula(nil), config.CommonFormulas...),
		label:    config.GenericLabel,
	}
	if s.label == "" {
		s.label = DefaultGenericLabel
	}

	var err error
	if config.ProcessLatex {
		if s.latex, err = regexp.Compile(config.LatexPattern); err != nil {
			return nil, fmt.Errorf("invalid latex pattern: %w", err)
		}
	}
	if config.ProcessMathML {
		if s.mathml, err = regexp.Compile(config.MathMLPattern); err != nil {
			return nil, fmt.Errorf("invalid mathml pattern: %w", err)
		}
	}
	return s, nil
}

// Name returns the stage name.
func (s *Summarizer) Name() string {
	return Name
}

// Process replaces LaTeX spans, then MathML spans.
func (s *Summarizer) Process(content string) (string, error) {
	if s.latex != nil {
		content = s.latex.ReplaceAllStringFunc(content, s.describeLatex)
	}
	if s.mathml != nil {
		content = s.mathml.ReplaceAllStringFunc(content, func(span string) string {
			return s.wrap(SimplifyMathML(span))
		})
	}
	return content, nil
}

func (s *Summarizer) describeLatex(span string) string {
	formula := StripDelimiters(span)
	if label, ok := s.Lookup(formula); ok {
		return "[" + label + "]"
	}
	return s.wrap(Simplify(formula))
}

func (s *Summarizer) wrap(formula string) string {
	return "[" + s.label + ": " + formula + "]"
}

// Lookup returns the label of the first canonical formula contained in
// formula.
func (s *Summarizer) Lookup(formula string) (string, bool) {
	for _, f := range s.formulas {
		if strings.Contains(formula, f.Pattern) {
			return f.Label, true
		}
	}
	return "", false
}

// StripDelimiters removes \( \) \[ \] markers and surrounding whitespace.
func StripDelimiters(span string) string {
	return strings.TrimSpace(delimiters.ReplaceAllString(span, ""))
}

// Simplify rewrites a LaTeX formula into a flatter readable form. Only the
// first fraction, superscript group, subscript group and square root are
// rewritten; symbol names are replaced everywhere.
func Simplify(formula string) string {
	formula = replaceFirst(fraction, formula, "$1/$2")
	formula = replaceFirst(superBrace, formula, "^$1")
	formula = replaceFirst(subBrace, formula, "_$1")
	formula = replaceFirst(sqrt, formula, "√($1)")
	return symbols.Replace(formula)
}

// SimplifyMathML flattens a MathML span to its text with all whitespace
// removed.
func SimplifyMathML(span string) string {
	text := strings.TrimSpace(spaces.ReplaceAllString(tags.ReplaceAllString(span, " "), " "))
	text = spaces.ReplaceAllString(text, "")
	text = equation.ReplaceAllString(text, "$1=$2")
	return arithmetic.ReplaceAllString(text, "$1$2$3")
}

func replaceFirst(re *regexp.Regexp, s, template string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	dst := re.ExpandString(nil, template, s, m)
	return s[:m[0]] + string(dst) + s[m[1]:]
}
