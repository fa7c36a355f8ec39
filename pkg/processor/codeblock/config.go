// Package codeblock provides the code-block summarizer stage. It replaces
// code examples in article markup with a one-line description of the code's
// language and purpose.
package codeblock

// Placeholders substituted into DescriptionTemplate.
const (
	LanguagePlaceholder = "{language}"
	SummaryPlaceholder  = "{summary}"
)

// DefaultTemplate is the Chinese description template.
const DefaultTemplate = "[这是一段{language}代码，{summary}]"

// EnglishTemplate is the English description template.
const EnglishTemplate = "[{language} code that {summary}]"

// Labels holds the text substituted for the language sentinel and for each
// code purpose.
type Labels struct {
	UnknownLanguage string `json:"unknownLanguage" yaml:"unknownLanguage" validate:"required"`
	Function        string `json:"function" yaml:"function" validate:"required"`
	Class           string `json:"class" yaml:"class" validate:"required"`
	Import          string `json:"import" yaml:"import" validate:"required"`
	Output          string `json:"output" yaml:"output" validate:"required"`
	Snippet         string `json:"snippet" yaml:"snippet" validate:"required"`
}

// DefaultLabels returns the Chinese labels.
func DefaultLabels() Labels {
	return Labels{
		UnknownLanguage: "未知语言",
		Function:        "定义了函数",
		Class:           "定义了类",
		Import:          "包含依赖导入",
		Output:          "包含输出语句",
		Snippet:         "包含代码片段",
	}
}

// EnglishLabels returns English labels for use with EnglishTemplate.
func EnglishLabels() Labels {
	return Labels{
		UnknownLanguage: "unknown",
		Function:        "defines a function",
		Class:           "defines a class",
		Import:          "contains a dependency import",
		Output:          "contains an output statement",
		Snippet:         "contains a code snippet",
	}
}

// For returns the label of purpose p.
func (l Labels) For(p Purpose) string {
	switch p {
	case PurposeFunction:
		return l.Function
	case PurposeClass:
		return l.Class
	case PurposeImport:
		return l.Import
	case PurposeOutput:
		return l.Output
	default:
		return l.Snippet
	}
}

// Config defines the configuration options for the code-block summarizer.
type Config struct {
	// RemoveCode replaces each matched block with its description. When false
	// the stage leaves markup untouched.
	RemoveCode bool `json:"removeCode" yaml:"removeCode"`

	// Selector picks the code elements. Default: "pre code".
	Selector string `json:"selector" yaml:"selector" validate:"required"`

	// DescriptionTemplate is the replacement text; every {language} and
	// {summary} placeholder is substituted.
	DescriptionTemplate string `json:"descriptionTemplate" yaml:"descriptionTemplate" validate:"required"`

	Labels Labels `json:"labels" yaml:"labels"`

	// CanonicalizeLanguage resolves aliases such as "js" or "py" to the
	// language's canonical name using the syntax highlighter's lexer registry.
	CanonicalizeLanguage bool `json:"canonicalizeLanguage" yaml:"canonicalizeLanguage"`
}

// DefaultConfig returns the default configuration. Code is kept unless
// RemoveCode is set.
func DefaultConfig() *Config {
	return &Config{
		Selector:            "pre code",
		DescriptionTemplate: DefaultTemplate,
		Labels:              DefaultLabels(),
	}
}

// EnglishConfig returns a configuration that removes code and describes it in
// English.
func EnglishConfig() *Config {
	return &Config{
		RemoveCode:          true,
		Selector:            "pre code",
		DescriptionTemplate: EnglishTemplate,
		Labels:              EnglishLabels(),
	}
}
