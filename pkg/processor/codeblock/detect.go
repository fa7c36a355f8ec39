package codeblock

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Purpose is the coarse classification of what a code block does.
type Purpose int

const (
	PurposeSnippet Purpose = iota
	PurposeFunction
	PurposeClass
	PurposeImport
	PurposeOutput
)

func (p Purpose) String() string {
	switch p {
	case PurposeFunction:
		return "function"
	case PurposeClass:
		return "class"
	case PurposeImport:
		return "import"
	case PurposeOutput:
		return "output"
	default:
		return "snippet"
	}
}

var (
	languageClass = regexp.MustCompile(`(?i)language[-\s]?(\w+)`)
	comments      = regexp.MustCompile(`/\*[\s\S]*?\*/|//.*`)
)

// purposeCues are checked in order; the first purpose with a matching cue wins.
var purposeCues = []struct {
	purpose Purpose
	cues    []string
}{
	{PurposeFunction, []string{"function", "def ", "=>", "fn "}},
	{PurposeClass, []string{"class "}},
	{PurposeImport, []string{"import ", "require"}},
	{PurposeOutput, []string{"console.log", "print"}},
}

// languageCues are keyword heuristics for blocks without a language marker.
var languageCues = []struct {
	language string
	cues     []string
}{
	{"python", []string{"def ", "print("}},
	{"javascript", []string{"function ", "var ", "const "}},
	{"java", []string{"public class ", "System.out.println"}},
}

// ClassifyPurpose returns the purpose of code after stripping block and line
// comments.
func ClassifyPurpose(code string) Purpose {
	code = StripComments(code)
	for _, pc := range purposeCues {
		for _, cue := range pc.cues {
			if strings.Contains(code, cue) {
				return pc.purpose
			}
		}
	}
	return PurposeSnippet
}

// StripComments removes /* block */ and // line comments.
func StripComments(code string) string {
	return comments.ReplaceAllString(code, "")
}

// GuessLanguage returns a best-guess language for unmarked code, or "" when
// no keyword cue matches. Comments are scanned too.
func GuessLanguage(code string) string {
	for _, lc := range languageCues {
		for _, cue := range lc.cues {
			if strings.Contains(code, cue) {
				return lc.language
			}
		}
	}
	return ""
}

// DeclaredLanguage returns the language named by a language-* class on s or
// its enclosing pre, else by a data-language attribute. Returns "" when the
// markup declares none.
func DeclaredLanguage(s *goquery.Selection) string {
	candidates := []*goquery.Selection{s}
	if parent := s.Parent(); parent.Is("pre") {
		candidates = append(candidates, parent)
	}
	for _, c := range candidates {
		if class, ok := c.Attr("class"); ok {
			if m := languageClass.FindStringSubmatch(class); m != nil {
				return m[1]
			}
		}
	}
	for _, c := range candidates {
		if lang, ok := c.Attr("data-language"); ok && strings.TrimSpace(lang) != "" {
			return strings.TrimSpace(lang)
		}
	}
	return ""
}

// CanonicalLanguage resolves an alias or file extension to the lexer's
// canonical name, lower-cased. Unknown names are returned lower-cased.
func CanonicalLanguage(name string) string {
	if lexer := lexers.Get(name); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.ToLower(name)
}
