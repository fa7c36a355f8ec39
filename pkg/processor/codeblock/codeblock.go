package codeblock

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Name is the configuration name of the code-block stage.
const Name = "codeBlock"

// Block describes one matched code element.
type Block struct {
	Language string
	Purpose  Purpose
	Code     string
}

// Summarizer replaces code blocks with a short description.
// It implements the processor.Processor interface.
type Summarizer struct {
	config   Config
	selector cascadia.Selector
}

// New creates a new Summarizer with the given configuration.
// If config is nil, DefaultConfig() is used. An invalid selector is an error.
func New(config *Config) (*Summarizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	sel, err := cascadia.Compile(config.Selector)
	if err != nil {
		return nil, fmt.Errorf("invalid code block selector %q: %w", config.Selector, err)
	}
	return &Summarizer{config: *config, selector: sel}, nil
}

// Name returns the stage name.
func (s *Summarizer) Name() string {
	return Name
}

// Process replaces every matched code block with its description when
// RemoveCode is set. Otherwise, or when nothing matches, content is returned
// unchanged.
func (s *Summarizer) Process(content string) (string, error) {
	if !s.config.RemoveCode || strings.TrimSpace(content) == "" {
		return content, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	matches := doc.FindMatcher(s.selector)
	if matches.Length() == 0 {
		return content, nil
	}

	root := doc.Get(0)
	matches.Each(func(_ int, sel *goquery.Selection) {
		// an earlier replacement may have detached this block
		if !attached(sel.Get(0), root) {
			return
		}
		block := s.describe(sel)
		target := sel
		if parent := sel.Parent(); parent.Is("pre") && parent.Children().Length() == 1 {
			target = parent
		}
		replaceWithText(target.Get(0), s.render(block))
	})

	return doc.Find("body").Html()
}

// Blocks returns the description of every matched block without modifying
// the markup.
func (s *Summarizer) Blocks(content string) ([]Block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	var blocks []Block
	doc.FindMatcher(s.selector).Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, s.describe(sel))
	})
	return blocks, nil
}

func (s *Summarizer) describe(sel *goquery.Selection) Block {
	code := strings.TrimSpace(sel.Text())

	language := DeclaredLanguage(sel)
	if language == "" {
		language = GuessLanguage(code)
	}
	if language != "" {
		if s.config.CanonicalizeLanguage {
			language = CanonicalLanguage(language)
		} else {
			language = strings.ToLower(language)
		}
	}

	return Block{Language: language, Purpose: ClassifyPurpose(code), Code: code}
}

func (s *Summarizer) render(b Block) string {
	language := b.Language
	if language == "" {
		language = s.config.Labels.UnknownLanguage
	}
	return strings.NewReplacer(
		LanguagePlaceholder, language,
		SummaryPlaceholder, s.config.Labels.For(b.Purpose),
	).Replace(s.config.DescriptionTemplate)
}

func attached(n, root *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func replaceWithText(n *html.Node, text string) {
	n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, n)
	n.Parent.RemoveChild(n)
}
