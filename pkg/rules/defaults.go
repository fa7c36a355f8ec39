package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/jmylchreest/distill/pkg/content"
	"github.com/jmylchreest/distill/pkg/processor/whitespace"
)

// Default rule names and priorities.
const (
	HTMLCleaner   = "htmlCleaner"
	LinkExtractor = "linkExtractor"
	TextFlattener = "textFlattener"
	LengthLimiter = "lengthLimiter"

	HTMLCleanerPriority   = 100
	LinkExtractorPriority = 90
	TextFlattenerPriority = 80
	LengthLimiterPriority = 70
)

// Description is a short human-readable summary for each default rule.
var Description = map[string]string{
	HTMLCleaner:   "drop script and style elements, and images when requested",
	LinkExtractor: "append each link target after its anchor text when requested",
	TextFlattener: "strip all markup, decode entities and collapse whitespace",
	LengthLimiter: "cut the text to the maximum length and mark the cut",
}

// Ellipsis is appended to content cut by the length limiter.
const Ellipsis = "..."

// strictPolicy strips every tag. Policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// DefaultRules returns the built-in rules:
//
//	htmlCleaner   (100) drop script and style, and img when RemoveImages is set
//	linkExtractor  (90) write " (href) " after every linked anchor when ExtractLinks is set
//	textFlattener  (80) strip all markup, unescape entities, collapse whitespace
//	lengthLimiter  (70) cut to MaxLength characters plus "..." when MaxLength > 0
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      HTMLCleaner,
			Priority:  HTMLCleanerPriority,
			Transform: cleanMarkup,
		},
		{
			Name:     LinkExtractor,
			Priority: LinkExtractorPriority,
			Condition: func(_ string, opts content.ProcessingOptions) bool {
				return opts.ExtractLinks
			},
			Transform: annotateLinks,
		},
		{
			Name:     TextFlattener,
			Priority: TextFlattenerPriority,
			Transform: func(text string, _ content.ProcessingOptions) (string, error) {
				return FlattenText(text), nil
			},
		},
		{
			Name:     LengthLimiter,
			Priority: LengthLimiterPriority,
			Condition: func(text string, opts content.ProcessingOptions) bool {
				return opts.MaxLength > 0 && utf8.RuneCountInString(text) > opts.MaxLength
			},
			Transform: func(text string, opts content.ProcessingOptions) (string, error) {
				return Truncate(text, opts.MaxLength), nil
			},
		},
	}
}

func cleanMarkup(text string, opts content.ProcessingOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	selector := "script, style"
	if opts.RemoveImages {
		selector += ", img"
	}
	doc.Find(selector).Remove()

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render markup: %w", err)
	}
	return strings.TrimSpace(whitespace.Collapse(out)), nil
}

func annotateLinks(text string, _ content.ProcessingOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		n := s.Get(0)
		if n.Parent == nil {
			return
		}
		n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: " (" + href + ") "}, n.NextSibling)
	})

	return doc.Html()
}

// FlattenText removes all markup from text, decodes entities and collapses
// whitespace.
func FlattenText(text string) string {
	plain := html.UnescapeString(strictPolicy.Sanitize(text))
	return strings.TrimSpace(whitespace.Collapse(plain))
}

// Truncate cuts text to limit characters and appends Ellipsis.
// Text within the limit is returned unchanged.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + Ellipsis
}
