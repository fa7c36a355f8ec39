package metadata

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/distill/pkg/content"
)

// Classification thresholds, in characters and paragraphs.
const (
	ArticleMinLength     = 3000
	ArticleMinParagraphs = 5
	NewsMaxLength        = 1000
	BlogMinParagraphs    = 3
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	phraseToken    = regexp.MustCompile(`\b\w{4,}\b`)
)

// ParagraphCount returns the number of blank-line separated blocks.
// Text without a blank line counts as one paragraph.
func ParagraphCount(text string) int {
	return len(paragraphBreak.Split(text, -1))
}

// Classify buckets text by length and paragraph count. The first matching
// rule wins:
//
//	length > 3000 and paragraphs > 5  article
//	length < 1000                     news
//	paragraphs > 3                    blog
//	otherwise                         other
func Classify(text string) content.ContentType {
	length := utf8.RuneCountInString(text)
	paragraphs := ParagraphCount(text)

	switch {
	case length > ArticleMinLength && paragraphs > ArticleMinParagraphs:
		return content.TypeArticle
	case length < NewsMaxLength:
		return content.TypeNews
	case paragraphs > BlogMinParagraphs:
		return content.TypeBlog
	default:
		return content.TypeOther
	}
}

// Quality is the mean of a length score, a structure score and a lexical
// diversity score, each within [0,1].
func Quality(text string) float64 {
	lengthScore := float64(utf8.RuneCountInString(text)) / NewsMaxLength
	if lengthScore > 1 {
		lengthScore = 1
	}

	structureScore := 0.5
	if ParagraphCount(text) > BlogMinParagraphs {
		structureScore = 1
	}

	var diversityScore float64
	if tokens := strings.Fields(text); len(tokens) > 0 {
		distinct := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			distinct[tok] = struct{}{}
		}
		diversityScore = float64(len(distinct)) / float64(len(tokens))
	}

	return (lengthScore + structureScore + diversityScore) / 3
}

// KeyPhrases returns up to limit lower-cased words of four or more word
// characters, most frequent first. Ties keep first-occurrence order.
func KeyPhrases(text string, limit int) []string {
	type phrase struct {
		word  string
		count int
	}

	var phrases []phrase
	index := make(map[string]int)
	for _, word := range phraseToken.FindAllString(strings.ToLower(text), -1) {
		if i, ok := index[word]; ok {
			phrases[i].count++
			continue
		}
		index[word] = len(phrases)
		phrases = append(phrases, phrase{word: word, count: 1})
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		return phrases[i].count > phrases[j].count
	})

	if limit >= 0 && len(phrases) > limit {
		phrases = phrases[:limit]
	}
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.word
	}
	return out
}
