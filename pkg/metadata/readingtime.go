package metadata

import (
	"strings"
	"unicode"
)

// DefaultWordsPerMinute is the reading speed used by WordsPerMinute.
const DefaultWordsPerMinute = 200

// ReadingTime is an estimator result.
type ReadingTime struct {
	Minutes float64
	Words   int
}

// ReadingTimeEstimator estimates how long text takes to read.
type ReadingTimeEstimator interface {
	Estimate(text string) ReadingTime
}

// WordsPerMinute estimates reading time from a fixed reading speed.
// Each CJK character counts as one word; other text counts whitespace
// separated runs.
type WordsPerMinute int

// Estimate implements ReadingTimeEstimator.
func (w WordsPerMinute) Estimate(text string) ReadingTime {
	wpm := int(w)
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := CountWords(text)
	return ReadingTime{
		Minutes: float64(words) / float64(wpm),
		Words:   words,
	}
}

// CountWords counts reading units in text: CJK characters individually and
// every other maximal run of non-space, non-CJK characters as one word.
func CountWords(text string) int {
	words := 0
	for _, field := range strings.Fields(text) {
		inWord := false
		for _, r := range field {
			if isCJK(r) {
				words++
				inWord = false
				continue
			}
			if !inWord && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				words++
				inWord = true
			}
		}
	}
	return words
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
