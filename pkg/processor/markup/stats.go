package markup

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Result holds the cleaned markup and what the cleaner did to produce it.
type Result struct {
	Content string
	Stats   *Stats
	Err     error
}

// Stats captures metrics about a single cleaning run.
type Stats struct {
	InputBytes  int `json:"inputBytes"`
	OutputBytes int `json:"outputBytes"`

	// ElementsRemoved counts deny-listed elements dropped with their subtree.
	ElementsRemoved map[string]int `json:"elementsRemoved"`

	// ElementsFlattened counts elements replaced by their text content.
	ElementsFlattened map[string]int `json:"elementsFlattened"`

	Duration time.Duration `json:"duration"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved:   make(map[string]int),
		ElementsFlattened: make(map[string]int),
	}
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// RecordFlatten records that an element was flattened to text.
func (s *Stats) RecordFlatten(tag string) {
	s.ElementsFlattened[strings.ToLower(tag)]++
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))
	writeCounts(&sb, "Removed", s.ElementsRemoved)
	writeCounts(&sb, "Flattened", s.ElementsFlattened)
	return sb.String()
}

func writeCounts(sb *strings.Builder, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = fmt.Sprintf("%s=%d", tag, counts[tag])
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(parts, ", ")))
}
