package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/distill/pkg/content"
)

// TextWriter writes the extracted text of each result, separated by blank
// lines. Failed results are written as "! <error>" lines. In verbose mode a
// summary header precedes each text.
type TextWriter struct {
	out     *bufio.Writer
	verbose bool
	written int
}

// NewTextWriter creates a plain-text writer.
func NewTextWriter(w io.Writer, verbose bool) *TextWriter {
	return &TextWriter{out: bufio.NewWriter(w), verbose: verbose}
}

// Write writes a single result.
func (w *TextWriter) Write(r content.Result) error {
	if w.written > 0 {
		if err := w.out.WriteByte('\n'); err != nil {
			return err
		}
	}
	w.written++

	if !r.Success || r.Content == nil {
		_, err := fmt.Fprintf(w.out, "! %s\n", r.Error)
		return err
	}

	if w.verbose {
		if _, err := fmt.Fprintln(w.out, Summary(r)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.out, r.Content.ExtractedText)
	return err
}

// WriteAll writes multiple results.
func (w *TextWriter) WriteAll(rs []content.Result) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.out.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}

// Summary returns a one-line description of a result, e.g.
//
//	# item-1 news, 1,204 words, 7 min, zh, 18 kB -> 6.1 kB in 3ms
func Summary(r content.Result) string {
	if !r.Success || r.Content == nil {
		return "! " + r.Error
	}
	c := r.Content
	md := c.Metadata

	parts := []string{
		string(md.ContentType),
		humanize.Comma(int64(md.WordCount)) + " words",
		fmt.Sprintf("%d min", md.ReadingTime),
	}
	if md.Language != "" {
		parts = append(parts, md.Language)
	}
	parts = append(parts, fmt.Sprintf("%s -> %s in %s",
		humanize.Bytes(uint64(len(c.OriginalContent))),
		humanize.Bytes(uint64(len(c.ExtractedText))),
		r.ProcessingTime.Round(time.Millisecond)))

	return fmt.Sprintf("# %s %s", c.ID, strings.Join(parts, ", "))
}
