package output

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/distill/pkg/content"
)

// YAMLWriter buffers results and writes them as one YAML document on Flush.
type YAMLWriter struct {
	out    *bufio.Writer
	buffer []content.Result
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{out: bufio.NewWriter(w)}
}

// Write buffers a single result.
func (w *YAMLWriter) Write(r content.Result) error {
	w.buffer = append(w.buffer, r)
	return nil
}

// WriteAll buffers multiple results.
func (w *YAMLWriter) WriteAll(rs []content.Result) error {
	w.buffer = append(w.buffer, rs...)
	return nil
}

// Flush writes the buffered results and empties the buffer.
func (w *YAMLWriter) Flush() error {
	if len(w.buffer) > 0 {
		var doc any = w.buffer
		if len(w.buffer) == 1 {
			doc = w.buffer[0]
		}

		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
		w.buffer = w.buffer[:0]
	}
	return w.out.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
