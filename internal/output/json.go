package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/distill/pkg/content"
)

// JSONWriter buffers results and writes them as one JSON document on Flush:
// a single object for one result, an array otherwise.
type JSONWriter struct {
	out    *bufio.Writer
	enc    *json.Encoder
	buffer []content.Result
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	out := bufio.NewWriter(w)
	return &JSONWriter{out: out, enc: newEncoder(out, pretty, indent)}
}

// Write buffers a single result.
func (w *JSONWriter) Write(r content.Result) error {
	w.buffer = append(w.buffer, r)
	return nil
}

// WriteAll buffers multiple results.
func (w *JSONWriter) WriteAll(rs []content.Result) error {
	w.buffer = append(w.buffer, rs...)
	return nil
}

// Flush writes the buffered results and empties the buffer.
func (w *JSONWriter) Flush() error {
	if len(w.buffer) > 0 {
		var doc any = w.buffer
		if len(w.buffer) == 1 {
			doc = w.buffer[0]
		}
		if err := w.enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		w.buffer = w.buffer[:0]
	}
	return w.out.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes one compact JSON object per line as results arrive.
type JSONLWriter struct {
	out *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	out := bufio.NewWriter(w)
	return &JSONLWriter{out: out, enc: newEncoder(out, false, "")}
}

// Write writes a single result as a JSON line.
func (w *JSONLWriter) Write(r content.Result) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return w.out.Flush()
}

// WriteAll writes multiple results as JSON lines.
func (w *JSONLWriter) WriteAll(rs []content.Result) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.out.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}

// newEncoder returns an encoder that leaves markup in cleanContent unescaped.
func newEncoder(w io.Writer, pretty bool, indent string) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	return enc
}
