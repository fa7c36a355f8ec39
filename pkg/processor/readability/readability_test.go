package readability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

func TestExtractor_Name(t *testing.T) {
	e, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e.Name() != "readability" {
		t.Errorf("Name() = %q, want readability", e.Name())
	}
}

func TestExtractor_HTMLKeepsArticle(t *testing.T) {
	e, _ := New(nil)
	got, err := e.Process(readTestdata(t, "article.html"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(got, "superabsorption") {
		t.Errorf("expected article body in output, got %q", got)
	}
	if strings.Contains(got, "All rights reserved") {
		t.Errorf("expected footer to be dropped, got %q", got)
	}
}

func TestExtractor_TextOutput(t *testing.T) {
	e, err := New(&Config{Output: OutputText})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := e.Process(readTestdata(t, "article.html"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("expected plain text, got %q", got)
	}
	if !strings.Contains(got, "femtosecond") {
		t.Errorf("expected article text, got %q", got)
	}
}

func TestExtractor_EmptyInput(t *testing.T) {
	e, _ := New(nil)
	got, err := e.Process("   ")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got != "   " {
		t.Errorf("Process() = %q, want input unchanged", got)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := New(&Config{Output: OutputHTML, BaseURL: "http://[::1"}); err == nil {
		t.Error("expected error for invalid base URL")
	}
}
