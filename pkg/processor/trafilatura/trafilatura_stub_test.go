//go:build !trafilatura

package trafilatura

import (
	"errors"
	"testing"
)

func TestStub_ReturnsNotAvailable(t *testing.T) {
	e := New(nil)
	if e.IsAvailable() {
		t.Error("stub should not be available")
	}
	if e.Name() != "trafilatura" {
		t.Errorf("Name() = %q", e.Name())
	}
	if _, err := e.Process("<p>x</p>"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("Process() error = %v, want ErrNotAvailable", err)
	}
}
