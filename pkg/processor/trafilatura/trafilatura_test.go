//go:build trafilatura

package trafilatura

import (
	"strings"
	"testing"
)

const article = `<html><body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Solar Sails Reach Orbit</h1>
<p>A small spacecraft deployed an eighty square metre solar sail in low Earth orbit this week, the first test of a new composite boom design.</p>
<p>Engineers will spend the next month measuring how sunlight pressure changes the orbit, and whether the booms stay rigid through repeated thermal cycles.</p>
<p>If the test succeeds, the same design could carry larger sails to asteroids without any propellant.</p>
</article>
<footer>Footer text</footer>
</body></html>`

func TestExtractor_Available(t *testing.T) {
	e := New(nil)
	if !e.IsAvailable() {
		t.Error("expected trafilatura to be available")
	}
	if e.Name() != "trafilatura" {
		t.Errorf("Name() = %q", e.Name())
	}
}

func TestExtractor_Process(t *testing.T) {
	for _, output := range []string{OutputHTML, OutputText} {
		t.Run(output, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Output = output
			got, err := New(cfg).Process(article)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if !strings.Contains(got, "solar sail") {
				t.Errorf("expected article text, got %q", got)
			}
		})
	}
}
