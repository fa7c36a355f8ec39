package rules

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/jmylchreest/distill/internal/logger"
	"github.com/jmylchreest/distill/pkg/content"
)

func appendRule(name string, priority int) Rule {
	return Rule{
		Name:     name,
		Priority: priority,
		Transform: func(text string, _ content.ProcessingOptions) (string, error) {
			return text + name, nil
		},
	}
}

func newTestEngine(t *testing.T, rules ...Rule) *Engine {
	t.Helper()
	e := NewEngine().WithLogger(logger.Discard())
	for _, r := range rules {
		if err := e.Register(r); err != nil {
			t.Fatalf("Register(%s) error = %v", r.Name, err)
		}
	}
	return e
}

func TestEngine_Register_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"empty name", Rule{Transform: appendRule("x", 1).Transform}},
		{"nil transform", Rule{Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			if err := e.Register(tt.rule); !errors.Is(err, ErrInvalidRule) {
				t.Errorf("Register() error = %v, want ErrInvalidRule", err)
			}
			if e.Len() != 0 {
				t.Errorf("Len() = %d, want 0", e.Len())
			}
		})
	}
}

func TestEngine_PriorityOrder(t *testing.T) {
	e := newTestEngine(t,
		appendRule("a", 10),
		appendRule("b", 50),
		appendRule("c", 10),
		appendRule("d", 50),
		appendRule("e", -1),
	)

	got := e.Apply("", content.ProcessingOptions{})
	if got != "bdace" {
		t.Errorf("Apply() = %q, want %q", got, "bdace")
	}

	var names []string
	for _, r := range e.Rules() {
		names = append(names, r.Name)
	}
	if !reflect.DeepEqual(names, []string{"b", "d", "a", "c", "e"}) {
		t.Errorf("Rules() order = %v", names)
	}
}

func TestEngine_RegistrationOrderDoesNotOverridePriority(t *testing.T) {
	defaults := DefaultRules()
	e := newTestEngine(t)
	for i := len(defaults) - 1; i >= 0; i-- {
		if err := e.Register(defaults[i]); err != nil {
			t.Fatal(err)
		}
	}

	opts := content.ProcessingOptions{MaxLength: 5}
	// Markup counts toward the length until htmlCleaner and textFlattener run,
	// so a limiter running first would cut inside the tag.
	got := e.Apply("<p>abcdefgh</p>", opts)
	if got != "abcde..." {
		t.Errorf("Apply() = %q, want %q", got, "abcde...")
	}
}

func TestEngine_ConditionSeesCurrentContent(t *testing.T) {
	e := newTestEngine(t,
		appendRule("first", 2),
		Rule{
			Name:     "second",
			Priority: 1,
			Condition: func(text string, _ content.ProcessingOptions) bool {
				return strings.HasSuffix(text, "first")
			},
			Transform: appendRule("second", 1).Transform,
		},
	)

	res := e.ApplyWithStats("x", content.ProcessingOptions{})
	if res.Content != "xfirstsecond" {
		t.Errorf("Content = %q", res.Content)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v", res.Skipped)
	}
}

func TestEngine_FailingRulesAreSkipped(t *testing.T) {
	boom := errors.New("boom")
	e := newTestEngine(t,
		appendRule("a", 30),
		Rule{
			Name:     "fails",
			Priority: 20,
			Transform: func(string, content.ProcessingOptions) (string, error) {
				return "discarded", boom
			},
		},
		Rule{
			Name:     "panics",
			Priority: 15,
			Transform: func(string, content.ProcessingOptions) (string, error) {
				panic("kaboom")
			},
		},
		appendRule("b", 10),
	)

	res := e.ApplyWithStats("", content.ProcessingOptions{})
	if res.Content != "ab" {
		t.Errorf("Content = %q, want %q", res.Content, "ab")
	}
	if !reflect.DeepEqual(res.Applied, []string{"a", "b"}) {
		t.Errorf("Applied = %v", res.Applied)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("Failures = %v", res.Failures)
	}
	if res.Failures[0].Rule != "fails" || !errors.Is(res.Failures[0].Err, boom) {
		t.Errorf("Failures[0] = %+v", res.Failures[0])
	}
	if res.Failures[1].Rule != "panics" || !strings.Contains(res.Failures[1].Err.Error(), "kaboom") {
		t.Errorf("Failures[1] = %+v", res.Failures[1])
	}
	if !strings.Contains(res.String(), "failed=2") {
		t.Errorf("String() = %q", res.String())
	}
}

func TestEngine_Processor(t *testing.T) {
	e := newTestEngine(t, appendRule("!", 1))
	p := e.Processor(content.ProcessingOptions{})
	got, err := p.Process("hi")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got != "hi!" {
		t.Errorf("Process() = %q", got)
	}
	if p.Name() != "rules" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestEngine_ConcurrentApply(t *testing.T) {
	e := NewDefaultEngine().WithLogger(logger.Discard())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := e.Apply("<p>hello</p>", content.ProcessingOptions{}); got != "hello" {
				t.Errorf("Apply() = %q", got)
			}
		}()
	}
	wg.Wait()
}
