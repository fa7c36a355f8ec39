// Package rules provides a priority-ordered set of conditional transformations
// over article content.
//
// Unlike a processor chain, rule order is not the order of registration: every
// run sorts the registered rules by descending priority, keeping registration
// order among rules that share a priority.
package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jmylchreest/distill/internal/logger"
	"github.com/jmylchreest/distill/pkg/content"
)

// ErrInvalidRule is returned by Register for a rule without a name or transform.
var ErrInvalidRule = errors.New("invalid rule")

// Rule is a named, prioritized, conditional transformation.
type Rule struct {
	Name     string
	Priority int

	// Condition decides whether the rule runs for the current content.
	// A nil Condition always holds.
	Condition func(text string, opts content.ProcessingOptions) bool

	// Transform produces the next content.
	Transform func(text string, opts content.ProcessingOptions) (string, error)
}

// Failure records a rule whose transform returned an error or panicked.
type Failure struct {
	Rule string
	Err  error
}

// Result contains the output of ApplyWithStats.
type Result struct {
	Content string

	// Applied lists the rules whose transform ran successfully, in run order.
	Applied []string

	// Skipped lists the rules whose condition did not hold.
	Skipped []string

	Failures []Failure
}

// String returns a one-line summary of the run.
func (r *Result) String() string {
	return fmt.Sprintf("applied=%s skipped=%s failed=%d",
		strings.Join(r.Applied, ","), strings.Join(r.Skipped, ","), len(r.Failures))
}

// Engine holds an append-only set of rules.
// Registration is guarded by a mutex and every run works on a snapshot,
// so an engine can be shared between goroutines once populated.
type Engine struct {
	mu     sync.RWMutex
	rules  []Rule
	logger *slog.Logger
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{logger: logger.With("component", "rules")}
}

// NewDefaultEngine creates an engine holding DefaultRules.
func NewDefaultEngine() *Engine {
	e := NewEngine()
	for _, r := range DefaultRules() {
		// Default rules are always valid.
		_ = e.Register(r)
	}
	return e
}

// WithLogger replaces the logger used for rule failures.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	if l != nil {
		e.logger = l
	}
	return e
}

// Register appends a rule.
func (e *Engine) Register(r Rule) error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRule)
	}
	if r.Transform == nil {
		return fmt.Errorf("%w: %s has no transform", ErrInvalidRule, r.Name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
	return nil
}

// Len returns the number of registered rules.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// Rules returns the registered rules in execution order.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	snapshot := make([]Rule, len(e.rules))
	copy(snapshot, e.rules)
	e.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Priority > snapshot[j].Priority
	})
	return snapshot
}

// Apply runs every rule whose condition holds and returns the final content.
// Failing rules are logged and skipped.
func (e *Engine) Apply(text string, opts content.ProcessingOptions) string {
	return e.ApplyWithStats(text, opts).Content
}

// ApplyWithStats runs the rules and reports which of them ran.
func (e *Engine) ApplyWithStats(text string, opts content.ProcessingOptions) *Result {
	result := &Result{Content: text}

	for _, rule := range e.Rules() {
		if rule.Condition != nil && !rule.Condition(result.Content, opts) {
			result.Skipped = append(result.Skipped, rule.Name)
			continue
		}

		out, err := run(rule, result.Content, opts)
		if err != nil {
			e.logger.Warn("rule failed", "rule", rule.Name, "priority", rule.Priority, "error", err)
			result.Failures = append(result.Failures, Failure{Rule: rule.Name, Err: err})
			continue
		}
		result.Content = out
		result.Applied = append(result.Applied, rule.Name)
	}

	return result
}

// run calls the rule's transform, converting a panic into an error.
func run(rule Rule, text string, opts content.ProcessingOptions) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s panicked: %v", rule.Name, r)
		}
	}()
	return rule.Transform(text, opts)
}

// Processor adapts the engine to the processor.Processor interface with a
// fixed set of options.
func (e *Engine) Processor(opts content.ProcessingOptions) *Stage {
	return &Stage{engine: e, opts: opts}
}

// Stage runs an engine as a chain stage.
type Stage struct {
	engine *Engine
	opts   content.ProcessingOptions
}

// Process applies the engine's rules.
func (s *Stage) Process(text string) (string, error) {
	return s.engine.Apply(text, s.opts), nil
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return "rules"
}
