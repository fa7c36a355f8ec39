package processor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStageFailed is matched by every *StageError via errors.Is.
var ErrStageFailed = errors.New("processing stage failed")

// StageError reports which stage aborted a chain run.
type StageError struct {
	Stage string
	Index int
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Index, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStageFailed as a match so callers need not know the stage.
func (e *StageError) Is(target error) bool {
	return target == ErrStageFailed
}

// Stage is one slot in a chain. A disabled stage performs no transformation
// of its own; content flows on to the next stage unchanged.
type Stage struct {
	Processor Processor
	Enabled   bool
}

// Chain applies multiple processors in sequence.
// A Chain is immutable once built and safe for concurrent use as long as its
// stages are.
type Chain struct {
	stages []Stage
}

// NewChain creates a chain that applies processors in the order provided,
// all enabled.
//
// Example:
//
//	chain := processor.NewChain(
//	    markup.New(nil),
//	    whitespace.New(nil),
//	)
func NewChain(processors ...Processor) *Chain {
	stages := make([]Stage, len(processors))
	for i, p := range processors {
		stages[i] = Stage{Processor: p, Enabled: true}
	}
	return &Chain{stages: stages}
}

// NewChainFromStages creates a chain from explicit stages, honouring each
// stage's Enabled flag.
func NewChainFromStages(stages ...Stage) *Chain {
	return &Chain{stages: append([]Stage(nil), stages...)}
}

// Process applies all enabled stages in sequence. The first stage error
// aborts the run and is returned as a *StageError.
// A chain with no stages returns content unchanged.
func (c *Chain) Process(content string) (string, error) {
	for i, stage := range c.stages {
		if !stage.Enabled || stage.Processor == nil {
			continue
		}
		out, err := stage.Processor.Process(content)
		if err != nil {
			return "", &StageError{Stage: stage.Processor.Name(), Index: i, Err: err}
		}
		content = out
	}
	return content, nil
}

// Name returns the names of all chained stages.
// Disabled stages are suffixed with "(off)".
func (c *Chain) Name() string {
	names := make([]string, len(c.stages))
	for i, stage := range c.stages {
		name := "nil"
		if stage.Processor != nil {
			name = stage.Processor.Name()
		}
		if !stage.Enabled {
			name += "(off)"
		}
		names[i] = name
	}
	return "chain(" + strings.Join(names, "->") + ")"
}

// Len returns the number of stages, enabled or not.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Stages returns a copy of the chain's stages.
func (c *Chain) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}
