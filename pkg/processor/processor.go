// Package processor provides the content-processing stage abstraction and the
// chain that composes stages into a pipeline.
// Stages transform article markup or text into a cleaner representation for
// downstream summarization. Concrete stages live in subpackages.
package processor

// Processor transforms content into a cleaner or more normalized form.
type Processor interface {
	// Process transforms the input content.
	// The output may be markup or plain text depending on the implementation.
	Process(content string) (string, error)

	// Name returns the processor type for logging/debugging.
	Name() string
}

// Func adapts a plain function to the Processor interface.
type Func struct {
	name string
	fn   func(string) (string, error)
}

// NewFunc wraps fn as a Processor with the given name.
func NewFunc(name string, fn func(string) (string, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Process calls the wrapped function.
func (f *Func) Process(content string) (string, error) {
	return f.fn(content)
}

// Name returns the configured name.
func (f *Func) Name() string {
	return f.name
}
