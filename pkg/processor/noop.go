package processor

// NoopProcessor passes content through without modification.
// Use this as a placeholder stage or when content is already clean.
type NoopProcessor struct{}

// NewNoop creates a new no-op processor.
func NewNoop() *NoopProcessor {
	return &NoopProcessor{}
}

// Process returns the input unchanged.
func (p *NoopProcessor) Process(content string) (string, error) {
	return content, nil
}

// Name returns the processor type.
func (p *NoopProcessor) Name() string {
	return "noop"
}
