//go:build !trafilatura

package trafilatura

// Extractor is a stub that returns ErrNotAvailable.
// Build with -tags trafilatura to enable the real implementation.
type Extractor struct{}

// New returns a stub extractor when trafilatura is not compiled in.
func New(_ *Config) *Extractor {
	return &Extractor{}
}

// Process returns ErrNotAvailable.
func (e *Extractor) Process(_ string) (string, error) {
	return "", ErrNotAvailable
}

// Name returns the stage name.
func (e *Extractor) Name() string {
	return Name
}

// IsAvailable returns false when trafilatura is not compiled in.
func (e *Extractor) IsAvailable() bool {
	return false
}
