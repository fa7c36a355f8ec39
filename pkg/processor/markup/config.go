// Package markup provides the allow/deny-list HTML cleaner stage.
// It reduces article markup to a small set of text-bearing tags before
// text extraction.
package markup

// Config defines the configuration options for the markup cleaner.
type Config struct {
	// RemoveElements are tags removed together with their descendants and text.
	RemoveElements []string `json:"removeElements" yaml:"removeElements" validate:"dive,required"`

	// PreserveElements are the only tags that survive as markup. Every other
	// element inside the body is replaced with its flattened text.
	PreserveElements []string `json:"preserveElements" yaml:"preserveElements" validate:"dive,required"`
}

// DefaultConfig returns the default deny and allow lists.
func DefaultConfig() *Config {
	return &Config{
		RemoveElements: []string{"script", "style", "iframe", "form", "noscript"},
		PreserveElements: []string{
			"p",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"ul", "ol", "li",
			"a", "img",
		},
	}
}

// TextOnlyConfig removes the default deny-list and preserves nothing, so the
// output is the flattened text of the body.
func TextOnlyConfig() *Config {
	cfg := DefaultConfig()
	cfg.PreserveElements = []string{}
	return cfg
}
