package markup

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Name is the configuration name of the markup cleaner stage.
const Name = "htmlCleaner"

// Cleaner strips deny-listed elements and flattens every element that is not
// allow-listed into its text content.
// It implements the processor.Processor interface.
type Cleaner struct {
	remove   []string
	preserve map[string]bool
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}

	remove := make([]string, 0, len(config.RemoveElements))
	for _, tag := range config.RemoveElements {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			remove = append(remove, tag)
		}
	}
	preserve := make(map[string]bool, len(config.PreserveElements))
	for _, tag := range config.PreserveElements {
		preserve[strings.ToLower(strings.TrimSpace(tag))] = true
	}

	return &Cleaner{remove: remove, preserve: preserve}
}

// Name returns the stage name.
func (c *Cleaner) Name() string {
	return Name
}

// Process cleans markup. Empty input returns empty output.
func (c *Cleaner) Process(content string) (string, error) {
	result := c.ProcessWithStats(content)
	return result.Content, result.Err
}

// ProcessWithStats cleans markup and reports what was removed and flattened.
func (c *Cleaner) ProcessWithStats(content string) *Result {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(content)
	defer func() {
		result.Stats.OutputBytes = len(result.Content)
		result.Stats.Duration = time.Since(start)
	}()

	if strings.TrimSpace(content) == "" {
		result.Content = ""
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		result.Err = err
		return result
	}
	body := doc.Find("body")

	if len(c.remove) > 0 {
		doc.Find(strings.Join(c.remove, ", ")).Each(func(_ int, s *goquery.Selection) {
			result.Stats.RecordRemoval(goquery.NodeName(s))
			s.Remove()
		})
	}

	// Reverse document order visits descendants before their ancestors, so
	// nested disallowed elements are already text when their parent collapses.
	elements := body.Find("*").Nodes
	for i := len(elements) - 1; i >= 0; i-- {
		node := elements[i]
		if c.preserve[node.Data] || node.Parent == nil {
			continue
		}
		result.Stats.RecordFlatten(node.Data)
		flatten(node)
	}

	out, err := body.Html()
	if err != nil {
		result.Err = err
		return result
	}
	result.Content = out
	return result
}

// flatten replaces n with a single text node holding its text content.
func flatten(n *html.Node) {
	text := goquery.NewDocumentFromNode(n).Text()
	parent := n.Parent
	if text != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, n)
	}
	parent.RemoveChild(n)
}
