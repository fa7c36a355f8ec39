package processor

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a pipeline or stage configuration
// cannot be decoded or fails validation.
var ErrInvalidConfig = errors.New("invalid processor configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// StageConfig is the declarative configuration of one stage.
// Options holds the stage-specific fields; see each stage's Config type.
type StageConfig struct {
	Name    string
	Enabled bool
	Options map[string]any
}

// Decode decodes the stage options into target and validates the result.
// target should already hold the stage's defaults; only the keys present in
// Options are overwritten. Unknown keys are rejected.
func (s StageConfig) Decode(target any) error {
	if len(s.Options) > 0 {
		data, err := yaml.Marshal(s.Options)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.Name, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.Name, err)
		}
	}
	if err := validate.Struct(target); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// target is not a struct; nothing to validate
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.Name, err)
	}
	return nil
}

// PipelineConfig is the ordered list of stage configurations.
// Order of entries is execution order.
type PipelineConfig []StageConfig

// UnmarshalYAML decodes either a mapping (stage name -> options, key order
// preserved) or a sequence of mappings carrying a "name" key.
// A missing "enabled" key means the stage is enabled.
func (p *PipelineConfig) UnmarshalYAML(value *yaml.Node) error {
	var stages PipelineConfig

	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			name := value.Content[i].Value
			stage, err := decodeStage(name, value.Content[i+1])
			if err != nil {
				return err
			}
			stages = append(stages, stage)
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			var head struct {
				Name string `yaml:"name"`
			}
			if err := item.Decode(&head); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			if head.Name == "" {
				return fmt.Errorf("%w: stage at line %d has no name", ErrInvalidConfig, item.Line)
			}
			stage, err := decodeStage(head.Name, item)
			if err != nil {
				return err
			}
			delete(stage.Options, "name")
			stages = append(stages, stage)
		}
	case 0:
		// empty document
	default:
		return fmt.Errorf("%w: pipeline must be a mapping or a sequence (line %d)", ErrInvalidConfig, value.Line)
	}

	*p = stages
	return nil
}

func decodeStage(name string, node *yaml.Node) (StageConfig, error) {
	stage := StageConfig{Name: name, Enabled: true}

	// "htmlCleaner:" with no body is an enabled stage with defaults
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return stage, nil
	}

	var opts map[string]any
	if err := node.Decode(&opts); err != nil {
		return stage, fmt.Errorf("%w: stage %s: %v", ErrInvalidConfig, name, err)
	}
	if raw, ok := opts["enabled"]; ok {
		enabled, ok := raw.(bool)
		if !ok {
			return stage, fmt.Errorf("%w: stage %s: enabled must be a boolean", ErrInvalidConfig, name)
		}
		stage.Enabled = enabled
		delete(opts, "enabled")
	}
	if len(opts) > 0 {
		stage.Options = opts
	}
	return stage, nil
}

// MarshalYAML renders the pipeline as an ordered mapping.
func (p PipelineConfig) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, stage := range p {
		body := map[string]any{"enabled": stage.Enabled}
		for k, v := range stage.Options {
			body[k] = v
		}
		var value yaml.Node
		if err := value.Encode(body); err != nil {
			return nil, err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: stage.Name},
			&value,
		)
	}
	return root, nil
}

// Names returns the stage names in order.
func (p PipelineConfig) Names() []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage.Name
	}
	return names
}

// ParsePipelineConfig parses a YAML document. The pipeline may sit under a
// top-level "pipeline" key or be the document itself.
func ParsePipelineConfig(data []byte) (PipelineConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(doc.Content) == 0 {
		return PipelineConfig{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "pipeline" {
				root = root.Content[i+1]
				break
			}
		}
	}

	var cfg PipelineConfig
	if err := root.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPipelineConfig reads and parses a YAML pipeline file.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}
	return ParsePipelineConfig(data)
}
