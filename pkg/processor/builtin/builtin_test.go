package builtin

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jmylchreest/distill/pkg/processor"
)

func TestNewRegistry_Names(t *testing.T) {
	want := []string{"characterConverter", "codeBlock", "formula", "htmlCleaner", "markdown", "readability", "trafilatura", "whitespace"}
	if got := NewRegistry().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		if Description[name] == "" {
			t.Errorf("missing description for %s", name)
		}
	}
}

func TestBuild_FromYAML(t *testing.T) {
	cfg, err := processor.ParsePipelineConfig([]byte(`
pipeline:
  codeBlock:
    removeCode: true
  formula:
  htmlCleaner:
  characterConverter:
    normalizeQuotes: false
  whitespace:
    normalizeIndentation: true
`))
	if err != nil {
		t.Fatalf("ParsePipelineConfig() error = %v", err)
	}
	chain, err := NewRegistry().Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	input := "<p>结果：\\(a+b=c\\)</p>\n\n<pre><code class=\"language-python\">def hello():\n  print(1)</code></pre><p>“引用”</p>"
	got, err := chain.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := "<p>结果:[数学公式: a+b=c]</p> [这是一段python代码,定义了函数]<p>“引用”</p>"
	if got != want {
		t.Errorf("Process() = %q, want %q", got, want)
	}
}

func TestBuild_InvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		stage processor.StageConfig
	}{
		{"unknown key", processor.StageConfig{Name: "whitespace", Enabled: true, Options: map[string]any{"bogus": true}}},
		{"negative limit", processor.StageConfig{Name: "whitespace", Enabled: true, Options: map[string]any{"maxConsecutiveNewlines": -1}}},
		{"bad regex", processor.StageConfig{Name: "formula", Enabled: true, Options: map[string]any{"latexPattern": "("}}},
		{"bad output", processor.StageConfig{Name: "readability", Enabled: true, Options: map[string]any{"output": "pdf"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry().Build(processor.PipelineConfig{tt.stage}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuild_DisabledStageForwards(t *testing.T) {
	withDisabled, err := NewRegistry().Build(processor.PipelineConfig{
		{Name: "htmlCleaner", Enabled: true},
		{Name: "characterConverter", Enabled: false},
		{Name: "whitespace", Enabled: true},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	omitted, _ := NewRegistry().Build(processor.PipelineConfig{
		{Name: "htmlCleaner", Enabled: true},
		{Name: "whitespace", Enabled: true},
	})

	input := "<p>全角　ＡＢＣ，  text</p>"
	a, _ := withDisabled.Process(input)
	b, _ := omitted.Process(input)
	if a != b {
		t.Errorf("disabled stage changed output: %q vs %q", a, b)
	}
}

func TestDefaultPipeline(t *testing.T) {
	chain, err := NewRegistry().Build(DefaultPipeline())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if chain.Len() != 5 {
		t.Errorf("Len() = %d, want 5", chain.Len())
	}
	_, err = chain.Process("<p>ok</p>")
	if errors.Is(err, processor.ErrStageFailed) {
		t.Errorf("default pipeline failed: %v", err)
	}
}
