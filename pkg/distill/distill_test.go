package distill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jmylchreest/distill/internal/logger"
	"github.com/jmylchreest/distill/pkg/content"
	"github.com/jmylchreest/distill/pkg/metadata"
	"github.com/jmylchreest/distill/pkg/processor"
	"github.com/jmylchreest/distill/pkg/rules"
)

func newTestService(opts ...Option) *Service {
	base := []Option{
		WithLogger(logger.Discard()),
		WithExtractor(metadata.New(metadata.WithDetector(nil))),
	}
	return New(append(base, opts...)...)
}

func TestProcessContent_Success(t *testing.T) {
	raw := `<html><head><style>p{}</style></head><body>
<h1>Solar sails</h1>
<p>Sunlight <a href="https://example.com/sails">pushes</a> the sail.</p>
<script>track()</script>
</body></html>`

	res := newTestService().ProcessContent(context.Background(), "item-1", raw,
		content.ProcessingOptions{ExtractLinks: true})
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	pc := res.Content
	if pc.ID != "item-1" {
		t.Errorf("ID = %q", pc.ID)
	}
	if pc.OriginalContent != raw {
		t.Error("OriginalContent changed")
	}
	want := "Solar sails Sunlight pushes (https://example.com/sails) the sail."
	if pc.ExtractedText != want {
		t.Errorf("ExtractedText = %q, want %q", pc.ExtractedText, want)
	}
	if strings.Contains(pc.CleanContent, "track()") {
		t.Errorf("CleanContent kept script: %q", pc.CleanContent)
	}
	if pc.Metadata.WordCount != 7 {
		t.Errorf("WordCount = %d, want 7", pc.Metadata.WordCount)
	}
	if pc.Metadata.ContentType != content.TypeNews {
		t.Errorf("ContentType = %s", pc.Metadata.ContentType)
	}
	if pc.ProcessingDate.IsZero() {
		t.Error("ProcessingDate not set")
	}
	if res.ProcessingTime <= 0 {
		t.Error("ProcessingTime not set")
	}
}

func TestProcessContent_GeneratesID(t *testing.T) {
	res := newTestService().ProcessContent(context.Background(), "", "<p>text</p>", content.ProcessingOptions{})
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if _, err := uuid.Parse(res.Content.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", res.Content.ID, err)
	}
}

func TestProcessContent_Failures(t *testing.T) {
	boom := errors.New("boom")
	failing := processor.NewFunc("failing", func(string) (string, error) { return "", boom })
	panicking := processor.NewFunc("panicking", func(string) (string, error) { panic("kaboom") })

	tests := []struct {
		name    string
		svc     *Service
		raw     string
		opts    content.ProcessingOptions
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty text",
			svc:     newTestService(),
			raw:     "<script>only()</script><style>p{}</style>",
			wantErr: ErrEmptyContent,
			wantMsg: EmptyContentMessage,
		},
		{
			name:    "whitespace only",
			svc:     newTestService(),
			raw:     " \n\t ",
			wantErr: ErrEmptyContent,
			wantMsg: EmptyContentMessage,
		},
		{
			name:    "invalid options",
			svc:     newTestService(),
			raw:     "<p>x</p>",
			opts:    content.ProcessingOptions{MaxLength: -5},
			wantErr: content.ErrInvalidOptions,
			wantMsg: FailurePrefix,
		},
		{
			name:    "stage error",
			svc:     newTestService(WithChain(processor.NewChain(failing))),
			raw:     "<p>x</p>",
			wantErr: boom,
			wantMsg: FailurePrefix,
		},
		{
			name:    "panic recovered",
			svc:     newTestService(WithChain(panicking)),
			raw:     "<p>x</p>",
			wantMsg: FailurePrefix + "panic: kaboom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.svc.ProcessContent(context.Background(), "id", tt.raw, tt.opts)
			if res.Success {
				t.Fatal("Success = true, want failure")
			}
			if res.Content != nil {
				t.Error("failed result carries content")
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tt.wantErr)
			}
			if !strings.HasPrefix(res.Error, tt.wantMsg) {
				t.Errorf("Error = %q, want prefix %q", res.Error, tt.wantMsg)
			}
		})
	}
}

func TestProcessContent_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := newTestService().ProcessContent(ctx, "id", "<p>x</p>", content.ProcessingOptions{})
	if res.Success || !errors.Is(res.Err, context.Canceled) {
		t.Errorf("result = %+v, want context.Canceled failure", res)
	}
}

func TestProcessContent_EscapedMarkupSurvives(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantWords int
	}{
		{
			name:      "comparison operators",
			raw:       "<p>if a&lt;b and c&gt;d then swap</p>",
			want:      "if a<b and c>d then swap",
			wantWords: 7,
		},
		{
			name:      "literal tag text",
			raw:       "<p>use &lt;script&gt;alert(1)&lt;/script&gt; carefully</p>",
			want:      "use <script>alert(1)</script> carefully",
			wantWords: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestService().ProcessContent(context.Background(), "id", tt.raw, content.ProcessingOptions{})
			if !res.Success {
				t.Fatalf("Success = false, error = %q", res.Error)
			}
			if res.Content.CleanContent != tt.want {
				t.Errorf("CleanContent = %q, want %q", res.Content.CleanContent, tt.want)
			}
			if res.Content.ExtractedText != tt.want {
				t.Errorf("ExtractedText = %q, want %q", res.Content.ExtractedText, tt.want)
			}
			if res.Content.Metadata.WordCount != tt.wantWords {
				t.Errorf("WordCount = %d, want %d", res.Content.Metadata.WordCount, tt.wantWords)
			}
		})
	}
}

func TestProcessContent_WithChain(t *testing.T) {
	upper := processor.NewFunc("upper", func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})
	svc := newTestService(WithChain(processor.NewChain(upper)))
	res := svc.ProcessContent(context.Background(), "id", "<p>quiet words</p>", content.ProcessingOptions{})
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if res.Content.CleanContent != "<P>QUIET WORDS</P>" {
		t.Errorf("CleanContent = %q", res.Content.CleanContent)
	}
	if res.Content.ExtractedText != "QUIET WORDS" {
		t.Errorf("ExtractedText = %q", res.Content.ExtractedText)
	}
}

func TestProcessContent_CustomRuleEngine(t *testing.T) {
	e := rules.NewDefaultEngine().WithLogger(logger.Discard())
	if err := e.Register(rules.Rule{
		Name:     "shout",
		Priority: 10,
		Transform: func(s string, _ content.ProcessingOptions) (string, error) {
			return s + "!", nil
		},
	}); err != nil {
		t.Fatal(err)
	}

	res := newTestService(WithRuleEngine(e)).ProcessContent(context.Background(), "id", "<p>hi</p>", content.ProcessingOptions{})
	if !res.Success || res.Content.ExtractedText != "hi!" {
		t.Errorf("result = %+v", res)
	}
}

func TestProcessBatch(t *testing.T) {
	var items []Item
	for i := 0; i < 20; i++ {
		items = append(items, Item{ID: fmt.Sprintf("item-%d", i), Content: fmt.Sprintf("<p>body %d</p>", i)})
	}
	items = append(items, Item{ID: "empty", Content: "<style></style>"})

	results := newTestService(WithConcurrency(4)).ProcessBatch(context.Background(), items)
	if len(results) != len(items) {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, res := range results[:20] {
		if !res.Success {
			t.Errorf("results[%d] failed: %s", i, res.Error)
			continue
		}
		if res.Content.ID != items[i].ID {
			t.Errorf("results[%d].ID = %q, want %q", i, res.Content.ID, items[i].ID)
		}
		if want := fmt.Sprintf("body %d", i); res.Content.ExtractedText != want {
			t.Errorf("results[%d] text = %q, want %q", i, res.Content.ExtractedText, want)
		}
	}
	if last := results[20]; last.Success || !errors.Is(last.Err, ErrEmptyContent) {
		t.Errorf("empty item result = %+v", last)
	}
}

func TestProcessBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := newTestService().ProcessBatch(ctx, []Item{{Content: "<p>a</p>"}, {Content: "<p>b</p>"}})
	for i, res := range results {
		if res.Success || !errors.Is(res.Err, context.Canceled) {
			t.Errorf("results[%d] = %+v, want cancellation", i, res)
		}
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>a</p>\n<p>  b </p>", "a b"},
		{"plain   text", "plain text"},
		{"fish &amp; chips", "fish & chips"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ExtractText(tt.in)
		if err != nil {
			t.Fatalf("ExtractText(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExtractText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
