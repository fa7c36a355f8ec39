package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// resetLogger resets the logger to default state for test isolation
func resetLogger() {
	_ = Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		logged  []string
		dropped []string
	}{
		{
			name:    "default is info",
			opts:    Options{},
			logged:  []string{"info-msg", "warn-msg", "error-msg"},
			dropped: []string{"debug-msg"},
		},
		{
			name:   "debug enables everything",
			opts:   Options{Debug: true},
			logged: []string{"debug-msg", "info-msg", "warn-msg", "error-msg"},
		},
		{
			name:    "quiet keeps errors only",
			opts:    Options{Quiet: true},
			logged:  []string{"error-msg"},
			dropped: []string{"debug-msg", "info-msg", "warn-msg"},
		},
		{
			name:    "quiet overrides debug",
			opts:    Options{Debug: true, Quiet: true},
			logged:  []string{"error-msg"},
			dropped: []string{"debug-msg", "info-msg"},
		},
		{
			name:    "explicit level overrides flags",
			opts:    Options{Quiet: true, Level: "warn"},
			logged:  []string{"warn-msg", "error-msg"},
			dropped: []string{"debug-msg", "info-msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			opts := tt.opts
			opts.Output = buf
			if err := Init(opts); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			defer resetLogger()

			Debug("debug-msg")
			Info("info-msg")
			Warn("warn-msg")
			Error("error-msg")

			out := buf.String()
			for _, want := range tt.logged {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output, got %q", want, out)
				}
			}
			for _, unwanted := range tt.dropped {
				if strings.Contains(out, unwanted) {
					t.Errorf("did not expect %q in output, got %q", unwanted, out)
				}
			}
		})
	}
}

func TestInit_UnknownLevel(t *testing.T) {
	defer resetLogger()
	if err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	_ = Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("test message", "stage", "htmlCleaner")

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("expected JSON output, got %q", output)
	}
	if !strings.Contains(output, `"stage":"htmlCleaner"`) {
		t.Errorf("expected structured attribute in output, got %q", output)
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, nil))
	_ = Init(Options{Logger: custom, Quiet: true})
	defer resetLogger()

	Info("from custom")
	if !strings.Contains(buf.String(), "from custom") {
		t.Error("custom logger should receive records regardless of Quiet")
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer resetLogger()

	Warn("set logger")
	if !strings.Contains(buf.String(), "set logger") {
		t.Error("expected SetLogger to replace the default logger")
	}
}

func TestWith_ReturnsLoggerWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	_ = Init(Options{Output: buf})
	defer resetLogger()

	With("component", "rules").Info("test with attrs")

	output := buf.String()
	if !strings.Contains(output, "component=rules") {
		t.Errorf("expected attributes in output, got %q", output)
	}
}

func TestContextVariants(t *testing.T) {
	buf := &bytes.Buffer{}
	_ = Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	ctx := context.Background()
	DebugContext(ctx, "debug with context")
	InfoContext(ctx, "info with context")
	ErrorContext(ctx, "error with context")

	for _, want := range []string{"debug with context", "info with context", "error with context"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	// must not panic and must drop output
	Discard().Error("dropped")
}
