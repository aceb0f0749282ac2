package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("xml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})
			logger.Info("wrote file", "path", "post.md", "bytes", 42)

			out := buf.String()
			var rec map[string]any
			isJSON := json.Unmarshal([]byte(out), &rec) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("JSON output = %v, want %v:\n%s", isJSON, tt.wantJSON, out)
			}
			if tt.wantJSON {
				if rec["msg"] != "wrote file" || rec["path"] != "post.md" || rec["bytes"] != float64(42) {
					t.Errorf("unexpected record: %v", rec)
				}
				return
			}
			for _, want := range []string{"INFO", "wrote file", "path=post.md", "bytes=42"} {
				if !strings.Contains(out, want) {
					t.Errorf("text output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestNew_NilOutputAndDefault(t *testing.T) {
	if New(Config{}) == nil {
		t.Fatal("New with zero Config returned nil")
	}
	logger := Default()
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Default() should log at Info")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Default() should not log at Debug")
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	logger.Error("dropped")
	if logger.Handler() == nil {
		t.Error("NewDiscard() has no handler")
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace must sort below Debug")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelFromVerbosity(0), Format: FormatText, Output: &buf})

	logger.Info("inserted frontmatter")
	logger.Debug("scanned frontmatter")
	logger.Warn("pattern matched no files")
	logger.Error("check failed")

	out := buf.String()
	for _, hidden := range []string{"inserted", "scanned"} {
		if strings.Contains(out, hidden) {
			t.Errorf("default verbosity leaked %q:\n%s", hidden, out)
		}
	}
	for _, shown := range []string{"pattern matched no files", "check failed"} {
		if !strings.Contains(out, shown) {
			t.Errorf("default verbosity dropped %q:\n%s", shown, out)
		}
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("ForTest() should capture Debug")
	}
	logger.Debug("visible with go test -v")

	tw := &testWriter{t: t}
	for _, in := range []string{"line\n", "no newline", ""} {
		if n, err := tw.Write([]byte(in)); err != nil || n != len(in) {
			t.Errorf("Write(%q) = %d, %v", in, n, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Error("FromContext() did not return the stored logger")
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext() without a logger should return slog.Default()")
	}
	//nolint:staticcheck // nil context is tolerated
	if got := FromContext(nil); got != slog.Default() {
		t.Error("FromContext(nil) should return slog.Default()")
	}
}
