package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestHandler_Line(t *testing.T) {
	at := time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC)
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(at, slog.LevelWarn, "pattern matched no files", 0)
	r.AddAttrs(slog.String("pattern", "docs/**/*.md"))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	want := "3:04PM WARN  pattern matched no files pattern=docs/**/*.md\n"
	if buf.String() != want {
		t.Errorf("Handle() wrote %q, want %q", buf.String(), want)
	}
}

func TestHandler_ZeroTimeOmitted(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelError, "write failed", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if got := buf.String(); got != "ERROR write failed\n" {
		t.Errorf("Handle() wrote %q", got)
	}
}

func TestHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		opts  *slog.HandlerOptions
		level slog.Level
		want  bool
	}{
		{"nil options default to info", nil, slog.LevelInfo, true},
		{"nil options hide debug", nil, slog.LevelDebug, false},
		{"warn hides info", &slog.HandlerOptions{Level: slog.LevelWarn}, slog.LevelInfo, false},
		{"warn shows error", &slog.HandlerOptions{Level: slog.LevelWarn}, slog.LevelError, true},
		{"trace shows trace", &slog.HandlerOptions{Level: LevelTrace}, LevelTrace, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&bytes.Buffer{}, tt.opts)
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want []string
	}{
		{
			name: "with attrs",
			log: func(l *slog.Logger) {
				l.With("path", "post.md").Info("updated", "key", "draft")
			},
			want: []string{"path=post.md", "key=draft"},
		},
		{
			name: "group prefixes record attrs",
			log: func(l *slog.Logger) {
				l.WithGroup("fmf").Info("wrote", "path", "notes.md", slog.Group("block", "style", "hash", "offset", 42))
			},
			want: []string{"fmf.path=notes.md", "fmf.block.style=hash", "fmf.block.offset=42"},
		},
		{
			name: "attrs keep the groups active when added",
			log: func(l *slog.Logger) {
				l.WithGroup("a").With("x", 1).WithGroup("b").Info("m", "y", 2)
			},
			want: []string{" a.x=1", " a.b.y=2"},
		},
		{
			name: "empty attr dropped",
			log: func(l *slog.Logger) {
				l.Info("m", slog.Attr{}, "kept", true)
			},
			want: []string{"m kept=true\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestLogger(slog.LevelInfo)
			tt.log(logger)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q: %q", w, buf.String())
				}
			}
		})
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	logger, buf := newTestLogger(LevelTrace)
	logger.Log(context.Background(), LevelTrace, "scanning line", "n", 3)

	if !strings.Contains(buf.String(), "TRACE scanning line n=3") {
		t.Errorf("unexpected trace output: %q", buf.String())
	}
}

func TestHandler_ConcurrentLinesStayWhole(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("checked", "file", i)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, l := range lines {
		if !strings.Contains(l, "INFO  checked file=") {
			t.Errorf("interleaved line: %q", l)
		}
	}
}
