package check

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fmf/internal/logging"
)

func TestWatchDirs(t *testing.T) {
	dir := fixture(t)

	got := watchDirs([]string{
		filepath.Join(dir, "**", "*.md"),
		filepath.Join(dir, "good.md"),
		filepath.Join(dir, "absent", "*.md"),
	})
	assert.ElementsMatch(t, []string{
		dir,
		filepath.Join(dir, "nested"),
		filepath.Join(dir, "nested", "deep"),
	}, got)
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{filepath.Join("docs", "**", "*.md")}
	assert.True(t, matchesAny(patterns, filepath.Join("docs", "a", "b.md")))
	assert.True(t, matchesAny(patterns, filepath.Join(".", "docs", "b.md")))
	assert.False(t, matchesAny(patterns, filepath.Join("docs", "b.txt")))
}

func TestWatch_RechecksOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	writeFiles(t, dir, map[string]string{"doc.md": "---\na: 1\n---\n"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		reports []*Report
	)
	changed := make(chan struct{}, 4)

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{filepath.Join(dir, "*.md")}, 20*time.Millisecond, logging.ForTest(t), func(r *Report, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				reports = append(reports, r)
			}
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("initial check never ran")
	}

	// Replace via rename so no check can observe a half-written file.
	tmp := filepath.Join(dir, "doc.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("---\na: [\n---\n"), 0o644))
	require.NoError(t, os.Rename(tmp, target))

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("no re-check after write")
	}

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(reports), 2)
	assert.Zero(t, reports[0].Failed())
	assert.Equal(t, 1, reports[len(reports)-1].Failed())
}
