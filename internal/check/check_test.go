package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/internal/validator"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.md":            "---\ntitle: T\ntags: [a]\n---\nbody\n",
		"plain.md":           "no frontmatter here\n",
		"nested/deep/run.py": "#---\n# a: 1\n#---\nprint()\n",
		"nested/broken.md":   "---\ntitle: T\n",
		"nested/badyaml.md":  "---\ntitle: [unclosed\n---\n",
		"skip.txt":           "---\na: 1\n---\n",
	})
	return dir
}

func TestExpand(t *testing.T) {
	dir := fixture(t)

	files, unmatched, err := Expand([]string{
		filepath.Join(dir, "**", "*.md"),
		filepath.Join(dir, "good.md"),
		filepath.Join(dir, "missing.md"),
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "good.md"),
		filepath.Join(dir, "nested", "badyaml.md"),
		filepath.Join(dir, "nested", "broken.md"),
		filepath.Join(dir, "plain.md"),
	}
	assert.Equal(t, want, files, "sorted and de-duplicated")
	assert.Equal(t, []string{filepath.Join(dir, "missing.md")}, unmatched)
}

func TestExpand_BadPattern(t *testing.T) {
	_, _, err := Expand([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := fixture(t)
	logger := logging.ForTest(t)

	tests := []struct {
		name      string
		file      string
		wantFound bool
		wantStyle frontmatter.Style
		wantKeys  int
		wantErr   error
	}{
		{"yaml", "good.md", true, frontmatter.StyleYAML, 2, nil},
		{"hash", "nested/deep/run.py", true, frontmatter.StyleHash, 1, nil},
		{"none", "plain.md", false, frontmatter.StyleYAML, 0, nil},
		{"unterminated", "nested/broken.md", false, frontmatter.StyleYAML, 0, frontmatter.ErrMalformedFrontmatter},
		{"invalid yaml", "nested/badyaml.md", true, frontmatter.StyleYAML, 0, metadata.ErrInvalidYAML},
		{"missing", "nope.md", false, frontmatter.StyleYAML, 0, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := File(filepath.Join(dir, filepath.FromSlash(tt.file)), logger)
			if tt.wantErr != nil {
				require.Error(t, got.Err)
				assert.True(t, errors.Is(got.Err, tt.wantErr), "got %v", got.Err)
			} else {
				require.NoError(t, got.Err)
			}
			assert.Equal(t, tt.wantFound, got.Found)
			if tt.wantFound {
				assert.Equal(t, tt.wantStyle, got.Style)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.wantKeys, got.Keys)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := fixture(t)

	report, err := Run(context.Background(), []string{
		filepath.Join(dir, "**", "*.md"),
		filepath.Join(dir, "**", "*.py"),
		filepath.Join(dir, "*.rs"),
	}, logging.ForTest(t))
	require.NoError(t, err)

	assert.Len(t, report.Files, 5)
	assert.Equal(t, 2, report.Failed())
	assert.Equal(t, []string{filepath.Join(dir, "*.rs")}, report.Unmatched)

	res := report.Result()
	assert.Len(t, res.Errors(), 2)
	// plain.md plus the unmatched pattern.
	assert.Len(t, res.Warnings(), 2)

	kinds := map[string]string{}
	for _, i := range res.Errors() {
		kinds[filepath.Base(i.Field)] = i.Context["kind"]
	}
	assert.Equal(t, map[string]string{"broken.md": "malformed", "badyaml.md": "yaml"}, kinds)
}

func TestRun_AllPass(t *testing.T) {
	dir := fixture(t)

	report, err := Run(context.Background(), []string{filepath.Join(dir, "good.md")}, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Failed())
	assert.False(t, report.Result().HasErrors())
	assert.False(t, report.Result().HasWarnings())
}

func TestRun_NoFiles(t *testing.T) {
	_, err := Run(context.Background(), []string{filepath.Join(t.TempDir(), "*.md")}, logging.NewDiscard())
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestRun_Cancelled(t *testing.T) {
	dir := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{filepath.Join(dir, "*.md")}, logging.NewDiscard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_Table(t *testing.T) {
	report := &Report{Files: []FileResult{
		{Path: "a.md", Found: true, Style: frontmatter.StyleYAML, Keys: 3},
		{Path: "b.py", Found: true, Style: frontmatter.StyleHash, Err: errors.Mark(errors.New("bad"), metadata.ErrInvalidYAML)},
		{Path: "c.txt"},
	}}

	out := report.Table()
	for _, want := range []string{"FILE", "STYLE", "a.md", "yaml", "hash", "c.txt", "none", "1/3"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(out, "\n")
	var bLine string
	for _, l := range lines {
		if strings.Contains(l, "b.py") {
			bLine = l
		}
	}
	assert.Contains(t, bLine, "yaml", "failure kind shown as status")
}

func TestReport_ResultReporter(t *testing.T) {
	report := &Report{Files: []FileResult{
		{Path: "x.md", Err: errors.Mark(errors.New("unterminated"), frontmatter.ErrMalformedFrontmatter)},
	}}
	var sb strings.Builder
	require.NoError(t, validator.NewReporter(&sb, validator.FormatJSON).Report(report.Result()))
	assert.Contains(t, sb.String(), `"field": "x.md"`)
	assert.Contains(t, sb.String(), `"kind": "malformed"`)
}
