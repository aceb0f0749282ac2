// Package check verifies that files carry well-formed frontmatter.
//
// Patterns are expanded with doublestar, so "docs/**/*.md" matches at any
// depth. Each file is scanned and its metadata decoded; failures are
// collected into a [validator.Result] rather than aborting the run.
package check

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/thoreinstein/fmf/internal/validator"
	"github.com/thoreinstein/fmf/pkg/fmf"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// ErrNoFiles is returned by Expand when no pattern matched a regular file.
var ErrNoFiles = errors.New("no files matched")

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path  string
	Style frontmatter.Style
	// Found is false when the file has no frontmatter.
	Found bool
	Keys  int
	Err   error
}

// Report holds the results of one check run, in path order.
type Report struct {
	Files []FileResult
	// Unmatched lists patterns that matched nothing.
	Unmatched []string
}

// Expand resolves patterns to a sorted, de-duplicated list of regular files.
// A pattern without glob metacharacters is treated as a literal path.
func Expand(patterns []string) (files, unmatched []string, err error) {
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "expanding %q", p)
		}
		if len(matches) == 0 {
			unmatched = append(unmatched, p)
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	slices.Sort(files)
	return files, unmatched, nil
}

// File checks a single file.
func File(path string, logger *slog.Logger) FileResult {
	res := FileResult{Path: path}

	block, err := fmf.ReadBlock(path, fmf.WithLogger(logger))
	if err != nil {
		res.Err = err
		return res
	}
	if block == nil {
		return res
	}

	res.Found = true
	res.Style = block.Style
	meta, err := metadata.Decode(block.Raw)
	if err != nil {
		res.Err = err
		return res
	}
	res.Keys = meta.Len()
	return res
}

// Run expands patterns and checks every matching file. It stops early only
// when ctx is cancelled.
func Run(ctx context.Context, patterns []string, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, unmatched, err := Expand(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoFiles, "%v", patterns)
	}

	report := &Report{Unmatched: unmatched}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "check interrupted")
		}
		r := File(f, logger)
		logger.Debug("checked file", "path", f, "found", r.Found, "error", r.Err)
		report.Files = append(report.Files, r)
	}
	return report, nil
}

// Failed returns the number of files that failed.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Result converts the report into validator issues. Read and decode
// failures are errors; files without frontmatter and unmatched patterns are
// warnings.
func (r *Report) Result() *validator.Result {
	res := &validator.Result{}
	for _, p := range r.Unmatched {
		res.AddWarning(p, "pattern matched no files", nil)
	}
	for _, f := range r.Files {
		switch {
		case f.Err != nil:
			ctx := map[string]string{"kind": kind(f.Err)}
			if f.Found {
				ctx["style"] = f.Style.String()
			}
			res.Add(validator.SeverityError, f.Path, f.Err.Error(), ctx)
		case !f.Found:
			res.AddWarning(f.Path, "no frontmatter", nil)
		}
	}
	return res
}

func kind(err error) string {
	switch {
	case errors.Is(err, frontmatter.ErrMalformedFrontmatter):
		return "malformed"
	case errors.Is(err, metadata.ErrInvalidYAML):
		return "yaml"
	case errors.Is(err, os.ErrNotExist):
		return "missing"
	default:
		return "io"
	}
}

// Table renders a per-file summary.
func (r *Report) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Style", "Keys", "Status"})

	for _, f := range r.Files {
		style, keys := "-", "-"
		if f.Found {
			style = f.Style.String()
			keys = strconv.Itoa(f.Keys)
		}
		status := "ok"
		switch {
		case f.Err != nil:
			status = kind(f.Err)
			keys = "-"
		case !f.Found:
			status = "none"
		}
		tw.AppendRow(table.Row{filepath.ToSlash(f.Path), style, keys, status})
	}

	tw.AppendFooter(table.Row{"", "", "failed", strconv.Itoa(r.Failed()) + "/" + strconv.Itoa(len(r.Files))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
