// Package editor runs the user's text editor on a file and waits for it.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// fallbacks are tried in order when nothing is configured.
var fallbacks = []string{"nano", "vi"}

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

// Editor launches an editor command attached to the given streams.
type Editor struct {
	// Argv is the command and its leading arguments. The file path is
	// appended as the last argument.
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor for preferred, a command line such as "code --wait".
// An empty preferred falls back to $VISUAL, then $EDITOR, then the first of
// nano or vi found on PATH. The editor inherits the process's stdio.
func New(preferred string) *Editor {
	return &Editor{
		Argv:   strings.Fields(resolve(preferred)),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func resolve(preferred string) string {
	for _, c := range []string{preferred, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	for _, name := range fallbacks {
		if _, err := lookPath(name); err == nil {
			return name
		}
	}
	return fallbacks[len(fallbacks)-1]
}

// Open runs the editor on path and waits for it to exit. Cancelling ctx
// kills the editor.
func (e *Editor) Open(ctx context.Context, path string) error {
	if len(e.Argv) == 0 {
		return errors.New("no editor configured")
	}
	cmd := exec.CommandContext(ctx, e.Argv[0], append(e.Argv[1:len(e.Argv):len(e.Argv)], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.Stdin, e.Stdout, e.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", e.Argv[0])
	}
	return nil
}

// EditText opens text in the editor through a temporary file named after
// pattern (see os.CreateTemp) and returns what was saved. The temporary
// file is removed afterwards.
func (e *Editor) EditText(ctx context.Context, text, pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	name := f.Name()
	defer os.Remove(name)

	_, werr := f.WriteString(text)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", errors.Wrap(werr, "writing temp file")
	}

	if err := e.Open(ctx, name); err != nil {
		return "", err
	}
	saved, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, "reading edited file")
	}
	return string(saved), nil
}
