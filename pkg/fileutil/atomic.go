// Package fileutil holds the file primitives fmf builds on: atomic
// replacement and bounded reads.
package fileutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// DefaultPerm is the mode given to files that did not exist before.
const DefaultPerm os.FileMode = 0o644

// AtomicWrite streams r into a temp file in path's directory and renames it
// over path. Readers see either the old content or the new, never a mix,
// and a failed write leaves the original untouched.
//
// An existing file keeps its mode. A new one gets perm, set on the temp file
// before the rename. The parent directory must already exist.
func AtomicWrite(path string, r io.Reader, perm os.FileMode) error {
	existed, err := Exists(path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if existed {
		err = atomic.WriteFile(path, r)
	} else {
		err = writeNew(path, r, perm)
	}
	return errors.Wrapf(err, "writing %s", path)
}

// writeNew is atomic.WriteFile for a path that does not exist yet, with perm
// applied before the file becomes visible.
func writeNew(path string, r io.Reader, perm os.FileMode) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, name)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	defer f.Close()

	if err := f.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting mode")
	}
	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrap(err, "copying to temp file")
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return atomic.ReplaceFile(f.Name(), path)
}

// AtomicWriteFile is AtomicWrite for an in-memory buffer.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWrite(path, bytes.NewReader(data), perm)
}

// AtomicWriteYAML encodes v as two-space indented YAML and writes it
// atomically. New files get DefaultPerm.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.v3 panics on values it cannot represent, such as channels.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("encoding YAML for %s: %v", path, r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "encoding YAML for %s", path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "encoding YAML for %s", path)
	}
	return AtomicWrite(path, &buf, DefaultPerm)
}

// Exists reports whether path exists. Only fs.ErrNotExist counts as absent;
// other stat errors are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
