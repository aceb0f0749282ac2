package fmf

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fmf/pkg/fileutil"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// Write replaces the file at path with meta rendered in style followed by
// body. A nil or empty meta writes body alone, unless body itself starts
// with a delimiter; then an empty block keeps it from reading as frontmatter.
// Missing parent directories are created unless WithoutParents is given.
func Write(path string, body []byte, meta *metadata.Metadata, style frontmatter.Style, opts ...Option) error {
	o := newOptions(opts)
	if meta.Len() == 0 {
		return writeRaw(path, body, "", style, o)
	}
	raw, err := metadata.Encode(meta, o.encodeOptions()...)
	if err != nil {
		return errors.Wrap(err, "encoding frontmatter")
	}
	return writeRaw(path, body, raw, style, o)
}

// WriteRaw is Write with pre-encoded metadata text. An empty raw writes body
// alone, with the same exception as Write.
func WriteRaw(path string, body []byte, raw string, style frontmatter.Style, opts ...Option) error {
	return writeRaw(path, body, raw, style, newOptions(opts))
}

func writeRaw(path string, body []byte, raw string, style frontmatter.Style, o *options) error {
	var block []byte
	if raw != "" || guardNeeded(body) {
		var err error
		if block, err = render(style, raw); err != nil {
			return err
		}
	}
	return writeFile(path, block, body, o)
}

// guardNeeded reports whether body would be read as frontmatter if written
// without a block in front of it.
func guardNeeded(body []byte) bool {
	_, ok := frontmatter.DetectBytes(body)
	return ok
}

func writeFile(path string, block, body []byte, o *options) error {
	if o.parents {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrap(err, "creating parent directories")
		}
	}
	return commit(path, io.MultiReader(bytes.NewReader(block), bytes.NewReader(body)), o)
}

// Strip removes the frontmatter block from the file at path. A file without
// frontmatter is left untouched.
func Strip(path string, opts ...Option) error {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer f.Close()

	block, rest, err := scan(f, o, path)
	if err != nil {
		return err
	}
	if block == nil {
		return nil
	}
	return commit(path, &eofCloser{r: rest, c: f}, o)
}

// Insert encodes meta and places it at the top of the file at path in style,
// replacing any existing block. The body is copied byte for byte. A nil meta
// leaves the file untouched.
func Insert(path string, meta *metadata.Metadata, style frontmatter.Style, opts ...Option) error {
	if meta == nil {
		return nil
	}
	o := newOptions(opts)
	raw, err := metadata.Encode(meta, o.encodeOptions()...)
	if err != nil {
		return errors.Wrap(err, "encoding frontmatter")
	}
	return insertRaw(path, raw, style, o)
}

// InsertRaw is Insert with pre-encoded metadata text. The text is rendered
// verbatim, so an empty raw produces an empty block.
func InsertRaw(path string, raw string, style frontmatter.Style, opts ...Option) error {
	return insertRaw(path, raw, style, newOptions(opts))
}

func insertRaw(path string, raw string, style frontmatter.Style, o *options) error {
	block, err := render(style, raw)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer f.Close()

	_, rest, err := scan(f, o, path)
	if err != nil {
		return err
	}
	return commit(path, io.MultiReader(bytes.NewReader(block), &eofCloser{r: rest, c: f}), o)
}

// Update reads the metadata of the file at path, passes it to fn, and writes
// the result back. The existing style is kept; a file without frontmatter
// gets the WithStyle style, or the default for its extension. If fn returns
// an error the file is not modified. When fn leaves the metadata empty the
// block is removed, unless the body starts with a delimiter of its own; an
// empty block is kept in front of it then.
func Update(path string, fn func(*metadata.Metadata) error, opts ...Option) error {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer f.Close()

	existing, rest, err := scan(f, o, path)
	if err != nil {
		return err
	}

	meta := metadata.New()
	style := o.styleFor(path)
	if existing != nil {
		style = existing.Style
		if meta, err = metadata.Decode(existing.Raw); err != nil {
			return errors.Wrapf(err, "decoding frontmatter in %s", path)
		}
	}

	if err := fn(meta); err != nil {
		return err
	}
	if existing == nil && meta.Len() == 0 {
		return nil
	}

	raw, err := metadata.Encode(meta, o.encodeOptions()...)
	if err != nil {
		return errors.Wrap(err, "encoding frontmatter")
	}
	body := bufio.NewReader(rest)
	if raw == "" {
		_, guard, err := frontmatter.Detect(body)
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		if !guard {
			return commit(path, &eofCloser{r: body, c: f}, o)
		}
	}
	block, err := render(style, raw)
	if err != nil {
		return err
	}
	return commit(path, io.MultiReader(bytes.NewReader(block), &eofCloser{r: body, c: f}), o)
}

func render(style frontmatter.Style, raw string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := frontmatter.WriteBlock(&buf, style, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// commit atomically replaces path with the contents of r.
func commit(path string, r io.Reader, o *options) error {
	cr := &countingReader{r: r}
	if err := fileutil.AtomicWrite(path, cr, o.perm); err != nil {
		return err
	}
	o.logger.Debug("wrote file", "path", path, "bytes", cr.n)
	return nil
}
