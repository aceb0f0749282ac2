package fmf

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// Read returns the body of the file at path and its decoded metadata. A file
// without frontmatter yields its full contents and an empty Metadata.
func Read(path string, opts ...Option) (body []byte, meta *metadata.Metadata, err error) {
	body, raw, err := ReadRaw(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	meta, err = metadata.Decode(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding frontmatter in %s", path)
	}
	return body, meta, nil
}

// ReadRaw returns the body and the de-prefixed frontmatter text without
// decoding it. raw is empty when the file has no frontmatter.
func ReadRaw(path string, opts ...Option) (body []byte, raw string, err error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	block, rest, err := scan(f, o, path)
	if err != nil {
		return nil, "", err
	}

	body, err = io.ReadAll(rest)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading body of %s", path)
	}
	if block == nil {
		return body, "", nil
	}
	return body, block.Raw, nil
}

// ReadFrontmatterRaw returns only the frontmatter text and the body offset.
// The body is never read. A file without frontmatter returns ("", 0, nil).
func ReadFrontmatterRaw(path string, opts ...Option) (raw string, offset int64, err error) {
	block, err := ReadBlock(path, opts...)
	if err != nil || block == nil {
		return "", 0, err
	}
	return block.Raw, block.Offset, nil
}

// ReadBlock returns the scanned frontmatter block of the file at path, or
// nil when there is none.
func ReadBlock(path string, opts ...Option) (*frontmatter.Block, error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	block, _, err := scan(f, o, path)
	return block, err
}

// Parse reads a document from r. It is Read for streams.
func Parse(r io.Reader) (body []byte, meta *metadata.Metadata, err error) {
	block, rest, err := scan(r, newOptions(nil), "-")
	if err != nil {
		return nil, nil, err
	}
	body, err = io.ReadAll(rest)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading body")
	}
	if block == nil {
		return body, metadata.New(), nil
	}
	meta, err = metadata.Decode(block.Raw)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding frontmatter")
	}
	return body, meta, nil
}

// scan detects and scans frontmatter at the start of r. It returns the block
// (nil if absent) and a reader positioned at the body.
func scan(r io.Reader, o *options, path string) (*frontmatter.Block, io.Reader, error) {
	s := frontmatter.NewScanner(r)

	style, ok, err := s.Detect()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "detecting frontmatter in %s", path)
	}
	if !ok {
		o.logger.Debug("no frontmatter", "path", path)
		return nil, s.Rest(), nil
	}

	block, err := s.Scan(style)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "scanning %s", path)
	}
	o.logger.Debug("scanned frontmatter", "path", path, "style", style, "offset", block.Offset)
	return block, s.Rest(), nil
}
