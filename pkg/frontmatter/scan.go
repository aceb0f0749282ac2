package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Block is a scanned frontmatter block.
type Block struct {
	// Style is the delimiter style that matched.
	Style Style
	// Raw is the metadata text with line prefixes removed. Every line keeps
	// its newline.
	Raw string
	// Offset is the byte index in the source at which the body begins,
	// immediately after the end delimiter's newline.
	Offset int64
}

// Render re-renders the block in its own style.
func (b *Block) Render() []byte {
	return Render(b.Style, b.Raw)
}

// Scanner reads frontmatter line by line from a stream. It never reads past
// the end delimiter's newline except for bufio read-ahead, which remains
// available through Rest.
type Scanner struct {
	r    *bufio.Reader
	off  int64
	line int
}

// NewScanner returns a Scanner reading from r. If r is already a
// *bufio.Reader it is used directly.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Detect reports the style beginning the stream without consuming it.
func (s *Scanner) Detect() (Style, bool, error) {
	return Detect(s.r)
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.off
}

// Rest returns a reader over the unconsumed remainder of the stream.
// After a successful Scan that is the body.
func (s *Scanner) Rest() io.Reader {
	return s.r
}

// Scan consumes a frontmatter block of the given style. The next line must be
// the style's start delimiter.
func (s *Scanner) Scan(style Style) (*Block, error) {
	if !style.Valid() {
		return nil, errors.Wrapf(ErrUnknownStyle, "style %d", int(style))
	}
	d := styleTable[style].delim

	first, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "reading frontmatter")
	}
	if trimNewline(first) != d.Start {
		return nil, errors.Wrapf(ErrMalformedFrontmatter, "line 1: expected start delimiter %q", d.Start)
	}

	var raw strings.Builder
	for {
		line, err := s.readLine()
		if line != "" {
			if trimNewline(line) == d.End {
				return &Block{Style: style, Raw: raw.String(), Offset: s.off}, nil
			}
			rest, ok := style.stripPrefix(line)
			if !ok {
				return nil, errors.Wrapf(ErrMalformedFrontmatter,
					"line %d: expected prefix %q", s.line, d.Prefix)
			}
			raw.WriteString(rest)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.Wrapf(ErrMalformedFrontmatter, "end delimiter %q not found", d.End)
			}
			return nil, errors.Wrap(err, "reading frontmatter")
		}
	}
}

func (s *Scanner) readLine() (string, error) {
	line, err := s.r.ReadString('\n')
	s.off += int64(len(line))
	if line != "" {
		s.line++
	}
	return line, err
}

func trimNewline(line string) string {
	return strings.TrimSuffix(line, "\n")
}

// Scan detects and scans the frontmatter at the start of r.
// It returns a nil Block and nil error when r has no frontmatter.
func Scan(r io.Reader) (*Block, error) {
	s := NewScanner(r)
	style, ok, err := s.Detect()
	if err != nil || !ok {
		return nil, err
	}
	return s.Scan(style)
}

// ScanString is Scan over a string.
func ScanString(src string) (*Block, error) {
	return Scan(strings.NewReader(src))
}

// Split separates data into its frontmatter block and body. The block is nil
// and body is data when there is no frontmatter.
func Split(data []byte) (*Block, []byte, error) {
	b, err := Scan(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, data, nil
	}
	return b, data[b.Offset:], nil
}
