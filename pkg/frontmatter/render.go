package frontmatter

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Render returns the delimited, prefixed block for raw metadata text.
// Empty raw still yields a block with only the two delimiter lines.
// Render returns nil where WriteBlock would fail.
func Render(style Style, raw string) []byte {
	var buf bytes.Buffer
	if _, err := WriteBlock(&buf, style, raw); err != nil {
		return nil
	}
	return buf.Bytes()
}

// WriteBlock writes the rendered block for raw to w. A line of raw that
// would render as the end delimiter is rejected with ErrMalformedFrontmatter,
// since it would close the block early. Nothing is written in that case.
func WriteBlock(w io.Writer, style Style, raw string) (int64, error) {
	if !style.Valid() {
		return 0, errors.Wrapf(ErrUnknownStyle, "style %d", int(style))
	}
	d := styleTable[style].delim

	var b strings.Builder
	b.WriteString(d.Start)
	b.WriteByte('\n')
	if raw != "" {
		// A single trailing newline terminates the last line; anything
		// beyond it is a blank line that must survive.
		n := 0
		for line := range strings.SplitSeq(strings.TrimSuffix(raw, "\n"), "\n") {
			n++
			if d.Prefix+line == d.End {
				return 0, errors.Wrapf(ErrMalformedFrontmatter,
					"line %d: %q would end the block", n, line)
			}
			b.WriteString(d.Prefix)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString(d.End)
	b.WriteByte('\n')

	n, err := io.WriteString(w, b.String())
	if err != nil {
		return int64(n), errors.Wrap(err, "writing frontmatter")
	}
	return int64(n), nil
}
