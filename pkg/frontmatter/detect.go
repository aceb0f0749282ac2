package frontmatter

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
)

// Detect reports which style, if any, begins r. It peeks at no more than one
// delimiter line and consumes nothing, so r is left positioned at the start.
//
// A missing or unrecognized start delimiter is not an error; ok is false.
func Detect(r *bufio.Reader) (style Style, ok bool, err error) {
	head, err := r.Peek(maxStartLen + 1)
	if err != nil && !errors.Is(err, io.EOF) {
		return StyleYAML, false, errors.Wrap(err, "reading first line")
	}
	style, ok = detectHead(head)
	return style, ok, nil
}

// DetectBytes is Detect over an in-memory buffer.
func DetectBytes(data []byte) (Style, bool) {
	if len(data) > maxStartLen+1 {
		data = data[:maxStartLen+1]
	}
	return detectHead(data)
}

// detectHead matches the first line of head against the start delimiters.
// head holds at most maxStartLen+1 bytes; a shorter head is the whole input.
func detectHead(head []byte) (Style, bool) {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		return StyleForLine(string(head[:i]))
	}
	if len(head) > maxStartLen {
		return StyleYAML, false
	}
	// A start delimiter at EOF; scanning will report it as unterminated.
	return StyleForLine(string(head))
}
