package fmf

import "io"

// eofCloser closes c as soon as r reports io.EOF, so the source handle is
// released before the replacement file is renamed over it.
type eofCloser struct {
	r      io.Reader
	c      io.Closer
	closed bool
}

func (e *eofCloser) Read(p []byte) (int, error) {
	if e.closed {
		return 0, io.EOF
	}
	n, err := e.r.Read(p)
	if err == io.EOF {
		e.closed = true
		if cerr := e.c.Close(); cerr != nil {
			return n, cerr
		}
	}
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
