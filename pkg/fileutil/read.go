package fileutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// MaxFileSize bounds metadata files read whole into memory, such as the
// --from input of insert.
const MaxFileSize = 1 << 20

// ErrFileTooLarge marks reads that exceeded their limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadAll reads r to EOF, failing with ErrFileTooLarge once more than limit
// bytes have been seen.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "more than %d bytes", limit)
	}
	return data, nil
}

// ReadFileLimit reads path whole, refusing files larger than limit. Regular
// files are rejected by size before any content is read.
func ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit is %d", path, info.Size(), limit)
	}

	data, err := ReadAll(f, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return data, nil
}

// ReadFileWithLimit is ReadFileLimit with MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadFileLimit(path, MaxFileSize)
}
