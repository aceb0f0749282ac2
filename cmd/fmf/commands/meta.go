package commands

import (
	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/translate"
	"github.com/thoreinstein/fmf/pkg/fileutil"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// loadMeta builds metadata from a --from file and --set assignments, in
// that order. Assignments override keys from the file.
func loadMeta(from string, sets []string) (*metadata.Metadata, error) {
	meta := metadata.New()
	if from != "" {
		format, err := translate.FormatForPath(from)
		if err != nil {
			return nil, err
		}
		data, err := fileutil.ReadFileWithLimit(from)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", from)
		}
		meta, err = translate.Decode(data, format)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", from)
		}
	}
	if err := applySets(meta, sets); err != nil {
		return nil, err
	}
	return meta, nil
}

func applySets(meta *metadata.Metadata, sets []string) error {
	for _, s := range sets {
		k, v, err := translate.ParseAssignment(s)
		if err != nil {
			return err
		}
		meta.Set(k, v)
	}
	return nil
}

// readRawFrom returns the text of a --from file for verbatim insertion.
// The text must decode as YAML metadata.
func readRawFrom(from string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(from)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", from)
	}
	raw := string(data)
	if _, err := metadata.Decode(raw); err != nil {
		return "", errors.Wrapf(err, "decoding %s", from)
	}
	return raw, nil
}
