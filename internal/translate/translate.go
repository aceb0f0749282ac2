// Package translate converts frontmatter metadata to and from the file
// formats the CLI accepts: YAML, JSON, JSONC (JSON with comments and
// trailing commas), and TOML.
package translate

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	fmferrors "github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// Format is a metadata serialization format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatTOML  Format = "toml"
)

// ParseFormat returns the Format named by s. "yml" and "hujson" are accepted
// as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "jsonc", "hujson":
		return FormatJSONC, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(fmferrors.ErrUnsupportedFormat, "%q", s)
}

// FormatForPath infers the format from the file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(fmferrors.ErrUnsupportedFormat, "no extension on %s", path)
	}
	return ParseFormat(ext)
}

// Decode parses data in format f. YAML and JSON keep their top-level key
// order; TOML keys come back in lexical order.
func Decode(data []byte, f Format) (*metadata.Metadata, error) {
	switch f {
	case FormatYAML:
		return metadata.Decode(string(data))
	case FormatJSON:
		return decodeJSON(data)
	case FormatJSONC:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, errors.Wrap(err, "parsing JSONC")
		}
		return decodeJSON(standardized)
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, "unmarshaling toml")
		}
		return metadata.FromMap(m), nil
	}
	return nil, errors.Wrapf(fmferrors.ErrUnsupportedFormat, "%q", string(f))
}

// Encode renders m in format f. YAML honours opts; JSON is indented with two
// spaces; TOML drops null values, which it cannot represent.
func Encode(m *metadata.Metadata, f Format, opts ...metadata.EncodeOption) ([]byte, error) {
	switch f {
	case FormatYAML:
		s, err := metadata.Encode(m, opts...)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatJSON, FormatJSONC:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
		return append(data, '\n'), nil
	case FormatTOML:
		plain, _ := dropNil(m.ToMap()).(map[string]any)
		out, err := toml.Marshal(plain)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling toml")
		}
		return out, nil
	}
	return nil, errors.Wrapf(fmferrors.ErrUnsupportedFormat, "%q", string(f))
}

func decodeJSON(data []byte) (*metadata.Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Newf("parsing JSON: metadata must be an object, got %v", tok)
	}

	m := metadata.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "parsing JSON")
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "parsing JSON value of %q", key)
		}
		m.Set(key, normalizeNumbers(v))
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	return m, nil
}

// normalizeNumbers turns json.Number into int when integral, else float64,
// so YAML encodes them as numbers rather than strings.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return int(i)
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

func dropNil(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			out[k] = dropNil(e)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e != nil {
				out = append(out, dropNil(e))
			}
		}
		return out
	}
	return v
}

// ParseScalar interprets s as a YAML scalar, so "3" is an int, "true" a bool,
// and "[a, b]" a list. Text that is not valid YAML is kept as a string.
func ParseScalar(s string) any {
	if strings.TrimSpace(s) == "" {
		return s
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	if v == nil && !isNullLiteral(s) {
		// comment-only text such as "#tag"
		return s
	}
	return v
}

func isNullLiteral(s string) bool {
	switch strings.TrimSpace(s) {
	case "~", "null", "Null", "NULL":
		return true
	}
	return false
}

// ParseAssignment splits "key=value" and parses the value with ParseScalar.
func ParseAssignment(arg string) (string, any, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, errors.Wrapf(fmferrors.ErrInvalidAssignment, "%q (want key=value)", arg)
	}
	return key, ParseScalar(value), nil
}
