package metadata

import (
	"bytes"
	"io"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Decode parses raw YAML text into Metadata. Empty, comment-only, and null
// documents decode to an empty Metadata. Any other document must be a
// mapping, and raw must hold at most one document. All failures match
// ErrInvalidYAML.
func Decode(raw string) (*Metadata, error) {
	if strings.TrimSpace(raw) == "" {
		return New(), nil
	}

	dec := yaml.NewDecoder(strings.NewReader(raw))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, &YAMLError{Err: err}
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, &YAMLError{Err: errors.Newf("line %d: unexpected second document", extra.Line)}
	case !errors.Is(err, io.EOF):
		return nil, &YAMLError{Err: err}
	}

	if len(doc.Content) == 0 {
		return New(), nil
	}
	return fromMapping(doc.Content[0])
}

// fromMapping builds Metadata from a mapping node. Values are decoded as a
// whole so aliases and merge keys resolve; the node supplies key order.
func fromMapping(root *yaml.Node) (*Metadata, error) {
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &YAMLError{Err: errors.Newf("metadata must be a mapping, got %s", root.ShortTag())}
	}

	var values map[string]any
	if err := root.Decode(&values); err != nil {
		return nil, &YAMLError{Err: err}
	}
	if values == nil {
		values = make(map[string]any)
	}

	m := &Metadata{values: values}
	seen := make(map[string]bool, len(values))
	for i := 0; i+1 < len(root.Content); i += 2 {
		k := root.Content[i]
		if k.Kind != yaml.ScalarNode || k.ShortTag() == "!!merge" {
			continue
		}
		if _, ok := values[k.Value]; !ok || seen[k.Value] {
			continue
		}
		seen[k.Value] = true
		m.keys = append(m.keys, k.Value)
	}

	// Keys contributed by merges, or whose text differs from their decoded
	// form, have no position in the source; append them in lexical order.
	var extra []string
	for k := range values {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	m.keys = append(m.keys, extra...)

	return m, nil
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	keySort   KeySort
	omitEmpty bool
}

// WithKeySort emits top-level keys in the order given by sort. Nested
// mappings are always emitted in lexical key order.
func WithKeySort(sort KeySort) EncodeOption {
	return func(o *encodeOptions) {
		o.keySort = sort
	}
}

// WithOmitEmpty drops top-level entries whose value is nil or an empty map.
func WithOmitEmpty() EncodeOption {
	return func(o *encodeOptions) {
		o.omitEmpty = true
	}
}

// Encode renders m as block-style YAML with a two-space indent. Multi-line
// strings use the literal block style unless they start with whitespace,
// which a literal block cannot carry; those are double-quoted. Empty
// Metadata encodes to "".
func Encode(m *Metadata, opts ...EncodeOption) (out string, err error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	// yaml.v3 panics on some unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			out, err = "", errors.Newf("marshaling YAML: %v", r)
		}
	}()

	node, err := m.node(o)
	if err != nil {
		return "", err
	}
	if len(node.Content) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", errors.Wrap(err, "marshaling YAML")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "marshaling YAML")
	}
	return buf.String(), nil
}

func (m *Metadata) node(o encodeOptions) (*yaml.Node, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	keys := m.Keys()
	if o.keySort != nil {
		slices.SortStableFunc(keys, o.keySort)
	}

	for _, k := range keys {
		v := m.values[k]
		if o.omitEmpty && isEmpty(v) {
			continue
		}
		vn, err := valueNode(v)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling YAML value of %q", k)
		}
		root.Content = append(root.Content, keyNode(k), vn)
	}
	return root, nil
}

// valueNode builds the node for v. Strings, slices, and string-keyed maps
// are built here so every string at any depth gets a style that reads back
// unchanged. Everything else goes through the YAML engine.
func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case string:
		// Invalid UTF-8 falls through to the engine, which writes !!binary.
		if utf8.ValidString(t) {
			return stringNode(t), nil
		}
	case *Metadata:
		return t.node(encodeOptions{})
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, e := range t {
			en, err := valueNode(e)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			seq.Content = append(seq.Content, en)
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		mn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			en, err := valueNode(t[k])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			mn.Content = append(mn.Content, keyNode(k), en)
		}
		return mn, nil
	}

	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

// keyNode builds a mapping key. The engine writes "<<" bare, which would read
// back as a merge key.
func keyNode(k string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
	if k == "<<" {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func stringNode(s string) *yaml.Node {
	n := keyNode(s)
	switch {
	case strings.Contains(s, "\n"):
		n.Style = yaml.LiteralStyle
		if strings.ContainsAny(s[:1], " \t\n\r") || strings.Contains(s, "\r") {
			n.Style = yaml.DoubleQuotedStyle
		}
	case slices.Contains(yaml11Bools, s):
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// yaml11Bools are plain scalars that YAML 1.1 readers take as booleans.
var yaml11Bools = []string{
	"y", "Y", "yes", "Yes", "YES", "n", "N", "no", "No", "NO",
	"on", "On", "ON", "off", "Off", "OFF",
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if md, ok := v.(*Metadata); ok {
		return md.Len() == 0
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Len() == 0
}
