package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Metadata is an ordered mapping from string keys to YAML-representable
// values. Top-level key order is insertion order; nested mappings are plain
// maps. The zero value is an empty Metadata ready to use.
type Metadata struct {
	keys   []string
	values map[string]any
}

// New returns an empty Metadata.
func New() *Metadata {
	return &Metadata{values: make(map[string]any)}
}

// FromMap builds a Metadata from m with keys in lexical order, since map
// iteration order carries no meaning.
func FromMap(m map[string]any) *Metadata {
	md := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		md.Set(k, m[k])
	}
	return md
}

// Len returns the number of keys. A nil Metadata has length zero.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (m *Metadata) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Metadata) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
	return true
}

// Range calls fn for each entry in order until fn returns false.
func (m *Metadata) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// SortKeys reorders the keys in place. A nil sort is a no-op.
func (m *Metadata) SortKeys(sort KeySort) {
	if m == nil || sort == nil {
		return
	}
	slices.SortStableFunc(m.keys, sort)
}

// Clone returns a copy with its own key order. Values are shared.
func (m *Metadata) Clone() *Metadata {
	c := New()
	m.Range(func(k string, v any) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// ToMap returns the entries as a plain map. Nested maps with non-string keys
// are converted to string-keyed maps.
func (m *Metadata) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v any) bool {
		out[k] = Plain(v)
		return true
	})
	return out
}

// Equal reports whether m and o hold the same entries, ignoring key order.
func (m *Metadata) Equal(o *Metadata) bool {
	if m.Len() != o.Len() {
		return false
	}
	return reflect.DeepEqual(m.ToMap(), o.ToMap())
}

// MarshalYAML implements yaml.Marshaler, preserving key order.
func (m *Metadata) MarshalYAML() (any, error) {
	return m.node(encodeOptions{})
}

// UnmarshalYAML implements yaml.Unmarshaler, recording key order.
func (m *Metadata) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := fromMapping(value)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding key %q", k)
		}
		vb, err := json.Marshal(Plain(m.values[k]))
		if err != nil {
			return nil, errors.Wrapf(err, "encoding value of %q", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts v into a tree of string-keyed maps, slices, and scalars.
// YAML mappings with non-string keys decode as map[any]any; their keys are
// formatted with fmt.Sprint. Nested Metadata becomes a plain map.
func Plain(v any) any {
	switch t := v.(type) {
	case *Metadata:
		return t.ToMap()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Plain(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = Plain(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}
