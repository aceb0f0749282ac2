package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKeys []string
		wantMap  map[string]any
		wantErr  string
	}{
		{
			name:     "simple mapping keeps source order",
			raw:      "title: Sample Python Script\nauthor: Jane Doe\n",
			wantKeys: []string{"title", "author"},
			wantMap:  map[string]any{"title": "Sample Python Script", "author": "Jane Doe"},
		},
		{
			name:     "nested values",
			raw:      "tags:\n  - a\n  - b\nextra:\n  draft: true\n  weight: 3\n",
			wantKeys: []string{"tags", "extra"},
			wantMap: map[string]any{
				"tags":  []any{"a", "b"},
				"extra": map[string]any{"draft": true, "weight": 3},
			},
		},
		{
			name:     "empty text",
			raw:      "",
			wantKeys: nil,
			wantMap:  map[string]any{},
		},
		{
			name:     "whitespace only",
			raw:      "  \n\n",
			wantKeys: nil,
			wantMap:  map[string]any{},
		},
		{
			name:     "comment only",
			raw:      "# nothing here\n",
			wantKeys: nil,
			wantMap:  map[string]any{},
		},
		{
			name:     "explicit null",
			raw:      "null\n",
			wantKeys: nil,
			wantMap:  map[string]any{},
		},
		{
			name:     "merge keys resolve and go last",
			raw:      "base: &b\n  zed: 1\n  alpha: 2\n<<: *b\ntitle: T\n",
			wantKeys: []string{"base", "title", "alpha", "zed"},
			wantMap: map[string]any{
				"base":  map[string]any{"zed": 1, "alpha": 2},
				"title": "T",
				"zed":   1,
				"alpha": 2,
			},
		},
		{
			name:    "sequence document",
			raw:     "- a\n- b\n",
			wantErr: "metadata must be a mapping, got !!seq",
		},
		{
			name:    "scalar document",
			raw:     "just text\n",
			wantErr: "metadata must be a mapping, got !!str",
		},
		{
			name:    "syntax error",
			raw:     "title: [unclosed\n",
			wantErr: "invalid YAML",
		},
		{
			name:    "tab indentation",
			raw:     "a:\n\tb: 1\n",
			wantErr: "invalid YAML",
		},
		{
			name:    "second document",
			raw:     "a: 1\n---\nb: 2\n",
			wantErr: "unexpected second document",
		},
		{
			name:    "trailing document marker",
			raw:     "a: 1\n---\n",
			wantErr: "unexpected second document",
		},
		{
			name:    "duplicate keys",
			raw:     "a: 1\na: 2\n",
			wantErr: "already defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidYAML)
				assert.Contains(t, err.Error(), tt.wantErr)

				var yerr *YAMLError
				assert.True(t, errors.As(err, &yerr), "error should be a *YAMLError")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, m)

			if diff := cmp.Diff(tt.wantKeys, m.Keys()); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMap, m.ToMap()); diff != "" {
				t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	build := func(kv ...any) *Metadata {
		m := New()
		for i := 0; i+1 < len(kv); i += 2 {
			m.Set(kv[i].(string), kv[i+1])
		}
		return m
	}

	tests := []struct {
		name string
		meta *Metadata
		opts []EncodeOption
		want string
	}{
		{
			name: "insertion order",
			meta: build("title", "T", "author", "A", "date", "2024-01-01"),
			want: "title: T\nauthor: A\ndate: \"2024-01-01\"\n",
		},
		{
			name: "priority sort",
			meta: build("title", "T", "author", "A", "date", "2024-01-01"),
			opts: []EncodeOption{WithKeySort(Priority("date", "title"))},
			want: "date: \"2024-01-01\"\ntitle: T\nauthor: A\n",
		},
		{
			name: "lexical sort",
			meta: build("title", "T", "author", "A"),
			opts: []EncodeOption{WithKeySort(Lexical)},
			want: "author: A\ntitle: T\n",
		},
		{
			name: "nil and empty map kept by default",
			meta: build("a", nil, "b", map[string]any{}, "c", 1),
			want: "a: null\nb: {}\nc: 1\n",
		},
		{
			name: "omit empty",
			meta: build("a", nil, "b", map[string]any{}, "c", 1, "d", ""),
			opts: []EncodeOption{WithOmitEmpty()},
			want: "c: 1\nd: \"\"\n",
		},
		{
			name: "leading newline is double-quoted",
			meta: build("k", "\n", "j", "\nx"),
			want: "k: \"\\n\"\nj: \"\\nx\"\n",
		},
		{
			name: "merge-like key is quoted",
			meta: build("<<", "x"),
			want: "\"<<\": x\n",
		},
		{
			name: "yaml 1.1 boolean words are quoted",
			meta: build("answer", "yes", "flag", "off"),
			want: "answer: \"yes\"\nflag: \"off\"\n",
		},
		{
			name: "empty metadata",
			meta: New(),
			want: "",
		},
		{
			name: "nil metadata",
			meta: nil,
			want: "",
		},
		{
			name: "everything omitted",
			meta: build("a", nil),
			opts: []EncodeOption{WithOmitEmpty()},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.meta, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_MultilineUsesLiteralStyle(t *testing.T) {
	m := New()
	m.Set("description", "first line\nsecond line\n")

	got, err := Encode(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "description: |"), "got %q", got)

	back, err := Decode(got)
	require.NoError(t, err)
	v, _ := back.Get("description")
	assert.Equal(t, "first line\nsecond line\n", v)
}

func TestEncode_Unmarshalable(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"channel", make(chan int)},
		{"func", func() {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Set("ok", 1)
			m.Set("bad", tt.value)

			got, err := Encode(m)
			require.Error(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	raws := []string{
		"title: Sample Python Script\nauthor: Jane Doe\n",
		"tags:\n  - go\n  - yaml\nweight: 1.5\ndraft: false\n",
		"empty: null\nobj: {}\nlist: []\n",
		"quoted: \"yes\"\nnumeric_string: \"007\"\ncolon: \"a: b\"\n",
		"unicode: 日本語 ✓\nnested:\n  deeper:\n    k: v\n",
		"text: |\n  line one\n  line two\n",
		"zeta: 1\nalpha: 2\nmid: 3\n",
		"only: \"\\n\"\nlead: \"\\nx\"\nspaced: \"  indented\\nnext\"\n",
		"\"<<\": x\nnested:\n  \"<<\": y\n  list:\n    - \"\\n\"\n    - \"<<\"\n",
	}

	for _, raw := range raws {
		first, err := Decode(raw)
		require.NoError(t, err, raw)

		text, err := Encode(first)
		require.NoError(t, err, raw)

		second, err := Decode(text)
		require.NoError(t, err, text)

		assert.True(t, first.Equal(second), "round trip changed values:\n%s\n->\n%s", raw, text)
		assert.Equal(t, first.Keys(), second.Keys(), "round trip changed key order for %q", raw)
	}
}

func TestPriority(t *testing.T) {
	keys := []string{"zeta", "title", "alpha", "date", "author"}
	sorted := New()
	for _, k := range keys {
		sorted.Set(k, true)
	}
	sorted.SortKeys(Priority("title", "date", "missing"))

	want := []string{"title", "date", "alpha", "author", "zeta"}
	if diff := cmp.Diff(want, sorted.Keys()); diff != "" {
		t.Errorf("Priority order mismatch (-want +got):\n%s", diff)
	}
}
