package frontmatter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Style identifies one of the supported frontmatter delimiter conventions.
type Style int

// Supported styles. The set is closed; there is no runtime registration.
const (
	// StyleYAML is Jekyll-style frontmatter: "---" ... "---".
	StyleYAML Style = iota
	// StyleHTML wraps the block in an HTML comment: "<!---" ... "--->".
	StyleHTML
	// StyleHash suits Python, shell, and other "#" comment languages.
	StyleHash
	// StyleSlash suits Rust, Go, JavaScript and other "//" comment languages.
	StyleSlash
	// StyleSlashStar wraps the block in a C block comment: "/*---" ... "---*/".
	StyleSlashStar
	// StyleDash suits SQL, Lua, Haskell and other "--" comment languages.
	StyleDash
)

// Delimiters describes how a style marks and prefixes a frontmatter block.
type Delimiters struct {
	// Start is the exact first line of the block, without its newline.
	Start string
	// End is the exact terminating line, without its newline.
	End string
	// Prefix is written before every metadata line. Empty for unprefixed styles.
	Prefix string
	// StripPrefixes are the prefixes accepted on read, tried in order.
	// The canonical prefix comes first, then the bare form without its space.
	StripPrefixes []string
}

type styleEntry struct {
	name  string
	delim Delimiters
}

var styleTable = [...]styleEntry{
	StyleYAML:      {"yaml", Delimiters{Start: "---", End: "---"}},
	StyleHTML:      {"html", Delimiters{Start: "<!---", End: "--->"}},
	StyleHash:      {"hash", Delimiters{Start: "#---", End: "#---", Prefix: "# ", StripPrefixes: []string{"# ", "#"}}},
	StyleSlash:     {"slash", Delimiters{Start: "//---", End: "//---", Prefix: "// ", StripPrefixes: []string{"// ", "//"}}},
	StyleSlashStar: {"slash-star", Delimiters{Start: "/*---", End: "---*/"}},
	StyleDash:      {"dash", Delimiters{Start: "----", End: "----", Prefix: "-- ", StripPrefixes: []string{"-- ", "--"}}},
}

var styleAliases = map[string]Style{
	"md":         StyleYAML,
	"markdown":   StyleYAML,
	"python":     StyleHash,
	"rust":       StyleSlash,
	"rust-style": StyleSlash,
	"c":          StyleSlashStar,
	"c-style":    StyleSlashStar,
	"slash_star": StyleSlashStar,
	"sql":        StyleDash,
	"dash-style": StyleDash,
}

var extensionStyles = map[string]Style{
	".md": StyleYAML, ".markdown": StyleYAML, ".yml": StyleYAML, ".yaml": StyleYAML, ".txt": StyleYAML,
	".html": StyleHTML, ".htm": StyleHTML, ".xml": StyleHTML,
	".py": StyleHash, ".sh": StyleHash, ".rb": StyleHash, ".pl": StyleHash, ".r": StyleHash, ".toml": StyleHash,
	".rs": StyleSlash, ".go": StyleSlash, ".js": StyleSlash, ".ts": StyleSlash, ".java": StyleSlash,
	".c": StyleSlash, ".cpp": StyleSlash, ".h": StyleSlash, ".swift": StyleSlash, ".kt": StyleSlash,
	".cs": StyleSlash, ".scala": StyleSlash, ".dart": StyleSlash, ".php": StyleSlash,
	".css": StyleSlashStar, ".scss": StyleSlashStar, ".less": StyleSlashStar,
	".sql": StyleDash, ".lua": StyleDash, ".hs": StyleDash, ".ada": StyleDash, ".elm": StyleDash,
}

// Styles returns every supported style in registry order.
func Styles() []Style {
	return []Style{StyleYAML, StyleHTML, StyleHash, StyleSlash, StyleSlashStar, StyleDash}
}

// Valid reports whether s is one of the registered styles.
func (s Style) Valid() bool {
	return s >= StyleYAML && int(s) < len(styleTable)
}

// String returns the canonical style name.
func (s Style) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return styleTable[s].name
}

// Delimiters returns a copy of the style's delimiter rules.
// The zero value is returned for invalid styles.
func (s Style) Delimiters() Delimiters {
	if !s.Valid() {
		return Delimiters{}
	}
	d := styleTable[s].delim
	d.StripPrefixes = slices.Clone(d.StripPrefixes)
	return d
}

// Start returns the start delimiter line.
func (s Style) Start() string { return s.Delimiters().Start }

// End returns the end delimiter line.
func (s Style) End() string { return s.Delimiters().End }

// Prefix returns the per-line prefix written on output.
func (s Style) Prefix() string { return s.Delimiters().Prefix }

// stripPrefix removes the first accepted prefix from line.
// ok is false when the style requires a prefix and none matched.
func (s Style) stripPrefix(line string) (rest string, ok bool) {
	prefixes := styleTable[s].delim.StripPrefixes
	if len(prefixes) == 0 {
		return line, true
	}
	for _, p := range prefixes {
		if after, found := strings.CutPrefix(line, p); found {
			return after, true
		}
	}
	return line, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrUnknownStyle, "style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStyle resolves a style by canonical name or alias, case-insensitively.
func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, e := range styleTable {
		if e.name == key {
			return Style(i), nil
		}
	}
	if s, ok := styleAliases[key]; ok {
		return s, nil
	}
	return StyleYAML, errors.Wrapf(ErrUnknownStyle, "%q", name)
}

// StyleForLine returns the style whose start delimiter equals line.
// line must not include its newline.
func StyleForLine(line string) (Style, bool) {
	for i, e := range styleTable {
		if e.delim.Start == line {
			return Style(i), true
		}
	}
	return StyleYAML, false
}

// StyleForFile suggests a style from the file extension, defaulting to yaml.
func StyleForFile(path string) Style {
	if s, ok := extensionStyles[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return StyleYAML
}

// Aliases returns the alternative names ParseStyle accepts for s, sorted.
func (s Style) Aliases() []string {
	var out []string
	for name, st := range styleAliases {
		if st == s {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Extensions returns the file extensions StyleForFile maps to s, sorted.
func (s Style) Extensions() []string {
	var out []string
	for ext, st := range extensionStyles {
		if st == s {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}

// maxStartLen is the longest start delimiter in bytes.
var maxStartLen = func() int {
	n := 0
	for _, e := range styleTable {
		n = max(n, len(e.delim.Start))
	}
	return n
}()
