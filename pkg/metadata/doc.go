// Package metadata decodes and encodes the YAML mapping held in a
// frontmatter block.
//
// Metadata keeps the top-level key order of the source document so that a
// decode followed by an encode does not shuffle a file's keys. Nested
// mappings are plain map[string]any values and follow the YAML engine's
// ordering.
//
// # Decoding
//
//	m, err := metadata.Decode("title: Notes\ntags: [a, b]\n")
//	if errors.Is(err, metadata.ErrInvalidYAML) {
//		// syntax error, or the document is not a mapping
//	}
//
// # Encoding
//
// Encode writes block-style YAML with a two-space indent. Top-level key order
// can be fixed with WithKeySort:
//
//	text, err := metadata.Encode(m, metadata.WithKeySort(metadata.Priority("title", "date")))
package metadata
