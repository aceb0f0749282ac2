package frontmatter

import "github.com/cockroachdb/errors"

// Sentinel errors returned by the scanner and the style registry.
var (
	// ErrMalformedFrontmatter indicates a start delimiter was found but the
	// block is not terminated or a content line lacks the style's prefix.
	ErrMalformedFrontmatter = errors.New("malformed frontmatter")

	// ErrUnknownStyle indicates a style name that is not in the registry.
	ErrUnknownStyle = errors.New("unknown frontmatter style")
)
