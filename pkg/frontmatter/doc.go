// Package frontmatter detects, scans, and renders metadata blocks placed at
// the very start of text files.
//
// A block is delimited by style-specific marker lines and may carry a
// per-line comment prefix, so the file stays valid in its own syntax:
//
//	Style       Start    End      Prefix
//	yaml        ---      ---
//	html        <!---    --->
//	hash        #---     #---     "# "
//	slash       //---    //---    "// "
//	slash-star  /*---    ---*/
//	dash        ----     ----     "-- "
//
// This package works on raw text only. Decoding the metadata as YAML is left
// to the metadata package, and file mutation to the fmf package.
//
// # Scanning
//
// [Scan] detects the style from the first line and reads up to the end
// delimiter. It works on any [io.Reader] and never needs the body in memory:
//
//	f, _ := os.Open("script.py")
//	defer f.Close()
//	block, err := frontmatter.Scan(f)
//	if err != nil {
//		// errors.Is(err, frontmatter.ErrMalformedFrontmatter)
//	}
//	if block == nil {
//		// no frontmatter
//	}
//	fmt.Println(block.Raw, block.Offset)
//
// Use a [Scanner] directly to keep reading the body from the same stream
// through [Scanner.Rest].
//
// # Round-tripping
//
// [Render] is the inverse of scanning: rendering a block's Style and Raw and
// appending the source bytes from Offset onward reproduces the source,
// provided every content line used the canonical prefix.
//
// # Error Handling
//
//   - [ErrMalformedFrontmatter]: start delimiter found but the block is not
//     terminated, or a content line lacks the required prefix
//   - [ErrUnknownStyle]: a style name or value outside the registry
//
// A file without frontmatter is not an error: Scan returns a nil Block.
package frontmatter
