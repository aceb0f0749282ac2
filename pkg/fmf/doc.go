// Package fmf reads and rewrites the frontmatter of files on disk.
//
// Frontmatter is a block of YAML at the very top of a file, framed by one of
// six delimiter styles (see package frontmatter). fmf finds the block, decodes
// it into ordered Metadata, and can strip, insert, or replace it while copying
// the rest of the file byte for byte.
//
// # Reading
//
//	body, meta, err := fmf.Read("post.md")
//	title, _ := meta.Get("title")
//
// A file without frontmatter is not an error: Read returns the whole file as
// the body and an empty Metadata.
//
// # Writing
//
//	meta := metadata.New()
//	meta.Set("title", "Hello")
//	err := fmf.Insert("script.py", meta, frontmatter.StyleHash)
//
//	err = fmf.Update("post.md", func(m *metadata.Metadata) error {
//		m.Set("draft", false)
//		return nil
//	})
//
// # Atomicity
//
// Every mutation streams the new contents into a temporary file in the same
// directory and renames it over the original. A failure at any step leaves the
// original untouched and removes the temporary file. There is no locking:
// concurrent writers race and the last rename wins.
//
// # Errors
//
// Scan failures match frontmatter.ErrMalformedFrontmatter and decode failures
// match metadata.ErrInvalidYAML. I/O errors are wrapped and still match
// fs.ErrNotExist and friends.
package fmf
