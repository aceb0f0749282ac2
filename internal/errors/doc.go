// Package errors maps fmf failures to process exit codes.
//
// Commands return plain errors. [Classify] turns them into an [ExitError]
// with a code and, where there is something useful to say, a suggestion:
//
//	ExitUser (1)    malformed frontmatter, invalid YAML, bad flags or config
//	ExitSystem (2)  I/O, permissions, lock timeouts, anything unrecognised
//
// The wrapping helpers are re-exported from github.com/cockroachdb/errors so
// command code needs one import.
package errors
