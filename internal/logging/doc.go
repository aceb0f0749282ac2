// Package logging wires log/slog for the fmf CLI.
//
// Diagnostics go to stderr so they never mix with command output on stdout.
// Verbosity follows the -v count:
//
//	(none)  warnings and errors
//	-v      info
//	-vv     debug: detected styles, offsets, bytes written
//	-vvv    trace: per-line scanner events ([LevelTrace])
//
// Text output uses [Handler], a compact one-line format that is colored on
// terminals. --log-format json switches to slog's JSON handler, and
// --log-file tees a JSON copy to a file through [MultiHandler].
//
// Commands fetch their logger with [FromContext]; tests use [ForTest] so
// output only appears for failing tests.
package logging
