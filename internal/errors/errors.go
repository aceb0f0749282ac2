package errors

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fmf/internal/lock"
	"github.com/thoreinstein/fmf/pkg/fileutil"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers bad input: malformed frontmatter, invalid YAML, bad
	// flags or configuration.
	ExitUser = 1
	// ExitSystem covers everything else: I/O, permissions, lock timeouts.
	ExitSystem = 2
)

// CLI-level sentinels. Library sentinels live with their packages.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCheckFailed       = errors.New("check failed")
)

// Wrapping helpers from github.com/cockroachdb/errors, so CLI code needs a
// single errors import.
var (
	New   = errors.New
	Newf  = errors.Newf
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Is    = errors.Is
	As    = errors.As
)

// ExitError carries the process exit code for err and an optional hint that
// the CLI prints after the message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError returns an ExitError without a suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError returns an ExitUser error with a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError returns an ExitSystem error with a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError returns an ExitUser error pointing at fmf config.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Inspect the effective configuration with: fmf config")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// rule maps errors matching target to an exit code and suggestion.
type rule struct {
	target     error
	code       int
	suggestion string
}

var rules = []rule{
	{frontmatter.ErrMalformedFrontmatter, ExitUser, "Fix the frontmatter block or remove it with: fmf strip"},
	{metadata.ErrInvalidYAML, ExitUser, "Check the YAML between the delimiters, or inspect it with: fmf raw"},
	{frontmatter.ErrUnknownStyle, ExitUser, "Run: fmf styles"},
	{ErrInvalidAssignment, ExitUser, "Assignments look like key=value"},
	{ErrUnsupportedFormat, ExitUser, ""},
	{ErrCheckFailed, ExitUser, ""},
	{fileutil.ErrFileTooLarge, ExitUser, "Metadata files are limited to 1 MiB"},
	{lock.ErrLocked, ExitSystem, "Another fmf process is editing the file; retry when it finishes"},
}

// Classify returns err as an ExitError. An ExitError already in the chain
// wins. Otherwise the first matching library or CLI sentinel decides the
// code, and anything unrecognised is a system error. Classify(nil) is nil.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, ErrInvalidConfig) {
		return NewConfigError(err)
	}
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return &ExitError{Err: err, Code: r.code, Suggestion: r.suggestion}
		}
	}
	return NewExitError(err, ExitSystem)
}
