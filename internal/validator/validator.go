package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity ranks an issue. Only errors fail a check.
type Severity int

const (
	// SeverityError marks a file whose frontmatter cannot be read.
	SeverityError Severity = iota
	// SeverityWarning marks something worth a look that is not a failure,
	// such as a file without frontmatter.
	SeverityWarning
	// SeverityInfo is purely informational.
	SeverityInfo
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	i := slices.Index(severityNames[:], string(text))
	if i < 0 {
		return errors.Newf("unknown severity %q", text)
	}
	*s = Severity(i)
	return nil
}

// Issue is one finding about one subject, usually a file path.
type Issue struct {
	Severity Severity `json:"severity"`
	// Field names the subject, typically a path or glob pattern.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value is the offending value, if there is one.
	Value any `json:"value,omitempty"`
	// Context carries details such as the failure kind and the frontmatter style.
	Context map[string]string `json:"context,omitempty"`
}

// Error formats the issue as "severity: field: message (got value)".
func (i Issue) Error() string {
	parts := []string{i.Severity.String()}
	if i.Field != "" {
		parts = append(parts, i.Field)
	}
	msg := strings.Join(append(parts, i.Message), ": ")
	if i.Value != nil {
		msg += fmt.Sprintf(" (got %v)", i.Value)
	}
	return msg
}

// Result collects issues in the order they were added.
type Result struct {
	Issues []Issue `json:"issues"`
}

// Add appends an issue with the given severity and context.
func (r *Result) Add(sev Severity, field, message string, ctx map[string]string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Message: message, Context: ctx})
}

// AddError appends an error.
func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

// AddWarning appends a warning.
func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

// AddInfo appends an informational note.
func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

func (r *Result) add(sev Severity, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Message: message, Value: value})
}

// Merge appends the issues of other.
func (r *Result) Merge(other *Result) {
	if other != nil {
		r.Issues = append(r.Issues, other.Issues...)
	}
}

// Count returns the number of issues with severity sev.
func (r *Result) Count(sev Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool { return r.Count(SeverityError) > 0 }

// HasWarnings reports whether any issue is a warning.
func (r *Result) HasWarnings() bool { return r.Count(SeverityWarning) > 0 }

// Errors returns the error issues, or nil if there are none.
func (r *Result) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning issues, or nil if there are none.
func (r *Result) Warnings() []Issue { return r.filter(SeverityWarning) }

// Infos returns the informational issues, or nil if there are none.
func (r *Result) Infos() []Issue { return r.filter(SeverityInfo) }

func (r *Result) filter(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Sorted returns a copy of the issues ordered by severity then field. Issues
// that tie keep their insertion order.
func (r *Result) Sorted() []Issue {
	if r == nil {
		return nil
	}
	out := slices.Clone(r.Issues)
	slices.SortStableFunc(out, func(a, b Issue) int {
		if a.Severity != b.Severity {
			return int(a.Severity) - int(b.Severity)
		}
		return strings.Compare(a.Field, b.Field)
	})
	return out
}
