package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format selects how a Reporter renders a Result.
type Format string

const (
	// FormatText is colored, grouped, human-readable output.
	FormatText Format = "text"
	// FormatJSON is a single indented JSON document.
	FormatJSON Format = "json"
)

// maxValueLen bounds how much of an issue's Value the text report prints.
const maxValueLen = 50

// Reporter writes a Result to an output stream.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter returns a Reporter writing format to out. Unknown formats
// render as text.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Summary counts issues by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

type jsonReport struct {
	OK      bool    `json:"ok"`
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

// Summarize counts the issues in result.
func Summarize(result *Result) Summary {
	return Summary{
		Errors:   result.Count(SeverityError),
		Warnings: result.Count(SeverityWarning),
		Infos:    result.Count(SeverityInfo),
	}
}

// Report writes result. A nil result writes nothing.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	if r.format == FormatJSON {
		return r.writeJSON(result)
	}
	r.writeText(result)
	return nil
}

func (r *Reporter) writeJSON(result *Result) error {
	issues := result.Sorted()
	if issues == nil {
		issues = []Issue{}
	}
	doc := jsonReport{OK: !result.HasErrors(), Summary: Summarize(result), Issues: issues}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "encoding JSON report")
}

var sections = []struct {
	sev    Severity
	title  string
	marker string
	attr   color.Attribute
}{
	{SeverityError, "Errors", "✗", color.FgRed},
	{SeverityWarning, "Warnings", "!", color.FgYellow},
	{SeverityInfo, "Notes", "·", color.FgBlue},
}

func (r *Reporter) writeText(result *Result) {
	s := Summarize(result)
	if s.Errors == 0 && s.Warnings == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ No problems found"))
	} else {
		fmt.Fprintf(r.out, "Found %s\n", summaryLine(s))
	}

	issues := result.Sorted()
	for _, sec := range sections {
		paint := color.New(sec.attr).SprintFunc()
		header := false
		for _, i := range issues {
			if i.Severity != sec.sev {
				continue
			}
			if !header {
				fmt.Fprintf(r.out, "\n%s:\n", sec.title)
				header = true
			}
			fmt.Fprintf(r.out, "  %s %s\n", paint(sec.marker), issueLine(i, paint))
		}
	}
}

func summaryLine(s Summary) string {
	var parts []string
	if s.Errors > 0 {
		parts = append(parts, color.RedString(plural(s.Errors, "error")))
	}
	if s.Warnings > 0 {
		parts = append(parts, color.YellowString(plural(s.Warnings, "warning")))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// issueLine renders "field: message (k=v, ...) [value]".
func issueLine(i Issue, paint func(...any) string) string {
	var sb strings.Builder
	if i.Field != "" {
		sb.WriteString(paint(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	faint := color.New(color.FgHiBlack)
	if len(i.Context) > 0 {
		kv := make([]string, 0, len(i.Context))
		for _, k := range slices.Sorted(maps.Keys(i.Context)) {
			kv = append(kv, k+"="+i.Context[k])
		}
		sb.WriteString(faint.Sprintf(" (%s)", strings.Join(kv, ", ")))
	}
	if i.Value != nil {
		v := fmt.Sprint(i.Value)
		if len(v) > maxValueLen {
			v = v[:maxValueLen-3] + "..."
		}
		sb.WriteString(faint.Sprintf(" [%s]", v))
	}
	return sb.String()
}
