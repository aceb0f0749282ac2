package logging

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// EnvColor forces color on ("always") or off ("never") regardless of the
// terminal. Any other value leaves detection in charge.
const EnvColor = "FMF_COLOR"

// IsTTY reports whether w is a terminal. Anything exposing Fd() is checked,
// which covers *os.File.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
// FMF_COLOR wins; otherwise NO_COLOR (https://no-color.org) and TERM=dumb
// disable color, and w must be a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	switch strings.ToLower(os.Getenv(EnvColor)) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// ConfigureColor points fatih/color's global switch at w, so report output
// is colored only when w can show it.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
