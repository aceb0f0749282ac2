// Package cmd holds build metadata for the fmf binary.
//
// Release builds set the variables with -ldflags, for example:
//
//	go build -ldflags "-X github.com/thoreinstein/fmf/cmd.Version=v1.2.0" ./cmd/fmf
//
// A plain "go install" leaves them at their defaults; [Info] then falls back
// to the module version and VCS stamps recorded by the Go toolchain.
package cmd

import (
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Info returns the ldflags values, filling unset ones from the embedded
// build information when it is available.
func Info() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return info(bi)
}

func info(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi == nil {
		return out
	}
	if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		out.Version = bi.Main.Version
	}
	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	if rev := vcs["vcs.revision"]; out.Commit == "none" && rev != "" {
		out.Commit = rev[:min(len(rev), 12)]
		if vcs["vcs.modified"] == "true" {
			out.Commit += "-dirty"
		}
	}
	if t := vcs["vcs.time"]; out.Date == "unknown" && t != "" {
		out.Date = t
	}
	return out
}
