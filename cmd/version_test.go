package cmd

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		bi   *debug.BuildInfo
		set  func()
		want BuildInfo
	}{
		{
			name: "no build info",
			want: BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name: "falls back to module and vcs stamps",
			bi:   stamped,
			want: BuildInfo{Version: "v0.4.1", Commit: "0123456789ab-dirty", Date: "2026-10-01T12:00:00Z"},
		},
		{
			name: "devel module version ignored",
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name: "ldflags win",
			bi:   stamped,
			set: func() {
				Version, Commit, Date = "v1.0.0", "abc1234", "2026-10-19"
			},
			want: BuildInfo{Version: "v1.0.0", Commit: "abc1234", Date: "2026-10-19"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c, d := Version, Commit, Date
			t.Cleanup(func() { Version, Commit, Date = v, c, d })
			if tt.set != nil {
				tt.set()
			}

			tt.want.GoVersion = runtime.Version()
			assert.Equal(t, tt.want, info(tt.bi))
		})
	}
}

func TestInfo_Running(t *testing.T) {
	got := Info()
	assert.NotEmpty(t, got.Version)
	assert.Equal(t, runtime.Version(), got.GoVersion)
}
