package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate })

	Version = "1.2.0"
	GitCommit = "abc123"
	BuildDate = "2025-01-01"

	info := Get()
	if info.Version != "1.2.0" || info.GitCommit != "abc123" || info.BuildDate != "2025-01-01" {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}

	s := info.String()
	for _, part := range []string{"dvbtune 1.2.0", "built 2025-01-01", runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}

func TestFromBuildInfo(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/smazurov/dvbtune", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	defaults := Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"}

	tests := []struct {
		name string
		bi   *debug.BuildInfo
		base Info
		want Info
	}{
		{
			name: "defaults filled from build info",
			bi:   stamped,
			base: defaults,
			want: Info{Version: "v0.3.1", GitCommit: "0123456789ab", BuildDate: "2026-03-01T10:00:00Z", Modified: true},
		},
		{
			name: "ldflags values win",
			bi:   stamped,
			base: Info{Version: "1.2.0", GitCommit: "abc123", BuildDate: "2025-01-01"},
			want: Info{Version: "1.2.0", GitCommit: "abc123", BuildDate: "2025-01-01", Modified: true},
		},
		{
			name: "devel build without vcs stamps",
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			base: defaults,
			want: defaults,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(tt.bi, tt.base); got != tt.want {
				t.Errorf("fromBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStringMarksDirtyTree(t *testing.T) {
	info := Info{Version: "v0.3.1", GitCommit: "0123456789ab", BuildDate: "2026-03-01", Modified: true}
	if s := info.String(); !strings.Contains(s, "commit 0123456789ab+dirty") {
		t.Errorf("String() = %q, want dirty marker", s)
	}
}
