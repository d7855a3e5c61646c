package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{version: "v1.2.0", commit: "abc123", want: "v1.2.0"},
		{version: "dev", commit: "abc123", want: "abc123"},
		{version: "", commit: "unknown", want: "dev"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestVCSRevision(t *testing.T) {
	defer func(f func() (*debug.BuildInfo, bool)) { readBuildInfo = f }(readBuildInfo)

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		}}, true
	}
	if got := vcsRevision(); got != "0123456789ab" {
		t.Fatalf("vcsRevision()=%q", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	if got := vcsRevision(); got != "" {
		t.Fatalf("vcsRevision() without build info = %q", got)
	}
}
