package buildinfo

import "runtime/debug"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags. When unset, the VCS revision
// recorded by the Go toolchain is used.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

var readBuildInfo = debug.ReadBuildInfo

func init() {
	if Commit != "unknown" {
		return
	}
	if rev := vcsRevision(); rev != "" {
		Commit = rev
	}
}

func vcsRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
