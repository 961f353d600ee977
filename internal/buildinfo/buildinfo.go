// Package buildinfo carries the version stamped into the wavefield binary.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version, Commit and Date are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" && c != "unknown" {
		if len(c) > 12 {
			c = c[:12]
		}
		return c
	}
	return "dev"
}

// String is the line printed by the version command.
func String() string {
	return fmt.Sprintf("wavefield %s (commit %s, built %s, %s %s/%s)",
		Version, commit(), Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// commit falls back to the VCS revision recorded by the go tool.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return Commit
}
