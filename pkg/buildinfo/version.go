// Package buildinfo reports which pagesmith build is running.
//
// Release builds stamp the values through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/pagesmith/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/matzehuels/pagesmith/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/pagesmith
//
// Binaries built with go install carry no ldflags; for those the module
// version and VCS revision recorded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped by the linker for release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fillOnce sync.Once

// fill copies toolchain build metadata into the variables the linker
// left at their defaults.
func fill() {
	fillOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		fromBuild(info)
	})
}

func fromBuild(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none" && s.Value != "":
			Commit = s.Value
			if len(Commit) > 12 {
				Commit = Commit[:12]
			}
		case s.Key == "vcs.time" && Date == "unknown" && s.Value != "":
			Date = s.Value
		}
	}
}

// Current returns the running version.
func Current() string {
	fill()
	return Version
}

// Template is the cobra --version output.
func Template() string {
	fill()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies pagesmith in outbound HTTP requests, such as remote
// image fetches.
func UserAgent() string {
	return "pagesmith/" + Current()
}
