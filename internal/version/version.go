// Package version provides build version information and runtime metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	// These are set via ldflags at release build time; otherwise they are
	// filled from the binary's embedded build info.
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once
)

func ensureInitialized() {
	once.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fill("dev", "unknown", "unknown")
			return
		}

		var revision, buildTime, modified string
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.time":
				buildTime = s.Value
			case "vcs.modified":
				modified = s.Value
			}
		}
		if len(revision) > 12 {
			revision = revision[:12]
		}
		if revision != "" && modified == "true" {
			revision += "-dirty"
		}

		v := info.Main.Version
		if v == "" || v == "(devel)" {
			v = "dev"
		}
		fill(v, revision, buildTime)
	})
}

// fill sets the unset variables, leaving ldflags-provided values alone.
func fill(version, commit, date string) {
	if Version == "" {
		Version = version
	}
	if Commit == "" {
		if commit == "" {
			commit = "unknown"
		}
		Commit = commit
	}
	if Date == "" {
		if date == "" {
			date = "unknown"
		}
		Date = date
	}
}

// Info returns a human-readable version line for --version output.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("nbaterm %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
