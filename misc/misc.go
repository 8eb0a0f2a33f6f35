// Package misc holds build related information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X aesthetic/misc.version=... -X aesthetic/misc.appName=...".
var (
	version = "dev"
	appName = ""
)

// GetAppName returns application name, either set at build time or derived
// from executable name.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision embedded by go toolchain, "unknown" when
// binary was built without it.
func GetGitHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var (
		rev      = "unknown"
		modified bool
	)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 10 {
				rev = rev[:10]
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if modified {
		rev += "-dirty"
	}
	return rev
}
