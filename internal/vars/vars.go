// Package vars provides build-time metadata about cfgbundle.
// Values are injected at build time via ldflags.
package vars

import (
	"fmt"
	"io"
	"os"
	"time"
)

var (
	// Version is the application version (usually a git tag or semver),
	// defaults to "dev".
	Version = "dev"

	// Commit is the current git commit SHA (short or full), defaults to "unknown".
	Commit = "unknown"

	// BuildTime is the application build time in RFC3339 UTC, defaults to 1970-01-01.
	BuildTime = time.Unix(0, 0).UTC()

	// URL is the repository URL.
	URL = "https://github.com/woozymasta/cfgbundle"

	// _buildTime is an internal string passed via ldflags that overrides BuildTime when set.
	_buildTime string
)

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

// Print writes build information to w in a human-readable format.
func Print(w io.Writer) {
	fmt.Fprintf(w, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime.Format(time.RFC3339))
}
