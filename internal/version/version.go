// Package version carries build metadata, set with -ldflags "-X ...".
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-01-11T18:42:00Z
	GoVersion = runtime.Version()
)

// String is the one-line build summary printed by both binaries.
func String(binary string) string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", binary, Version, Commit, BuildDate, GoVersion)
}
