// Package consts holds process-wide names, build information and start time.
package consts

import (
	"fmt"
	"sync"
	"time"
)

// ServiceName names the binary, the tracer resource and temp files
const ServiceName = "retailscope"

const (
	// ProjectName is the display name of the project
	ProjectName = "RetailScope"

	// ProjectURL is the repository URL
	ProjectURL = "https://github.com/retailscope/retailscope"
)

// Build information, overwritten from main's ldflags variables at startup
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Build describes the running binary
type Build struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// BuildInfo returns the current build information
func BuildInfo() Build {
	return Build{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
}

// String renders the build as the version command prints it
func (b Build) String() string {
	return fmt.Sprintf("%s %s\n  Build Time: %s\n  Git Commit: %s\n",
		ProjectName, b.Version, b.BuildTime, b.GitCommit)
}

var (
	startedAt   time.Time
	startedOnce sync.Once
)

// SetStartedAt records when the server began listening. Later calls are ignored.
func SetStartedAt(t time.Time) {
	startedOnce.Do(func() {
		startedAt = t
	})
}

// GetStartedAt returns the recorded start time, zero before the server starts
func GetStartedAt() time.Time {
	return startedAt
}

// GetUptime returns the time since start, or zero before the server starts
func GetUptime() time.Duration {
	if startedAt.IsZero() {
		return 0
	}
	return time.Since(startedAt)
}
