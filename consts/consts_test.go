package consts

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func resetStartedAt() {
	startedAt = time.Time{}
	startedOnce = sync.Once{}
}

func TestProjectInfo(t *testing.T) {
	assert.Equal(t, "retailscope", ServiceName)
	assert.Equal(t, "RetailScope", ProjectName)
	assert.Equal(t, "https://github.com/retailscope/retailscope", ProjectURL)
}

func TestSetStartedAtOnce(t *testing.T) {
	resetStartedAt()

	now := time.Now()
	SetStartedAt(now)
	SetStartedAt(now.Add(time.Hour))

	assert.True(t, GetStartedAt().Equal(now))
}

func TestGetUptime(t *testing.T) {
	resetStartedAt()
	assert.Zero(t, GetUptime())

	SetStartedAt(time.Now().Add(-2 * time.Second))
	uptime := GetUptime()
	assert.GreaterOrEqual(t, uptime, 2*time.Second)
	assert.Less(t, uptime, time.Minute)
}

func TestBuildInfo(t *testing.T) {
	prev := BuildInfo()
	t.Cleanup(func() {
		Version, BuildTime, GitCommit = prev.Version, prev.BuildTime, prev.GitCommit
	})

	Version, BuildTime, GitCommit = "1.2.0", "2026-10-01T08:00:00Z", "abc1234"
	b := BuildInfo()

	assert.Equal(t, Build{Version: "1.2.0", BuildTime: "2026-10-01T08:00:00Z", GitCommit: "abc1234"}, b)
	assert.Equal(t, "RetailScope 1.2.0\n  Build Time: 2026-10-01T08:00:00Z\n  Git Commit: abc1234\n", b.String())
}
