package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	origVersion, origBuildTime, origCommit := Version, BuildTime, Commit
	defer func() {
		Version, BuildTime, Commit = origVersion, origBuildTime, origCommit
	}()

	Version = "0.3.0"
	BuildTime = "2026-01-15"
	Commit = "abcdef0123456789"

	info := Info()
	assert.Contains(t, info, "0.3.0")
	assert.Contains(t, info, "abcdef01") // shortened SHA
	assert.Contains(t, info, "2026-01-15")
	assert.Contains(t, info, runtime.GOOS)

	// Short commits are used as-is.
	Commit = "abc123"
	assert.Contains(t, Info(), "abc123")
}

func TestMap(t *testing.T) {
	m := Map()
	assert.Equal(t, Version, m["version"])
	assert.Equal(t, runtime.GOOS, m["os"])
	assert.Equal(t, runtime.GOARCH, m["arch"])
	assert.Equal(t, runtime.Version(), m["goVersion"])
}
