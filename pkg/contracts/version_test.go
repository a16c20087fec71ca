package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersionString(t *testing.T) {
	s := GetFullVersionString("shelterstats")
	assert.True(t, strings.HasPrefix(s, "shelterstats v"+Version+" "), s)
	assert.Contains(t, s, runtime.Version())
	assert.Contains(t, s, "data format: "+DataFormatVersion)
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, "unknown", info.GitCommit)
}
