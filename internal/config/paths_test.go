package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	t.Run("nested directory structure", func(t *testing.T) {
		base := t.TempDir()
		paths, err := GetPaths(base)
		require.NoError(t, err)

		assert.Equal(t, base, paths.OutputDir)
		assert.Equal(t, filepath.Join(base, "exports"), paths.ExportsDir)
		assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
		assert.Equal(t, filepath.Join(base, "cache"), paths.CacheDir)
	})

	t.Run("empty output dir resolves to working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		paths, err := GetPaths("")
		require.NoError(t, err)
		assert.Equal(t, wd, paths.OutputDir)
		assert.True(t, filepath.IsAbs(paths.LogsDir))
	})

	t.Run("relative output dir becomes absolute", func(t *testing.T) {
		paths, err := GetPaths("out")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(paths.OutputDir))
		assert.Equal(t, "out", filepath.Base(paths.OutputDir))
	})
}

func TestPaths_FileHelpers(t *testing.T) {
	base := t.TempDir()
	paths, err := GetPaths(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "Canine_Outcomes.png"), paths.GetChartPath("Canine_Outcomes.png"))
	assert.Equal(t, filepath.Join(base, "exports", CombinedCSVFile), paths.GetExportPath(CombinedCSVFile))
	assert.Equal(t, filepath.Join(base, "logs", TraceFile), paths.GetLogPath(TraceFile))
	assert.Equal(t, filepath.Join(base, "cache"), paths.CacheDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	paths, err := GetPaths(base)
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.OutputDir, paths.ExportsDir, paths.LogsDir, paths.CacheDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// idempotent
	require.NoError(t, paths.EnsureDirectories())
}

