package files

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_WriteReadRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	m := NewManager(root, testLogger())

	assert.False(t, m.FileExists("export.xlsx"))
	require.NoError(t, m.WriteFile("export.xlsx", []byte("payload")))
	assert.True(t, m.FileExists("export.xlsx"))

	data, err := m.ReadFile("export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// no temp files are left behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestManager_PathStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, nil)
	assert.Equal(t, filepath.Join(root, "passwd"), m.Path("../../etc/passwd"))
}

func TestManager_ReadMissing(t *testing.T) {
	m := NewManager(t.TempDir(), testLogger())
	_, err := m.ReadFile("absent.xlsx")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{
			source: "https://agr.georgia.gov/sites/default/files/documents/pets-and-livestock/shelter-report-data-export-october-2024.xlsx.xlsx",
			want:   "shelter-report-data-export-october-2024.xlsx.xlsx",
		},
		{source: "https://example.com/", want: "example.com"},
		{source: "https://example.com:8080", want: "example.com_8080"},
		{source: "http://host/a/report.xlsx?x=1", want: "report.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheKey(tt.source))
		})
	}
}
