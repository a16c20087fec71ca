package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "defaults", args: nil, want: options{}},
		{name: "all flags", args: []string{"-config", "run.yaml", "-out", "results", "-html"},
			want: options{configPath: "run.yaml", outDir: "results", html: true, htmlSet: true}},
		{name: "html disabled explicitly", args: []string{"-html=false"},
			want: options{htmlSet: true}},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: true},
		{name: "stray argument", args: []string{"extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "shelterstats.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  html: true\nanalysis:\n  top_shelters: 5\n"), 0644))

	out := filepath.Join(dir, "results")
	cfg, paths, err := loadConfig(options{configPath: cfgPath, outDir: out, htmlSet: true, html: false})
	require.NoError(t, err)

	assert.Equal(t, out, cfg.Output.Dir)
	assert.False(t, cfg.Output.HTML)
	assert.Equal(t, 5, cfg.Analysis.TopShelters)
	assert.Equal(t, out, paths.OutputDir)
	assert.Equal(t, filepath.Join(out, "logs", "shelterstats.log"), cfg.Logging.FilePath)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  top_shelters: 0\n"), 0644))

	_, _, err := loadConfig(options{configPath: cfgPath})
	assert.Error(t, err)
}
