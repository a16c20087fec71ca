package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every location the run writes to. Charts go straight into
// the output directory; exports, logs and the download cache get their own
// subdirectories.
type Paths struct {
	OutputDir  string
	ExportsDir string
	LogsDir    string
	CacheDir   string
}

// GetPaths resolves the run's paths beneath outputDir. An empty outputDir
// means the current working directory.
func GetPaths(outputDir string) (*Paths, error) {
	if outputDir == "" {
		outputDir = "."
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %v", outputDir, err)
	}

	return &Paths{
		OutputDir:  abs,
		ExportsDir: filepath.Join(abs, "exports"),
		LogsDir:    filepath.Join(abs, "logs"),
		CacheDir:   filepath.Join(abs, "cache"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.ExportsDir,
		p.LogsDir,
		p.CacheDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetChartPath returns the path of a chart image
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetExportPath returns the path of an exported table
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the path of a log or trace file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("output", p.OutputDir),
			slog.String("exports", p.ExportsDir),
			slog.String("logs", p.LogsDir),
			slog.String("cache", p.CacheDir),
		))
}
