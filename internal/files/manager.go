package files

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Manager reads and writes files beneath a single root directory. The
// pipeline uses it as the cache for downloaded workbooks.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager creates a new file manager rooted at root
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{root: root, logger: logger.With(slog.String("component", "files"))}
}

// Path returns the full path of name beneath the root
func (m *Manager) Path(name string) string {
	return filepath.Join(m.root, filepath.Base(name))
}

// FileExists checks if a file exists beneath the root
func (m *Manager) FileExists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}

// ReadFile reads the entire content of a file
func (m *Manager) ReadFile(name string) ([]byte, error) {
	fullPath := m.Path(name)

	m.logger.Debug("Reading file",
		slog.String("name", name),
		slog.String("full_path", fullPath))

	return os.ReadFile(fullPath)
}

// WriteFile writes data to a temporary file and renames it into place so a
// failed write never leaves a truncated file behind.
func (m *Manager) WriteFile(name string, data []byte) error {
	fullPath := m.Path(name)

	m.logger.Info("Writing file",
		slog.String("name", name),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(m.root, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(m.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// CacheKey derives a file name for a remote source from its URL path,
// falling back to the host when the path is empty.
func CacheKey(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return sanitize(source)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		base = u.Host
	}
	return sanitize(base)
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "download"
	}
	return name
}
