package dataprocessing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/files"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// DownloadCache stores remote workbooks between runs.
type DownloadCache interface {
	FileExists(name string) bool
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// Loader reads a workbook from a URL or local path into a frame. The first
// sheet is used unless a sheet name is configured, and its first row is
// the header.
type Loader struct {
	client *http.Client
	sheet  string
	cache  DownloadCache
	logger *slog.Logger
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for remote sources
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) { l.client = client }
}

// WithTimeout sets the timeout of the default HTTP client
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) { l.client = &http.Client{Timeout: timeout} }
}

// WithSheet selects a sheet by name instead of the first one
func WithSheet(sheet string) LoaderOption {
	return func(l *Loader) { l.sheet = sheet }
}

// WithCache keeps a copy of every downloaded workbook and falls back to it
// when a later download fails
func WithCache(cache DownloadCache) LoaderOption {
	return func(l *Loader) { l.cache = cache }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 60 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(slog.String("component", "loader"))
	return l
}

// IsRemote reports whether source is fetched over HTTP
func IsRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load is Fetch with failures downgraded to a logged error and a nil frame.
// Callers must check the result.
func (l *Loader) Load(ctx context.Context, source string) *frame.Frame {
	f, err := l.Fetch(ctx, source)
	if err != nil {
		l.logger.ErrorContext(ctx, "Error loading data",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil
	}
	return f
}

// Fetch reads source and parses it as a workbook
func (l *Loader) Fetch(ctx context.Context, source string) (*frame.Frame, error) {
	start := time.Now()

	var data []byte
	var err error
	if IsRemote(source) {
		data, err = l.download(ctx, source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = apperrors.NewLoadError(fmt.Sprintf("failed to read %s", source), err).
				WithContext("source", source)
		}
	}
	if err != nil {
		return nil, err
	}

	f, err := l.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewLoadError(fmt.Sprintf("failed to parse %s", source), err).
			WithContext("source", source)
	}

	l.logger.InfoContext(ctx, "Workbook loaded",
		slog.String("source", source),
		slog.Int("rows", f.NumRows()),
		slog.Int("columns", f.NumCols()),
		slog.Duration("duration", time.Since(start)))
	return f, nil
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	data, err := l.get(ctx, url)
	if err == nil {
		if l.cache != nil {
			if werr := l.cache.WriteFile(files.CacheKey(url), data); werr != nil {
				l.logger.WarnContext(ctx, "Failed to cache download",
					slog.String("url", url),
					slog.String("error", werr.Error()))
			}
		}
		return data, nil
	}

	if l.cache == nil {
		return nil, err
	}
	key := files.CacheKey(url)
	if !l.cache.FileExists(key) {
		l.logger.DebugContext(ctx, "No cached copy to fall back on", slog.String("url", url))
		return nil, err
	}
	cached, cerr := l.cache.ReadFile(key)
	if cerr != nil {
		l.logger.WarnContext(ctx, "Cached copy unreadable",
			slog.String("url", url),
			slog.String("error", cerr.Error()))
		return nil, err
	}
	l.logger.WarnContext(ctx, "Download failed, using cached copy",
		slog.String("url", url),
		slog.String("error", err.Error()))
	return cached, nil
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to build request", err).WithContext("source", url)
	}

	l.logger.DebugContext(ctx, "Downloading workbook", slog.String("url", url))
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, apperrors.NewLoadError("download failed", err).WithContext("source", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewLoadError(
			fmt.Sprintf("download failed with status %d", resp.StatusCode), nil).
			WithContext("source", url).
			WithContext("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read response body", err).WithContext("source", url)
	}
	return data, nil
}

// ParseWorkbook parses an xlsx stream. Cells keep their stored values, not
// the text their number format displays. Header cells that are empty are
// named "Unnamed: <position>" and repeated names get a ".1", ".2" suffix.
func (l *Loader) ParseWorkbook(r io.Reader) (*frame.Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cells, err := newCellReader(wb, sheet)
	if err != nil {
		return nil, err
	}

	names := headerNames(rows[0], width)
	body := rows[1:]
	columns := make([]*frame.Series, width)
	for j := 0; j < width; j++ {
		values := make([]any, len(body))
		for i, row := range body {
			if j >= len(row) {
				continue
			}
			// body row i sits on sheet row i+2, below the header
			if values[i], err = cells.value(j+1, i+2, row[j]); err != nil {
				return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
			}
		}
		columns[j] = frame.NewSeries(names[j], values)
	}

	l.logger.Debug("Sheet parsed",
		slog.String("sheet", sheet),
		slog.Int("rows", len(body)),
		slog.Int("columns", width))

	return frame.New(columns...)
}

func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for j := 0; j < width; j++ {
		name := ""
		if j < len(header) {
			name = strings.TrimSpace(header[j])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[j] = name
	}
	return names
}
