package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sganes21/Dataset-Final-Project/internal/config"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative file names are
// placed in the export directory of paths.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger.With(slog.String("component", "exporter"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteCSV writes data to a CSV file with the given options and returns
// the full path written
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewExportError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewExportError("failed to open file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", apperrors.NewExportError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", apperrors.NewExportError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", apperrors.NewExportError("failed to flush CSV", err)
	}
	return fullPath, nil
}

// WriteSimpleCSV writes a simple CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers: headers,
		Records: records,
	})
}

// WriteFrame streams every row of f into filePath. Missing values are
// written as empty fields.
func (w *CSVWriter) WriteFrame(filePath string, f *frame.Frame) (string, error) {
	if f == nil {
		return "", apperrors.NewExportError("no table to export", nil)
	}
	stream, err := w.CreateStreamWriter(filePath, f.Columns())
	if err != nil {
		return "", err
	}

	record := make([]string, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		for j := range record {
			record[j] = frame.Format(f.ColumnAt(j).At(i))
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", apperrors.NewExportError(fmt.Sprintf("failed to write row %d", i), err)
		}
	}
	if err := stream.Close(); err != nil {
		return "", apperrors.NewExportError("failed to close CSV stream", err)
	}

	w.logger.Info("Table exported",
		slog.String("full_path", stream.path),
		slog.Int("rows", f.NumRows()),
		slog.Int("columns", f.NumCols()))
	return stream.path, nil
}

// WriteDtypes writes a dtype report, one row per column
func (w *CSVWriter) WriteDtypes(filePath string, profiles map[string]frame.ColumnProfile) (string, error) {
	return w.WriteSimpleCSV(filePath, frame.ProfileHeaders, frame.ProfileRows(profiles))
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewExportError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewExportError("failed to create file", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewExportError("failed to write headers", err)
		}
	}

	return &StreamWriter{
		path:   fullPath,
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Path returns the file being written
func (s *StreamWriter) Path() string { return s.path }

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath places relative names in the export directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetExportPath(filePath)
}
