package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// SheetName is the sheet the combined table is written to
const SheetName = "combined"

// WriteWorkbook writes f as a single-sheet xlsx file, streaming rows.
// Numbers stay numeric; dates are written as text.
func (w *CSVWriter) WriteWorkbook(filePath string, f *frame.Frame) (string, error) {
	if f == nil {
		return "", apperrors.NewExportError("no table to export", nil)
	}
	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewExportError("failed to create directory", err)
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), SheetName); err != nil {
		return "", apperrors.NewExportError("failed to name sheet", err)
	}
	stream, err := book.NewStreamWriter(SheetName)
	if err != nil {
		return "", apperrors.NewExportError("failed to open stream writer", err)
	}

	header := make([]interface{}, f.NumCols())
	for j, name := range f.Columns() {
		header[j] = name
	}
	if err := stream.SetRow("A1", header); err != nil {
		return "", apperrors.NewExportError("failed to write header", err)
	}

	row := make([]interface{}, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		for j := range row {
			row[j] = cellValue(f.ColumnAt(j).At(i))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", apperrors.NewExportError("invalid cell", err)
		}
		if err := stream.SetRow(cell, row); err != nil {
			return "", apperrors.NewExportError(fmt.Sprintf("failed to write row %d", i), err)
		}
	}

	if err := stream.Flush(); err != nil {
		return "", apperrors.NewExportError("failed to flush workbook", err)
	}
	if err := book.SaveAs(fullPath); err != nil {
		return "", apperrors.NewExportError(fmt.Sprintf("failed to save %s", fullPath), err)
	}

	w.logger.Info("Workbook exported",
		slog.String("full_path", fullPath),
		slog.Int("rows", f.NumRows()))
	return fullPath, nil
}

func cellValue(v any) interface{} {
	if frame.IsMissing(v) {
		return nil
	}
	switch x := v.(type) {
	case int64, float64, bool, string:
		return x
	case time.Time:
		return frame.Format(x)
	}
	return frame.Format(v)
}
