// Package exporter writes the combined table and its dtype report to disk.
//
// CSVWriter resolves relative names against the export directory. It
// writes plain CSV with encoding/csv, streams whole tables row by row,
// and writes the same table as an xlsx workbook through excelize's
// StreamWriter.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths, logger)
//	path, err := w.WriteFrame("combined.csv", combined)
//	path, err = w.WriteDtypes("dtypes.csv", frame.DetailedDtypes(combined))
package exporter
