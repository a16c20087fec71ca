package dataprocessing

import (
	"fmt"
	"log/slog"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// Normalizer rebuilds the state export's layout. The export carries two
// banner rows above its real header, a leading index column and a block of
// padding columns that are entirely empty.
type Normalizer struct {
	HeaderRow          int
	DropLeadingColumns int
	IntegerFromColumn  int
	logger             *slog.Logger
}

// NewNormalizer creates a normalizer
func NewNormalizer(headerRow, dropLeading, integerFrom int, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		HeaderRow:          headerRow,
		DropLeadingColumns: dropLeading,
		IntegerFromColumn:  integerFrom,
		logger:             logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize takes the header from data row HeaderRow, keeps only the rows
// below it, drops the leading columns and the all-empty columns, then
// converts every column from IntegerFromColumn onward to int64. A cell that
// cannot be converted fails the whole table.
func (n *Normalizer) Normalize(raw *frame.Frame) (*frame.Frame, error) {
	if raw == nil {
		return nil, apperrors.NewSchemaError("no table to normalize", nil)
	}
	if raw.NumRows() <= n.HeaderRow {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("table has %d rows, header expected at row %d", raw.NumRows(), n.HeaderRow), nil)
	}

	first := n.HeaderRow + 1
	columns := make([]*frame.Series, 0, raw.NumCols())
	for j := 0; j < raw.NumCols(); j++ {
		src := raw.ColumnAt(j)
		name := frame.Format(src.At(n.HeaderRow))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}
		values := make([]any, raw.NumRows()-first)
		copy(values, src.Values[first:])
		columns = append(columns, frame.NewSeries(name, values))
	}

	out, err := frame.New(columns...)
	if err != nil {
		return nil, apperrors.NewSchemaError("failed to rebuild table", err)
	}

	drop := make([]int, 0, n.DropLeadingColumns)
	for j := 0; j < n.DropLeadingColumns && j < out.NumCols(); j++ {
		drop = append(drop, j)
	}
	out.DropColumnsAt(drop...)

	dropped := out.DropEmptyColumns()
	if len(dropped) > 0 {
		n.logger.Debug("Dropped empty columns", slog.Int("count", len(dropped)))
	}

	for j := n.IntegerFromColumn; j < out.NumCols(); j++ {
		col := out.ColumnAt(j)
		for i, v := range col.Values {
			iv, err := frame.ToInt(v)
			if err != nil {
				return nil, apperrors.NewCoercionError(col.Name, i, err)
			}
			col.Values[i] = iv
		}
		col.Kind = frame.KindInt64
	}

	n.logger.Info("State export normalized",
		slog.Int("rows", out.NumRows()),
		slog.Int("columns", out.NumCols()),
		slog.Int("integer_columns", max(0, out.NumCols()-n.IntegerFromColumn)))
	return out, nil
}
