package dataprocessing

import (
	"fmt"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// CopyYear returns the calendar year of periodEnd when it is present and
// fallback otherwise. A present value that is not a date is an error.
func CopyYear(periodEnd, fallback any, layouts []string) (any, error) {
	if frame.IsMissing(periodEnd) {
		return fallback, nil
	}
	t, err := frame.ToTime(periodEnd, layouts)
	if err != nil {
		return nil, err
	}
	return int64(t.Year()), nil
}

// DeriveDataYear fills yearCol from the year of endCol row by row, keeping
// the existing year where endCol is missing. yearCol is created when the
// table lacks it. It returns the number of rows whose year came from
// endCol.
func DeriveDataYear(f *frame.Frame, endCol, yearCol string, layouts []string) (int, error) {
	end, err := f.Column(endCol)
	if err != nil {
		return 0, apperrors.NewSchemaError("period end column missing", err).WithContext("column", endCol)
	}
	year, err := f.Column(yearCol)
	if err != nil {
		year = frame.NewSeries(yearCol, make([]any, f.NumRows()))
		if err := f.SetColumn(year); err != nil {
			return 0, apperrors.NewCleaningError("failed to add year column", err)
		}
	}

	derived := 0
	for i, v := range end.Values {
		y, err := CopyYear(v, year.Values[i], layouts)
		if err != nil {
			return derived, apperrors.NewCleaningError(
				fmt.Sprintf("cannot read %s at row %d as a date", endCol, i), err).
				WithContext("column", endCol).
				WithContext("row", i)
		}
		if !frame.IsMissing(v) {
			derived++
		}
		year.Values[i] = y
	}
	year.InferKind()
	return derived, nil
}

// DefaultState sets every missing cell of col to state and returns how
// many cells it filled.
func DefaultState(f *frame.Frame, col, state string) (int, error) {
	c, err := f.Column(col)
	if err != nil {
		return 0, apperrors.NewSchemaError("state column missing", err).WithContext("column", col)
	}
	filled := 0
	for i, v := range c.Values {
		if frame.IsMissing(v) {
			c.Values[i] = state
			filled++
		}
	}
	c.InferKind()
	return filled, nil
}
