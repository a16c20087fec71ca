package dataprocessing

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// OutlierRule identifies one shelter-month whose value in Column is
// replaced by the mean of the same calendar month in every other year.
type OutlierRule struct {
	ShelterColumn string
	Shelter       string
	Column        string
	DateColumn    string
	Year          int
	Month         time.Month
	// SameShelterOnly restricts the reference rows to Shelter.
	SameShelterOnly bool
}

func (r OutlierRule) String() string {
	return fmt.Sprintf("%s %s %d-%02d", r.Shelter, r.Column, r.Year, int(r.Month))
}

// Correction records what CorrectOutlier changed.
type Correction struct {
	Rule          OutlierRule
	Rows          []int
	Previous      []any
	Replacement   float64
	ReferenceRows int
	// Skipped is set when there were no reference values to average.
	Skipped bool
}

// CorrectOutlier overwrites Column on the rows matching rule with the mean
// of Column over the reference rows: same month, any other year. The date
// column is converted to dates in place. Missing reference values are
// ignored. When no reference value exists the table is left unchanged and
// the correction is marked Skipped.
func CorrectOutlier(f *frame.Frame, rule OutlierRule, layouts []string) (*Correction, error) {
	shelterCol := rule.ShelterColumn
	if shelterCol == "" {
		shelterCol = "Shelter Name"
	}
	names, err := f.Column(shelterCol)
	if err != nil {
		return nil, apperrors.NewSchemaError("shelter column missing", err).WithContext("column", shelterCol)
	}
	target, err := f.Column(rule.Column)
	if err != nil {
		return nil, apperrors.NewSchemaError("outlier column missing", err).WithContext("column", rule.Column)
	}
	dates, err := f.Column(rule.DateColumn)
	if err != nil {
		return nil, apperrors.NewSchemaError("date column missing", err).WithContext("column", rule.DateColumn)
	}

	if err := toDates(dates, layouts); err != nil {
		return nil, err
	}

	corr := &Correction{Rule: rule}
	var reference []float64
	for i, v := range dates.Values {
		t, ok := v.(time.Time)
		if !ok || t.Month() != rule.Month {
			continue
		}
		sameShelter := names.Values[i] == any(rule.Shelter)
		if t.Year() == rule.Year {
			if sameShelter {
				corr.Rows = append(corr.Rows, i)
			}
			continue
		}
		if rule.SameShelterOnly && !sameShelter {
			continue
		}
		if x, ok := frame.ToFloat(target.Values[i]); ok {
			reference = append(reference, x)
		}
	}
	corr.ReferenceRows = len(reference)

	if len(reference) == 0 {
		corr.Skipped = true
		corr.Rows = nil
		return corr, nil
	}

	corr.Replacement = stat.Mean(reference, nil)
	for _, i := range corr.Rows {
		corr.Previous = append(corr.Previous, target.Values[i])
		target.Values[i] = corr.Replacement
	}
	if len(corr.Rows) > 0 {
		target.InferKind()
	}
	return corr, nil
}

func toDates(s *frame.Series, layouts []string) error {
	for i, v := range s.Values {
		if frame.IsMissing(v) {
			s.Values[i] = nil
			continue
		}
		t, err := frame.ToTime(v, layouts)
		if err != nil {
			return apperrors.NewCleaningError(
				fmt.Sprintf("cannot read %s at row %d as a date", s.Name, i), err).
				WithContext("column", s.Name).
				WithContext("row", i)
		}
		s.Values[i] = t
	}
	s.InferKind()
	return nil
}
