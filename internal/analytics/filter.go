package analytics

import (
	"fmt"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// Filter selects the rows an aggregate is computed over.
type Filter struct {
	// YearFrom and YearTo bound Data Year inclusively. Years are read as
	// numbers; rows whose year is missing or not numeric are dropped.
	YearFrom int
	YearTo   int
	// ExcludeAnnotation drops rows whose annotation equals it. Empty keeps
	// every row.
	ExcludeAnnotation string

	YearColumn       string
	AnnotationColumn string
}

// DefaultFilter keeps 2021 through 2023 and drops rows annotated R.
func DefaultFilter() Filter {
	return Filter{
		YearFrom:          2021,
		YearTo:            2023,
		ExcludeAnnotation: domain.AnnotationRemoved,
	}
}

// WithoutAnnotationFilter returns a copy of fl that keeps annotated rows.
func (fl Filter) WithoutAnnotationFilter() Filter {
	fl.ExcludeAnnotation = ""
	return fl
}

func (fl Filter) yearColumn() string {
	if fl.YearColumn == "" {
		return domain.ColDataYear
	}
	return fl.YearColumn
}

func (fl Filter) annotationColumn() string {
	if fl.AnnotationColumn == "" {
		return domain.ColAnnotation
	}
	return fl.AnnotationColumn
}

func (fl Filter) String() string {
	if fl.ExcludeAnnotation == "" {
		return fmt.Sprintf("years %d-%d", fl.YearFrom, fl.YearTo)
	}
	return fmt.Sprintf("years %d-%d excluding %q", fl.YearFrom, fl.YearTo, fl.ExcludeAnnotation)
}

// Apply returns the rows of f that pass the filter.
func (fl Filter) Apply(f *frame.Frame) (*frame.Frame, error) {
	if f == nil {
		return nil, apperrors.NewAggregationError("no table to filter", nil)
	}
	years, err := f.Column(fl.yearColumn())
	if err != nil {
		return nil, apperrors.NewAggregationError("year column missing", err)
	}

	var annotations *frame.Series
	if fl.ExcludeAnnotation != "" {
		annotations, err = f.Column(fl.annotationColumn())
		if err != nil {
			return nil, apperrors.NewAggregationError("annotation column missing", err)
		}
	}

	return f.Filter(func(i int) bool {
		y, ok := frame.ToFloat(years.Values[i])
		if !ok || y < float64(fl.YearFrom) || y > float64(fl.YearTo) {
			return false
		}
		if annotations != nil {
			if s, isText := annotations.Values[i].(string); isText && s == fl.ExcludeAnnotation {
				return false
			}
		}
		return true
	}), nil
}
