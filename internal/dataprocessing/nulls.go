package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// ColumnRange is a half-open range of column positions. End < 0 means the
// range runs to the last column.
type ColumnRange struct {
	Start int
	End   int
}

// ParseColumnRange parses "start:end" or "start:" into a range.
func ParseColumnRange(s string) (ColumnRange, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ColumnRange{}, fmt.Errorf("column range %q must look like start:end", s)
	}
	start, err := strconv.Atoi(left)
	if err != nil || start < 0 {
		return ColumnRange{}, fmt.Errorf("column range %q has an invalid start", s)
	}
	r := ColumnRange{Start: start, End: -1}
	if right != "" {
		end, err := strconv.Atoi(right)
		if err != nil || end < start {
			return ColumnRange{}, fmt.Errorf("column range %q has an invalid end", s)
		}
		r.End = end
	}
	return r, nil
}

// ParseColumnRanges parses every entry of specs.
func ParseColumnRanges(specs []string) ([]ColumnRange, error) {
	ranges := make([]ColumnRange, 0, len(specs))
	for _, s := range specs {
		r, err := ParseColumnRange(s)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Bounds clamps the range to a table with n columns.
func (r ColumnRange) Bounds(n int) (int, int) {
	start, end := r.Start, r.End
	if end < 0 || end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func (r ColumnRange) String() string {
	if r.End < 0 {
		return fmt.Sprintf("%d:", r.Start)
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ReplaceNaNString maps the text "NaN" in any letter case to 0 and returns
// every other value unchanged. Surrounding spaces are not trimmed.
func ReplaceNaNString(v any) any {
	if isNaNText(v) {
		return int64(0)
	}
	return v
}

func isNaNText(v any) bool {
	s, ok := v.(string)
	return ok && strings.EqualFold(s, "nan")
}

// ZeroFillResult counts the cells ZeroFill replaced.
type ZeroFillResult struct {
	Placeholders int
	Missing      int
}

// Total is the number of replaced cells.
func (r ZeroFillResult) Total() int { return r.Placeholders + r.Missing }

// ZeroFill applies the placeholder policy to every column inside ranges:
// "NaN" text and missing cells become 0, all other cells are kept.
// Columns covered by more than one range are processed once.
func ZeroFill(f *frame.Frame, ranges []ColumnRange) (ZeroFillResult, error) {
	var res ZeroFillResult
	if f == nil {
		return res, apperrors.NewCleaningError("no table to zero fill", nil)
	}

	done := make(map[int]bool)
	for _, r := range ranges {
		if r.Start < 0 || (r.End >= 0 && r.End < r.Start) {
			return res, apperrors.NewCleaningError(fmt.Sprintf("invalid column range %s", r), nil)
		}
		start, end := r.Bounds(f.NumCols())
		for j := start; j < end; j++ {
			if done[j] {
				continue
			}
			done[j] = true

			col := f.ColumnAt(j)
			for i, v := range col.Values {
				switch {
				case frame.IsMissing(v):
					col.Values[i] = int64(0)
					res.Missing++
				case isNaNText(v):
					col.Values[i] = ReplaceNaNString(v)
					res.Placeholders++
				}
			}
			col.InferKind()
		}
	}
	return res, nil
}
