package frame

import (
	"time"
)

// Kind is the declared storage type of a column.
type Kind int

const (
	KindObject Kind = iota
	KindInt64
	KindFloat64
	KindBool
	KindTime
)

// String returns the storage type name used in dtype reports.
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindTime:
		return "datetime64[ns]"
	default:
		return "object"
	}
}

// Series is a named column of cells.
type Series struct {
	Name   string
	Kind   Kind
	Values []any
}

// NewSeries builds a column and infers its kind from the cells.
func NewSeries(name string, values []any) *Series {
	s := &Series{Name: name, Values: values}
	s.InferKind()
	return s
}

// Len returns the number of cells.
func (s *Series) Len() int { return len(s.Values) }

// At returns the cell at row i.
func (s *Series) At(i int) any { return s.Values[i] }

// MissingCount counts absent cells.
func (s *Series) MissingCount() int {
	n := 0
	for _, v := range s.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// AllMissing reports whether every cell is absent.
func (s *Series) AllMissing() bool {
	return s.MissingCount() == len(s.Values)
}

// InferKind recomputes Kind from the cells. Integer columns holding a
// missing value widen to float64 and bool columns holding one fall back to
// object.
func (s *Series) InferKind() {
	var ints, floats, bools, times, others, missing int
	for _, v := range s.Values {
		if IsMissing(v) {
			missing++
			if _, isFloat := v.(float64); isFloat {
				floats++
			}
			continue
		}
		switch v.(type) {
		case int64, int, int32:
			ints++
		case float64, float32:
			floats++
		case bool:
			bools++
		case time.Time:
			times++
		default:
			others++
		}
	}
	present := len(s.Values) - missing

	switch {
	case others > 0:
		s.Kind = KindObject
	case present == 0:
		if floats > 0 {
			s.Kind = KindFloat64
		} else {
			s.Kind = KindObject
		}
	case bools == present && missing == 0:
		s.Kind = KindBool
	case times == present:
		s.Kind = KindTime
	case bools > 0 || times > 0:
		s.Kind = KindObject
	case ints == present && missing == 0:
		s.Kind = KindInt64
	default:
		s.Kind = KindFloat64
	}
}
