package frame

import (
	"fmt"
)

// ErrColumnNotFound is returned when a lookup names a column the frame
// does not have.
type ErrColumnNotFound struct {
	Name string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// Frame is an ordered set of equal-length columns. Column names may
// repeat; lookups by name return the first match.
type Frame struct {
	columns []*Series
	rows    int
}

// New builds a frame from columns of equal length.
func New(columns ...*Series) (*Frame, error) {
	f := &Frame{}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), f.rows)
		}
		f.columns = append(f.columns, c)
	}
	return f, nil
}

// MustNew is New for fixtures built from literals.
func MustNew(columns ...*Series) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.columns) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnAt returns the column at position i.
func (f *Frame) ColumnAt(i int) *Series { return f.columns[i] }

// Index returns the position of the first column called name, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column called name exists.
func (f *Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Column returns the first column called name.
func (f *Frame) Column(name string) (*Series, error) {
	i := f.Index(name)
	if i < 0 {
		return nil, &ErrColumnNotFound{Name: name}
	}
	return f.columns[i], nil
}

// SetColumn replaces the first column called s.Name, or appends s when
// there is none.
func (f *Frame) SetColumn(s *Series) error {
	if len(f.columns) > 0 && s.Len() != f.rows {
		return fmt.Errorf("column %q has %d rows, expected %d", s.Name, s.Len(), f.rows)
	}
	if len(f.columns) == 0 {
		f.rows = s.Len()
	}
	if i := f.Index(s.Name); i >= 0 {
		f.columns[i] = s
		return nil
	}
	f.columns = append(f.columns, s)
	return nil
}

// DropColumnsAt removes the columns at the given positions.
func (f *Frame) DropColumnsAt(positions ...int) {
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}
	kept := f.columns[:0:0]
	for i, c := range f.columns {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	f.columns = kept
}

// DropEmptyColumns removes every column whose cells are all missing and
// returns the names it removed.
func (f *Frame) DropEmptyColumns() []string {
	var dropped []string
	var positions []int
	for i, c := range f.columns {
		if c.AllMissing() {
			positions = append(positions, i)
			dropped = append(dropped, c.Name)
		}
	}
	f.DropColumnsAt(positions...)
	return dropped
}

// Filter returns a copy holding only the rows for which keep is true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var rows []int
	for i := 0; i < f.rows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return f.Take(rows)
}

// Take returns a copy holding the given rows in the given order.
func (f *Frame) Take(rows []int) *Frame {
	out := &Frame{rows: len(rows)}
	for _, c := range f.columns {
		values := make([]any, len(rows))
		for j, r := range rows {
			values[j] = c.Values[r]
		}
		out.columns = append(out.columns, NewSeries(c.Name, values))
	}
	return out
}
