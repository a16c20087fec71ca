package frame

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dtypeFixture(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		NewSeries("A", []any{1.0, 2.0, 3.0, math.NaN()}),
		NewSeries("B", []any{"a", "b", "c", "d"}),
		NewSeries("C", []any{1.1, 2.2, 3.3, 4.4}),
		NewSeries("D", []any{true, false, true, false}),
	)
	require.NoError(t, err)
	return f
}

func TestDetailedDtypes(t *testing.T) {
	got := DetailedDtypes(dtypeFixture(t))

	want := map[string]ColumnProfile{
		"A": {StorageType: "float64", ValueTypes: map[string]int{"float64": 4}, MissingCount: 1, UniqueCount: 3},
		"B": {StorageType: "object", ValueTypes: map[string]int{"string": 4}, MissingCount: 0, UniqueCount: 4},
		"C": {StorageType: "float64", ValueTypes: map[string]int{"float64": 4}, MissingCount: 0, UniqueCount: 4},
		"D": {StorageType: "bool", ValueTypes: map[string]int{"bool": 4}, MissingCount: 0, UniqueCount: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DetailedDtypes mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailedDtypes_OneEntryPerColumn(t *testing.T) {
	f := dtypeFixture(t)
	got := DetailedDtypes(f)
	assert.Len(t, got, f.NumCols())
	for _, name := range f.Columns() {
		assert.Contains(t, got, name)
	}
}

func TestProfileRows(t *testing.T) {
	rows := ProfileRows(DetailedDtypes(dtypeFixture(t)))
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"A", "float64", "float64=4", "1", "3"}, rows[0])
	assert.Equal(t, []string{"D", "bool", "bool=4", "0", "2"}, rows[3])
	assert.Len(t, rows[0], len(ProfileHeaders))
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   Kind
	}{
		{"all ints", []any{int64(1), int64(2)}, KindInt64},
		{"ints with missing widen to float", []any{int64(1), nil}, KindFloat64},
		{"mixed int and float", []any{int64(1), 2.5}, KindFloat64},
		{"text makes object", []any{int64(1), "x"}, KindObject},
		{"bools", []any{true, false}, KindBool},
		{"bools with missing", []any{true, nil}, KindObject},
		{"dates", []any{time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), nil}, KindTime},
		{"all nil", []any{nil, nil}, KindObject},
		{"all NaN", []any{math.NaN()}, KindFloat64},
		{"empty", []any{}, KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSeries("x", tt.values).Kind)
		})
	}
}

func TestNew_LengthMismatch(t *testing.T) {
	_, err := New(NewSeries("a", []any{1}), NewSeries("b", []any{1, 2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestFrame_ColumnLookup(t *testing.T) {
	f := MustNew(
		NewSeries("x", []any{int64(1)}),
		NewSeries("y", []any{int64(2)}),
		NewSeries("x", []any{int64(3)}),
	)
	c, err := f.Column("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.At(0))

	_, err = f.Column("missing")
	var notFound *ErrColumnNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestFrame_DropEmptyColumns(t *testing.T) {
	f := MustNew(
		NewSeries("keep", []any{int64(1), nil}),
		NewSeries("empty", []any{nil, math.NaN()}),
		NewSeries("also", []any{"a", "b"}),
	)
	dropped := f.DropEmptyColumns()
	assert.Equal(t, []string{"empty"}, dropped)
	assert.Equal(t, []string{"keep", "also"}, f.Columns())
}

func TestFrame_FilterAndTake(t *testing.T) {
	f := MustNew(
		NewSeries("n", []any{int64(1), int64(2), int64(3), int64(4)}),
		NewSeries("s", []any{"a", "b", "c", "d"}),
	)
	even := f.Filter(func(i int) bool { return i%2 == 1 })
	assert.Equal(t, 2, even.NumRows())
	s, _ := even.Column("s")
	assert.Equal(t, []any{"b", "d"}, s.Values)

	// the source frame is untouched
	orig, _ := f.Column("s")
	assert.Equal(t, []any{"a", "b", "c", "d"}, orig.Values)
}

func TestFrame_SetColumn(t *testing.T) {
	f := MustNew(NewSeries("a", []any{int64(1), int64(2)}))
	require.NoError(t, f.SetColumn(NewSeries("b", []any{"x", "y"})))
	require.NoError(t, f.SetColumn(NewSeries("a", []any{int64(5), int64(6)})))
	assert.Equal(t, []string{"a", "b"}, f.Columns())
	a, err := f.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5), int64(6)}, a.Values)

	err = f.SetColumn(NewSeries("c", []any{1}))
	assert.Error(t, err)
}
