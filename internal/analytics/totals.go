package analytics

import (
	"fmt"
	"sort"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// Entry is one labelled total.
type Entry struct {
	Label string
	Value float64
}

// Ranked is a list of labelled totals.
type Ranked []Entry

// Labels returns the labels in order.
func (r Ranked) Labels() []string {
	out := make([]string, len(r))
	for i, e := range r {
		out[i] = e.Label
	}
	return out
}

// Values returns the totals in order.
func (r Ranked) Values() []float64 {
	out := make([]float64, len(r))
	for i, e := range r {
		out[i] = e.Value
	}
	return out
}

// sortDescending orders by value, largest first, and by label on ties.
func sortDescending(r Ranked) {
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Value != r[j].Value {
			return r[i].Value > r[j].Value
		}
		return r[i].Label < r[j].Label
	})
}

// rowTotals sums columns across each row. Missing cells count as zero;
// any other non-numeric cell is an error.
func rowTotals(f *frame.Frame, columns []string) ([]float64, error) {
	totals := make([]float64, f.NumRows())
	for _, name := range columns {
		c, err := f.Column(name)
		if err != nil {
			return nil, apperrors.NewAggregationError("count column missing", err).WithContext("column", name)
		}
		for i, v := range c.Values {
			if frame.IsMissing(v) {
				continue
			}
			x, ok := frame.ToFloat(v)
			if !ok {
				return nil, apperrors.NewAggregationError(
					fmt.Sprintf("column %q row %d is not a number", name, i), nil).
					WithContext("column", name).
					WithContext("row", i)
			}
			totals[i] += x
		}
	}
	return totals, nil
}

// GroupTotals sums columns over every row of each group of groupBy and
// ranks the groups from largest to smallest. Rows with a missing group
// value are left out.
func GroupTotals(f *frame.Frame, groupBy string, columns []string) (Ranked, error) {
	keys, err := f.Column(groupBy)
	if err != nil {
		return nil, apperrors.NewAggregationError("group column missing", err).WithContext("column", groupBy)
	}
	totals, err := rowTotals(f, columns)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out Ranked
	for i, v := range keys.Values {
		if frame.IsMissing(v) {
			continue
		}
		label := frame.Format(v)
		pos, ok := index[label]
		if !ok {
			pos = len(out)
			index[label] = pos
			out = append(out, Entry{Label: label})
		}
		out[pos].Value += totals[i]
	}
	sortDescending(out)
	return out, nil
}

// StateTotals filters f and ranks states by the sum of columns.
func StateTotals(f *frame.Frame, columns []string, fl Filter) (Ranked, error) {
	filtered, err := fl.Apply(f)
	if err != nil {
		return nil, err
	}
	return GroupTotals(filtered, domain.ColState, columns)
}

// SpeciesTotals holds per-state totals for dogs and cats, each ranked on
// its own.
type SpeciesTotals struct {
	Dogs Ranked
	Cats Ranked
}

// SpeciesStateTotals ranks states separately by the dog columns and by
// the cat columns.
func SpeciesStateTotals(f *frame.Frame, dogColumns, catColumns []string, fl Filter) (*SpeciesTotals, error) {
	filtered, err := fl.Apply(f)
	if err != nil {
		return nil, err
	}
	dogs, err := GroupTotals(filtered, domain.ColState, dogColumns)
	if err != nil {
		return nil, err
	}
	cats, err := GroupTotals(filtered, domain.ColState, catColumns)
	if err != nil {
		return nil, err
	}
	return &SpeciesTotals{Dogs: dogs, Cats: cats}, nil
}

// OutcomeTotals sums each column over the whole table, without filtering,
// and keeps the column order.
func OutcomeTotals(f *frame.Frame, columns []string) (Ranked, error) {
	if f == nil {
		return nil, apperrors.NewAggregationError("no table to sum", nil)
	}
	out := make(Ranked, 0, len(columns))
	for _, name := range columns {
		totals, err := rowTotals(f, []string{name})
		if err != nil {
			return nil, err
		}
		var sum float64
		for _, x := range totals {
			sum += x
		}
		out = append(out, Entry{Label: name, Value: sum})
	}
	return out, nil
}
