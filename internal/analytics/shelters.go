package analytics

import (
	"math"
	"sort"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// ShelterYearMatrix holds per-year animal totals for the largest shelters.
// Values[i][j] is the total of Shelters[i] in Years[j], or NaN when the
// shelter reported nothing that year.
type ShelterYearMatrix struct {
	Shelters []string
	Years    []int
	Values   [][]float64
	Totals   []float64
}

// Column returns the values of year j across shelters with NaN replaced by
// zero.
func (m *ShelterYearMatrix) Column(j int) []float64 {
	out := make([]float64, len(m.Shelters))
	for i := range m.Shelters {
		if v := m.Values[i][j]; !math.IsNaN(v) {
			out[i] = v
		}
	}
	return out
}

// TopShelters totals columns per row, sums the row totals per shelter and
// whole Data Year, and keeps the n shelters with the largest total across
// years. Ties go to the shelter name that sorts first. Rows without a
// shelter name or a whole-number year are left out.
func TopShelters(f *frame.Frame, columns []string, fl Filter, n int) (*ShelterYearMatrix, error) {
	if n < 1 {
		return nil, apperrors.NewAggregationError("shelter count must be positive", nil)
	}
	filtered, err := fl.Apply(f)
	if err != nil {
		return nil, err
	}
	names, err := filtered.Column(domain.ColShelterName)
	if err != nil {
		return nil, apperrors.NewAggregationError("shelter column missing", err)
	}
	years, err := filtered.Column(fl.yearColumn())
	if err != nil {
		return nil, apperrors.NewAggregationError("year column missing", err)
	}
	totals, err := rowTotals(filtered, columns)
	if err != nil {
		return nil, err
	}

	type cell struct {
		shelter string
		year    int
	}
	sums := make(map[cell]float64)
	yearSet := make(map[int]bool)
	shelterTotal := make(map[string]float64)
	for i := 0; i < filtered.NumRows(); i++ {
		if frame.IsMissing(names.Values[i]) {
			continue
		}
		y, ok := frame.ToFloat(years.Values[i])
		if !ok || y != math.Trunc(y) {
			continue
		}
		c := cell{shelter: frame.Format(names.Values[i]), year: int(y)}
		sums[c] += totals[i]
		yearSet[c.year] = true
		shelterTotal[c.shelter] += totals[i]
	}

	ranked := make(Ranked, 0, len(shelterTotal))
	for s, v := range shelterTotal {
		ranked = append(ranked, Entry{Label: s, Value: v})
	}
	sortDescending(ranked)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	m := &ShelterYearMatrix{
		Shelters: ranked.Labels(),
		Totals:   ranked.Values(),
	}
	for y := range yearSet {
		m.Years = append(m.Years, y)
	}
	sort.Ints(m.Years)

	m.Values = make([][]float64, len(m.Shelters))
	for i, s := range m.Shelters {
		row := make([]float64, len(m.Years))
		for j, y := range m.Years {
			v, ok := sums[cell{shelter: s, year: y}]
			if !ok {
				v = math.NaN()
			}
			row[j] = v
		}
		m.Values[i] = row
	}
	return m, nil
}
