package frame

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ColumnProfile describes what a column actually holds.
type ColumnProfile struct {
	// StorageType is the declared kind of the column.
	StorageType string
	// ValueTypes counts cells by runtime type; missing cells are counted
	// under their own type (float64 for NaN, <nil> for nil).
	ValueTypes map[string]int
	// MissingCount is the number of absent cells.
	MissingCount int
	// UniqueCount is the number of distinct present values.
	UniqueCount int
}

// DetailedDtypes reports one profile per column. Repeated column names
// are reported once, for the first occurrence.
func DetailedDtypes(f *Frame) map[string]ColumnProfile {
	out := make(map[string]ColumnProfile, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		c := f.ColumnAt(i)
		if _, seen := out[c.Name]; seen {
			continue
		}
		out[c.Name] = Profile(c)
	}
	return out
}

// Profile builds the profile of a single column.
func Profile(s *Series) ColumnProfile {
	p := ColumnProfile{
		StorageType: s.Kind.String(),
		ValueTypes:  make(map[string]int),
	}
	distinct := make(map[string]struct{})
	for _, v := range s.Values {
		p.ValueTypes[typeName(v)]++
		if IsMissing(v) {
			p.MissingCount++
			continue
		}
		distinct[KeyOf(v)] = struct{}{}
	}
	p.UniqueCount = len(distinct)
	return p
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "<nil>"
	case time.Time:
		return "time.Time"
	}
	return fmt.Sprintf("%T", v)
}

// ProfileRows flattens a dtype report into sorted records for export.
func ProfileRows(profiles map[string]ColumnProfile) [][]string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p := profiles[name]
		types := make([]string, 0, len(p.ValueTypes))
		for t := range p.ValueTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = fmt.Sprintf("%s=%d", t, p.ValueTypes[t])
		}
		rows = append(rows, []string{
			name,
			p.StorageType,
			strings.Join(parts, ";"),
			fmt.Sprint(p.MissingCount),
			fmt.Sprint(p.UniqueCount),
		})
	}
	return rows
}

// ProfileHeaders are the column headers matching ProfileRows.
var ProfileHeaders = []string{"column", "storage_type", "value_types", "missing_count", "unique_count"}
