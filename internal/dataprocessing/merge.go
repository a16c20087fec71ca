package dataprocessing

import (
	"sort"
	"strings"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// Suffixes appended to non-key columns present on both sides of a merge.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// AttachColumn places column name of src next to the columns of dst by
// row position. The shorter side is padded with missing cells, so the
// result has as many rows as the longer input.
func AttachColumn(dst, src *frame.Frame, name string) (*frame.Frame, error) {
	if dst == nil || src == nil {
		return nil, apperrors.NewMergeError("attach needs two tables", nil)
	}
	col, err := src.Column(name)
	if err != nil {
		return nil, apperrors.NewSchemaError("annotation column missing", err).WithContext("column", name)
	}

	rows := max(dst.NumRows(), src.NumRows())
	out := &frameBuilder{}
	for j := 0; j < dst.NumCols(); j++ {
		c := dst.ColumnAt(j)
		if c.Name == name {
			continue
		}
		out.add(c.Name, pad(c.Values, rows))
	}
	out.add(name, pad(col.Values, rows))
	return out.build()
}

func pad(values []any, n int) []any {
	out := make([]any, n)
	copy(out, values)
	return out
}

type frameBuilder struct {
	columns []*frame.Series
}

func (b *frameBuilder) add(name string, values []any) {
	b.columns = append(b.columns, frame.NewSeries(name, values))
}

func (b *frameBuilder) build() (*frame.Frame, error) {
	f, err := frame.New(b.columns...)
	if err != nil {
		return nil, apperrors.NewMergeError("failed to assemble table", err)
	}
	return f, nil
}

type keyGroup struct {
	value any
	left  []int
	right []int
}

// Merge is a full outer join of left and right on key. Result rows are
// ordered by key, with missing keys last; rows sharing a key produce every
// left/right pairing in input order, and missing keys match each other.
// The key appears once, at its position in left, followed by the other
// right columns. Non-key names present on both sides get LeftSuffix and
// RightSuffix.
func Merge(left, right *frame.Frame, key string) (*frame.Frame, error) {
	if left == nil || right == nil {
		return nil, apperrors.NewMergeError("merge needs two tables", nil)
	}
	lk, err := left.Column(key)
	if err != nil {
		return nil, apperrors.NewMergeError("left table has no join key", err).WithContext("key", key)
	}
	rk, err := right.Column(key)
	if err != nil {
		return nil, apperrors.NewMergeError("right table has no join key", err).WithContext("key", key)
	}

	groups := make(map[string]*keyGroup)
	var order []string
	collect := func(values []any, isLeft bool) {
		for i, v := range values {
			k := frame.KeyOf(v)
			g, ok := groups[k]
			if !ok {
				g = &keyGroup{value: v}
				groups[k] = g
				order = append(order, k)
			}
			if isLeft {
				g.left = append(g.left, i)
			} else {
				g.right = append(g.right, i)
			}
		}
	}
	collect(lk.Values, true)
	collect(rk.Values, false)

	sort.SliceStable(order, func(a, b int) bool {
		return lessKey(groups[order[a]].value, groups[order[b]].value)
	})

	var li, ri []int
	for _, k := range order {
		g := groups[k]
		switch {
		case len(g.left) > 0 && len(g.right) > 0:
			for _, l := range g.left {
				for _, r := range g.right {
					li = append(li, l)
					ri = append(ri, r)
				}
			}
		case len(g.left) > 0:
			for _, l := range g.left {
				li = append(li, l)
				ri = append(ri, -1)
			}
		default:
			for _, r := range g.right {
				li = append(li, -1)
				ri = append(ri, r)
			}
		}
	}

	overlap := make(map[string]bool)
	for _, name := range left.Columns() {
		if name != key && right.Has(name) {
			overlap[name] = true
		}
	}

	rows := len(li)
	out := &frameBuilder{}
	keyIndex := left.Index(key)
	for j := 0; j < left.NumCols(); j++ {
		c := left.ColumnAt(j)
		if j == keyIndex {
			values := make([]any, rows)
			for i := range values {
				if li[i] >= 0 {
					values[i] = lk.Values[li[i]]
				} else {
					values[i] = rk.Values[ri[i]]
				}
			}
			out.add(key, values)
			continue
		}
		name := c.Name
		if overlap[name] {
			name += LeftSuffix
		}
		out.add(name, gather(c.Values, li))
	}
	rightKey := right.Index(key)
	for j := 0; j < right.NumCols(); j++ {
		if j == rightKey {
			continue
		}
		c := right.ColumnAt(j)
		name := c.Name
		if overlap[name] {
			name += RightSuffix
		}
		out.add(name, gather(c.Values, ri))
	}
	return out.build()
}

func gather(values []any, idx []int) []any {
	out := make([]any, len(idx))
	for i, r := range idx {
		if r >= 0 {
			out[i] = values[r]
		}
	}
	return out
}

// lessKey orders join keys: numbers numerically, everything else by its
// rendered text, missing keys after all others.
func lessKey(a, b any) bool {
	am, bm := frame.IsMissing(a), frame.IsMissing(b)
	if am || bm {
		return !am && bm
	}
	af, aNum := numericKey(a)
	bf, bNum := numericKey(b)
	if aNum && bNum {
		return af < bf
	}
	return strings.Compare(frame.Format(a), frame.Format(b)) < 0
}

func numericKey(v any) (float64, bool) {
	if _, isText := v.(string); isText {
		return 0, false
	}
	return frame.ToFloat(v)
}
