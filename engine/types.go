package engine

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/vec"
)

// ============================================================================
// CHARTKIT ENGINE TYPES — Records, Category Keys, Aggregated Frames
// ============================================================================
// Record is the generic input row (dimension/measure maps).
// Key is one category position on the x axis.
// Frame is the aggregated table every builder consumes.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
//
// Record{Dimensions["region"]="EMEA", Measures["revenue"]=3500.00}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// KEY — Category axis position
// ============================================================================

// Key is a category key taken from a row field. Dimension values produce
// label keys, measure values produce numeric keys.
type Key struct {
	Label   string
	Value   float64
	Numeric bool
}

// LabelKey returns a categorical key.
func LabelKey(label string) Key { return Key{Label: label} }

// NumberKey returns a numeric key.
func NumberKey(v float64) Key { return Key{Value: v, Numeric: true} }

// String returns the key as it appears in series names and logs.
func (k Key) String() string {
	if k.Numeric {
		return strconv.FormatFloat(k.Value, 'f', -1, 64)
	}
	return k.Label
}

// Any returns the value written to a category axis.
func (k Key) Any() any {
	if k.Numeric {
		return k.Value
	}
	return k.Label
}

// Less orders numeric keys numerically, labels lexicographically,
// and numbers before labels.
func (k Key) Less(o Key) bool {
	switch {
	case k.Numeric && o.Numeric:
		return k.Value < o.Value
	case k.Numeric != o.Numeric:
		return k.Numeric
	default:
		return k.Label < o.Label
	}
}

// ============================================================================
// FRAME — Aggregated table indexed by category
// ============================================================================

// Frame is an aggregated table: one row per category key, one column per
// sub-category (or a single unnamed column). Missing cells hold NaN.
type Frame struct {
	Name    string      `json:"name,omitempty"`
	Index   []Key       `json:"-"`
	Columns []string    `json:"columns,omitempty"`
	Values  [][]float64 `json:"-"`
}

// Len returns the number of categories.
func (f *Frame) Len() int { return len(f.Index) }

// Width returns the number of value columns.
func (f *Frame) Width() int {
	if len(f.Columns) == 0 {
		return 1
	}
	return len(f.Columns)
}

// Column returns a copy of the j-th value column.
func (f *Frame) Column(j int) []float64 {
	col := make([]float64, len(f.Values))
	for i, row := range f.Values {
		col[i] = row[j]
	}
	return col
}

// ColumnIndex returns the position of a named sub-category column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for j, c := range f.Columns {
		if c == name {
			return j
		}
	}
	return -1
}

// RowSums returns the NaN-skipping sum of every row.
func (f *Frame) RowSums() []float64 {
	sums := make([]float64, len(f.Values))
	for i, row := range f.Values {
		sums[i] = vec.Sum(dropNaN(row))
	}
	return sums
}

// Labels returns the index as category axis data.
func (f *Frame) Labels() []any {
	labels := make([]any, len(f.Index))
	for i, k := range f.Index {
		labels[i] = k.Any()
	}
	return labels
}

// permute reorders rows in place so that row i becomes old row perm[i].
func (f *Frame) permute(perm []int) {
	index := make([]Key, len(perm))
	values := make([][]float64, len(perm))
	for i, p := range perm {
		index[i] = f.Index[p]
		values[i] = f.Values[p]
	}
	f.Index = index
	f.Values = values
}

// ============================================================================
// COLUMN — A single named series indexed by category
// ============================================================================

// Column is an ordered numeric series indexed by category, such as the
// signed deltas of a waterfall.
type Column struct {
	Name   string
	Index  []Key
	Values []float64
}

// Labels returns the index as category axis data.
func (c Column) Labels() []any {
	labels := make([]any, len(c.Index))
	for i, k := range c.Index {
		labels[i] = k.Any()
	}
	return labels
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
