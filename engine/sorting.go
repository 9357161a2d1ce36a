package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// SORTING — Sort bases for aggregated frames
// ============================================================================
// A SortKey is one of:
//   ByIndex()          — category key order
//   ByValues()         — value order
//   ByStatistic(name)  — value order after subtracting a descriptive statistic
//   ByShift(fn)        — value order after subtracting fn(values)
//   ByConstant(v)      — value order after subtracting v
// Shifts only affect ordering; frame values are never rewritten.
// ============================================================================

type sortBasis int

const (
	sortIndex sortBasis = iota
	sortValues
	sortStatistic
	sortShift
)

// SortKey selects how an aggregated frame is ordered. The zero value sorts
// by index.
type SortKey struct {
	basis     sortBasis
	statistic string
	shift     func(values []float64) float64
	label     string
}

// ByIndex sorts by category key.
func ByIndex() SortKey { return SortKey{basis: sortIndex} }

// ByValues sorts by value.
func ByValues() SortKey { return SortKey{basis: sortValues} }

// ByStatistic sorts by value minus the named descriptive statistic.
func ByStatistic(name string) SortKey {
	return SortKey{basis: sortStatistic, statistic: name}
}

// ByShift sorts by value minus fn(values).
func ByShift(fn func(values []float64) float64) SortKey {
	return SortKey{basis: sortShift, shift: fn, label: "shift"}
}

// ByConstant sorts by value minus v.
func ByConstant(v float64) SortKey {
	return SortKey{
		basis: sortShift,
		shift: func([]float64) float64 { return v },
		label: strconv.FormatFloat(v, 'g', -1, 64),
	}
}

// ParseSortKey parses "index", "values", a statistic name or a numeric
// constant.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", "index":
		return ByIndex(), nil
	case "values":
		return ByValues(), nil
	}
	if isStatistic(s) {
		return ByStatistic(s), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return ByConstant(v), nil
	}
	return SortKey{}, configf("sort_on", "unrecognized sort basis %q (want index, values, %s or a number)",
		s, strings.Join(Statistics, ", "))
}

// IsIndex reports whether the key sorts by category.
func (k SortKey) IsIndex() bool { return k.basis == sortIndex }

func (k SortKey) String() string {
	switch k.basis {
	case sortValues:
		return "values"
	case sortStatistic:
		return k.statistic
	case sortShift:
		return k.label
	default:
		return "index"
	}
}

func (k SortKey) validate() error {
	switch k.basis {
	case sortStatistic:
		if !isStatistic(k.statistic) {
			return configf("sort_on", "unknown statistic %q", k.statistic)
		}
	case sortShift:
		if k.shift == nil {
			return configf("sort_on", "shift function is nil")
		}
	}
	return nil
}

// sortFrame orders f in place. column names the sub-category that governs
// value ordering; it is required when f has sub-category columns.
func sortFrame(f *Frame, key SortKey, column string, ascending bool) error {
	if err := key.validate(); err != nil {
		return err
	}

	perm := make([]int, f.Len())
	for i := range perm {
		perm[i] = i
	}

	if key.IsIndex() {
		sort.SliceStable(perm, func(a, b int) bool {
			ka, kb := f.Index[perm[a]], f.Index[perm[b]]
			if ascending {
				return ka.Less(kb)
			}
			return kb.Less(ka)
		})
		f.permute(perm)
		return nil
	}

	j := 0
	if len(f.Columns) > 0 {
		if column == "" {
			return configf("sort_c_on", "required when sorting by %s with a secondary category", key)
		}
		if j = f.ColumnIndex(column); j < 0 {
			return configf("sort_c_on", "unknown column %q (have %s)", column, strings.Join(f.Columns, ", "))
		}
	}

	values := f.Column(j)
	var shift float64
	switch key.basis {
	case sortStatistic:
		s, err := Describe(key.statistic, values)
		if err != nil {
			return err
		}
		shift = s
	case sortShift:
		shift = key.shift(values)
	}

	ordered := make([]float64, len(values))
	for i, v := range values {
		ordered[i] = v - shift
	}

	sort.SliceStable(perm, func(a, b int) bool {
		va, vb := ordered[perm[a]], ordered[perm[b]]
		// NaN sorts last in both directions.
		if math.IsNaN(va) || math.IsNaN(vb) {
			return !math.IsNaN(va) && math.IsNaN(vb)
		}
		if ascending {
			return va < vb
		}
		return va > vb
	})
	f.permute(perm)
	return nil
}

func sortKeys(keys []Key) {
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}
