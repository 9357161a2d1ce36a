package engine

import "math"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   SliceView      — wraps []Record (CSV, ad-hoc)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — subset of rows (indices into parent, zero-copy)
//   helpers.TableView — columns of a go-gg table
//
// Accessors report whether the field is present so that aggregation can
// skip rows instead of folding zeros into the result.
// ============================================================================

// RecordView provides indexed access to a dataset.
// Dimension and Measure are called once per row and field while grouping.
type RecordView interface {
	Len() int
	Dimension(index int, key string) (string, bool)
	Measure(index int, key string) (float64, bool)
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// Lookup reads a category key from row i. Dimensions win over measures so
// that a column parsed as text is never reinterpreted as a number. A NaN
// measure has no category and reports false.
func Lookup(view RecordView, i int, key string) (Key, bool) {
	if s, ok := view.Dimension(i, key); ok {
		return LabelKey(s), true
	}
	if v, ok := view.Measure(i, key); ok && !math.IsNaN(v) {
		return NumberKey(v), true
	}
	return Key{}, false
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
// Used by helpers.ParseCSV and ad-hoc consumers.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.records) {
		return "", false
	}
	s, ok := v.records[i].Dimensions[key]
	return s, ok
}

func (v *SliceView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.records) {
		return 0, false
	}
	m, ok := v.records[i].Measures[key]
	return m, ok
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW — row subset (zero-copy)
// ============================================================================

// SubView is a subset of a parent RecordView.
// Holds indices into the parent; rows are read through it.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// partition splits a view into one SubView per distinct key of field,
// keys in ascending order. Rows without the field are dropped.
func partition(view RecordView, field string) ([]Key, []RecordView) {
	grouped := make(map[Key][]int)
	var keys []Key
	for i := 0; i < view.Len(); i++ {
		k, ok := Lookup(view, i, field)
		if !ok {
			continue
		}
		if _, exists := grouped[k]; !exists {
			keys = append(keys, k)
		}
		grouped[k] = append(grouped[k], i)
	}
	sortKeys(keys)

	views := make([]RecordView, len(keys))
	for i, k := range keys {
		views[i] = newSubView(view, grouped[k])
	}
	return keys, views
}

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Sale]().
//	    Dimension("region", func(s Sale) string { return s.Region }).
//	    Measure("revenue", func(s Sale) float64 { return s.Revenue })
//
//	view := adapter.Bind(sales)
//	chart, _ := engine.Build(view, engine.BarLineConfig{Type: engine.KindBar, X: "region", Y: "revenue", How: "sum"})
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView over data without copying it.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.data) {
		return "", false
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i]), true
	}
	return "", false
}

func (v *DomainView[T]) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i]), true
	}
	return 0, false
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
