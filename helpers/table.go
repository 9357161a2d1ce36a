package helpers

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// TABLE VIEW — go-gg tables as a RecordView
// ============================================================================
// String columns become dimensions, numeric columns become measures.
// Columns of any other element type are skipped. NaN measures are kept and
// skipped later by the aggregations.
// ============================================================================

// TableView reads the columns of a go-gg table.
type TableView struct {
	n       int
	dims    map[string][]string
	meas    map[string][]float64
	dimKeys []string
	mesKeys []string
}

// FromTable wraps t as a RecordView.
func FromTable(t *table.Table) (*TableView, error) {
	if t == nil {
		return nil, fmt.Errorf("table view: nil table")
	}
	v := &TableView{
		n:    t.Len(),
		dims: make(map[string][]string),
		meas: make(map[string][]float64),
	}
	for _, name := range t.Columns() {
		col := t.MustColumn(name)
		switch elemKind(col) {
		case reflect.String:
			rv := reflect.ValueOf(col)
			strs := make([]string, rv.Len())
			for i := range strs {
				strs[i] = rv.Index(i).String()
			}
			v.dims[name] = strs
			v.dimKeys = append(v.dimKeys, name)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			var fs []float64
			slice.Convert(&fs, col)
			v.meas[name] = fs
			v.mesKeys = append(v.mesKeys, name)
		}
	}
	return v, nil
}

func elemKind(col any) reflect.Kind {
	t := reflect.TypeOf(col)
	if t == nil || t.Kind() != reflect.Slice {
		return reflect.Invalid
	}
	return t.Elem().Kind()
}

func (v *TableView) Len() int { return v.n }

func (v *TableView) Dimension(i int, key string) (string, bool) {
	col, ok := v.dims[key]
	if !ok || i < 0 || i >= len(col) {
		return "", false
	}
	return col[i], true
}

func (v *TableView) Measure(i int, key string) (float64, bool) {
	col, ok := v.meas[key]
	if !ok || i < 0 || i >= len(col) {
		return 0, false
	}
	return col[i], true
}

func (v *TableView) DimensionKeys() []string { return v.dimKeys }
func (v *TableView) MeasureKeys() []string   { return v.mesKeys }

var _ engine.RecordView = (*TableView)(nil)
