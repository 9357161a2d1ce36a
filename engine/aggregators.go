package engine

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// AGGREGATORS — Grouping, Pivoting, Cross-tabulation via RecordView
// ============================================================================
// Pipeline: group → aggregate → sort → normalize.
//
//   c  y   operation
//   ✓  ✓   pivot: y reduced per (x, c); missing cells are NaN
//   ✓  ✗   cross-tab: row count per (x, c); missing cells are 0
//   ✗  ✓   group x, reduce y
//   ✗  ✗   frequency count of x
// ============================================================================

// AggregateConfig holds the aggregation, sorting and normalization options
// shared by bar and line charts.
type AggregateConfig struct {
	How        string  // aggregation name, see ResolveAggFunc
	HowFunc    AggFunc // overrides How when set
	SortOn     SortKey
	SortCOn    string // sub-category governing value sorts when c is set
	Descending bool
	Stacked    bool
	Full       bool // with Stacked and c: divide every row by its row sum
}

// Aggregate reduces view into a frame indexed by the distinct values of x.
// c and y are optional (empty string).
func Aggregate(view RecordView, x, c, y string, cfg AggregateConfig, opts ...Option) (*Frame, error) {
	ec := applyOptions(opts)

	if x == "" {
		return nil, configf("x", "category field is required")
	}
	if cfg.How == "" {
		cfg.How = "count"
	}
	how, err := ResolveAggFunc(cfg.How, cfg.HowFunc)
	if y != "" && err != nil {
		return nil, err
	}
	if err := cfg.SortOn.validate(); err != nil {
		return nil, err
	}
	if c != "" && !cfg.SortOn.IsIndex() && cfg.SortCOn == "" {
		return nil, configf("sort_c_on", "required when sort_on is %s and c is set", cfg.SortOn)
	}

	// 1. Group
	g := groupCells(view, x, c, y)

	// 2. Aggregate
	frame := &Frame{Name: x, Index: g.rows}
	if y != "" {
		frame.Name = y
	}
	if c != "" {
		frame.Columns = make([]string, len(g.cols))
		for j, k := range g.cols {
			frame.Columns[j] = k.String()
		}
	}

	frame.Values = make([][]float64, len(g.rows))
	for i := range g.rows {
		row := make([]float64, frame.Width())
		for j := range row {
			cl, ok := g.cells[[2]int{i, j}]
			switch {
			case y == "" && !ok:
				row[j] = 0
			case y == "":
				row[j] = float64(cl.count)
			case !ok:
				row[j] = math.NaN()
			default:
				row[j] = how(cl.values)
			}
		}
		frame.Values[i] = row
	}

	// 3. Sort
	if err := sortFrame(frame, cfg.SortOn, cfg.SortCOn, !cfg.Descending); err != nil {
		return nil, err
	}

	// 4. Normalize
	if c != "" && cfg.Stacked && cfg.Full {
		normalizeRows(frame)
	}

	ec.Logger.WithFields(logrus.Fields{
		"x": x, "c": c, "y": y, "categories": frame.Len(), "columns": frame.Width(),
	}).Debugf("🔧 chartkit: aggregated %d records, sort_on=%s", view.Len(), cfg.SortOn)

	return frame, nil
}

// ============================================================================
// GROUPING
// ============================================================================

type cell struct {
	count  int
	values []float64
}

type grouping struct {
	rows  []Key
	cols  []Key
	cells map[[2]int]*cell
}

// groupCells buckets rows by (x, c). Row and column keys come back in
// ascending order; rows missing x or c are skipped.
func groupCells(view RecordView, x, c, y string) *grouping {
	type raw struct {
		xk, ck Key
		v      float64
		hasV   bool
	}

	rowSeen := make(map[Key]bool)
	colSeen := make(map[Key]bool)
	var rows, cols []Key
	var raws []raw

	for i := 0; i < view.Len(); i++ {
		xk, ok := Lookup(view, i, x)
		if !ok {
			continue
		}
		var ck Key
		if c != "" {
			if ck, ok = Lookup(view, i, c); !ok {
				continue
			}
			if !colSeen[ck] {
				colSeen[ck] = true
				cols = append(cols, ck)
			}
		}
		if !rowSeen[xk] {
			rowSeen[xk] = true
			rows = append(rows, xk)
		}
		r := raw{xk: xk, ck: ck}
		if y != "" {
			r.v, r.hasV = view.Measure(i, y)
		}
		raws = append(raws, r)
	}

	sortKeys(rows)
	sortKeys(cols)
	rowPos := make(map[Key]int, len(rows))
	for i, k := range rows {
		rowPos[k] = i
	}
	colPos := make(map[Key]int, len(cols))
	for j, k := range cols {
		colPos[k] = j
	}

	g := &grouping{rows: rows, cols: cols, cells: make(map[[2]int]*cell)}
	for _, r := range raws {
		pos := [2]int{rowPos[r.xk], 0}
		if c != "" {
			pos[1] = colPos[r.ck]
		}
		cl := g.cells[pos]
		if cl == nil {
			cl = &cell{}
			g.cells[pos] = cl
		}
		cl.count++
		if r.hasV {
			cl.values = append(cl.values, r.v)
		}
	}
	return g
}

// normalizeRows divides every row by its NaN-skipping row sum.
func normalizeRows(f *Frame) {
	sums := f.RowSums()
	for i, row := range f.Values {
		for j, v := range row {
			row[j] = v / sums[i]
		}
	}
}
