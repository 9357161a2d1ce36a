package engine

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// BINNER — Histogram edges and per-bin counts/densities
// ============================================================================
// Edges are computed once from the full column and shared by every
// sub-category so that columns stay comparable. Bins are left-closed; the
// last bin is closed on both sides.
//
// Edges are truncated to integers for axis labels. This loses precision for
// data whose range is not integral.
// ============================================================================

// DefaultBins is the bin count used when neither Bins nor Edges is set.
const DefaultBins = 10

// BinConfig selects the bins and the normalization of a histogram.
type BinConfig struct {
	Bins   int       // number of equal-width bins
	Edges  []float64 // explicit ascending edges; wins over Bins
	Normed bool      // densities instead of counts
}

// Histogram is the binned table: Frame rows are bins, Frame columns are
// sub-categories.
type Histogram struct {
	Edges []int // truncated edges, len(bins)+1
	Frame *Frame
}

// Labels returns the truncated left edge of every bin.
func (h *Histogram) Labels() []any {
	labels := make([]any, len(h.Edges)-1)
	for i := range labels {
		labels[i] = h.Edges[i]
	}
	return labels
}

// Bin computes a histogram of the numeric field x, optionally split by the
// categorical field c.
func Bin(view RecordView, x, c string, cfg BinConfig, opts ...Option) (*Histogram, error) {
	ec := applyOptions(opts)

	if x == "" {
		return nil, configf("x", "histogram field is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var all []float64
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, x); ok {
			all = append(all, v)
		}
	}
	all = dropNaN(all)
	if len(all) == 0 {
		return nil, configf("x", "no numeric values in field %q", x)
	}

	edges := cfg.Edges
	if len(edges) == 0 {
		edges = linearEdges(all, cfg.Bins)
	}
	nbins := len(edges) - 1

	frame := &Frame{Name: x, Index: make([]Key, nbins)}
	h := &Histogram{Edges: make([]int, len(edges)), Frame: frame}
	for i, e := range edges {
		h.Edges[i] = int(e)
	}
	for i := range frame.Index {
		frame.Index[i] = NumberKey(float64(h.Edges[i]))
	}

	var columns [][]float64
	if c == "" {
		columns = [][]float64{binColumn(all, edges, cfg.Normed)}
	} else {
		keys, views := partition(view, c)
		for j, sub := range views {
			var xs []float64
			for i := 0; i < sub.Len(); i++ {
				if v, ok := sub.Measure(i, x); ok {
					xs = append(xs, v)
				}
			}
			frame.Columns = append(frame.Columns, keys[j].String())
			columns = append(columns, binColumn(dropNaN(xs), edges, cfg.Normed))
		}
	}

	frame.Values = make([][]float64, nbins)
	for i := range frame.Values {
		row := make([]float64, len(columns))
		for j, col := range columns {
			row[j] = col[i]
		}
		frame.Values[i] = row
	}

	ec.Logger.WithFields(logrus.Fields{
		"x": x, "c": c, "bins": nbins, "normed": cfg.Normed,
	}).Debugf("📊 chartkit: binned %d values", len(all))

	return h, nil
}

func (cfg BinConfig) validate() error {
	if cfg.Bins < 0 {
		return configf("bins", "bin count must be positive, got %d", cfg.Bins)
	}
	if len(cfg.Edges) == 0 {
		return nil
	}
	if len(cfg.Edges) < 2 {
		return configf("bins", "need at least two edges, got %d", len(cfg.Edges))
	}
	for i := 1; i < len(cfg.Edges); i++ {
		if cfg.Edges[i] <= cfg.Edges[i-1] {
			return configf("bins", "edges must increase monotonically")
		}
	}
	return nil
}

// linearEdges spans the data range with n equal-width bins. A zero-width
// range is widened by half a unit on each side.
func linearEdges(xs []float64, n int) []float64 {
	if n == 0 {
		n = DefaultBins
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return vec.Linspace(lo, hi, n+1)
}

// binColumn counts xs into the bins defined by edges. Values outside the
// edges are dropped. With normed, counts become densities that integrate
// to 1 over the bins.
func binColumn(xs, edges []float64, normed bool) []float64 {
	nbins := len(edges) - 1
	counts := make([]float64, nbins)
	var total float64
	for _, x := range xs {
		if b := binIndex(edges, x); b >= 0 {
			counts[b]++
			total++
		}
	}
	if normed && total > 0 {
		for i := range counts {
			counts[i] /= total * (edges[i+1] - edges[i])
		}
	}
	return counts
}

func binIndex(edges []float64, x float64) int {
	last := len(edges) - 1
	if x < edges[0] || x > edges[last] {
		return -1
	}
	if x == edges[last] {
		return last - 1
	}
	return sort.Search(len(edges), func(i int) bool { return edges[i] > x }) - 1
}
