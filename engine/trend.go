package engine

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/vec"
)

// LinearTrend fits a least-squares line through values, with category
// positions 0..n-1 as x, and samples it at every position. NaN values are
// left out of the fit. Fewer than two usable points return values unchanged.
func LinearTrend(values []float64) []float64 {
	var xs, ys []float64
	for i, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, float64(i))
			ys = append(ys, v)
		}
	}
	if len(xs) < 2 {
		return append([]float64(nil), values...)
	}

	r := fit.PolynomialRegression(xs, ys, nil, 1)
	positions := vec.Linspace(0, float64(len(values)-1), len(values))
	return vec.Map(r.F, positions)
}
