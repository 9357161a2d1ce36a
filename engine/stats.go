package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/wangjohn/quickselect"
)

// ============================================================================
// STATISTICS — Aggregation functions and descriptive statistics
// ============================================================================
// Aggregation names: sum, mean (avg), count, min, max, median, std, var,
// first, last, and pNN percentiles (p90, p99.9).
// Descriptive statistics for sorting: count, mean, std, min, 25%, 50%, 75%, max.
// NaN inputs are skipped everywhere.
// ============================================================================

// AggFunc reduces the values of one group to a single number.
type AggFunc func(values []float64) float64

// ResolveAggFunc returns the aggregation function for name. A non-nil custom
// function wins over the name.
func ResolveAggFunc(name string, custom AggFunc) (AggFunc, error) {
	if custom != nil {
		return skipNaN(custom), nil
	}
	fn, err := namedAgg(name)
	if err != nil {
		return nil, err
	}
	return skipNaN(fn), nil
}

func skipNaN(fn AggFunc) AggFunc {
	return func(values []float64) float64 {
		return fn(dropNaN(values))
	}
}

func namedAgg(name string) (AggFunc, error) {
	switch strings.ToLower(name) {
	case "sum":
		return vec.Sum, nil
	case "count":
		return func(xs []float64) float64 { return float64(len(xs)) }, nil
	case "mean", "avg":
		return nonEmpty(stats.Mean), nil
	case "min":
		return nonEmpty(func(xs []float64) float64 { lo, _ := stats.Bounds(xs); return lo }), nil
	case "max":
		return nonEmpty(func(xs []float64) float64 { _, hi := stats.Bounds(xs); return hi }), nil
	case "median":
		return func(xs []float64) float64 { return percentile(xs, 50) }, nil
	case "std":
		return atLeastTwo(stats.StdDev), nil
	case "var":
		return atLeastTwo(stats.Variance), nil
	case "first":
		return nonEmpty(func(xs []float64) float64 { return xs[0] }), nil
	case "last":
		return nonEmpty(func(xs []float64) float64 { return xs[len(xs)-1] }), nil
	}

	if p, ok := parsePercentileName(name); ok {
		return func(xs []float64) float64 { return percentile(xs, p) }, nil
	}
	return nil, configf("how", "unknown aggregation %q", name)
}

func isAggName(name string) bool {
	_, err := namedAgg(name)
	return err == nil
}

// parsePercentileName accepts "p90" or "p99.5".
func parsePercentileName(name string) (float64, bool) {
	if len(name) < 2 || (name[0] != 'p' && name[0] != 'P') {
		return 0, false
	}
	p, err := strconv.ParseFloat(name[1:], 64)
	if err != nil || p < 0 || p > 100 {
		return 0, false
	}
	return p, true
}

func nonEmpty(fn AggFunc) AggFunc {
	return func(xs []float64) float64 {
		if len(xs) == 0 {
			return math.NaN()
		}
		return fn(xs)
	}
}

func atLeastTwo(fn AggFunc) AggFunc {
	return func(xs []float64) float64 {
		if len(xs) < 2 {
			return math.NaN()
		}
		return fn(xs)
	}
}

// percentile linearly interpolates between the two order statistics around
// rank (n-1)*percent/100. data is not modified.
func percentile(data []float64, percent float64) float64 {
	if len(data) == 0 || percent < 0 || percent > 100 {
		return math.NaN()
	}
	if len(data) == 1 {
		return data[0]
	}

	xs := append([]float64(nil), data...)
	k := (float64(len(xs)-1) * percent) / 100
	length := int(math.Ceil(k)) + 1
	if length > len(xs) {
		length = len(xs)
	}
	if err := quickselect.Float64QuickSelect(xs, length); err != nil {
		return math.NaN()
	}
	top, secondTop := math.Inf(-1), math.Inf(-1)
	for _, val := range xs[0:length] {
		if val > top {
			secondTop = top
			top = val
		} else if val > secondTop {
			secondTop = val
		}
	}
	remainder := k - math.Floor(k)
	if remainder == 0 {
		return top
	}
	return (top * remainder) + (secondTop * (1 - remainder))
}

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================

// Statistics are the names accepted by ByStatistic.
var Statistics = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func isStatistic(name string) bool {
	for _, s := range Statistics {
		if s == name {
			return true
		}
	}
	return false
}

// Describe computes one named descriptive statistic of values, skipping NaN.
func Describe(name string, values []float64) (float64, error) {
	xs := dropNaN(values)
	switch name {
	case "count":
		return float64(len(xs)), nil
	case "mean":
		return nonEmpty(stats.Mean)(xs), nil
	case "std":
		return atLeastTwo(stats.StdDev)(xs), nil
	case "min", "max":
		if len(xs) == 0 {
			return math.NaN(), nil
		}
		lo, hi := stats.Bounds(xs)
		if name == "min" {
			return lo, nil
		}
		return hi, nil
	case "25%":
		return percentile(xs, 25), nil
	case "50%":
		return percentile(xs, 50), nil
	case "75%":
		return percentile(xs, 75), nil
	}
	return 0, configf("sort_on", "unknown statistic %q (want one of %s)", name, strings.Join(Statistics, ", "))
}
