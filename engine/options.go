package engine

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Build() and the Set* builders
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger    logrus.FieldLogger
	Precision int // decimal places for series data; negative disables rounding
}

// WithLogger routes pipeline logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithPrecision sets how many decimal places series data is rounded to.
// A negative value keeps full precision.
func WithPrecision(places int) Option {
	return func(c *config) {
		c.Precision = places
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:    logrus.StandardLogger(),
		Precision: 3,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// round applies the configured precision to a copy of xs. NaN passes through.
func (c *config) round(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = RoundTo(x, c.Precision)
	}
	return out
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	if places < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
