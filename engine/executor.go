package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// EXECUTOR — Dispatcher over chart kinds
// ============================================================================
// Entry point: Build(view, cfg, opts...)
//
// Pipeline:
//   1. Validate the per-kind config
//   2. Create a fresh Chart
//   3. Dispatch to the builder for the config variant
//   4. Return the Chart
//
// The engine never owns consumer data. It reads through RecordView.
// ============================================================================

// Build runs cfg against view and returns a render-ready chart.
//
// Options:
//   - WithLogger(l) — route pipeline logging to l
//   - WithPrecision(n) — decimal places of series data
func Build(view RecordView, cfg Config, opts ...Option) (*Chart, error) {
	if cfg == nil {
		return nil, configf("type", "chart config is required")
	}
	if view == nil {
		return nil, configf("view", "dataset is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := applyOptions(opts)

	ec.Logger.WithFields(logrus.Fields{
		"type": cfg.Kind().String(), "records": view.Len(),
	}).Info("🔧 chartkit: building chart")

	chart := NewChart()
	var err error
	switch c := cfg.(type) {
	case BarLineConfig:
		_, err = SetBarLine(chart, view, c, opts...)
	case HistConfig:
		_, err = SetHistogram(chart, view, c, opts...)
	case ComboConfig:
		_, err = SetBarLineCombo(chart, view, c, opts...)
	case WaterfallConfig:
		var col Column
		if col, err = WaterfallColumn(view, c); err == nil {
			err = SetWaterfall(chart, col, c, opts...)
		}
	default:
		err = configf("type", "unsupported config %T", cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s chart: %w", cfg.Kind(), err)
	}

	ec.Logger.WithFields(logrus.Fields{
		"type": cfg.Kind().String(), "series": len(chart.Series), "categories": len(chart.XAxis.Data),
	}).Info("📊 chartkit: chart ready")

	return chart, nil
}
