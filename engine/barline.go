package engine

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// DUAL AXIS — Bar series on the left axis, line series on the right
// ============================================================================
// Writes: Series = [bar(YBar), line(YLine, yAxisIndex 1)], XAxis.Data,
// YAxis (HideSplitLine), Tooltip (StyleTooltip).
// ============================================================================

// SetBarLineCombo writes a bar and a line series sharing the category axis
// of x into chart.
func SetBarLineCombo(chart *Chart, view RecordView, cfg ComboConfig, opts ...Option) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := applyOptions(opts)

	var frame *Frame
	if cfg.IsDistinct {
		frame = firstPerCategory(view, cfg.X, cfg.YBar, cfg.YLine)
	} else {
		var err error
		if frame, err = groupCombo(view, cfg); err != nil {
			return nil, err
		}
	}

	chart.AddSeries(&Series{Name: cfg.YBar, Type: SeriesBar, Data: ec.round(frame.Column(0))})
	chart.AddSeries(&Series{Name: cfg.YLine, Type: SeriesLine, Data: ec.round(frame.Column(1)), YAxisIndex: 1})

	if cfg.HideSplitLine {
		chart.YAxis = []ValueAxis{
			{Name: cfg.YBar, SplitLine: &SplitLine{Show: false}},
			{Name: cfg.YLine, SplitLine: &SplitLine{Show: false}},
		}
	}
	if cfg.StyleTooltip {
		chart.SetTooltipStyle("shadow", "axis")
	}
	chart.XAxis.Data = frame.Labels()

	ec.Logger.WithFields(logrus.Fields{
		"x": cfg.X, "ybar": cfg.YBar, "yline": cfg.YLine, "distinct": cfg.IsDistinct,
	}).Debugf("📊 chartkit: dual-axis series written for %d categories", frame.Len())

	return frame, nil
}

// firstPerCategory keeps the first row of every category, in row order.
// A row missing one of the fields contributes NaN for it.
func firstPerCategory(view RecordView, x, ybar, yline string) *Frame {
	frame := &Frame{Name: x, Columns: []string{ybar, yline}}
	seen := make(map[Key]bool)
	for i := 0; i < view.Len(); i++ {
		k, ok := Lookup(view, i, x)
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		frame.Index = append(frame.Index, k)
		frame.Values = append(frame.Values, []float64{measureOrNaN(view, i, ybar), measureOrNaN(view, i, yline)})
	}
	return frame
}

// groupCombo reduces both fields per category and sorts the result.
func groupCombo(view RecordView, cfg ComboConfig) (*Frame, error) {
	barAgg, err := ResolveAggFunc(orDefault(cfg.BarAggFunc, "mean"), cfg.BarFunc)
	if err != nil {
		return nil, err
	}
	lineAgg, err := ResolveAggFunc(orDefault(cfg.LineAggFunc, "mean"), cfg.LineFunc)
	if err != nil {
		return nil, err
	}

	keys, views := partition(view, cfg.X)
	frame := &Frame{Name: cfg.X, Index: keys, Columns: []string{cfg.YBar, cfg.YLine}}
	frame.Values = make([][]float64, len(keys))
	for i, sub := range views {
		frame.Values[i] = []float64{
			barAgg(measures(sub, cfg.YBar)),
			lineAgg(measures(sub, cfg.YLine)),
		}
	}

	column, err := cfg.sortColumn()
	if err != nil {
		return nil, err
	}
	key := ByValues()
	if column == "" {
		key = ByIndex()
	}
	if err := sortFrame(frame, key, column, !cfg.Descending); err != nil {
		return nil, err
	}
	return frame, nil
}

func measures(view RecordView, field string) []float64 {
	var out []float64
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, field); ok {
			out = append(out, v)
		}
	}
	return out
}

func measureOrNaN(view RecordView, i int, field string) float64 {
	if v, ok := view.Measure(i, field); ok {
		return v
	}
	return math.NaN()
}
