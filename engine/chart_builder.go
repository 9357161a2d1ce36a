package engine

import (
	"github.com/sirupsen/logrus"
)

// ============================================================================
// CHART BUILDER — Bar, Line and Histogram series from an aggregated frame
// ============================================================================
// Writes: XAxis.Data, XAxis.BoundaryGap (density), YAxis[0].Max (full),
// Series (appended).
//
// Decorations run in a fixed order once the base series exist:
//   1. stacking (stack id, area fill, "all" labels, 100% axis max)
//   2. "top" label on the last data series
//   3. trendline (bar)
//   4. smoothing (line)
//   5. density overlay (histogram): axis and every series closed at zero
// ============================================================================

const (
	overlayColor  = "#000"
	trendlineName = "trendline"
	densityName   = "density"
)

// SetBarLine aggregates view and writes a bar or line chart into chart.
func SetBarLine(chart *Chart, view RecordView, cfg BarLineConfig, opts ...Option) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := applyOptions(opts)

	frame, err := Aggregate(view, cfg.X, cfg.C, cfg.Y, cfg.aggregateConfig(), opts...)
	if err != nil {
		return nil, err
	}

	seriesType := SeriesBar
	if cfg.Type == KindLine {
		seriesType = SeriesLine
	}
	d := decoration{
		kind:       cfg.Type,
		seriesType: seriesType,
		c:          cfg.C,
		stacked:    cfg.Stacked,
		full:       cfg.Full,
		annotate:   cfg.Annotate,
		area:       cfg.Area,
		smooth:     cfg.Smooth,
		trendline:  cfg.Trendline,
		trend:      cfg.Trend,
	}

	chart.XAxis.Data = frame.Labels()
	insertSeries(chart, frame, cfg.X, seriesType, ec)
	d.apply(chart, frame, ec)

	ec.Logger.WithFields(logrus.Fields{
		"type": cfg.Type.String(), "series": len(chart.Series), "categories": frame.Len(),
	}).Debug("📊 chartkit: bar/line series written")

	return frame, nil
}

// SetHistogram bins view and writes a histogram (bar series) into chart.
func SetHistogram(chart *Chart, view RecordView, cfg HistConfig, opts ...Option) (*Histogram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := applyOptions(opts)

	hist, err := Bin(view, cfg.X, cfg.C, cfg.binConfig(), opts...)
	if err != nil {
		return nil, err
	}

	d := decoration{
		kind:       KindHistogram,
		seriesType: SeriesBar,
		c:          cfg.C,
		stacked:    cfg.Stacked,
		annotate:   cfg.Annotate,
		density:    cfg.Density,
	}

	chart.XAxis.Data = hist.Labels()
	insertSeries(chart, hist.Frame, cfg.X, SeriesBar, ec)
	d.apply(chart, hist.Frame, ec)

	ec.Logger.WithFields(logrus.Fields{
		"series": len(chart.Series), "bins": hist.Frame.Len(),
	}).Debug("📊 chartkit: histogram series written")

	return hist, nil
}

// insertSeries appends one series per frame column, named after the
// sub-category, or a single series named after x.
func insertSeries(chart *Chart, frame *Frame, x string, seriesType SeriesType, ec *config) {
	if len(frame.Columns) == 0 {
		chart.AddSeries(&Series{Name: x, Type: seriesType, Data: ec.round(frame.Column(0))})
		return
	}
	for j, name := range frame.Columns {
		chart.AddSeries(&Series{Name: name, Type: seriesType, Data: ec.round(frame.Column(j))})
	}
}

// ============================================================================
// DECORATIONS
// ============================================================================

type decoration struct {
	kind       Kind
	seriesType SeriesType
	c          string
	stacked    bool
	full       bool
	annotate   Annotate
	area       bool
	smooth     bool
	trendline  bool
	trend      Trend
	density    bool
}

// apply decorates the series already in chart. Option combinations were
// checked by Validate.
func (d decoration) apply(chart *Chart, frame *Frame, ec *config) {
	series := chart.Series
	if len(series) == 0 {
		return
	}

	// 1. Stacking
	if d.c != "" && d.stacked {
		for _, s := range series {
			s.Stack = d.c
			if d.seriesType == SeriesLine && d.area {
				s.AreaStyle = &AreaStyle{}
			}
			if d.annotate == AnnotateAll {
				position := "top"
				if d.seriesType == SeriesBar {
					position = "inside"
				}
				s.Label = NewLabel(position)
			}
		}
		if d.full && (d.kind == KindBar || d.kind == KindLine) {
			if len(chart.YAxis) == 0 {
				chart.YAxis = append(chart.YAxis, ValueAxis{})
			}
			chart.YAxis[0].Max = ptr(1.0)
		}
	}

	// 2. Top annotation
	if d.annotate == AnnotateTop {
		series[len(series)-1].Label = NewLabel("top")
	}

	// 3. Trendline
	if d.kind == KindBar && d.trendline {
		trend := &Series{
			Name:      trendlineName,
			Type:      SeriesLine,
			LineStyle: &LineStyle{Normal: LineColor{Color: overlayColor}},
		}
		if d.c != "" {
			trend.Data = make(Data, len(series[len(series)-1].Data))
			trend.Stack = d.c
		} else if d.trend == TrendLinear {
			trend.Data = ec.round(LinearTrend(frame.Column(0)))
		} else {
			trend.Data = append(Data(nil), series[0].Data...)
		}
		chart.AddSeries(trend)
	}

	// 4. Smoothing
	if d.kind == KindLine && d.smooth {
		for _, s := range chart.Series {
			s.Smooth = true
		}
	}

	// 5. Density overlay
	if d.kind == KindHistogram && d.density {
		chart.XAxis.BoundaryGap = ptr(false)
		chart.XAxis.Data = append(append([]any{0}, chart.XAxis.Data...), 0)
		// Bars get a trailing zero as well as the leading one so every series
		// stays as long as the padded axis.
		for _, s := range chart.Series {
			s.Data = padZeros(s.Data)
		}

		curve := frame.Column(0)
		if d.c != "" {
			curve = frame.RowSums()
		}
		density := &Series{
			Name:      densityName,
			Type:      SeriesLine,
			Smooth:    true,
			LineStyle: &LineStyle{Normal: LineColor{Color: overlayColor}},
			Data:      padZeros(ec.round(curve)),
		}
		chart.AddSeries(density)
	}
}
