package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BAR / LINE
// ============================================================================

func stackedRows() RecordView {
	return rows(
		row{"x": "A", "c": "u", "y": 1},
		row{"x": "A", "c": "v", "y": 3},
		row{"x": "B", "c": "u", "y": 2},
		row{"x": "B", "c": "v", "y": 2},
		row{"x": "C", "c": "u", "y": 4},
	)
}

func assertAligned(t *testing.T, chart *Chart) {
	t.Helper()
	for _, s := range chart.Series {
		assert.Len(t, s.Data, len(chart.XAxis.Data), "series %q", s.Name)
	}
}

func TestSetBarLineCounts(t *testing.T) {
	chart := NewChart()
	frame, err := SetBarLine(chart, rows(row{"x": "B"}, row{"x": "A"}, row{"x": "B"}), BarLineConfig{Type: KindBar, X: "x"})
	require.NoError(t, err)

	assert.Equal(t, 2, frame.Len())
	assert.Equal(t, []any{"A", "B"}, chart.XAxis.Data)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "x", chart.Series[0].Name)
	assert.Equal(t, SeriesBar, chart.Series[0].Type)
	assert.Equal(t, Data{1, 2}, chart.Series[0].Data)
}

func TestSetBarLineRoundsValues(t *testing.T) {
	v := rows(row{"x": "A", "y": 1}, row{"x": "A", "y": 2}, row{"x": "A", "y": 2})

	chart := NewChart()
	_, err := SetBarLine(chart, v, BarLineConfig{Type: KindLine, X: "x", Y: "y", How: "mean"})
	require.NoError(t, err)
	assert.Equal(t, Data{1.667}, chart.Series[0].Data)

	chart = NewChart()
	_, err = SetBarLine(chart, v, BarLineConfig{Type: KindLine, X: "x", Y: "y", How: "mean"}, WithPrecision(1))
	require.NoError(t, err)
	assert.Equal(t, Data{1.7}, chart.Series[0].Data)
}

func TestSetBarLineStacked(t *testing.T) {
	chart := NewChart()
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
		Type: KindBar, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Annotate: AnnotateAll,
	})
	require.NoError(t, err)

	require.Len(t, chart.Series, 2)
	for _, s := range chart.Series {
		assert.Equal(t, "c", s.Stack)
		require.NotNil(t, s.Label)
		assert.Equal(t, "inside", s.Label.Normal.Position)
		assert.Nil(t, s.AreaStyle)
	}
	assert.Equal(t, "u", chart.Series[0].Name)
	assert.True(t, isNaN(chart.Series[1].Data[2]), "C has no v")
	assert.Nil(t, chart.YAxis[0].Max)
	assertAligned(t, chart)
}

func TestSetBarLineStackedArea(t *testing.T) {
	chart := NewChart()
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
		Type: KindLine, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Area: true, Annotate: AnnotateAll,
	})
	require.NoError(t, err)

	for _, s := range chart.Series {
		assert.NotNil(t, s.AreaStyle)
		assert.Equal(t, "top", s.Label.Normal.Position)
	}
}

func TestSetBarLineFull(t *testing.T) {
	chart := NewChart()
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
		Type: KindBar, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Full: true,
	})
	require.NoError(t, err)

	require.NotNil(t, chart.YAxis[0].Max)
	assert.Equal(t, 1.0, *chart.YAxis[0].Max)
	for i := range chart.XAxis.Data {
		var sum float64
		for _, s := range chart.Series {
			if !isNaN(s.Data[i]) {
				sum += s.Data[i]
			}
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestSetBarLineFullOnZeroChart(t *testing.T) {
	chart := &Chart{}
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
		Type: KindBar, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Full: true,
	})
	require.NoError(t, err)

	require.Len(t, chart.YAxis, 1)
	require.NotNil(t, chart.YAxis[0].Max)
	assert.Equal(t, 1.0, *chart.YAxis[0].Max)
	assertAligned(t, chart)
}

func TestSetBarLineAnnotateTop(t *testing.T) {
	chart := NewChart()
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
		Type: KindBar, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Annotate: AnnotateTop,
	})
	require.NoError(t, err)

	assert.Nil(t, chart.Series[0].Label)
	require.NotNil(t, chart.Series[1].Label)
	assert.Equal(t, "top", chart.Series[1].Label.Normal.Position)
}

func TestSetBarLineTrendline(t *testing.T) {
	v := rows(row{"x": "A", "y": 1}, row{"x": "B", "y": 3}, row{"x": "C", "y": 2})

	t.Run("identity", func(t *testing.T) {
		chart := NewChart()
		_, err := SetBarLine(chart, v, BarLineConfig{Type: KindBar, X: "x", Y: "y", How: "sum", Trendline: true})
		require.NoError(t, err)

		require.Len(t, chart.Series, 2)
		trend := chart.Series[1]
		assert.Equal(t, "trendline", trend.Name)
		assert.Equal(t, SeriesLine, trend.Type)
		assert.Equal(t, chart.Series[0].Data, trend.Data)
		assert.Equal(t, "#000", trend.LineStyle.Normal.Color)
	})

	t.Run("linear", func(t *testing.T) {
		chart := NewChart()
		_, err := SetBarLine(chart, v, BarLineConfig{Type: KindBar, X: "x", Y: "y", How: "sum", Trendline: true, Trend: TrendLinear})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1.5, 2, 2.5}, []float64(chart.Series[1].Data), 1e-9)
	})

	t.Run("stacked", func(t *testing.T) {
		chart := NewChart()
		_, err := SetBarLine(chart, stackedRows(), BarLineConfig{
			Type: KindBar, X: "x", C: "c", Y: "y", How: "sum", Stacked: true, Trendline: true,
		})
		require.NoError(t, err)

		require.Len(t, chart.Series, 3)
		trend := chart.Series[2]
		assert.Equal(t, Data{0, 0, 0}, trend.Data)
		assert.Equal(t, "c", trend.Stack)
	})
}

func TestSetBarLineSmooth(t *testing.T) {
	chart := NewChart()
	_, err := SetBarLine(chart, stackedRows(), BarLineConfig{Type: KindLine, X: "x", C: "c", Y: "y", How: "sum", Smooth: true})
	require.NoError(t, err)
	for _, s := range chart.Series {
		assert.True(t, s.Smooth)
		assert.Empty(t, s.Stack, "not stacked")
	}
}

func TestBarLineConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    BarLineConfig
		option string
	}{
		{"histogram kind", BarLineConfig{Type: KindHistogram, X: "x"}, "type"},
		{"missing x", BarLineConfig{Type: KindBar}, "x"},
		{"unknown how", BarLineConfig{Type: KindBar, X: "x", Y: "y", How: "mode"}, "how"},
		{"sort_c_on required", BarLineConfig{Type: KindBar, X: "x", C: "c", SortOn: ByValues()}, "sort_c_on"},
		{"bad annotate", BarLineConfig{Type: KindBar, X: "x", Annotate: "some"}, "annotate"},
		{"full without stack", BarLineConfig{Type: KindBar, X: "x", C: "c", Full: true}, "full"},
		{"area on bar", BarLineConfig{Type: KindBar, X: "x", C: "c", Stacked: true, Area: true}, "area"},
		{"smooth bar", BarLineConfig{Type: KindBar, X: "x", Smooth: true}, "smooth"},
		{"trendline on line", BarLineConfig{Type: KindLine, X: "x", Trendline: true}, "trendline"},
		{"trendline unstacked c", BarLineConfig{Type: KindBar, X: "x", C: "c", Trendline: true}, "trendline"},
		{"linear trend with c", BarLineConfig{Type: KindBar, X: "x", C: "c", Stacked: true, Trendline: true, Trend: TrendLinear}, "trendline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := NewChart()
			_, err := SetBarLine(chart, stackedRows(), tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.option)
			assert.Empty(t, chart.Series, "nothing written on error")
		})
	}
}

// ============================================================================
// HISTOGRAM
// ============================================================================

func TestSetHistogram(t *testing.T) {
	chart := NewChart()
	hist, err := SetHistogram(chart, tenValues(), HistConfig{X: "v", Bins: 3})
	require.NoError(t, err)

	assert.Equal(t, []any{0, 3, 6}, chart.XAxis.Data)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, SeriesBar, chart.Series[0].Type)
	assert.Equal(t, "v", chart.Series[0].Name)
	assert.Equal(t, Data{3, 3, 4}, chart.Series[0].Data)
	assert.Equal(t, []int{0, 3, 6, 9}, hist.Edges)
}

func TestSetHistogramDensity(t *testing.T) {
	chart := NewChart()
	_, err := SetHistogram(chart, tenValues(), HistConfig{X: "v", Bins: 3, Density: true})
	require.NoError(t, err)

	require.NotNil(t, chart.XAxis.BoundaryGap)
	assert.False(t, *chart.XAxis.BoundaryGap)
	assert.Equal(t, []any{0, 0, 3, 6, 0}, chart.XAxis.Data)

	require.Len(t, chart.Series, 2)
	density := chart.Series[1]
	assert.Equal(t, "density", density.Name)
	assert.True(t, density.Smooth)
	assert.Equal(t, Data{0, 3, 3, 4, 0}, density.Data)
	assert.Equal(t, Data{0, 3, 3, 4, 0}, chart.Series[0].Data)
	assertAligned(t, chart)
}

func TestSetHistogramStackedDensity(t *testing.T) {
	chart := NewChart()
	_, err := SetHistogram(chart, tenValues(), HistConfig{X: "v", C: "g", Bins: 3, Stacked: true, Density: true, Annotate: AnnotateAll})
	require.NoError(t, err)

	require.Len(t, chart.Series, 3)
	assert.Equal(t, "g", chart.Series[0].Stack)
	assert.Equal(t, "inside", chart.Series[0].Label.Normal.Position)
	assert.Equal(t, Data{0, 3, 3, 4, 0}, chart.Series[2].Data, "density of the row sums")
	assertAligned(t, chart)
}

func TestHistConfigValidation(t *testing.T) {
	_, err := SetHistogram(NewChart(), tenValues(), HistConfig{X: "v", C: "g", Density: true})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = SetHistogram(NewChart(), tenValues(), HistConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
