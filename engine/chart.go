package engine

import (
	"math"
	"strconv"
)

// ============================================================================
// CHART — Declarative chart specification
// ============================================================================
// One category axis, one or more value axes, an ordered series list and an
// optional tooltip. Builders write into a Chart they are handed; the JSON
// encoding follows the ECharts option layout.
// ============================================================================

// Chart is the specification every builder writes into.
type Chart struct {
	XAxis   CategoryAxis `json:"xAxis"`
	YAxis   []ValueAxis  `json:"yAxis"`
	Series  []*Series    `json:"series"`
	Tooltip *Tooltip     `json:"tooltip,omitempty"`
}

// NewChart returns an empty chart with a single value axis.
func NewChart() *Chart {
	return &Chart{
		XAxis:  CategoryAxis{Data: []any{}},
		YAxis:  []ValueAxis{{}},
		Series: []*Series{},
	}
}

// CategoryAxis holds the ordered category keys.
type CategoryAxis struct {
	Data        []any `json:"data"`
	BoundaryGap *bool `json:"boundaryGap,omitempty"`
}

// ValueAxis is one numeric axis.
type ValueAxis struct {
	Name      string     `json:"name,omitempty"`
	Max       *float64   `json:"max,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
}

type SplitLine struct {
	Show bool `json:"show"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger,omitempty"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type"`
}

// SetTooltipStyle sets the tooltip trigger and axis pointer type.
func (c *Chart) SetTooltipStyle(axisPointer, trigger string) *Chart {
	c.Tooltip = &Tooltip{Trigger: trigger, AxisPointer: &AxisPointer{Type: axisPointer}}
	return c
}

// AddSeries appends s to the series list.
func (c *Chart) AddSeries(s *Series) *Chart {
	c.Series = append(c.Series, s)
	return c
}

// ============================================================================
// SERIES
// ============================================================================

// SeriesType tags how a series is drawn.
type SeriesType string

const (
	SeriesBar  SeriesType = "bar"
	SeriesLine SeriesType = "line"
)

// Series is one named, typed sequence of values aligned with the category axis.
type Series struct {
	Name       string     `json:"name"`
	Type       SeriesType `json:"type"`
	Data       Data       `json:"data"`
	Stack      string     `json:"stack,omitempty"`
	AreaStyle  *AreaStyle `json:"areaStyle,omitempty"`
	Smooth     bool       `json:"smooth,omitempty"`
	Label      *Label     `json:"label,omitempty"`
	YAxisIndex int        `json:"yAxisIndex,omitempty"`
	LineStyle  *LineStyle `json:"lineStyle,omitempty"`
	ItemStyle  *ItemStyle `json:"itemStyle,omitempty"`
}

type Label struct {
	Normal LabelStyle `json:"normal"`
}

type LabelStyle struct {
	Show     bool   `json:"show"`
	Position string `json:"position"`
}

// NewLabel returns a visible value label at position.
func NewLabel(position string) *Label {
	return &Label{Normal: LabelStyle{Show: true, Position: position}}
}

type AreaStyle struct {
	Normal struct{} `json:"normal"`
}

type LineStyle struct {
	Normal LineColor `json:"normal"`
}

type LineColor struct {
	Color string `json:"color"`
}

type ItemStyle struct {
	Normal   BarColor `json:"normal"`
	Emphasis BarColor `json:"emphasis"`
}

type BarColor struct {
	BarBorderColor string `json:"barBorderColor"`
	Color          string `json:"color"`
}

// ============================================================================
// DATA — series values with a "no value" marker
// ============================================================================

// Placeholder is written for NaN entries: no bar, as opposed to a
// zero-height bar.
const Placeholder = "-"

// Data is a series value sequence. NaN entries mean "no value".
type Data []float64

// MarshalJSON encodes NaN and infinities as the placeholder string.
func (d Data) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	b := make([]byte, 0, 8*len(d)+2)
	b = append(b, '[')
	for i, v := range d {
		if i > 0 {
			b = append(b, ',')
		}
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			b = strconv.AppendQuote(b, Placeholder)
		case v == 0:
			b = append(b, '0')
		default:
			b = strconv.AppendFloat(b, v, 'f', -1, 64)
		}
	}
	return append(b, ']'), nil
}

// padZeros closes d at zero on both ends.
func padZeros(d []float64) Data {
	out := make(Data, 0, len(d)+2)
	out = append(out, 0)
	out = append(out, d...)
	return append(out, 0)
}

func ptr[T any](v T) *T { return &v }
