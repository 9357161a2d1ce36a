package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// WATERFALL — Floating bars over a transparent spacer
// ============================================================================
// Writes: XAxis.Data, Series (appended): spacer, then either one visible bar
// or an up/down pair. All share the stack id "stack".
//
//   deltas  [10, -3, 5]
//   offsets [ 0,  7, 7]   exclusive prefix sum, lowered by |delta| when negative
//   visible [10,  3, 5]
// ============================================================================

const (
	waterfallStack = "stack"
	transparent    = "rgba(0,0,0,0)"
)

// WaterfallOffsets returns the spacer height under every delta. A negative
// offset means the running total dips below zero, which the floating bar
// model cannot draw.
func WaterfallOffsets(deltas []float64) ([]float64, error) {
	offsets := make([]float64, len(deltas))
	var total float64
	for i, d := range deltas {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, &DomainError{Msg: fmt.Sprintf("delta %d is not a finite number", i)}
		}
		offsets[i] = total
		if d < 0 {
			offsets[i] += d
		}
		if offsets[i] < 0 {
			return nil, &DomainError{Msg: "cumulative sum should be positive"}
		}
		total += d
	}
	return offsets, nil
}

// SetWaterfall writes the floating bars of the signed deltas in col into chart.
// Nothing is written when the deltas are rejected.
func SetWaterfall(chart *Chart, col Column, cfg WaterfallConfig, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()
	ec := applyOptions(opts)

	offsets, err := WaterfallOffsets(col.Values)
	if err != nil {
		return err
	}

	chart.AddSeries(&Series{
		Name:  "",
		Type:  SeriesBar,
		Stack: waterfallStack,
		Data:  ec.round(offsets),
		ItemStyle: &ItemStyle{
			Normal:   BarColor{BarBorderColor: transparent, Color: transparent},
			Emphasis: BarColor{BarBorderColor: transparent, Color: transparent},
		},
	})

	if cfg.ColorCoded {
		up := make([]float64, len(col.Values))
		down := make([]float64, len(col.Values))
		for i, d := range col.Values {
			up[i], down[i] = math.NaN(), math.NaN()
			if d > 0 {
				up[i] = d
			} else {
				down[i] = math.Abs(d)
			}
		}
		chart.AddSeries(&Series{Name: cfg.UpName, Type: SeriesBar, Stack: waterfallStack, Data: ec.round(up)})
		chart.AddSeries(&Series{Name: cfg.DownName, Type: SeriesBar, Stack: waterfallStack, Data: ec.round(down)})
	} else {
		visible := make([]float64, len(col.Values))
		for i, d := range col.Values {
			visible[i] = math.Abs(d)
		}
		chart.AddSeries(&Series{Name: col.Name, Type: SeriesBar, Stack: waterfallStack, Data: ec.round(visible)})
	}

	chart.XAxis.Data = col.Labels()

	ec.Logger.WithFields(logrus.Fields{
		"steps": len(col.Values), "color_coded": cfg.ColorCoded,
	}).Debug("📊 chartkit: waterfall series written")

	return nil
}

// WaterfallColumn reduces y per category of x, categories in order of first
// appearance.
func WaterfallColumn(view RecordView, cfg WaterfallConfig) (Column, error) {
	if cfg.X == "" {
		return Column{}, configf("x", "category field is required")
	}
	if cfg.Y == "" {
		return Column{}, configf("y", "value field is required")
	}
	how, err := ResolveAggFunc(orDefault(cfg.How, "sum"), nil)
	if err != nil {
		return Column{}, err
	}

	pos := make(map[Key]int)
	col := Column{Name: cfg.Y}
	var groups [][]float64
	for i := 0; i < view.Len(); i++ {
		k, ok := Lookup(view, i, cfg.X)
		if !ok {
			continue
		}
		p, seen := pos[k]
		if !seen {
			p = len(col.Index)
			pos[k] = p
			col.Index = append(col.Index, k)
			groups = append(groups, nil)
		}
		if v, ok := view.Measure(i, cfg.Y); ok {
			groups[p] = append(groups[p], v)
		}
	}

	col.Values = make([]float64, len(groups))
	for i, g := range groups {
		col.Values[i] = how(g)
	}
	return col, nil
}
