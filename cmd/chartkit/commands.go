package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// SUBCOMMANDS — flags to per-kind engine configs
// ============================================================================

func (a *app) newBarLineCmd(kind engine.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Aggregate x (split by c) into a %s chart", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(v *viper.Viper) (engine.Config, error) {
				return barLineConfig(kind, v)
			})
		},
	}
	f := cmd.Flags()
	categoryFlags(f)
	f.String("y", "", "Value field (default: count rows)")
	f.String("how", "count", "Aggregation: sum, mean, count, min, max, median, std, var, first, last, pNN")
	f.String("sort-on", "index", "Sort basis: index, values, a statistic (mean, 50%, ...) or a number")
	f.String("sort-c-on", "", "Sub-category governing value sorts")
	f.Bool("ascending", true, "Sort ascending")
	f.Bool("stacked", false, "Stack the sub-category series")
	f.Bool("full", false, "Normalize stacks to 100%")
	f.String("annotate", "", "Value labels: all or top")
	f.Bool("trendline", false, "Overlay a trendline (bar)")
	f.String("trend", "identity", "Trendline: identity or linear")
	if kind == engine.KindLine {
		f.Bool("area", false, "Fill the area under stacked lines")
		f.Bool("smooth", false, "Smooth the lines")
	}
	return cmd
}

func (a *app) newHistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   engine.KindHistogram.String(),
		Short: "Bin the numeric field x (split by c) into a histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, histConfig)
		},
	}
	f := cmd.Flags()
	categoryFlags(f)
	f.Int("bins", engine.DefaultBins, "Number of equal-width bins")
	f.StringSlice("edges", nil, "Explicit ascending bin edges, e.g. 0,10,20")
	f.Bool("normed", false, "Densities instead of counts")
	f.Bool("stacked", false, "Stack the sub-category series")
	f.String("annotate", "", "Value labels: all or top")
	f.Bool("density", false, "Overlay a density curve")
	return cmd
}

func (a *app) newComboCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   engine.KindDualAxis.String(),
		Short: "Bar of ybar and line of yline on two value axes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, comboConfig)
		},
	}
	f := cmd.Flags()
	f.String("x", "", "Category field (required)")
	f.String("ybar", "", "Bar value field (required)")
	f.String("yline", "", "Line value field (required)")
	f.String("bar-aggfunc", "mean", "Bar aggregation")
	f.String("line-aggfunc", "mean", "Line aggregation")
	f.Bool("is-distinct", false, "Rows are one per category; keep the first")
	f.String("sort-on", "index", "Sort basis: index, ybar or yline")
	f.Bool("ascending", true, "Sort ascending")
	f.Bool("hide-split-line", false, "Name both value axes and hide their split lines")
	f.Bool("style-tooltip", false, "Shadow axis-pointer tooltip")
	return cmd
}

func (a *app) newWaterfallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   engine.KindWaterfall.String(),
		Short: "Floating bars of the signed deltas y per category x",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, waterfallConfig)
		},
	}
	f := cmd.Flags()
	f.String("x", "", "Category field (required)")
	f.String("y", "", "Delta field (required)")
	f.String("how", "sum", "Aggregation of deltas per category")
	f.Bool("color-coded", false, "Split into increase and decrease series")
	f.String("up-name", "increase", "Name of the increase series")
	f.String("down-name", "decrease", "Name of the decrease series")
	return cmd
}

func categoryFlags(f *pflag.FlagSet) {
	f.String("x", "", "Category field (required)")
	f.String("c", "", "Secondary category field")
}

// ============================================================================
// CONFIG BUILDERS
// ============================================================================

func barLineConfig(kind engine.Kind, v *viper.Viper) (engine.Config, error) {
	sortOn, err := engine.ParseSortKey(v.GetString("sort-on"))
	if err != nil {
		return nil, err
	}
	trend, err := parseTrend(v.GetString("trend"))
	if err != nil {
		return nil, err
	}
	return engine.BarLineConfig{
		Type:       kind,
		X:          v.GetString("x"),
		C:          v.GetString("c"),
		Y:          v.GetString("y"),
		How:        v.GetString("how"),
		SortOn:     sortOn,
		SortCOn:    v.GetString("sort-c-on"),
		Descending: !v.GetBool("ascending"),
		Stacked:    v.GetBool("stacked"),
		Full:       v.GetBool("full"),
		Annotate:   engine.Annotate(v.GetString("annotate")),
		Area:       v.GetBool("area"),
		Smooth:     v.GetBool("smooth"),
		Trendline:  v.GetBool("trendline"),
		Trend:      trend,
	}, nil
}

func histConfig(v *viper.Viper) (engine.Config, error) {
	edges, err := parseFloats(v.GetStringSlice("edges"))
	if err != nil {
		return nil, err
	}
	return engine.HistConfig{
		X:        v.GetString("x"),
		C:        v.GetString("c"),
		Bins:     v.GetInt("bins"),
		Edges:    edges,
		Normed:   v.GetBool("normed"),
		Stacked:  v.GetBool("stacked"),
		Annotate: engine.Annotate(v.GetString("annotate")),
		Density:  v.GetBool("density"),
	}, nil
}

func comboConfig(v *viper.Viper) (engine.Config, error) {
	return engine.ComboConfig{
		X:             v.GetString("x"),
		YBar:          v.GetString("ybar"),
		YLine:         v.GetString("yline"),
		BarAggFunc:    v.GetString("bar-aggfunc"),
		LineAggFunc:   v.GetString("line-aggfunc"),
		IsDistinct:    v.GetBool("is-distinct"),
		SortOn:        v.GetString("sort-on"),
		Descending:    !v.GetBool("ascending"),
		HideSplitLine: v.GetBool("hide-split-line"),
		StyleTooltip:  v.GetBool("style-tooltip"),
	}, nil
}

func waterfallConfig(v *viper.Viper) (engine.Config, error) {
	return engine.WaterfallConfig{
		X:          v.GetString("x"),
		Y:          v.GetString("y"),
		How:        v.GetString("how"),
		ColorCoded: v.GetBool("color-coded"),
		UpName:     v.GetString("up-name"),
		DownName:   v.GetString("down-name"),
	}, nil
}

func parseTrend(s string) (engine.Trend, error) {
	switch strings.ToLower(s) {
	case "", "identity":
		return engine.TrendIdentity, nil
	case "linear":
		return engine.TrendLinear, nil
	}
	return 0, fmt.Errorf("unknown trend %q (want identity or linear)", s)
}

// parseFloats accepts ["0", "10"] as well as ["0,10"].
func parseFloats(vals []string) ([]float64, error) {
	var out []float64
	for _, val := range vals {
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid bin edge %q: %w", part, err)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
