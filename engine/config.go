package engine

import (
	"strings"
)

// ============================================================================
// CHART CONFIGURATION — One record per chart kind
// ============================================================================
// Kind is closed: Bar, Line, Histogram, DualAxis, Waterfall.
// Config is sealed; BarLineConfig (Bar/Line), HistConfig, ComboConfig and
// WaterfallConfig are its only implementations. Validate rejects invalid
// option combinations before anything is written to a chart.
// ============================================================================

// Kind identifies a chart family.
type Kind int

const (
	KindBar Kind = iota
	KindLine
	KindHistogram
	KindDualAxis
	KindWaterfall
)

var kindNames = map[Kind]string{
	KindBar:       "bar",
	KindLine:      "line",
	KindHistogram: "hist",
	KindDualAxis:  "barline",
	KindWaterfall: "waterfall",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps "bar", "line", "hist", "barline" and "waterfall" to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, configf("type", "unknown chart type %q", s)
}

// Annotate selects which series carry value labels.
type Annotate string

const (
	AnnotateNone Annotate = ""
	AnnotateAll  Annotate = "all"
	AnnotateTop  Annotate = "top"
)

func (a Annotate) validate() error {
	switch a {
	case AnnotateNone, AnnotateAll, AnnotateTop:
		return nil
	}
	return configf("annotate", "unknown annotate mode %q (want all or top)", string(a))
}

// Trend selects how the trendline of an unstacked bar chart is computed.
type Trend int

const (
	// TrendIdentity overlays the series itself.
	TrendIdentity Trend = iota
	// TrendLinear overlays a least-squares line through the series.
	TrendLinear
)

// Config is implemented by the per-kind configuration records.
type Config interface {
	Kind() Kind
	Validate() error
	sealed()
}

// ============================================================================
// BAR / LINE
// ============================================================================

// BarLineConfig configures categorical bar and line charts.
type BarLineConfig struct {
	Type Kind   // KindBar or KindLine
	X    string // category field
	C    string // optional secondary category field
	Y    string // optional value field

	How        string  // aggregation name; default "count"
	HowFunc    AggFunc // overrides How
	SortOn     SortKey
	SortCOn    string
	Descending bool

	Stacked   bool
	Full      bool
	Annotate  Annotate
	Area      bool
	Smooth    bool
	Trendline bool
	Trend     Trend
}

func (c BarLineConfig) Kind() Kind { return c.Type }
func (BarLineConfig) sealed()      {}

// Validate checks every option and option combination.
func (c BarLineConfig) Validate() error {
	if c.Type != KindBar && c.Type != KindLine {
		return configf("type", "bar/line config used for %s", c.Type)
	}
	if c.X == "" {
		return configf("x", "category field is required")
	}
	if c.Y != "" {
		if _, err := ResolveAggFunc(c.how(), c.HowFunc); err != nil {
			return err
		}
	}
	if err := c.SortOn.validate(); err != nil {
		return err
	}
	if c.C != "" && !c.SortOn.IsIndex() && c.SortCOn == "" {
		return configf("sort_c_on", "required when sort_on is %s and c is set", c.SortOn)
	}
	if err := c.Annotate.validate(); err != nil {
		return err
	}
	stackedC := c.C != "" && c.Stacked
	if c.Full && !stackedC {
		return configf("full", "requires stacked with a secondary category")
	}
	if c.Area && !(c.Type == KindLine && stackedC) {
		return configf("area", "requires a stacked line chart with a secondary category")
	}
	if c.Smooth && c.Type != KindLine {
		return configf("smooth", "only line charts can be smoothed")
	}
	if c.Trendline {
		if c.Type != KindBar {
			return configf("trendline", "only bar charts carry a trendline")
		}
		if c.C != "" && !c.Stacked {
			return configf("trendline", "must either be stacked with a secondary category or have no category")
		}
		if c.Trend == TrendLinear && c.C != "" {
			return configf("trendline", "linear trend needs a single series")
		}
	}
	return nil
}

func (c BarLineConfig) how() string {
	if c.How == "" {
		return "count"
	}
	return c.How
}

func (c BarLineConfig) aggregateConfig() AggregateConfig {
	return AggregateConfig{
		How:        c.how(),
		HowFunc:    c.HowFunc,
		SortOn:     c.SortOn,
		SortCOn:    c.SortCOn,
		Descending: c.Descending,
		Stacked:    c.Stacked,
		Full:       c.Full,
	}
}

// ============================================================================
// HISTOGRAM
// ============================================================================

// HistConfig configures histograms.
type HistConfig struct {
	X string // numeric field
	C string // optional secondary category field

	Bins   int
	Edges  []float64
	Normed bool

	Stacked  bool
	Annotate Annotate
	Density  bool
}

func (HistConfig) Kind() Kind { return KindHistogram }
func (HistConfig) sealed()    {}

// Validate checks every option and option combination.
func (c HistConfig) Validate() error {
	if c.X == "" {
		return configf("x", "histogram field is required")
	}
	if err := c.binConfig().validate(); err != nil {
		return err
	}
	if err := c.Annotate.validate(); err != nil {
		return err
	}
	if c.Density && c.C != "" && !c.Stacked {
		return configf("density", "must either be stacked with a secondary category or have no category")
	}
	return nil
}

func (c HistConfig) binConfig() BinConfig {
	return BinConfig{Bins: c.Bins, Edges: c.Edges, Normed: c.Normed}
}

// ============================================================================
// DUAL AXIS (bar + line)
// ============================================================================

// ComboConfig configures a bar series and a line series on two value axes.
type ComboConfig struct {
	X     string
	YBar  string
	YLine string

	BarAggFunc  string  // default "mean"
	LineAggFunc string  // default "mean"
	BarFunc     AggFunc // overrides BarAggFunc
	LineFunc    AggFunc // overrides LineAggFunc
	IsDistinct  bool    // rows are already one per category; keep the first

	SortOn     string // "index", "ybar", "yline" or one of the two field names
	Descending bool

	HideSplitLine bool
	StyleTooltip  bool
}

func (ComboConfig) Kind() Kind { return KindDualAxis }
func (ComboConfig) sealed()    {}

// Validate checks every option.
func (c ComboConfig) Validate() error {
	if c.X == "" {
		return configf("x", "category field is required")
	}
	if c.YBar == "" {
		return configf("ybar", "bar field is required")
	}
	if c.YLine == "" {
		return configf("yline", "line field is required")
	}
	if name := orDefault(c.BarAggFunc, "mean"); c.BarFunc == nil && !isAggName(name) {
		return configf("bar_aggfunc", "unknown aggregation %q", name)
	}
	if name := orDefault(c.LineAggFunc, "mean"); c.LineFunc == nil && !isAggName(name) {
		return configf("line_aggfunc", "unknown aggregation %q", name)
	}
	if _, err := c.sortColumn(); err != nil {
		return err
	}
	return nil
}

// sortColumn returns "" for an index sort or the field governing a value sort.
func (c ComboConfig) sortColumn() (string, error) {
	switch c.SortOn {
	case "", "index":
		return "", nil
	case "ybar", c.YBar:
		return c.YBar, nil
	case "yline", c.YLine:
		return c.YLine, nil
	}
	return "", configf("sort_on", "%q is not index, %s or %s", c.SortOn, c.YBar, c.YLine)
}

// ============================================================================
// WATERFALL
// ============================================================================

// WaterfallConfig configures waterfall charts. X and Y are only read by
// Build, which sums Y per X in first-appearance order.
type WaterfallConfig struct {
	X   string
	Y   string
	How string // default "sum"

	ColorCoded bool
	UpName     string // default "increase"
	DownName   string // default "decrease"
	Annotate   Annotate
}

func (WaterfallConfig) Kind() Kind { return KindWaterfall }
func (WaterfallConfig) sealed()    {}

// Validate checks the options used by SetWaterfall.
func (c WaterfallConfig) Validate() error {
	if c.Annotate != AnnotateNone {
		return notImplemented("waterfall annotation")
	}
	if _, err := ResolveAggFunc(orDefault(c.How, "sum"), nil); err != nil {
		return err
	}
	return nil
}

func (c WaterfallConfig) withDefaults() WaterfallConfig {
	c.How = orDefault(c.How, "sum")
	c.UpName = orDefault(c.UpName, "increase")
	c.DownName = orDefault(c.DownName, "decrease")
	return c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
