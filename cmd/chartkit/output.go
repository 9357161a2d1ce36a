package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/dustin/go-humanize"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// OUTPUT — json, pretty or a human-readable per-series summary
// ============================================================================

func writeChart(w io.Writer, kind engine.Kind, chart *engine.Chart, format string) error {
	switch format {
	case "json", "":
		return writeJSON(w, chart, false)
	case "pretty":
		return writeJSON(w, chart, true)
	case "text":
		return writeSummary(w, kind, chart)
	}
	return fmt.Errorf("unknown format %q (want json, pretty or text)", format)
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeSummary prints one line per series: point count, total and range.
func writeSummary(w io.Writer, kind engine.Kind, chart *engine.Chart) error {
	if _, err := fmt.Fprintf(w, "%s chart: %s categories, %d series\n",
		kind, humanize.Comma(int64(len(chart.XAxis.Data))), len(chart.Series)); err != nil {
		return err
	}
	for _, s := range chart.Series {
		name := s.Name
		if name == "" {
			name = "(spacer)"
		}
		values := finite(s.Data)
		if len(values) == 0 {
			if _, err := fmt.Fprintf(w, "  %-20s %-4s no values\n", name, s.Type); err != nil {
				return err
			}
			continue
		}
		var total float64
		for _, v := range values {
			total += v
		}
		lo, hi := stats.Bounds(values)
		if _, err := fmt.Fprintf(w, "  %-20s %-4s n=%d total=%s min=%s max=%s\n",
			name, s.Type, len(values), humanize.Commaf(total), si(lo), si(hi)); err != nil {
			return err
		}
	}
	return nil
}

func finite(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// si renders v with an SI prefix, e.g. 12.5k.
func si(v float64) string {
	value, prefix := humanize.ComputeSI(v)
	return humanize.Ftoa(engine.RoundTo(value, 2)) + prefix
}
