// Package chartkit turns tabular data into declarative chart specifications.
//
// Usage:
//
//	import "github.com/spektr-org/chartkit/engine"
//
//	view, _, err := helpers.ParseCSVView(data)
//	chart, err := engine.Build(view, engine.BarLineConfig{
//	    Type: engine.KindBar, X: "region", Y: "revenue", How: "sum",
//	})
//
// The engine reads records through engine.RecordView (CSV, typed structs or
// go-gg tables), aggregates, bins, sorts and normalizes them, and writes the
// axes and series of an ECharts-style chart specification. Rendering is left
// to the consumer; the chart marshals to JSON.
package chartkit
