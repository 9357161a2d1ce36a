package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
)

// ============================================================================
// CHARTKIT CLI — CSV in, chart specification out
// ============================================================================
// One subcommand per chart kind. Every flag can also be set in a YAML, TOML
// or JSON file passed with --config; flags given on the command line win.
// ============================================================================

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:   "chartkit",
		Short: "Turn tabular data into chart specifications",
		Long: `chartkit aggregates a CSV file and writes an ECharts-style chart
specification: bar, line, histogram, bar-line combo or waterfall.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("file", "f", "", "Path to CSV data file (required)")
	pf.String("config", "", "Read options from a YAML, TOML or JSON file")
	pf.String("format", "json", "Output format: json, pretty, text")
	pf.StringP("out", "o", "", "Write output to file instead of stdout")
	pf.String("log-level", "warning", "Log level: debug, info, warning, error")
	pf.Int("precision", 3, "Decimal places of series data (negative keeps full precision)")
	pf.StringSlice("dimensions", nil, "Columns always read as categories, even when numeric")

	root.AddCommand(
		a.newBarLineCmd(engine.KindBar),
		a.newBarLineCmd(engine.KindLine),
		a.newHistCmd(),
		a.newComboCmd(),
		a.newWaterfallCmd(),
	)
	return root
}

// run binds flags and the config file, loads the CSV and writes the chart.
func (a *app) run(cmd *cobra.Command, configure func(v *viper.Viper) (engine.Config, error)) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := a.v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log.SetLevel(level)

	cfg, err := configure(a.v)
	if err != nil {
		return err
	}

	path := a.v.GetString("file")
	if path == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	view, keys, err := helpers.ParseCSVView(data, a.v.GetStringSlice("dimensions")...)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"file": path, "columns": len(keys)}).
		Infof("📋 Parsed %d records", view.Len())

	chart, err := engine.Build(view, cfg,
		engine.WithLogger(a.log),
		engine.WithPrecision(a.v.GetInt("precision")),
	)
	if err != nil {
		return err
	}

	format := a.v.GetString("format")
	out := a.v.GetString("out")
	if out == "" {
		return writeChart(cmd.OutOrStdout(), cfg.Kind(), chart, format)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeChart(f, cfg.Kind(), chart, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	a.log.Infof("📄 Chart written to %s", out)
	return nil
}
