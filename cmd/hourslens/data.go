package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/config"
	"github.com/janekbaraniewski/hourslens/internal/logging"
	"github.com/janekbaraniewski/hourslens/internal/source"
)

// dataFlags are the source flags shared by every command that reads records.
type dataFlags struct {
	sheet string
	table string
}

func (d *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.sheet, "sheet", "", "worksheet to read from an .xlsx file (default: config or first sheet)")
	cmd.Flags().StringVar(&d.table, "table", "", "table to read from a SQLite file (default: config or \"tasks\")")
}

func (d *dataFlags) path(cfg config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Data.Path
}

func (d *dataFlags) options(cfg config.Config) source.Options {
	opts := source.Options{Sheet: cfg.Data.Sheet, Table: cfg.Data.Table}
	if d.sheet != "" {
		opts.Sheet = d.sheet
	}
	if d.table != "" {
		opts.Table = d.table
	}
	return opts
}

// loadLayout reads the records at path and lays out the histogram once.
func loadLayout(ctx context.Context, cfg config.Config, path string, opts source.Options) (chart.Layout, error) {
	recs, err := source.Load(ctx, path, opts)
	if err != nil {
		return chart.Layout{}, err
	}

	l := chart.Build(recs, cfg.ChartOptions())
	logging.Global().Info().
		Int("input", l.Stats.Input).
		Int("duplicates", l.Stats.Duplicates).
		Int("short", l.Stats.ShortTasks).
		Int("out_of_range", l.Stats.OutOfRange).
		Int("kept", l.Stats.Kept).
		Msg("records filtered")
	logging.Global().Debug().Int("bins", len(l.Bins)).Float64("mean", l.Mean).Msg("binned")
	return l, nil
}
