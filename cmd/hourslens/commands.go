package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/hourslens/internal/config"
	"github.com/janekbaraniewski/hourslens/internal/export"
	"github.com/janekbaraniewski/hourslens/internal/report"
	"github.com/janekbaraniewski/hourslens/internal/version"
)

func newBinsCommand(cfg config.Config) *cobra.Command {
	var (
		data   dataFlags
		format string
		all    bool
		colors bool
	)
	cmd := &cobra.Command{
		Use:   "bins [file]",
		Short: "Print the histogram bins as a table, CSV or JSON",
		Example: `  hourslens bins tasks.csv
  hourslens bins --format json export.xlsx
  hourslens bins --all --table issues tracker.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			l, err := loadLayout(cmd.Context(), cfg, data.path(cfg, args), data.options(cfg))
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), l, report.Options{
				Format:       f,
				UseColors:    colors && !color.NoColor,
				IncludeEmpty: all,
			})
		},
	}
	data.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, csv or json")
	cmd.Flags().BoolVar(&all, "all", false, "include bins with no tasks")
	cmd.Flags().BoolVar(&colors, "color", true, "color the range column (table output)")
	return cmd
}

func newExportCommand(cfg config.Config) *cobra.Command {
	var (
		data   dataFlags
		output string
		opts   = export.DefaultOptions()
	)
	cmd := &cobra.Command{
		Use:   "export [file] -o chart.svg",
		Short: "Render the histogram to an SVG or PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("missing --output file")
			}
			l, err := loadLayout(cmd.Context(), cfg, data.path(cfg, args), data.options(cfg))
			if err != nil {
				return err
			}
			if err := export.WriteFile(output, l, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bins)\n", output, len(l.Bins))
			return nil
		},
	}
	data.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks svg or png")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "image height in pixels")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "hourslens "+version.String())
		},
	}
}
