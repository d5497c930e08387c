package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/hourslens/internal/config"
	"github.com/janekbaraniewski/hourslens/internal/logging"
	"github.com/janekbaraniewski/hourslens/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closer, err := logging.Init(logging.OptionsFromEnv())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	if err := config.LoadEnvFiles(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Global().Debug().Str("path", config.ConfigPath()).Str("theme", cfg.Theme).Msg("config loaded")

	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		logging.Global().Warn().Err(err).Msg("some themes could not be loaded")
	}
	tui.SetThemeByName(cfg.Theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(cfg)
	root.AddCommand(
		newBinsCommand(cfg),
		newExportCommand(cfg),
		newVersionCommand(),
	)
	return root.ExecuteContext(ctx)
}

func newRootCommand(cfg config.Config) *cobra.Command {
	var data dataFlags
	cmd := &cobra.Command{
		Use:   "hourslens [file]",
		Short: "hourslens is an interactive histogram of estimated versus actual task hours.",
		Long: `hourslens reads task records (CSV, TSV, XLSX, Parquet or SQLite) and shows how
far each task's estimate was from the hours it actually took. Hover a bar to
see example tasks and the developer share of the hours in that range.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := data.path(cfg, args)
			l, err := loadLayout(cmd.Context(), cfg, path, data.options(cfg))
			if err != nil {
				return err
			}
			return runDashboard(l, path)
		},
	}
	data.register(cmd)
	return cmd
}
