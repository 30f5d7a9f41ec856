package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/registry"
	"github.com/oakoss/ui-registry/internal/watch"
)

func init() {
	watchCmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period before a rebuild")
	bindFlag(settings, config.KeyWatchDebounce, watchCmd.Flags().Lookup("debounce"))
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the registry when starters change",
	Long: `Build the registry, then watch the starters directory and rebuild after
every batch of changes. The output directory and the watch.ignore globs are
never watched. A failed rebuild is logged and watching continues.

Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		rebuild := func() error {
			p, err := registry.New(cfg, logger)
			if err != nil {
				return err
			}
			start := time.Now()
			res, err := p.Run()
			if err != nil {
				return err
			}
			logger.Info("rebuilt registry", "items", res.Items, "took", time.Since(start).Round(time.Millisecond))
			return nil
		}

		if err := rebuild(); err != nil {
			logger.Error("initial build failed", "error", err)
		}

		w, err := watch.New(watch.Options{
			Root:     cfg.SourceRoot,
			Paths:    []string{cfg.StartersDir},
			Ignore:   cfg.WatchIgnore,
			Exclude:  []string{cfg.OutputDir, registry.StagingDir(cfg.OutputDir)},
			Debounce: cfg.Debounce,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", cfg.StartersDir)
		return w.Run(ctx, func(paths []string) error {
			logger.Info("change detected", "files", len(paths))
			return rebuild()
		})
	},
}

