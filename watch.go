package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ytmirror/ytmirror/internal/config"
	"github.com/ytmirror/ytmirror/internal/scheduler"
)

func newWatchCmd() *cobra.Command {
	var immediate bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run recurring syncs until interrupted",
		Long: `Run as a daemon: sync on the configured recurrence, reload the config
file when it changes, and re-import the channel immediately when the API
key or channel ID changes.

SIGHUP triggers an immediate sync. A PID file in the data directory
ensures only one watcher runs per library.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, immediate)
		},
	}

	cmd.Flags().BoolVar(&immediate, "now", false, "sync immediately on startup instead of waiting for the first tick")

	return cmd
}

func runWatch(cmd *cobra.Command, immediate bool) error {
	logger := buildLogger()
	ctx := shutdownContext(cmd.Context(), logger)

	a, cleanup, err := buildApp(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	removePID, err := writePIDFile(pidFilePath(a.cfg))
	if err != nil {
		return err
	}
	defer removePID()

	reload := func() (*config.Config, error) {
		return config.Resolve(config.ReadEnvOverrides(), cliOverrides())
	}

	runner := scheduler.New(a.engine, a.cfg, effectiveConfigPath(), reload, logger)

	stopHUP := triggerSyncOnHUP(ctx, runner, logger)
	defer stopHUP()

	if immediate {
		runner.TriggerSync()
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("watch stopped")

	return nil
}
