package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytmirror/ytmirror/internal/importer"
	"github.com/ytmirror/ytmirror/internal/scheduler"
)

func newSyncCmd() *cobra.Command {
	var (
		force  bool
		notify bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync against the remote channel",
		Long: `Fetch the channel, its playlists, and their videos, reconcile them into
the local library, and apply the configured orphan policies.

Only one sync runs at a time; a concurrent attempt exits with an error.
Use --notify to signal a running watch daemon to sync instead of syncing
in this process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if notify {
				return sendSIGHUP(pidFilePath(resolvedCfg))
			}

			return runSync(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "sync even when scheduled sync is disabled")
	cmd.Flags().BoolVar(&notify, "notify", false, "ask a running watch daemon to sync instead")

	cmd.MarkFlagsMutuallyExclusive("force", "notify")

	return cmd
}

func runSync(cmd *cobra.Command, force bool) error {
	logger := buildLogger()

	// Same per-run bound the watch daemon applies to scheduled syncs.
	ctx, cancel := context.WithTimeout(cmd.Context(), scheduler.SyncRunTimeout)
	defer cancel()

	ctx = shutdownContext(ctx, logger)

	a, cleanup, err := buildApp(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := a.engine.Sync(ctx, force)
	if errors.Is(err, importer.ErrSyncDisabled) {
		return fmt.Errorf("scheduled sync is off (update_frequency = \"off\"); rerun with --force")
	}

	if err != nil {
		return err
	}

	return renderReport(cmd.OutOrStdout(), report, flagJSON)
}
