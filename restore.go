package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <video-id>",
		Short: "Restore a trashed video to the library",
		Long: `Flip a video that an orphan sweep moved to trash back to published.
The video ID is the external YouTube ID, e.g. dQw4w9WgXcQ.`,
		Args: cobra.ExactArgs(1),
		RunE: runRestore,
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	logger := buildLogger()

	st, cleanup, err := openStore(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	videoID := args[0]

	rec, err := st.VideoByExternalID(cmd.Context(), videoID)
	if err != nil {
		return err
	}

	if rec == nil {
		return fmt.Errorf("no video with ID %q in the library", videoID)
	}

	if err := st.RestoreVideo(cmd.Context(), rec.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %q (%s)\n", rec.Title, videoID)

	return nil
}
