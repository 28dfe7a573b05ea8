package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytmirror/ytmirror/internal/store"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the library, sync, and watcher state",
		Long: `Display the mirrored channel, library record counts, whether a sync or
watch daemon is currently running, and the latest sync log.

Reads the local library only — never talks to the remote API.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

// statusInfo is the status command's output document.
type statusInfo struct {
	ChannelID     string              `json:"channel_id"`
	ChannelTitle  string              `json:"channel_title,omitempty"`
	SyncState     string              `json:"sync_state"`
	SyncStartedAt *time.Time          `json:"sync_started_at,omitempty"`
	WatcherPID    int                 `json:"watcher_pid,omitempty"`
	LatestSyncLog string              `json:"latest_sync_log,omitempty"`
	Library       *store.LibraryStats `json:"library"`
}

// cachedChannelDoc is the subset of the cached channel document the
// status display reads.
type cachedChannelDoc struct {
	Snippet struct {
		Title string `json:"title"`
	} `json:"snippet"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	logger := buildLogger()

	st, cleanup, err := openStore(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := buildStatusInfo(cmd.Context(), st)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(info)
	}

	printStatusText(cmd, info)

	return nil
}

func buildStatusInfo(ctx context.Context, st *store.Store) (*statusInfo, error) {
	info := &statusInfo{
		ChannelID: resolvedCfg.ChannelID,
		SyncState: "idle",
	}

	if raw, ok, err := st.ChannelCache(ctx); err != nil {
		return nil, err
	} else if ok {
		var doc cachedChannelDoc
		if jsonErr := json.Unmarshal(raw, &doc); jsonErr == nil {
			info.ChannelTitle = doc.Snippet.Title
		}
	}

	lockedAt, locked, err := st.SyncLockedAt(ctx)
	if err != nil {
		return nil, err
	}

	if locked {
		info.SyncState = "running"
		info.SyncStartedAt = &lockedAt
	}

	if pid, running := watcherPID(pidFilePath(resolvedCfg)); running {
		info.WatcherPID = pid
	}

	if path, ok, logErr := st.LatestSyncLog(ctx); logErr != nil {
		return nil, logErr
	} else if ok {
		info.LatestSyncLog = path
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		return nil, err
	}

	info.Library = stats

	return info, nil
}

func printStatusText(cmd *cobra.Command, info *statusInfo) {
	out := cmd.OutOrStdout()

	channel := info.ChannelID
	if channel == "" {
		channel = "(not configured)"
	}

	if info.ChannelTitle != "" {
		channel = fmt.Sprintf("%s (%s)", info.ChannelTitle, info.ChannelID)
	}

	fmt.Fprintf(out, "Channel:    %s\n", channel)

	if info.SyncState == "running" && info.SyncStartedAt != nil {
		fmt.Fprintf(out, "Sync:       running since %s\n", info.SyncStartedAt.Format(time.RFC3339))
	} else {
		fmt.Fprintf(out, "Sync:       %s\n", info.SyncState)
	}

	if info.WatcherPID != 0 {
		fmt.Fprintf(out, "Watcher:    running (pid %d)\n", info.WatcherPID)
	} else {
		fmt.Fprintf(out, "Watcher:    not running\n")
	}

	fmt.Fprintf(out, "Playlists:  %d\n", info.Library.Playlists)
	fmt.Fprintf(out, "Videos:     %d published, %d in trash\n",
		info.Library.VideosPublished, info.Library.VideosTrashed)
	fmt.Fprintf(out, "Thumbnails: %d\n", info.Library.Attachments)

	if info.LatestSyncLog != "" {
		fmt.Fprintf(out, "Last log:   %s\n", info.LatestSyncLog)
	}
}
