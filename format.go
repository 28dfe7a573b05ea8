package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ytmirror/ytmirror/internal/importer"
)

// reportView is the JSON shape of a sync report.
type reportView struct {
	ChannelTitle      string `json:"channel_title,omitempty"`
	PlaylistsImported int    `json:"playlists_imported"`
	PlaylistsSkipped  int    `json:"playlists_skipped"`
	PlaylistsDeleted  int    `json:"playlists_deleted"`
	VideosImported    int    `json:"videos_imported"`
	VideosTrashed     int    `json:"videos_trashed"`
	VideosDeleted     int    `json:"videos_deleted"`
	Elapsed           string `json:"elapsed"`
	LogPath           string `json:"log_path,omitempty"`
}

// renderReport writes a sync report as text or JSON.
func renderReport(w io.Writer, r *importer.Report, asJSON bool) error {
	view := reportView{
		ChannelTitle:      r.ChannelTitle,
		PlaylistsImported: len(r.ImportedPlaylists),
		PlaylistsSkipped:  r.PlaylistsSkipped,
		PlaylistsDeleted:  len(r.DeletedPlaylists),
		VideosImported:    len(r.ImportedVideos),
		VideosTrashed:     len(r.TrashedVideos),
		VideosDeleted:     len(r.DeletedVideos),
		Elapsed:           formatElapsed(r.Finished.Sub(r.Started)),
		LogPath:           r.LogPath,
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(view)
	}

	if view.ChannelTitle != "" {
		fmt.Fprintf(w, "Synced %s in %s\n", view.ChannelTitle, view.Elapsed)
	} else {
		fmt.Fprintf(w, "Synced in %s\n", view.Elapsed)
	}

	fmt.Fprintf(w, "  playlists: %d imported, %d unchanged, %d deleted\n",
		view.PlaylistsImported, view.PlaylistsSkipped, view.PlaylistsDeleted)
	fmt.Fprintf(w, "  videos:    %d imported, %d trashed, %d deleted\n",
		view.VideosImported, view.VideosTrashed, view.VideosDeleted)

	if view.LogPath != "" {
		fmt.Fprintf(w, "  log:       %s\n", view.LogPath)
	}

	return nil
}

// formatElapsed rounds a run duration for display. Sub-second runs show
// milliseconds, anything longer shows tenths of a second.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	return d.Round(100 * time.Millisecond).String()
}
