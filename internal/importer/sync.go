package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ytmirror/ytmirror/internal/config"
	"github.com/ytmirror/ytmirror/internal/store"
	"github.com/ytmirror/ytmirror/internal/youtube"
)

// importedPlaylist pairs a remote playlist with its local key for the
// video import pass.
type importedPlaylist struct {
	key    int64
	remote *youtube.Playlist
}

// Sync runs one full reconciliation: channel, playlists, videos, then
// orphan sweeps. force runs even when scheduled syncs are disabled.
//
// Only one run executes at a time; a second caller gets
// ErrSyncInProgress. A lock left behind by an abandoned run is reclaimed
// after syncTimeout. The lock is always released on return, success or
// not.
func (e *Engine) Sync(ctx context.Context, force bool) (*Report, error) {
	if !force && !e.cfg.SyncEnabled() {
		return nil, ErrSyncDisabled
	}

	acquired, err := e.store.AcquireSyncLock(ctx, syncTimeout)
	if err != nil {
		return nil, err
	}

	if !acquired {
		return nil, ErrSyncInProgress
	}

	defer func() {
		// Release must happen even when ctx was canceled mid-run.
		if relErr := e.store.ReleaseSyncLock(context.WithoutCancel(ctx)); relErr != nil {
			e.logger.Error("releasing sync lock", slog.Any("error", relErr))
		}
	}()

	report := &Report{Started: e.now()}

	log, logPath, closeLog, err := e.openRunLog(ctx)
	if err != nil {
		// The artifact is diagnostics; the run proceeds without it.
		e.logger.Warn("sync log unavailable", slog.Any("error", err))

		log = e.logger
		closeLog = func() {}
	}
	defer closeLog()

	report.LogPath = logPath

	log.Info("sync started", slog.Bool("force", force))

	if err := e.run(ctx, log, report); err != nil {
		log.Error("sync failed", slog.Any("error", err))
		return nil, err
	}

	report.Finished = e.now()

	log.Info("sync finished",
		slog.Int("playlists_imported", len(report.ImportedPlaylists)),
		slog.Int("playlists_skipped", report.PlaylistsSkipped),
		slog.Int("playlists_deleted", len(report.DeletedPlaylists)),
		slog.Int("videos_imported", len(report.ImportedVideos)),
		slog.Int("videos_trashed", len(report.TrashedVideos)),
		slog.Int("videos_deleted", len(report.DeletedVideos)),
		slog.Duration("elapsed", report.Finished.Sub(report.Started)),
	)

	return report, nil
}

// run executes the reconciliation steps under an already-held lock.
func (e *Engine) run(ctx context.Context, log *slog.Logger, report *Report) error {
	// A failed channel lookup is not fatal: the run continues against the
	// channel's public playlist listing and the cache stays cleared until
	// the next successful run.
	ch, err := e.ImportChannel(ctx, e.cfg.ChannelID)
	if err != nil {
		log.Warn("channel import failed", slog.Any("error", err))
	} else {
		report.ChannelTitle = ch.Title
	}

	playlists, err := e.importPlaylists(ctx, log, ch, report)
	if err != nil {
		return err
	}

	keepVideos, err := e.importVideos(ctx, log, playlists, report)
	if err != nil {
		return err
	}

	keepPlaylists := make([]int64, 0, len(playlists))
	for _, pl := range playlists {
		keepPlaylists = append(keepPlaylists, pl.key)
	}

	return e.sweepOrphans(ctx, log, keepPlaylists, keepVideos, report)
}

// importPlaylists fetches the channel's uploads playlist and public
// playlist listing, then upserts each by fingerprint comparison. A
// failed listing aborts the run: sweeping against a partial keep set
// would remove records that still exist remotely.
func (e *Engine) importPlaylists(
	ctx context.Context, log *slog.Logger, ch *youtube.Channel, report *Report,
) ([]importedPlaylist, error) {
	var remotes []*youtube.Playlist

	seen := make(map[string]bool)

	// The uploads playlist never appears in the channel listing, so it is
	// fetched by ID first. Its absence is tolerable; the listing is not.
	if ch != nil && ch.UploadsPlaylistID != "" {
		uploads, err := e.remote.PlaylistByID(ctx, ch.UploadsPlaylistID)
		if err != nil {
			log.Warn("uploads playlist fetch failed",
				slog.String("playlist_id", ch.UploadsPlaylistID),
				slog.Any("error", err),
			)
		} else {
			remotes = append(remotes, uploads)
			seen[uploads.ID] = true
		}
	}

	listed, err := e.remote.PlaylistsByChannel(ctx, e.cfg.ChannelID)
	if err != nil {
		return nil, err
	}

	for _, pl := range listed {
		if seen[pl.ID] {
			continue
		}

		remotes = append(remotes, pl)
		seen[pl.ID] = true
	}

	imported := make([]importedPlaylist, 0, len(remotes))

	for _, pl := range remotes {
		key, changed, err := e.upsertPlaylist(ctx, pl)
		if err != nil {
			return nil, err
		}

		if changed {
			report.ImportedPlaylists = append(report.ImportedPlaylists, key)

			log.Info("playlist imported",
				slog.String("playlist_id", pl.ID),
				slog.String("title", pl.Title),
			)
		} else {
			report.PlaylistsSkipped++

			log.Debug("playlist unchanged", slog.String("playlist_id", pl.ID))
		}

		imported = append(imported, importedPlaylist{key: key, remote: pl})
	}

	return imported, nil
}

// upsertPlaylist inserts a new playlist record or, when the stored
// fingerprint differs from the remote etag, updates it in place. Equal
// fingerprints write nothing.
func (e *Engine) upsertPlaylist(ctx context.Context, pl *youtube.Playlist) (int64, bool, error) {
	existing, err := e.store.PlaylistByExternalID(ctx, pl.ID)
	if err != nil {
		return 0, false, err
	}

	rec := &store.PlaylistRecord{
		PlaylistID:  pl.ID,
		Etag:        pl.Etag,
		Title:       pl.Title,
		Description: pl.Description,
		EmbedHTML:   pl.EmbedHTML,
		Payload:     pl.Raw,
	}

	if existing == nil {
		key, insErr := e.store.InsertPlaylist(ctx, rec)
		return key, true, insErr
	}

	if existing.Etag == pl.Etag {
		return existing.ID, false, nil
	}

	rec.ID = existing.ID

	return existing.ID, true, e.store.UpdatePlaylist(ctx, rec)
}

// importVideos upserts every item of every imported playlist and returns
// the local keys of all videos seen this run, in the order the remote
// listings returned them. Preview markup and thumbnail sideloading are
// decorative and never fail the run; store writes and listing failures
// do.
func (e *Engine) importVideos(
	ctx context.Context, log *slog.Logger, playlists []importedPlaylist, report *Report,
) ([]int64, error) {
	seen := make(map[string]int64)

	var keep []int64

	for _, pl := range playlists {
		items, err := e.remote.VideosByPlaylist(ctx, pl.remote.ID)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			if item.VideoID == "" {
				log.Debug("skipping playlist item without video reference",
					slog.String("playlist_id", pl.remote.ID),
				)

				continue
			}

			key, known := seen[item.VideoID]
			if !known {
				key, err = e.importVideo(ctx, log, item)
				if err != nil {
					return nil, err
				}

				seen[item.VideoID] = key
				keep = append(keep, key)
			}

			if err := e.store.AssociateVideoPlaylist(ctx, key, pl.key); err != nil {
				return nil, err
			}
		}
	}

	report.ImportedVideos = keep

	return keep, nil
}

// importVideo upserts one video record with its watch URL, preview
// markup, and sideloaded thumbnail.
func (e *Engine) importVideo(ctx context.Context, log *slog.Logger, item *youtube.PlaylistItem) (int64, error) {
	watchURL := youtube.WatchURL(item.VideoID)

	embedHTML := ""

	if e.embeds != nil {
		html, err := e.embeds.EmbedHTML(ctx, watchURL)
		if err != nil {
			log.Warn("embed lookup failed",
				slog.String("video_id", item.VideoID),
				slog.Any("error", err),
			)
		} else {
			embedHTML = html
		}
	}

	key, err := e.store.UpsertVideo(ctx, &store.VideoRecord{
		VideoID:     item.VideoID,
		Title:       item.Title,
		Description: item.Description,
		URL:         watchURL,
		EmbedHTML:   embedHTML,
		Payload:     item.Raw,
	})
	if err != nil {
		return 0, err
	}

	if e.thumbs != nil && item.ThumbnailURL != "" {
		attachmentID, slErr := e.thumbs.Sideload(ctx, item.ThumbnailURL, item.VideoID, item.Title, "")
		if slErr != nil {
			log.Warn("thumbnail sideload failed",
				slog.String("video_id", item.VideoID),
				slog.Any("error", slErr),
			)
		} else if setErr := e.store.SetVideoThumbnail(ctx, key, attachmentID); setErr != nil {
			return 0, setErr
		}
	}

	log.Info("video imported",
		slog.String("video_id", item.VideoID),
		slog.String("title", item.Title),
	)

	return key, nil
}

// sweepOrphans applies the configured orphan policies to local records
// absent from this run's keep sets.
func (e *Engine) sweepOrphans(
	ctx context.Context, log *slog.Logger, keepPlaylists, keepVideos []int64, report *Report,
) error {
	switch e.cfg.OrphanedPlaylists {
	case config.OrphanDelete:
		deleted, err := e.store.DeletePlaylistsNotIn(ctx, keepPlaylists)
		if err != nil {
			return err
		}

		report.DeletedPlaylists = deleted
	case config.OrphanKeep:
		// Orphaned playlists stay.
	default:
		return fmt.Errorf("importer: unknown orphaned playlist policy %q", e.cfg.OrphanedPlaylists)
	}

	switch e.cfg.OrphanedVideos {
	case config.OrphanDelete:
		deleted, err := e.store.DeleteVideosNotIn(ctx, keepVideos)
		if err != nil {
			return err
		}

		report.DeletedVideos = deleted
	case config.OrphanTrash:
		trashed, err := e.store.TrashVideosNotIn(ctx, keepVideos)
		if err != nil {
			return err
		}

		report.TrashedVideos = trashed
	case config.OrphanKeep:
		// Orphaned videos stay.
	default:
		return fmt.Errorf("importer: unknown orphaned video policy %q", e.cfg.OrphanedVideos)
	}

	if len(report.DeletedPlaylists)+len(report.DeletedVideos)+len(report.TrashedVideos) > 0 {
		log.Info("orphans swept",
			slog.Int("playlists_deleted", len(report.DeletedPlaylists)),
			slog.Int("videos_deleted", len(report.DeletedVideos)),
			slog.Int("videos_trashed", len(report.TrashedVideos)),
		)
	}

	return nil
}
