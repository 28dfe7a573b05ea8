// Package importer is the sync engine. It reconciles the remote channel
// (channel metadata, playlists, playlist items) against the local content
// library: fetch, fingerprint-compare, upsert, then sweep orphans per the
// configured policies. Runs are serialized by a persisted lock and each
// run writes a timestamped log artifact.
package importer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ytmirror/ytmirror/internal/config"
	"github.com/ytmirror/ytmirror/internal/store"
	"github.com/ytmirror/ytmirror/internal/youtube"
)

// syncTimeout is how long a sync lock is honored before a new run may
// reclaim it as abandoned.
const syncTimeout = 30 * time.Minute

// logNameLayout is the timestamp format for per-run log filenames.
const logNameLayout = "2006-01-02-150405"

var (
	// ErrSyncDisabled is returned by Sync when scheduled syncs are turned
	// off and the caller did not force the run.
	ErrSyncDisabled = errors.New("importer: sync is disabled")

	// ErrSyncInProgress is returned by Sync when another run holds the
	// sync lock.
	ErrSyncInProgress = errors.New("importer: a sync is already running")
)

// RemoteLibrary is the subset of the YouTube client the engine consumes.
type RemoteLibrary interface {
	ChannelByID(ctx context.Context, channelID string) (*youtube.Channel, error)
	PlaylistByID(ctx context.Context, playlistID string) (*youtube.Playlist, error)
	PlaylistsByChannel(ctx context.Context, channelID string) ([]*youtube.Playlist, error)
	VideosByPlaylist(ctx context.Context, playlistID string) ([]*youtube.PlaylistItem, error)
}

// EmbedResolver resolves embeddable preview markup for a watch URL.
type EmbedResolver interface {
	EmbedHTML(ctx context.Context, watchURL string) (string, error)
}

// ThumbnailSideloader commits a remote thumbnail as a local attachment.
type ThumbnailSideloader interface {
	Sideload(ctx context.Context, srcURL, videoID, title, fileExt string) (int64, error)
}

// Engine drives sync runs against one channel.
type Engine struct {
	store  *store.Store
	remote RemoteLibrary
	embeds EmbedResolver
	thumbs ThumbnailSideloader
	cfg    *config.Config
	logger *slog.Logger

	// nowFunc is injectable for deterministic tests.
	nowFunc func() time.Time
}

// New creates an Engine. embeds may be nil, in which case videos are
// stored without preview markup; thumbs may be nil to skip sideloading.
func New(
	st *store.Store, remote RemoteLibrary, embeds EmbedResolver,
	thumbs ThumbnailSideloader, cfg *config.Config, logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		store:   st,
		remote:  remote,
		embeds:  embeds,
		thumbs:  thumbs,
		cfg:     cfg,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// now returns the current time via the injectable clock.
func (e *Engine) now() time.Time {
	return e.nowFunc()
}
