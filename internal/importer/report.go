package importer

import "time"

// Report summarizes one sync run. The slices hold local record keys:
// imported videos appear in the order the remote listings returned them,
// swept keys in the order the store processed them.
type Report struct {
	// ChannelTitle is the mirrored channel's title, empty when the channel
	// lookup failed and the run proceeded without it.
	ChannelTitle string

	ImportedPlaylists []int64 // inserted or updated
	DeletedPlaylists  []int64
	ImportedVideos    []int64 // unique videos upserted
	TrashedVideos     []int64
	DeletedVideos     []int64

	// PlaylistsSkipped counts playlists whose stored fingerprint matched
	// the remote etag, so nothing was written.
	PlaylistsSkipped int

	// LogPath is the run's log artifact, empty when it could not be
	// created.
	LogPath string

	Started  time.Time
	Finished time.Time
}
