package youtube

import "encoding/json"

// Channel represents the mirrored YouTube channel. Fields are normalized
// from the Data API response — callers never see raw API data, but the raw
// payload is retained for caching.
type Channel struct {
	ID                string
	Etag              string
	Title             string
	Description       string
	ThumbnailURL      string
	UploadsPlaylistID string
	Raw               json.RawMessage
}

// Playlist represents one remote playlist. Etag is the change fingerprint:
// equal etags mean the playlist has not meaningfully changed.
type Playlist struct {
	ID          string
	Etag        string
	Title       string
	Description string
	EmbedHTML   string
	Raw         json.RawMessage
}

// PlaylistItem represents one video as it appears inside a playlist.
// VideoID is the stable external key; the thumbnail URL is already the
// best available size (see bestThumbnailURL).
type PlaylistItem struct {
	VideoID      string
	Etag         string
	Title        string
	Description  string
	ThumbnailURL string
	Raw          json.RawMessage
}
