package youtube

import "errors"

// Sentinel errors for remote lookups. Not-found conditions are ordinary
// outcomes for the sync engine (it clears caches and moves on), so they
// get sentinels rather than opaque API errors.
var (
	// ErrChannelNotFound indicates the channel lookup returned zero items.
	ErrChannelNotFound = errors.New("youtube: channel not found")

	// ErrPlaylistNotFound indicates the playlist lookup returned zero items.
	ErrPlaylistNotFound = errors.New("youtube: playlist not found")
)
