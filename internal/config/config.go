// Package config loads and validates ytmirror configuration.
//
// Resolution follows a three-layer override chain: built-in defaults →
// TOML config file → environment variables. Environment variables win so a
// deployment can pin the API key or channel without editing the file.
package config

import "path/filepath"

// Update frequency values accepted for update_frequency.
const (
	FrequencyOff        = "off"
	FrequencyHourly     = "hourly"
	FrequencyTwiceDaily = "twicedaily"
	FrequencyOnceDaily  = "oncedaily"
)

// Orphan policy values for orphaned_playlists and orphaned_videos.
const (
	OrphanDelete = "delete"
	OrphanTrash  = "trash"
	OrphanKeep   = "keep"
)

// Config holds the full ytmirror configuration after resolution.
type Config struct {
	// APIKey is the YouTube Data API v3 key used for all remote calls.
	APIKey string `toml:"api_key"`

	// ChannelID is the external ID of the channel being mirrored.
	ChannelID string `toml:"channel_id"`

	// UpdateFrequency controls the scheduled sync recurrence:
	// off, hourly, twicedaily, or oncedaily.
	UpdateFrequency string `toml:"update_frequency"`

	// OrphanedPlaylists controls what happens to local playlists absent
	// from the latest import: delete or keep.
	OrphanedPlaylists string `toml:"orphaned_playlists"`

	// OrphanedVideos controls what happens to local videos absent from
	// the latest import: delete, trash, or keep.
	OrphanedVideos string `toml:"orphaned_videos"`

	// PluginCSS toggles bundled stylesheet output when rendering embeds
	// in a host page: enable or disable. Recognized for compatibility;
	// the CLI itself renders nothing.
	PluginCSS string `toml:"plugin_css"`

	// DataDir is the root directory for the library database, sync logs,
	// and sideloaded media. Empty means the platform default.
	DataDir string `toml:"data_dir"`

	// LogLevel sets the process logger level: debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// SyncEnabled reports whether scheduled syncs should run at all.
func (c *Config) SyncEnabled() bool {
	return c.UpdateFrequency != FrequencyOff
}

// DBPath returns the path of the library database inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "library.db")
}

// LogDir returns the directory holding per-run sync logs.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// MediaDir returns the directory holding sideloaded thumbnail files.
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}
