package config

// Default values for configuration options. These are layer 0 of the
// override chain and match a safe zero-config first run: nothing is
// deleted, scheduled sync runs once a day.
const (
	defaultUpdateFrequency   = FrequencyOnceDaily
	defaultOrphanedPlaylists = OrphanKeep
	defaultOrphanedVideos    = OrphanKeep
	defaultPluginCSS         = "enable"
	defaultLogLevel          = "info"
)

// DefaultConfig returns a Config populated with all default values.
// It is the starting point for TOML decoding so unset fields keep their
// defaults, and the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		UpdateFrequency:   defaultUpdateFrequency,
		OrphanedPlaylists: defaultOrphanedPlaylists,
		OrphanedVideos:    defaultOrphanedVideos,
		PluginCSS:         defaultPluginCSS,
		DataDir:           DefaultDataDir(),
		LogLevel:          defaultLogLevel,
	}
}
