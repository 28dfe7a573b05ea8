package config

import (
	"fmt"
	"strings"
)

// Validate checks enum-valued options and normalizes the update frequency.
//
// An unrecognized update_frequency is not an error: it falls back to hourly
// so a stale or hand-edited value never blocks scheduled syncs. The orphan
// policies and plugin_css are strict — a typo there could silently delete
// library records, so it must fail loudly.
func Validate(c *Config) error {
	c.UpdateFrequency = NormalizeFrequency(c.UpdateFrequency)

	switch c.OrphanedPlaylists {
	case OrphanDelete, OrphanKeep:
	default:
		return fmt.Errorf("orphaned_playlists must be %q or %q, got %q",
			OrphanDelete, OrphanKeep, c.OrphanedPlaylists)
	}

	switch c.OrphanedVideos {
	case OrphanDelete, OrphanTrash, OrphanKeep:
	default:
		return fmt.Errorf("orphaned_videos must be %q, %q or %q, got %q",
			OrphanDelete, OrphanTrash, OrphanKeep, c.OrphanedVideos)
	}

	switch c.PluginCSS {
	case "enable", "disable":
	default:
		return fmt.Errorf("plugin_css must be \"enable\" or \"disable\", got %q", c.PluginCSS)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	return nil
}

// NormalizeFrequency lowercases a recurrence name and maps anything
// unrecognized to hourly.
func NormalizeFrequency(freq string) string {
	switch strings.ToLower(freq) {
	case FrequencyOff:
		return FrequencyOff
	case FrequencyHourly:
		return FrequencyHourly
	case FrequencyTwiceDaily:
		return FrequencyTwiceDaily
	case FrequencyOnceDaily:
		return FrequencyOnceDaily
	default:
		return FrequencyHourly
	}
}
