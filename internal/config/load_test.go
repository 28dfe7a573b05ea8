package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
api_key = "AIzaTest"
channel_id = "UCabc123"
update_frequency = "hourly"
orphaned_playlists = "delete"
orphaned_videos = "trash"
plugin_css = "disable"
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "AIzaTest", cfg.APIKey)
	assert.Equal(t, "UCabc123", cfg.ChannelID)
	assert.Equal(t, FrequencyHourly, cfg.UpdateFrequency)
	assert.Equal(t, OrphanDelete, cfg.OrphanedPlaylists)
	assert.Equal(t, OrphanTrash, cfg.OrphanedVideos)
	assert.Equal(t, "disable", cfg.PluginCSS)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DefaultsPreservedForUnsetKeys(t *testing.T) {
	path := writeConfigFile(t, `api_key = "AIzaTest"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FrequencyOnceDaily, cfg.UpdateFrequency)
	assert.Equal(t, OrphanKeep, cfg.OrphanedPlaylists)
	assert.Equal(t, OrphanKeep, cfg.OrphanedVideos)
	assert.Equal(t, "enable", cfg.PluginCSS)
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	path := writeConfigFile(t, `api_kee = "oops"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)
	assert.Equal(t, FrequencyOnceDaily, cfg.UpdateFrequency)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
api_key = "from-file"
channel_id = "UCfile"
`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, APIKey: "from-env"},
		CLIOverrides{},
	)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "UCfile", cfg.ChannelID)
}

func TestResolve_CLIBeatsEnv(t *testing.T) {
	path := writeConfigFile(t, `channel_id = "UCfile"`)

	cfg, err := Resolve(
		EnvOverrides{ChannelID: "UCenv"},
		CLIOverrides{ConfigPath: path, ChannelID: "UCcli"},
	)
	require.NoError(t, err)

	assert.Equal(t, "UCcli", cfg.ChannelID)
}

func TestValidate_FrequencyFallsBackToHourly(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid off", "off", FrequencyOff},
		{"valid mixed case", "OnceDaily", FrequencyOnceDaily},
		{"unknown name", "weekly", FrequencyHourly},
		{"empty", "", FrequencyHourly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.UpdateFrequency = tt.in
			require.NoError(t, Validate(cfg))
			assert.Equal(t, tt.want, cfg.UpdateFrequency)
		})
	}
}

func TestValidate_BadOrphanPolicyFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrphanedVideos = "purge"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphaned_videos")
}

func TestValidate_PlaylistTrashRejected(t *testing.T) {
	// Playlists only support delete/keep — trash is a video-only policy.
	cfg := DefaultConfig()
	cfg.OrphanedPlaylists = OrphanTrash

	require.Error(t, Validate(cfg))
}
