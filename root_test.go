package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytmirror/ytmirror/internal/config"
)

// Global flag reset pattern: newRootCmd() binds flags via StringVar/BoolVar,
// which reset the global flag variables to their zero values. Tests must
// set globals AFTER newRootCmd() returns, or use cmd.SetArgs() + Execute()
// so Cobra parses the flags itself.

func saveGlobals(t *testing.T) {
	t.Helper()

	oldCfg := resolvedCfg
	oldConfigPath := flagConfigPath
	oldChannel := flagChannel
	oldDataDir := flagDataDir
	oldJSON := flagJSON
	oldVerbose := flagVerbose
	oldQuiet := flagQuiet

	t.Cleanup(func() {
		resolvedCfg = oldCfg
		flagConfigPath = oldConfigPath
		flagChannel = oldChannel
		flagDataDir = oldDataDir
		flagJSON = oldJSON
		flagVerbose = oldVerbose
		flagQuiet = oldQuiet
	})
}

func TestBuildLogger_Default(t *testing.T) {
	saveGlobals(t)

	resolvedCfg = nil
	flagVerbose = false
	flagQuiet = false

	logger := buildLogger()

	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestBuildLogger_ConfigLevel(t *testing.T) {
	saveGlobals(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"
	resolvedCfg = cfg
	flagVerbose = false
	flagQuiet = false

	logger := buildLogger()

	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestBuildLogger_VerboseOverridesConfig(t *testing.T) {
	saveGlobals(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "error"
	resolvedCfg = cfg
	flagVerbose = true
	flagQuiet = false

	logger := buildLogger()

	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestBuildLogger_QuietOverridesConfig(t *testing.T) {
	saveGlobals(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"
	resolvedCfg = cfg
	flagVerbose = false
	flagQuiet = true

	logger := buildLogger()

	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelError))
	assert.False(t, logger.Handler().Enabled(context.Background(), slog.LevelWarn))
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	expected := []string{"sync", "watch", "status", "restore"}
	for _, name := range expected {
		found := false

		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true

				break
			}
		}

		assert.True(t, found, "expected subcommand %q not found", name)
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	expectedFlags := []string{"config", "channel", "data-dir", "json", "verbose", "quiet"}
	for _, name := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(name)
		assert.NotNil(t, flag, "expected persistent flag %q not found", name)
	}
}

func TestNewRootCmd_VerboseQuietExclusive(t *testing.T) {
	saveGlobals(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--verbose", "--quiet", "status"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestLoadConfig_ValidTOML(t *testing.T) {
	saveGlobals(t)

	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.toml")

	tomlContent := `api_key = "key123"
channel_id = "UCabc"
update_frequency = "hourly"
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(tomlContent), 0o600))

	_ = newRootCmd()
	flagConfigPath = cfgFile

	require.NoError(t, loadConfig())
	require.NotNil(t, resolvedCfg)

	assert.Equal(t, "key123", resolvedCfg.APIKey)
	assert.Equal(t, "UCabc", resolvedCfg.ChannelID)
	assert.Equal(t, config.FrequencyHourly, resolvedCfg.UpdateFrequency)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	saveGlobals(t)

	_ = newRootCmd()
	flagConfigPath = filepath.Join(t.TempDir(), "nonexistent.toml")
	flagChannel = "UC_cli"

	require.NoError(t, loadConfig())
	require.NotNil(t, resolvedCfg)

	assert.Equal(t, "UC_cli", resolvedCfg.ChannelID)
	assert.Equal(t, config.FrequencyOnceDaily, resolvedCfg.UpdateFrequency)
}

func TestEffectiveConfigPath_FlagWins(t *testing.T) {
	saveGlobals(t)

	flagConfigPath = "/tmp/custom.toml"
	t.Setenv("YTMIRROR_CONFIG", "/tmp/env.toml")

	assert.Equal(t, "/tmp/custom.toml", effectiveConfigPath())

	flagConfigPath = ""
	assert.Equal(t, "/tmp/env.toml", effectiveConfigPath())
}
