package config

import "os"

// Environment variable names for overrides. API key and channel ID can be
// pinned by the environment, overriding whatever the config file says —
// the hard-override layer of the resolution chain.
const (
	EnvConfig    = "YTMIRROR_CONFIG"
	EnvAPIKey    = "YTMIRROR_API_KEY" //nolint:gosec // variable name, not a credential
	EnvChannelID = "YTMIRROR_CHANNEL_ID"
	EnvDataDir   = "YTMIRROR_DATA_DIR"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath string // YTMIRROR_CONFIG: override config file path
	APIKey     string // YTMIRROR_API_KEY: override api_key
	ChannelID  string // YTMIRROR_CHANNEL_ID: override channel_id
	DataDir    string // YTMIRROR_DATA_DIR: override data_dir
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; Resolve applies the fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		APIKey:     os.Getenv(EnvAPIKey),
		ChannelID:  os.Getenv(EnvChannelID),
		DataDir:    os.Getenv(EnvDataDir),
	}
}
