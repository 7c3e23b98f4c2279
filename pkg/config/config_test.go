package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "primary", cfg.Google.CalendarID)
	assert.Equal(t, "127.0.0.1", cfg.Gateway.Host)
	assert.Equal(t, 9590, cfg.Gateway.Port)
	assert.Equal(t, "0 8 * * *", cfg.Digest.Schedule)
	assert.False(t, cfg.Channels.Telegram.Enabled)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"channels": {
			"telegram": {"enabled": true, "token": "from-file", "allow_from": ["42", 1337]}
		},
		"google": {"spreadsheet_id": "sheet-from-file"},
		"gateway": {"port": 7000}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv("GOFER_CHANNELS_TELEGRAM_TOKEN", "from-env")
	t.Setenv("GOFER_GOOGLE_CALENDAR_ID", "work")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Channels.Telegram.Enabled)
	assert.Equal(t, "from-env", cfg.Channels.Telegram.Token)
	assert.Equal(t, FlexibleStringSlice{"42", "1337"}, cfg.Channels.Telegram.AllowFrom)
	assert.Equal(t, "sheet-from-file", cfg.Google.SpreadsheetID)
	assert.Equal(t, "work", cfg.Google.CalendarID)
	assert.Equal(t, 7000, cfg.Gateway.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Gateway.Host)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestFlexibleStringSlice(t *testing.T) {
	var f FlexibleStringSlice
	require.NoError(t, json.Unmarshal([]byte(`["a", 7, true]`), &f))
	assert.Equal(t, FlexibleStringSlice{"a", "7", "true"}, f)

	require.Error(t, json.Unmarshal([]byte(`"not-a-list"`), &f))
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Google.SpreadsheetID = "sheet-1"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", loaded.Google.SpreadsheetID)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
