// Package config holds the gofer configuration: a JSON file at
// ~/.gofer/config.json overlaid with GOFER_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// FlexibleStringSlice is a []string that also accepts JSON numbers, so
// allow_from can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Channels ChannelsConfig `json:"channels"`
	Google   GoogleConfig   `json:"google"`
	Gateway  GatewayConfig  `json:"gateway"`
	Digest   DigestConfig   `json:"digest"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Slack    SlackConfig    `json:"slack"`
	Discord  DiscordConfig  `json:"discord"`
}

type TelegramConfig struct {
	Enabled   bool                `env:"GOFER_CHANNELS_TELEGRAM_ENABLED"    json:"enabled"`
	Token     string              `env:"GOFER_CHANNELS_TELEGRAM_TOKEN"      json:"token"`
	AllowFrom FlexibleStringSlice `env:"GOFER_CHANNELS_TELEGRAM_ALLOW_FROM" json:"allow_from"`
}

type SlackConfig struct {
	Enabled   bool                `env:"GOFER_CHANNELS_SLACK_ENABLED"    json:"enabled"`
	BotToken  string              `env:"GOFER_CHANNELS_SLACK_BOT_TOKEN"  json:"bot_token"`
	AppToken  string              `env:"GOFER_CHANNELS_SLACK_APP_TOKEN"  json:"app_token"`
	AllowFrom FlexibleStringSlice `env:"GOFER_CHANNELS_SLACK_ALLOW_FROM" json:"allow_from"`
}

type DiscordConfig struct {
	Enabled   bool                `env:"GOFER_CHANNELS_DISCORD_ENABLED"    json:"enabled"`
	Token     string              `env:"GOFER_CHANNELS_DISCORD_TOKEN"      json:"token"`
	AllowFrom FlexibleStringSlice `env:"GOFER_CHANNELS_DISCORD_ALLOW_FROM" json:"allow_from"`
}

// GoogleConfig locates the Workspace credentials and the default targets for
// spreadsheet and calendar commands.
type GoogleConfig struct {
	KeyFile       string `env:"GOFER_GOOGLE_KEY_FILE"       json:"key_file"`
	SpreadsheetID string `env:"GOFER_GOOGLE_SPREADSHEET_ID" json:"spreadsheet_id"`
	CalendarID    string `env:"GOFER_GOOGLE_CALENDAR_ID"    json:"calendar_id"`
}

type GatewayConfig struct {
	Host string `env:"GOFER_GATEWAY_HOST" json:"host"`
	Port int    `env:"GOFER_GATEWAY_PORT" json:"port"`
}

// DigestConfig drives the scheduled agenda digest. Schedule is a five-field
// cron expression.
type DigestConfig struct {
	Enabled  bool   `env:"GOFER_DIGEST_ENABLED"  json:"enabled"`
	Schedule string `env:"GOFER_DIGEST_SCHEDULE" json:"schedule"`
	Channel  string `env:"GOFER_DIGEST_CHANNEL"  json:"channel"`
	ChatID   string `env:"GOFER_DIGEST_CHAT_ID"  json:"chat_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Google: GoogleConfig{
			CalendarID: "primary",
		},
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 9590,
		},
		Digest: DigestConfig{
			Schedule: "0 8 * * *",
			Channel:  "telegram",
		},
	}
}

// LoadConfig reads path (missing file is not an error) and applies
// environment overrides on top.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
