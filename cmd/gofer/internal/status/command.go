package status

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/gofer/cmd/gofer/internal"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return statusCmd()
		},
	}
}

func statusCmd() error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Printf("%s gofer %s\n\n", internal.Logo, internal.FormatVersion())
	fmt.Printf("Config: %s\n\n", internal.GetConfigPath())

	fmt.Println("Channels:")
	fmt.Printf("  telegram: %s\n", enabledMark(cfg.Channels.Telegram.Enabled, cfg.Channels.Telegram.Token != ""))
	fmt.Printf("  slack:    %s\n", enabledMark(cfg.Channels.Slack.Enabled, cfg.Channels.Slack.BotToken != ""))
	fmt.Printf("  discord:  %s\n", enabledMark(cfg.Channels.Discord.Enabled, cfg.Channels.Discord.Token != ""))

	fmt.Println("\nGoogle Workspace:")
	if cfg.Google.KeyFile == "" {
		fmt.Println("  key file: not set")
	} else if _, err := os.Stat(cfg.Google.KeyFile); err != nil {
		fmt.Printf("  key file: %s (missing)\n", cfg.Google.KeyFile)
	} else {
		fmt.Printf("  key file: %s\n", cfg.Google.KeyFile)
	}
	fmt.Printf("  spreadsheet: %s\n", orUnset(cfg.Google.SpreadsheetID))
	fmt.Printf("  calendar:    %s\n", orUnset(cfg.Google.CalendarID))

	if cfg.Digest.Enabled {
		fmt.Printf("\nDigest: %s → %s/%s\n", cfg.Digest.Schedule, cfg.Digest.Channel, cfg.Digest.ChatID)
	}

	return nil
}

func enabledMark(enabled, hasToken bool) string {
	switch {
	case !enabled:
		return "disabled"
	case !hasToken:
		return "enabled (no token!)"
	default:
		return "enabled"
	}
}

func orUnset(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}
