package onboard

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/gofer/cmd/gofer/internal"
	"github.com/tinyland-inc/gofer/pkg/config"
)

func NewOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return onboardCmd()
		},
	}
}

func onboardCmd() error {
	path := internal.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s\n", path)
		return nil
	}

	if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("%s Wrote %s\n\n", internal.Logo, path)
	fmt.Println("Fill in at least:")
	fmt.Println("  channels.telegram.token   (or GOFER_CHANNELS_TELEGRAM_TOKEN)")
	fmt.Println("  google.key_file           (or GOFER_GOOGLE_KEY_FILE)")
	fmt.Println("  google.spreadsheet_id     (or GOFER_GOOGLE_SPREADSHEET_ID)")
	fmt.Println("\nThen run: gofer gateway")
	return nil
}
