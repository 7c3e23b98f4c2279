// gofer - a chat bot that relays commands to Google Workspace
// (Sheets, Drive, Calendar, Gmail) over Telegram, Slack and Discord.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/gofer/cmd/gofer/internal"
	"github.com/tinyland-inc/gofer/cmd/gofer/internal/chat"
	"github.com/tinyland-inc/gofer/cmd/gofer/internal/gateway"
	"github.com/tinyland-inc/gofer/cmd/gofer/internal/onboard"
	"github.com/tinyland-inc/gofer/cmd/gofer/internal/status"
	"github.com/tinyland-inc/gofer/cmd/gofer/internal/version"
)

func NewGoferCommand() *cobra.Command {
	short := fmt.Sprintf("%s gofer - Google Workspace chat bot v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "gofer",
		Short:   short,
		Example: "gofer gateway",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		gateway.NewGatewayCommand(),
		chat.NewChatCommand(),
		status.NewStatusCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewGoferCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
