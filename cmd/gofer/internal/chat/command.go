// Package chat runs the bot against a local console transport, useful for
// trying commands without any chat-service credentials.
package chat

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/gofer/cmd/gofer/internal"
	"github.com/tinyland-inc/gofer/pkg/bot"
	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/channels"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
	"github.com/tinyland-inc/gofer/pkg/logger"
	"github.com/tinyland-inc/gofer/pkg/workspace"
)

func NewChatCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot on the local console",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return chatCmd(debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}

func chatCmd(debug bool) error {
	if debug {
		logger.SetLevel(logger.DEBUG)
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := workspace.NewServices(ctx, cfg.Google.KeyFile)
	if err != nil {
		return fmt.Errorf("google workspace auth: %w", err)
	}

	msgBus := bus.NewMessageBus()
	registry := dispatch.NewRegistry()
	b := bot.New(cfg, msgBus, registry, services)
	b.RegisterAll()
	router := dispatch.NewRouter(registry)

	// Only the CLI transport; remote channels stay down.
	mgrCfg := *cfg
	mgrCfg.Channels = config.ChannelsConfig{}
	manager, err := channels.NewManager(&mgrCfg, msgBus)
	if err != nil {
		return err
	}
	cliChannel, err := channels.NewCLIChannel(msgBus)
	if err != nil {
		return err
	}
	manager.AddChannel(cliChannel)

	go dispatch.Consume(ctx, msgBus, router)
	if err := manager.StartAll(ctx); err != nil {
		return err
	}

	fmt.Println("Interactive chat. Try /help. Ctrl+D to exit.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case <-cliChannel.Done():
	case <-sigChan:
	}

	cancel()
	manager.StopAll(context.Background())
	msgBus.Close()
	return nil
}
