package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tinyland-inc/gofer/cmd/gofer/internal"
	"github.com/tinyland-inc/gofer/pkg/bot"
	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/channels"
	"github.com/tinyland-inc/gofer/pkg/digest"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
	"github.com/tinyland-inc/gofer/pkg/health"
	"github.com/tinyland-inc/gofer/pkg/logger"
	"github.com/tinyland-inc/gofer/pkg/workspace"
)

func gatewayCmd(debug bool) error {
	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}
	if err := logger.SetLogFile(filepath.Join(internal.ConfigDir(), "gofer.log")); err != nil {
		fmt.Printf("⚠ Log file unavailable: %v\n", err)
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Credential handshake happens once, up front; failure aborts startup.
	services, err := workspace.NewServices(ctx, cfg.Google.KeyFile)
	if err != nil {
		return fmt.Errorf("google workspace auth: %w", err)
	}
	fmt.Println("✓ Google Workspace authenticated")

	msgBus := bus.NewMessageBus()
	registry := dispatch.NewRegistry()
	b := bot.New(cfg, msgBus, registry, services)
	b.RegisterAll()
	router := dispatch.NewRouter(registry)
	fmt.Printf("✓ %d commands registered\n", len(registry.ListCommands()))

	manager, err := channels.NewManager(cfg, msgBus)
	if err != nil {
		return fmt.Errorf("error creating channel manager: %w", err)
	}

	enabledChannels := manager.GetEnabledChannels()
	if len(enabledChannels) > 0 {
		fmt.Printf("✓ Channels enabled: %s\n", enabledChannels)
	} else {
		fmt.Println("⚠ Warning: No channels enabled")
	}

	go dispatch.Consume(ctx, msgBus, router)

	if err := manager.StartAll(ctx); err != nil {
		fmt.Printf("Error starting channels: %v\n", err)
	}
	manager.PublishCommandMenu(ctx, registry.ListCommands())

	digestService := digest.NewService(cfg.Digest, services.Calendar, msgBus)
	if err := digestService.Start(); err != nil {
		fmt.Printf("Error starting digest service: %v\n", err)
	} else if cfg.Digest.Enabled {
		fmt.Println("✓ Agenda digest scheduled")
	}

	healthServer := health.NewServer(cfg.Gateway.Host, cfg.Gateway.Port)
	go func() {
		if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorCF("health", "Health server error", map[string]any{"error": err.Error()})
		}
	}()
	healthServer.SetReady(true)
	fmt.Printf("✓ Health endpoints available at http://%s:%d/health and /ready\n", cfg.Gateway.Host, cfg.Gateway.Port)

	fmt.Printf("✓ Gateway started\n")
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()
	healthServer.Stop(context.Background())
	digestService.Stop()
	manager.StopAll(context.Background())
	msgBus.Close()
	fmt.Println("✓ Gateway stopped")

	return nil
}
