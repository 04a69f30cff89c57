package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/adapters/cache"
	"github.com/mikey/id-bot/internal/adapters/discord"
	"github.com/mikey/id-bot/internal/core"
	"github.com/mikey/id-bot/internal/di"
	"github.com/mikey/id-bot/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	client *discord.Client,
	service *core.ReminderService,
	expirator *cache.Expirator[string],
	metricsServer *metrics.Server,
) error {
	defer logger.Sync()

	// Start the metrics endpoint
	if metricsServer != nil {
		if _, err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	// Start expiring stale reminders
	expirator.Start()

	// Connect to the chat platform
	client.Register(service)
	if err := client.Start(); err != nil {
		expirator.Stop()
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("Shutting down...", zap.String("signal", sig.String()))

	// Stop the chat client first so no new reminders are recorded
	if err := client.Stop(); err != nil {
		logger.Error("Failed to stop discord client", zap.Error(err))
	}

	expirator.Stop()

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsServer.Stop(ctx); err != nil {
			logger.Error("Failed to stop metrics server", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
