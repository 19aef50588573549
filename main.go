package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/noriapi/prevent-alt-win-menu/config"
	"github.com/noriapi/prevent-alt-win-menu/platform"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	// Create agent
	agent, err := NewAgent(cfg)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown of the agent
	// services; the keyboard hook itself lives until process exit.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run agent
	if err := agent.Run(ctx); err != nil {
		if errors.Is(err, platform.ErrAlreadyStarted) {
			slog.Error("Another instance already installed the keyboard hook")
		} else {
			slog.Error("Agent error", "error", err)
		}
		os.Exit(1)
	}

	slog.Info("prevent-alt-win-menu stopped")
}
