// Package main is the entry point for the Winter Wonderland scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/config"
	"github.com/Faultbox/wonderland/internal/game"
	"github.com/Faultbox/wonderland/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("wonderland failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== Winter Wonderland ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	defer g.Close()

	return g.Run()
}
