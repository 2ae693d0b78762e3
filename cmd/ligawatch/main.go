package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deusflow/ligawatch/internal/app"
	"github.com/deusflow/ligawatch/internal/config"
	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if cfg == nil && err == nil {
		// --help
		return 0
	}
	debug := cfg != nil && cfg.Debug
	logger.Init(debug)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, metrics.Global)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return 1
	}
	defer a.Close()

	if cfg.Daemon {
		if err := a.Daemon(ctx); err != nil {
			logger.Error("daemon stopped with error", "error", err)
			return 1
		}
		return 0
	}

	if err := a.RunOnce(ctx); err != nil {
		return 1
	}
	return 0
}
