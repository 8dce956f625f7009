package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sbilibin2017/demoapp/internal/apps"
	"github.com/sbilibin2017/demoapp/internal/logger"
)

// run parses configuration, builds the server and serves until a
// termination signal arrives or ctx is done.
func run(ctx context.Context, args []string, getenv func(string) string) error {
	cfg, err := parseFlags(args, getenv)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := apps.NewServer(cfg, log)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error("server failed", zap.Error(err))
		return err
	}
	return nil
}
