package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/bankcli/infra/initializer"
	"github.com/amirasaad/bankcli/internal/cli"
	"github.com/amirasaad/bankcli/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Store.Close() //nolint:errcheck

	deps.Logger.Info("starting session", "env", cfg.Env, "store", cfg.Store.Driver)

	session := cli.New(deps.Bank, deps.Store, deps.Logger, os.Stdin, os.Stdout,
		cli.WithExportDir(cfg.Export.Dir))
	return session.Run(ctx)
}
