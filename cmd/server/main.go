package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/server"
	"github.com/iudanet/gridedit/internal/server/handlers"
	"github.com/iudanet/gridedit/internal/storage/boltdb"
	"github.com/iudanet/gridedit/internal/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "gridedit-data.db", "Path to host dataset database")
	statePath := flag.String("state", "gridedit-state.db", "Path to control state database")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *addr, *dbPath, *statePath); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, statePath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataStorage, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset database: %w", err)
	}
	defer func() {
		if err := dataStorage.Close(); err != nil {
			logger.Error("failed to close dataset database", "error", err)
		}
	}()
	logger.Info("Dataset database opened", "path", dbPath, "schema_version", dataStorage.SchemaVersion())

	stateStorage, err := boltdb.New(ctx, statePath)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() {
		if err := stateStorage.Close(); err != nil {
			logger.Error("failed to close state database", "error", err)
		}
	}()

	srv := server.New(addr, logger,
		handlers.NewControlHandler(logger, control.NewService(logger), stateStorage, dataStorage),
		handlers.NewHealthHandler(logger, Version, stateStorage, dataStorage))

	logger.Info("GridEdit server starting", "version", Version, "addr", addr)
	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("GridEdit Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
