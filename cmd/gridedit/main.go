package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/gridedit/internal/cli"
	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/iocli"
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
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", "gridedit-data.db", "Path to host dataset database")
	statePath := flag.String("state", "gridedit-state.db", "Path to control state database")
	session := flag.String("session", "", "Control session id")
	dataset := flag.String("dataset", "", "Dataset bound to the grid")
	rowKey := flag.String("row-key", "", "Field holding the business row key")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	os.Exit(run(logger, args, cli.Options{
		Dataset: *dataset,
		Session: *session,
		RowKey:  *rowKey,
	}, *dbPath, *statePath))
}

func run(logger *slog.Logger, args []string, opts cli.Options, dbPath, statePath string) int {
	ctx := context.Background()

	// Открываем SQLite с данными хоста
	dataStorage, err := sqlite.New(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open dataset database: %v\n", err)
		return 1
	}
	defer func() {
		if err := dataStorage.Close(); err != nil {
			logger.Error("failed to close dataset database", "error", err)
		}
	}()
	logger.Debug("Dataset database opened", "path", dbPath, "schema_version", dataStorage.SchemaVersion())

	// Открываем BoltDB с состоянием контрола
	stateStorage, err := boltdb.New(ctx, statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open state database: %v\n", err)
		return 1
	}
	defer func() {
		if err := stateStorage.Close(); err != nil {
			logger.Error("failed to close state database", "error", err)
		}
	}()

	c := cli.New(
		iocli.NewStdio(),
		control.NewService(logger),
		stateStorage,
		stateStorage,
		dataStorage,
		logger,
		opts,
	)

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if _, known := knownCommands[args[0]]; !known {
			cli.PrintUsage()
		}
		return 1
	}
	return 0
}

var knownCommands = map[string]struct{}{
	"import": {}, "datasets": {}, "refresh": {}, "edit": {}, "select": {}, "outputs": {},
	"reset": {}, "commit": {}, "teardown": {}, "sessions": {}, "new-session": {},
}

func printVersion() {
	fmt.Printf("GridEdit\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
